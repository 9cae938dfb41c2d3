// Package api exposes the ledger operations over HTTP. Each operation is
// one POST with the binary argument payload as the request body and the
// binary result payload as the response body.
package api // import "github.com/openpress/content-ledger/pkg/api"

import (
	"io"
	"net/http"

	log "github.com/golang/glog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cpersist "github.com/joincivil/go-common/pkg/persistence"

	"github.com/openpress/content-ledger/pkg/abi"
	"github.com/openpress/content-ledger/pkg/model"
)

// CallerIDHeader carries the authenticated caller id. Authentication is
// terminated upstream; this service trusts the header value.
const CallerIDHeader = "X-Caller-Id"

// maxPayloadBytes bounds a single request body
const maxPayloadBytes = 4 << 20

// NewServer is a convenience function to init a Server
func NewServer(dispatcher *abi.Dispatcher) *Server {
	return &Server{dispatcher: dispatcher}
}

// Server is the HTTP call surface over the operation dispatcher
type Server struct {
	dispatcher *abi.Dispatcher
}

// Router builds the gin engine with all routes and middleware attached
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/v1/call/:operation", s.handleCall)

	return router
}

// Run starts the HTTP server on the given address and blocks
func (s *Server) Run(listenAddr string) error {
	log.Infof("Ledger call surface listening on %v\n", listenAddr)
	return s.Router().Run(listenAddr)
}

func (s *Server) handleCall(c *gin.Context) {
	operation := c.Param("operation")
	callerID := c.GetHeader(CallerIDHeader)
	if callerID == "" {
		operationCallsTotal.WithLabelValues(operation, "unauthenticated").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller id header"})
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil {
		operationCallsTotal.WithLabelValues(operation, "error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	result, err := s.dispatcher.Call(callerID, operation, payload)
	if err != nil {
		operationCallsTotal.WithLabelValues(operation, "error").Inc()
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Errorf("Error calling %v: err: %v", operation, err)
			c.JSON(status, gin.H{"error": "internal error"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	operationCallsTotal.WithLabelValues(operation, "ok").Inc()
	c.Data(http.StatusOK, "application/octet-stream", result)
}

// statusForError maps the ledger error taxonomy onto HTTP status codes.
// Anything unrecognized is a storage or internal failure.
func statusForError(err error) int {
	switch err {
	case cpersist.ErrPersisterNoResults:
		return http.StatusNotFound
	case model.ErrAlreadyVoted:
		return http.StatusConflict
	case model.ErrNoEarnings, model.ErrInsufficientBalance:
		return http.StatusPreconditionFailed
	case model.ErrDelimiterInField, abi.ErrBadArguments:
		return http.StatusBadRequest
	case model.ErrNotAuthor:
		return http.StatusForbidden
	case abi.ErrUnknownOperation:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
