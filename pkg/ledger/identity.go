package ledger // import "github.com/openpress/content-ledger/pkg/ledger"

import (
	"github.com/openpress/content-ledger/pkg/utils"
)

// IdentityContext supplies the authenticated caller identity and the
// logical timestamp for a single invocation. The wallet authentication
// itself happens outside this layer; the ledger trusts the identity it is
// handed.
type IdentityContext interface {
	// CallerID returns the id of the authenticated caller
	CallerID() string
	// NowMillis returns the invocation timestamp in epoch millis
	NowMillis() int64
}

// NewCallIdentity creates an IdentityContext fixed to the given caller and
// timestamp, covering one invocation
func NewCallIdentity(callerID string, nowMillis int64) IdentityContext {
	return &callIdentity{
		callerID:  callerID,
		nowMillis: nowMillis,
	}
}

// NewSystemIdentity creates an IdentityContext for the given caller using
// the wall clock
func NewSystemIdentity(callerID string) IdentityContext {
	return NewCallIdentity(callerID, utils.CurrentEpochMillis())
}

type callIdentity struct {
	callerID  string
	nowMillis int64
}

func (c *callIdentity) CallerID() string {
	return c.callerID
}

func (c *callIdentity) NowMillis() int64 {
	return c.nowMillis
}
