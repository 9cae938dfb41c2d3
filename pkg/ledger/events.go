package ledger // import "github.com/openpress/content-ledger/pkg/ledger"

import (
	"encoding/json"

	"github.com/joincivil/go-common/pkg/pubsub"
)

// PublicationEvent is the message payload emitted when an article is
// published
type PublicationEvent struct {
	ArticleID string `json:"articleId"`
	AuthorID  string `json:"authorId"`
}

// EventPublisher emits observable ledger events for external consumers
type EventPublisher interface {
	// PublishArticleEvent emits a publication event for a new article
	PublishArticleEvent(articleID string, authorID string) error
}

// NewGooglePublisher creates an EventPublisher over an initialized google
// pubsub connection. StartPublishers must have been called on ps.
func NewGooglePublisher(ps *pubsub.GooglePubSub, topicName string) *GooglePublisher {
	return &GooglePublisher{
		pubsub:    ps,
		topicName: topicName,
	}
}

// GooglePublisher publishes ledger events to a google pubsub topic
type GooglePublisher struct {
	pubsub    *pubsub.GooglePubSub
	topicName string
}

// PublishArticleEvent emits a publication event for a new article
func (g *GooglePublisher) PublishArticleEvent(articleID string, authorID string) error {
	event := &PublicationEvent{
		ArticleID: articleID,
		AuthorID:  authorID,
	}
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	googlePubSubMsg := &pubsub.GooglePubSubMsg{
		Topic:   g.topicName,
		Payload: string(msgBytes),
	}
	return g.pubsub.Publish(googlePubSubMsg)
}

// NullPublisher is an EventPublisher that drops all events
type NullPublisher struct{}

// PublishArticleEvent does nothing
func (n *NullPublisher) PublishArticleEvent(articleID string, authorID string) error {
	return nil
}
