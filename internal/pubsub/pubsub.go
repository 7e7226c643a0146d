package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// TopicRulesChanged carries a notification whenever the pricing rule table
// changes. Subscribers refetch the full active rule set; there is no delta
// payload.
const TopicRulesChanged = "pricing.rules.changed"

// Publisher defines the interface for publishing change notifications
type Publisher interface {
	// Publish publishes a message on the given topic
	Publish(ctx context.Context, topic string, msg *message.Message) error
	// Close closes the publisher
	Close() error
}

// Subscriber defines the interface for consuming change notifications
type Subscriber interface {
	// Subscribe starts consuming messages from the given topic
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	// Close closes the subscriber
	Close() error
}

// PubSub combines both Publisher and Subscriber interfaces
type PubSub interface {
	Publisher
	Subscriber
}
