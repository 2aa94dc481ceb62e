// Package chatbus defines the chat message bus port (interface).
package chatbus

import "context"

// Handler processes a message received from the bus.
type Handler func(ctx context.Context, subject string, data []byte) error

// Queue is the port interface for the bus carrying chat traffic between
// the platform gateway and the bot core.
type Queue interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Subscribe registers a handler for messages on the given subject.
	// The returned function cancels the subscription.
	Subscribe(ctx context.Context, subject string, handler Handler) (cancel func(), err error)

	// Close shuts down the bus connection.
	Close() error
}

// Subject constants for the chat stream.
const (
	// SubjectInbound carries messages the gateway saw in the server.
	SubjectInbound = "chat.inbound"

	// SubjectOutbound carries replies for gateways that relay instead of
	// using the webhook notifier.
	SubjectOutbound = "chat.outbound"
)
