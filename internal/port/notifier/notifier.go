// Package notifier defines the outbound chat message port.
package notifier

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when a notifier is not properly configured.
var ErrNotConfigured = errors.New("notifier: not configured")

// Field is one name/value pair inside a rich embed.
type Field struct {
	Name  string
	Value string
}

// Message is the payload sent through a Notifier. Content alone produces
// a plain message; Title/Description/Fields produce a rich embed.
type Message struct {
	Content     string
	Title       string
	Description string
	Fields      []Field
	Color       int
}

// Notifier is the port interface for delivering messages to the chat
// platform.
type Notifier interface {
	// Name returns the unique identifier for this notifier (e.g. "discord").
	Name() string

	// Send delivers a message.
	Send(ctx context.Context, msg Message) error
}
