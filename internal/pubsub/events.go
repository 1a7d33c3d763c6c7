// Package pubsub provides a generic publish/subscribe broker. Engine
// sessions and the logger fan their events out through it; the viewer
// subscribes via the bubbletea bridge in tea.go.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload's subject.
type EventType string

const (
	// LoadedEvent fires when a session first binds a fixture.
	LoadedEvent EventType = "loaded"
	// ReloadedEvent fires when a watched fixture is re-read from disk.
	ReloadedEvent EventType = "reloaded"
	// QueriedEvent fires for every mapping query a session answers.
	QueriedEvent EventType = "queried"
	// LoggedEvent carries a formatted log line to overlay subscribers.
	LoggedEvent EventType = "logged"
	// ChangedEvent fires when a watched fixture file is written.
	ChangedEvent EventType = "changed"
	// WatchErrorEvent reports a file watching failure.
	WatchErrorEvent EventType = "watch_error"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
