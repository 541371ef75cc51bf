package core

import "fmt"

// EventType classifies a persistence event.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is broadcast to watchers after every successful persistence
// cycle.
type Event struct {
	Type      EventType
	ID        any
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("%s %v", e.Type, e.ID)
}
