package core

import (
	"fmt"
	"time"
)

// EventType represents the type of change observed on a slot.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a slot value made by any writer,
// including other processes sharing the same backend.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String renders the event for logs and the lifecycle bridge.
func (e Event) String() string {
	return fmt.Sprintf("%s %s @ %s", e.Type, e.Key, time.Unix(e.Timestamp, 0).UTC().Format(time.RFC3339))
}
