package client

import (
	"time"

	ai "github.com/spetersoncode/gipwrap"
)

// EventType identifies the kind of event occurring during a provider call.
type EventType string

const (
	// EventRequestStart fires before the provider request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after the provider returned a payload.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when the provider call failed.
	EventRequestError EventType = "request_error"
)

// Event represents an observable occurrence during a single-shot call.
type Event struct {
	Type     EventType
	Provider ai.Provider
	Model    string

	// Duration is the elapsed time for completed or failed requests.
	Duration time.Duration

	// Extracted reports whether assistant text was unwrapped (complete events only).
	Extracted bool

	// Error contains the error for EventRequestError.
	Error error

	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}
