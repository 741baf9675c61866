package core

import (
	"errors"
	"fmt"
)

// ErrUnknownEvent is returned when a journal code does not name an event.
var ErrUnknownEvent = errors.New("core: unknown event code")

// Event is a semantic input event, collapsed by the platform from raw key,
// mouse or touch input before it reaches the game.
type Event int

const (
	EventUnrecognized Event = iota // Input the game has no binding for
	EventPrimary                   // Space, tap or any key-down: flap / start / restart
	EventQuit                      // Q, Ctrl+C: leave the game loop from any state
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventUnrecognized:
		return "Unrecognized"
	case EventPrimary:
		return "Primary"
	case EventQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Code returns the single-character journal code for the event.
func (e Event) Code() byte {
	switch e {
	case EventPrimary:
		return 'P'
	case EventQuit:
		return 'Q'
	default:
		return 'U'
	}
}

// ParseEvent converts a journal code back into an Event.
func ParseEvent(code byte) (Event, error) {
	switch code {
	case 'P':
		return EventPrimary, nil
	case 'Q':
		return EventQuit, nil
	case 'U':
		return EventUnrecognized, nil
	}
	return EventUnrecognized, fmt.Errorf("%w %q", ErrUnknownEvent, code)
}

// EncodeEvents packs a tick's events into a compact string such as "PU".
func EncodeEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	b := make([]byte, len(events))
	for i, e := range events {
		b[i] = e.Code()
	}
	return string(b)
}

// DecodeEvents is the inverse of EncodeEvents.
func DecodeEvents(s string) ([]Event, error) {
	if s == "" {
		return nil, nil
	}
	events := make([]Event, len(s))
	for i := 0; i < len(s); i++ {
		e, err := ParseEvent(s[i])
		if err != nil {
			return nil, err
		}
		events[i] = e
	}
	return events, nil
}
