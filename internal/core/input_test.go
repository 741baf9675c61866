package core

import (
	"errors"
	"testing"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{EventUnrecognized, "Unrecognized"},
		{EventPrimary, "Primary"},
		{EventQuit, "Quit"},
		{Event(42), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.event.String(); got != tc.expected {
			t.Errorf("Event(%d).String() = %q, expected %q", tc.event, got, tc.expected)
		}
	}
}

func TestEncodeDecodeEvents(t *testing.T) {
	events := []Event{EventPrimary, EventUnrecognized, EventPrimary, EventQuit}

	encoded := EncodeEvents(events)
	if encoded != "PUPQ" {
		t.Fatalf("EncodeEvents() = %q, expected %q", encoded, "PUPQ")
	}

	decoded, err := DecodeEvents(encoded)
	if err != nil {
		t.Fatalf("DecodeEvents() failed: %v", err)
	}
	if len(decoded) != len(events) {
		t.Fatalf("decoded %d events, expected %d", len(decoded), len(events))
	}
	for i := range events {
		if decoded[i] != events[i] {
			t.Errorf("event %d = %v, expected %v", i, decoded[i], events[i])
		}
	}
}

func TestDecodeEventsEmptyAndInvalid(t *testing.T) {
	events, err := DecodeEvents("")
	if err != nil || events != nil {
		t.Errorf("DecodeEvents(\"\") = %v, %v; expected nil, nil", events, err)
	}

	if _, err := DecodeEvents("PX"); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("DecodeEvents(\"PX\") error = %v, expected ErrUnknownEvent", err)
	}
}
