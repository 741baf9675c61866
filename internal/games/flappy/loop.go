package flappy

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrQuit is returned by the loop when a Quit event arrives.
var ErrQuit = errors.New("flappy: quit")

// Tick describes one completed frame for observers such as the run recorder.
type Tick struct {
	DT     float64
	Events []core.Event
	Before State
	After  State
	Score  int
	Cause  DeathCause
	Ticks  int
}

// TickObserver is notified after every completed frame.
type TickObserver interface {
	ObserveTick(t Tick)
}

// Loop drives a session one frame at a time: route input, update if
// running, then render. It is not safe for concurrent use.
type Loop struct {
	session   *Session
	clock     core.Clock
	sink      RenderSink
	observers []TickObserver
	maxDelta  float64

	last    time.Time
	started bool
}

// NewLoop creates a frame driver. A nil sink skips rendering.
func NewLoop(session *Session, clock core.Clock, sink RenderSink) *Loop {
	return &Loop{
		session:  session,
		clock:    clock,
		sink:     sink,
		maxDelta: session.Config().Loop.MaxDeltaMs,
	}
}

// Observe registers an observer for completed frames.
func (l *Loop) Observe(o TickObserver) {
	l.observers = append(l.observers, o)
}

// Session returns the driven session.
func (l *Loop) Session() *Session {
	return l.session
}

// Tick reads the clock and runs one frame with the elapsed time since the
// previous Tick. The first Tick has a zero delta.
func (l *Loop) Tick(events []core.Event) error {
	now := l.clock.Now()
	dt := 0.0
	if l.started {
		dt = float64(now.Sub(l.last)) / float64(time.Millisecond)
	}
	l.last = now
	l.started = true

	if dt < 0 {
		dt = 0
	}
	if l.maxDelta > 0 && dt > l.maxDelta {
		dt = l.maxDelta
	}
	return l.Step(dt, events)
}

// Step runs one frame with an explicit delta in milliseconds.
// Events are handled in order; a Quit returns ErrQuit immediately.
func (l *Loop) Step(dt float64, events []core.Event) error {
	before := l.session.State()

	for _, e := range events {
		if e == core.EventQuit {
			return ErrQuit
		}
		l.session.Handle(e)
	}
	l.session.Update(dt)

	if l.sink != nil {
		l.sink.Render(l.session.Snapshot())
	}

	if len(l.observers) > 0 {
		t := Tick{
			DT:     dt,
			Events: events,
			Before: before,
			After:  l.session.State(),
			Score:  l.session.Score(),
			Cause:  l.session.Cause(),
			Ticks:  l.session.Ticks(),
		}
		for _, o := range l.observers {
			o.ObserveTick(t)
		}
	}
	return nil
}
