package flappy

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestLoop(t *testing.T) (*Loop, *core.ManualClock, *recordingSink, *recordingObserver) {
	t.Helper()
	s := NewSession(testConfig(), WithGaps(NewScriptedGaps(100, 200, 300)))
	clock := core.NewManualClock(time.Unix(0, 0))
	sink := &recordingSink{}
	obs := &recordingObserver{}
	l := NewLoop(s, clock, sink)
	l.Observe(obs)
	return l, clock, sink, obs
}

func TestLoopFirstTickHasZeroDelta(t *testing.T) {
	l, clock, _, obs := newTestLoop(t)
	clock.Advance(5 * time.Second)

	if err := l.Tick([]core.Event{core.EventPrimary}); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if obs.ticks[0].DT != 0 {
		t.Errorf("first dt = %v, expected 0", obs.ticks[0].DT)
	}
	if l.Session().State() != StateRunning {
		t.Errorf("state = %v, expected Running", l.Session().State())
	}
	if y := l.Session().avatar.Y(); y != 360 {
		t.Errorf("avatar moved on a zero delta: y=%v", y)
	}
}

func TestLoopMeasuresElapsedTime(t *testing.T) {
	l, clock, _, obs := newTestLoop(t)

	_ = l.Tick(nil)
	clock.Advance(16 * time.Millisecond)
	_ = l.Tick(nil)
	clock.Advance(10 * time.Second)
	_ = l.Tick(nil)

	if obs.ticks[1].DT != 16 {
		t.Errorf("second dt = %v, expected 16", obs.ticks[1].DT)
	}
	if obs.ticks[2].DT != 250 {
		t.Errorf("stalled dt = %v, expected clamp to 250", obs.ticks[2].DT)
	}
}

func TestLoopQuit(t *testing.T) {
	l, _, sink, obs := newTestLoop(t)

	err := l.Tick([]core.Event{core.EventQuit, core.EventPrimary})
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("Tick error = %v, expected ErrQuit", err)
	}
	if l.Session().State() != StateStart {
		t.Errorf("events after quit were handled: state = %v", l.Session().State())
	}
	if len(sink.snaps) != 0 || len(obs.ticks) != 0 {
		t.Error("quit frame should not render or notify observers")
	}
}

func TestLoopRendersEveryFrame(t *testing.T) {
	l, _, sink, _ := newTestLoop(t)

	_ = l.Step(16, nil)                             // Start
	_ = l.Step(16, []core.Event{core.EventPrimary}) // Running
	_ = l.Step(1000, nil)                           // falls through the floor
	_ = l.Step(16, nil)                             // GameOver

	if len(sink.snaps) != 4 {
		t.Fatalf("rendered %d frames, expected 4", len(sink.snaps))
	}
	states := []State{StateStart, StateRunning, StateGameOver, StateGameOver}
	for i, want := range states {
		if sink.snaps[i].State != want {
			t.Errorf("frame %d state = %v, expected %v", i, sink.snaps[i].State, want)
		}
	}
}

func TestLoopObserverSeesTransitions(t *testing.T) {
	l, _, _, obs := newTestLoop(t)

	_ = l.Step(0, []core.Event{core.EventPrimary})
	_ = l.Step(1000, nil)
	_ = l.Step(0, []core.Event{core.EventPrimary})

	expected := []struct{ before, after State }{
		{StateStart, StateRunning},
		{StateRunning, StateGameOver},
		{StateGameOver, StateStart},
	}
	for i, want := range expected {
		got := obs.ticks[i]
		if got.Before != want.before || got.After != want.after {
			t.Errorf("tick %d = %v->%v, expected %v->%v", i, got.Before, got.After, want.before, want.after)
		}
	}
	if obs.ticks[1].Cause != CauseFloor {
		t.Errorf("death tick cause = %v, expected floor", obs.ticks[1].Cause)
	}
}

func TestLoopWithoutSink(t *testing.T) {
	s := NewSession(testConfig(), WithGaps(NewScriptedGaps()))
	l := NewLoop(s, core.NewManualClock(time.Unix(0, 0)), nil)

	if err := l.Step(16, []core.Event{core.EventPrimary}); err != nil {
		t.Fatalf("Step: %v", err)
	}
}
