package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestAutopilotStartsGame(t *testing.T) {
	s := NewSession(testConfig(), WithGaps(NewScriptedGaps()))
	ap := NewAutopilot(testConfig())

	events := ap.Events(s.Snapshot())
	if len(events) != 1 || events[0] != core.EventPrimary {
		t.Errorf("events at start = %v, expected [Primary]", events)
	}
}

func TestAutopilotIdleAfterGameOver(t *testing.T) {
	s, _ := newRunningSession(testConfig(), 0)
	s.die(CauseFloor)

	if events := NewAutopilot(testConfig()).Events(s.Snapshot()); len(events) != 0 {
		t.Errorf("events after game over = %v, expected none", events)
	}
}

func TestAutopilotSurvives(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		s := NewSession(testConfig(), WithGaps(NewRandGaps(seed)))
		l := NewLoop(s, core.SystemClock{}, nil)
		ap := NewAutopilot(testConfig())

		// 40 simulated seconds at 16ms per frame
		for i := 0; i < 2500 && s.State() != StateGameOver; i++ {
			if err := l.Step(16, ap.Events(s.Snapshot())); err != nil {
				t.Fatalf("Step: %v", err)
			}
		}

		if s.Score() < 5 {
			t.Errorf("seed %d: autopilot scored %d (%v, %v)", seed, s.Score(), s.State(), s.Cause())
		}
	}
}
