package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Autopilot is a simple policy that steers toward the next gap. It drives
// headless simulations. A jump always rises less than the gap height minus
// the margin, so jumping whenever the avatar sinks below the threshold
// never reaches the upper pipe.
type Autopilot struct {
	avatarH   int
	gapHeight int
	fieldH    int
	margin    int
}

// NewAutopilot creates a policy for the given geometry.
func NewAutopilot(cfg config.FlappyConfig) *Autopilot {
	return &Autopilot{
		avatarH:   cfg.Avatar.Height,
		gapHeight: cfg.Obstacles.GapHeight,
		fieldH:    cfg.Field.Height,
		margin:    cfg.Avatar.Height + 10,
	}
}

// Events returns the input for the next frame given the last snapshot.
// Outside Running it presses Primary once to start; after a game over it
// stays idle so the caller decides whether to restart.
func (a *Autopilot) Events(snap Snapshot) []core.Event {
	switch snap.State {
	case StateStart:
		return []core.Event{core.EventPrimary}
	case StateGameOver:
		return nil
	}

	gapTop := (a.fieldH - a.gapHeight) / 2
	for _, o := range snap.Obstacles {
		if o.Upper.X+o.Upper.W >= snap.Avatar.X {
			gapTop = o.Upper.H
			break
		}
	}

	threshold := gapTop + a.gapHeight - a.margin
	if snap.Avatar.Bottom() > threshold {
		return []core.Event{core.EventPrimary}
	}
	return nil
}
