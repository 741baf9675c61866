package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Avatar is the player-controlled box. Only y moves.
type Avatar struct {
	x        int
	y        float64 // Top edge
	w, h     int
	velocity float64 // Positive = down
	physics  config.PhysicsConfig
}

// NewAvatar creates an avatar at rest, vertically centered.
func NewAvatar(cfg config.FlappyConfig) *Avatar {
	return &Avatar{
		x:       cfg.Avatar.X,
		y:       cfg.AvatarStartY(),
		w:       cfg.Avatar.Width,
		h:       cfg.Avatar.Height,
		physics: cfg.Physics,
	}
}

// Update applies gravity for dt milliseconds. Downward velocity is capped at
// terminal velocity; there is no upward cap.
func (a *Avatar) Update(dt float64) {
	a.velocity = math.Min(a.velocity+a.physics.Gravity*dt, a.physics.TerminalVelocity)
	a.y += a.velocity * dt
}

// Jump overrides the current velocity with the jump impulse.
func (a *Avatar) Jump() {
	a.velocity = a.physics.JumpImpulse
}

// Velocity returns the current vertical velocity.
func (a *Avatar) Velocity() float64 {
	return a.velocity
}

// Y returns the exact top edge.
func (a *Avatar) Y() float64 {
	return a.y
}

// Rect returns the avatar's bounding box with y floored to whole units.
func (a *Avatar) Rect() core.Rect {
	return core.NewRect(a.x, int(math.Floor(a.y)), a.w, a.h)
}
