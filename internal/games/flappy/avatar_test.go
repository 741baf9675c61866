package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestAvatarStartsCenteredAtRest(t *testing.T) {
	a := NewAvatar(testConfig())

	if a.Velocity() != 0 {
		t.Errorf("initial velocity = %v, expected 0", a.Velocity())
	}
	if got, want := a.Rect(), core.NewRect(320, 360, 20, 20); got != want {
		t.Errorf("initial rect = %+v, expected %+v", got, want)
	}
}

func TestAvatarNeverExceedsTerminalVelocity(t *testing.T) {
	cfg := testConfig()
	deltas := []float64{0, 1, 5, 16, 33, 100, 1000, 16, 0, 250}

	a := NewAvatar(cfg)
	for round := 0; round < 20; round++ {
		for _, dt := range deltas {
			a.Update(dt)
			if a.Velocity() > cfg.Physics.TerminalVelocity {
				t.Fatalf("velocity %v exceeds terminal %v after dt=%v", a.Velocity(), cfg.Physics.TerminalVelocity, dt)
			}
		}
		if round%3 == 0 {
			a.Jump()
		}
	}
}

func TestAvatarJumpOverridesVelocity(t *testing.T) {
	cfg := testConfig()
	a := NewAvatar(cfg)

	for i := 0; i < 10; i++ {
		a.Update(16)
	}
	a.Jump()
	if a.Velocity() != cfg.Physics.JumpImpulse {
		t.Errorf("after falling, Jump velocity = %v, expected %v", a.Velocity(), cfg.Physics.JumpImpulse)
	}

	a.Jump()
	if a.Velocity() != cfg.Physics.JumpImpulse {
		t.Errorf("repeated Jump velocity = %v, expected %v", a.Velocity(), cfg.Physics.JumpImpulse)
	}
}

func TestAvatarJumpIsNotCappedUpward(t *testing.T) {
	a := NewAvatar(testConfig())
	a.Jump()
	a.Update(0)

	if a.Velocity() != -0.8 {
		t.Errorf("upward velocity should stay at the impulse, got %v", a.Velocity())
	}
}

func TestAvatarFallsUnderGravity(t *testing.T) {
	a := NewAvatar(testConfig())
	startY := a.Y()

	a.Update(16)

	if a.Velocity() <= 0 {
		t.Errorf("velocity should be positive after gravity, got %v", a.Velocity())
	}
	if a.Y() <= startY {
		t.Errorf("avatar should fall, y was %v now %v", startY, a.Y())
	}
}

func TestAvatarRectKeepsX(t *testing.T) {
	a := NewAvatar(testConfig())
	for i := 0; i < 50; i++ {
		a.Update(16)
		if i%7 == 0 {
			a.Jump()
		}
		if a.Rect().X != 320 {
			t.Fatalf("x changed to %d", a.Rect().X)
		}
	}
}

func TestAvatarLargeDelta(t *testing.T) {
	a := NewAvatar(testConfig())

	a.Update(1000)
	if a.Velocity() != 0.4 {
		t.Errorf("velocity after dt=1000 = %v, expected clamp to 0.4", a.Velocity())
	}
	first := a.Y()
	if first <= 360 {
		t.Errorf("y should increase, got %v", first)
	}

	a.Update(1000)
	if a.Y() <= first {
		t.Errorf("y should keep increasing, was %v now %v", first, a.Y())
	}
}
