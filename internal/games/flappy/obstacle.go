package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Obstacle is a full-height column with a passable gap.
type Obstacle struct {
	pos    float64 // Left edge accumulator; X() truncates it
	gapTop int
	passed bool
}

func newObstacle(x float64, gapTop int) Obstacle {
	return Obstacle{pos: x, gapTop: gapTop}
}

// Update moves the obstacle left by speed*dt. Motion accumulates in the
// float position so small per-tick steps are never lost to truncation.
func (o *Obstacle) Update(dt, speed float64) {
	o.pos -= speed * dt
}

// X returns the left edge truncated to whole units.
func (o *Obstacle) X() int {
	return int(o.pos)
}

// GapTop returns the first row of the gap.
func (o *Obstacle) GapTop() int {
	return o.gapTop
}

// Passed reports whether the obstacle has been scored or collided with.
func (o *Obstacle) Passed() bool {
	return o.passed
}

// markPassed sets the passed flag and reports whether it was newly set.
func (o *Obstacle) markPassed() bool {
	if o.passed {
		return false
	}
	o.passed = true
	return true
}

// Column returns the obstacle's full-height bounding box.
func (o *Obstacle) Column(width, fieldH int) core.Rect {
	return core.NewRect(o.X(), 0, width, fieldH)
}

// Upper returns the solid part above the gap.
func (o *Obstacle) Upper(width int) core.Rect {
	return core.NewRect(o.X(), 0, width, o.gapTop)
}

// Lower returns the solid part below the gap.
func (o *Obstacle) Lower(width, gapHeight, fieldH int) core.Rect {
	bottom := o.gapTop + gapHeight
	return core.NewRect(o.X(), bottom, width, fieldH-bottom)
}
