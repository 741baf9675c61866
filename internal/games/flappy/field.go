package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// Field owns the obstacles in spawn order, which is also left-to-right order.
type Field struct {
	obstacles []Obstacle
	gaps      GapSource
	width     int
	height    int
	colWidth  int
	gapHeight int
	spacing   int
	speed     float64
}

// NewField creates an empty field drawing gaps from the given source.
func NewField(cfg config.FlappyConfig, gaps GapSource) *Field {
	return &Field{
		obstacles: make([]Obstacle, 0, 8),
		gaps:      gaps,
		width:     cfg.Field.Width,
		height:    cfg.Field.Height,
		colWidth:  cfg.Obstacles.Width,
		gapHeight: cfg.Obstacles.GapHeight,
		spacing:   cfg.Obstacles.Spacing,
		speed:     cfg.Physics.PipeSpeed,
	}
}

// SetSpeed changes the leftward speed used by Advance.
func (f *Field) SetSpeed(speed float64) {
	f.speed = speed
}

// MaybeSpawn appends an obstacle at the right boundary when the field is
// empty or the newest obstacle is at least spacing units from that boundary.
// Spacing is measured in world distance, so it does not depend on frame rate.
func (f *Field) MaybeSpawn() bool {
	if n := len(f.obstacles); n > 0 && f.width-f.obstacles[n-1].X() < f.spacing {
		return false
	}
	gapTop := f.gaps.NextGap(f.height - f.gapHeight)
	f.obstacles = append(f.obstacles, newObstacle(float64(f.width), gapTop))
	return true
}

// Advance moves every obstacle and drops those whose right edge is left of 0.
// Survivors keep their relative order.
func (f *Field) Advance(dt float64) {
	for i := range f.obstacles {
		f.obstacles[i].Update(dt, f.speed)
	}

	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.X()+f.colWidth >= 0 {
			kept = append(kept, o)
		}
	}
	f.obstacles = kept
}

// ForEach visits obstacles in spawn order until fn returns false.
func (f *Field) ForEach(fn func(o *Obstacle) bool) {
	for i := range f.obstacles {
		if !fn(&f.obstacles[i]) {
			return
		}
	}
}

// Len returns the number of live obstacles.
func (f *Field) Len() int {
	return len(f.obstacles)
}

// Clear removes every obstacle.
func (f *Field) Clear() {
	f.obstacles = f.obstacles[:0]
}
