package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// ObstacleView is the read-only geometry of one obstacle.
type ObstacleView struct {
	Upper  core.Rect
	Lower  core.Rect
	Passed bool
}

// Snapshot captures everything a renderer needs for one frame.
type Snapshot struct {
	Field     core.Rect // Playfield bounds in world units
	Avatar    core.Rect
	Velocity  float64
	Obstacles []ObstacleView
	Score     int
	State     State
	Cause     DeathCause
	Ticks     int
}

// Snapshot returns a copy of the current game state.
func (s *Session) Snapshot() Snapshot {
	width := s.cfg.Obstacles.Width
	gapHeight := s.cfg.Obstacles.GapHeight
	fieldH := s.cfg.Field.Height

	views := make([]ObstacleView, 0, s.field.Len())
	s.field.ForEach(func(o *Obstacle) bool {
		views = append(views, ObstacleView{
			Upper:  o.Upper(width),
			Lower:  o.Lower(width, gapHeight, fieldH),
			Passed: o.Passed(),
		})
		return true
	})

	return Snapshot{
		Field:     core.NewRect(0, 0, s.cfg.Field.Width, fieldH),
		Avatar:    s.avatar.Rect(),
		Velocity:  s.avatar.Velocity(),
		Obstacles: views,
		Score:     s.score,
		State:     s.state,
		Cause:     s.cause,
		Ticks:     s.ticks,
	}
}
