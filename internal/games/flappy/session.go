// Package flappy implements a Flappy Bird-style game.
// The player keeps a falling avatar airborne and steers it through the gaps
// of a procession of obstacles. The package holds only simulation logic;
// audio, rendering, randomness and time are injected capabilities.
package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// State is the session's position in the game state machine.
type State int

const (
	StateStart    State = iota // Idle, waiting for the first input
	StateRunning               // Simulation active
	StateGameOver              // Frozen, waiting for restart input
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateRunning:
		return "Running"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// DeathCause records which rule ended the last game.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseObstacle
	CauseCeiling
	CauseFloor
)

// String returns a human-readable name for the cause.
func (c DeathCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseObstacle:
		return "obstacle"
	case CauseCeiling:
		return "ceiling"
	case CauseFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// ParseCause converts a cause name back into a DeathCause.
func ParseCause(s string) DeathCause {
	switch s {
	case "obstacle":
		return CauseObstacle
	case "ceiling":
		return CauseCeiling
	case "floor":
		return CauseFloor
	default:
		return CauseNone
	}
}

// Session owns one avatar and one obstacle field and runs the game rules.
type Session struct {
	cfg        config.FlappyConfig
	avatar     *Avatar
	field      *Field
	audio      AudioSink
	difficulty *config.DifficultyManager

	state State
	score int
	cause DeathCause
	ticks int // Running ticks in the current game
}

// Option configures a Session.
type Option func(*Session)

// WithAudio sets the sink receiving cues. Nil keeps the silent default.
func WithAudio(a AudioSink) Option {
	return func(s *Session) {
		if a != nil {
			s.audio = a
		}
	}
}

// WithGaps sets the gap source for newly spawned obstacles.
func WithGaps(g GapSource) Option {
	return func(s *Session) {
		if g != nil {
			s.field.gaps = g
		}
	}
}

// NewSession creates a session in the Start state.
// Without WithGaps, gaps come from a time-seeded RandGaps.
func NewSession(cfg config.FlappyConfig, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		field:      NewField(cfg, NewRandGaps(time.Now().UnixNano())),
		audio:      NopAudio{},
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset returns to the canonical Start state: avatar centered at rest,
// no obstacles, zero score. Calling it repeatedly has no further effect.
func (s *Session) Reset() {
	s.avatar = NewAvatar(s.cfg)
	s.field.Clear()
	s.field.SetSpeed(s.cfg.Physics.PipeSpeed)
	s.state = StateStart
	s.score = 0
	s.cause = CauseNone
	s.ticks = 0
}

// Handle routes one input event according to the current state.
// Quit is not handled here; the frame driver owns termination.
func (s *Session) Handle(e core.Event) {
	if e == core.EventQuit {
		return
	}

	switch s.state {
	case StateStart:
		s.state = StateRunning
		s.score = 0
	case StateRunning:
		if e == core.EventPrimary {
			s.avatar.Jump()
		}
	case StateGameOver:
		s.Reset()
	}
}

// Update advances the simulation by dt milliseconds. It does nothing
// unless the session is Running.
func (s *Session) Update(dt float64) {
	if s.state != StateRunning {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.ticks++

	s.avatar.Update(dt)

	s.field.SetSpeed(s.difficulty.Speed(s.cfg.Physics.PipeSpeed, s.score))
	s.field.MaybeSpawn()
	s.field.Advance(dt)

	if s.checkObstacles() {
		s.die(CauseObstacle)
		return
	}

	box := s.avatar.Rect()
	switch {
	case box.Y < 0:
		s.die(CauseCeiling)
	case box.Bottom() > s.cfg.Field.Height:
		s.die(CauseFloor)
	}
}

// checkObstacles scores passed obstacles in spawn order and reports the
// first collision, after which no further obstacles are examined.
func (s *Session) checkObstacles() bool {
	box := s.avatar.Rect()
	width := s.cfg.Obstacles.Width
	gapHeight := s.cfg.Obstacles.GapHeight

	collided := false
	s.field.ForEach(func(o *Obstacle) bool {
		column := o.Column(width, s.cfg.Field.Height)

		if box.OverlapsX(column) && !box.WithinY(o.GapTop(), o.GapTop()+gapHeight) {
			o.markPassed()
			collided = true
			return false
		}

		if box.X > column.Right() && o.markPassed() {
			s.score++
			s.audio.Play(CuePassedObstacle)
		}
		return true
	})
	return collided
}

func (s *Session) die(cause DeathCause) {
	s.state = StateGameOver
	s.cause = cause
	s.audio.Play(CueDied)
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Score returns the number of obstacles passed in the current game.
func (s *Session) Score() int {
	return s.score
}

// Cause returns why the last game ended, or CauseNone.
func (s *Session) Cause() DeathCause {
	return s.cause
}

// Ticks returns the number of simulated ticks in the current game.
func (s *Session) Ticks() int {
	return s.ticks
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.FlappyConfig {
	return s.cfg
}
