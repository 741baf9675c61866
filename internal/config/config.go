// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains every tunable constant of the game.
// Geometry is expressed in world units, time in milliseconds.
type FlappyConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Avatar     AvatarConfig     `yaml:"avatar"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Loop       LoopConfig       `yaml:"loop"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield size.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AvatarConfig defines the avatar box. X never changes during play;
// the avatar starts vertically centered.
type AvatarConfig struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig defines motion constants, all per millisecond.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`           // Velocity gained per ms
	JumpImpulse      float64 `yaml:"jump_impulse"`      // Velocity set by a jump (negative = up)
	TerminalVelocity float64 `yaml:"terminal_velocity"` // Downward velocity cap
	PipeSpeed        float64 `yaml:"pipe_speed"`        // Leftward obstacle speed
}

// ObstacleConfig defines obstacle column geometry.
type ObstacleConfig struct {
	Width     int `yaml:"width"`
	GapHeight int `yaml:"gap_height"`
	Spacing   int `yaml:"spacing"` // Distance from the right boundary that triggers a spawn
}

// LoopConfig defines frame driver settings.
type LoopConfig struct {
	MaxDeltaMs float64 `yaml:"max_delta_ms"` // Clamp for long stalls; 0 disables
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to pipe speed factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset.
// An empty string keeps the config's own difficulty section.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the geometry admits a playable field.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("config: field must be positive, got %dx%d: %w", c.Field.Width, c.Field.Height, ErrInvalid)
	case c.Avatar.Width <= 0 || c.Avatar.Height <= 0:
		return fmt.Errorf("config: avatar must be positive, got %dx%d: %w", c.Avatar.Width, c.Avatar.Height, ErrInvalid)
	case c.Avatar.X < 0 || c.Avatar.X+c.Avatar.Width > c.Field.Width:
		return fmt.Errorf("config: avatar x=%d outside field: %w", c.Avatar.X, ErrInvalid)
	case c.Avatar.Height > c.Field.Height:
		return fmt.Errorf("config: avatar taller than field: %w", ErrInvalid)
	case c.Obstacles.Width <= 0:
		return fmt.Errorf("config: obstacle width must be positive: %w", ErrInvalid)
	case c.Obstacles.GapHeight <= 0 || c.Obstacles.GapHeight > c.Field.Height:
		return fmt.Errorf("config: gap height %d must be in (0, %d]: %w", c.Obstacles.GapHeight, c.Field.Height, ErrInvalid)
	case c.Obstacles.Spacing <= 0:
		return fmt.Errorf("config: spacing must be positive: %w", ErrInvalid)
	case c.Physics.PipeSpeed <= 0:
		return fmt.Errorf("config: pipe speed must be positive: %w", ErrInvalid)
	case c.Physics.Gravity < 0 || c.Physics.TerminalVelocity <= 0:
		return fmt.Errorf("config: gravity must be >= 0 and terminal velocity > 0: %w", ErrInvalid)
	case c.Loop.MaxDeltaMs < 0:
		return fmt.Errorf("config: max_delta_ms must be >= 0: %w", ErrInvalid)
	}
	return nil
}

// AvatarStartY returns the y of the avatar's top edge at (re)start.
func (c FlappyConfig) AvatarStartY() float64 {
	return float64(c.Field.Height / 2)
}
