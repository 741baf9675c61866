package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It matches defaults/flappy.yaml and is used if the embedded file fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FieldConfig{
			Width:  1280,
			Height: 720,
		},
		Avatar: AvatarConfig{
			X:      320,
			Width:  20,
			Height: 20,
		},
		Physics: PhysicsConfig{
			Gravity:          0.005,
			JumpImpulse:      -0.8,
			TerminalVelocity: 0.4,
			PipeSpeed:        0.2,
		},
		Obstacles: ObstacleConfig{
			Width:     60,
			GapHeight: 180,
			Spacing:   400,
		},
		Loop: LoopConfig{
			MaxDeltaMs: 250,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
