package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default YAML failed to parse: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("embedded defaults differ from DefaultFlappyConfig():\n got  %+v\n want %+v", cfg, DefaultFlappyConfig())
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoadFlappyCustomPathPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flappy.yaml")
	data := []byte("obstacles:\n  gap_height: 200\nphysics:\n  pipe_speed: 0.3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}

	if cfg.Obstacles.GapHeight != 200 {
		t.Errorf("GapHeight = %d, expected 200", cfg.Obstacles.GapHeight)
	}
	if cfg.Physics.PipeSpeed != 0.3 {
		t.Errorf("PipeSpeed = %v, expected 0.3", cfg.Physics.PipeSpeed)
	}
	// Untouched values keep their defaults
	if cfg.Obstacles.Width != 60 || cfg.Field.Height != 720 || cfg.Physics.Gravity != 0.005 {
		t.Errorf("partial config should keep defaults, got %+v", cfg)
	}
}

func TestLoadFlappyMissingCustomPath(t *testing.T) {
	_, err := LoadFlappy(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadFlappy() should fail for a missing custom path")
	}
}

func TestLoadFlappyRejectsInvalidGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("field:\n  height: 100\nobstacles:\n  gap_height: 180\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := LoadFlappy(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadFlappyRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("field: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadFlappy(path); err == nil {
		t.Fatal("LoadFlappy() should fail on malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero field width", func(c *FlappyConfig) { c.Field.Width = 0 }},
		{"negative avatar height", func(c *FlappyConfig) { c.Avatar.Height = -1 }},
		{"avatar beyond right edge", func(c *FlappyConfig) { c.Avatar.X = 1275 }},
		{"gap taller than field", func(c *FlappyConfig) { c.Obstacles.GapHeight = 721 }},
		{"zero spacing", func(c *FlappyConfig) { c.Obstacles.Spacing = 0 }},
		{"zero pipe speed", func(c *FlappyConfig) { c.Physics.PipeSpeed = 0 }},
		{"zero terminal velocity", func(c *FlappyConfig) { c.Physics.TerminalVelocity = 0 }},
		{"negative max delta", func(c *FlappyConfig) { c.Loop.MaxDeltaMs = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestGapEqualToFieldIsValid(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Obstacles.GapHeight = cfg.Field.Height
	if err := cfg.Validate(); err != nil {
		t.Errorf("gap equal to field height should be valid: %v", err)
	}
}

func TestAvatarStartY(t *testing.T) {
	if y := DefaultFlappyConfig().AvatarStartY(); y != 360 {
		t.Errorf("AvatarStartY() = %v, expected 360", y)
	}
}

func TestEncodeDecodeKeepsValues(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Physics.Gravity = 0.0061
	cfg.Obstacles.Spacing = 333
	ApplyPreset(&cfg, DifficultyHard)

	data, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != cfg {
		t.Errorf("decoded %+v, expected %+v", got, cfg)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	if _, err := Decode([]byte("field:\n  width: -1\n")); !errors.Is(err, ErrInvalid) {
		t.Errorf("Decode error = %v, expected ErrInvalid", err)
	}
}
