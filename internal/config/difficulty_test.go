package config

import "testing"

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()

	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	ApplyPreset(&cfg, "")
	if cfg.Difficulty.Enabled {
		t.Error("empty preset should leave config untouched")
	}
}

func TestSpeedDisabledIsConstant(t *testing.T) {
	dm := NewDifficultyManager(DefaultFlappyConfig().Difficulty)

	for _, score := range []int{0, 10, 1000} {
		if got := dm.Speed(0.2, score); got != 0.2 {
			t.Errorf("Speed(0.2, %d) = %v, expected 0.2 with progression disabled", score, got)
		}
	}
}

func TestSpeedProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{5, 0.3},
		{10, 0.4},
		{100, 0.4},
	}

	for _, tc := range tests {
		got := dm.Speed(0.2, tc.score)
		if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Speed(0.2, %d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestLevelInitialOffset(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 0},
	})

	if got := dm.Level(0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	// MaxAt <= 0 is treated as 1
	if got := dm.Level(1); got != 1.0 {
		t.Errorf("Level(1) = %v, expected 1.0", got)
	}
}
