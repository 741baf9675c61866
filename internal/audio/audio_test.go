package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// drain streams s to completion and returns the number of samples.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if v := buf[j][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func TestChimeIsFiniteAndBounded(t *testing.T) {
	g := NewChimeGenerator(sampleRate)
	n, peak := drain(t, g)

	if n != g.Len() {
		t.Errorf("streamed %d samples, expected %d", n, g.Len())
	}
	if peak <= 0 || peak > 1 {
		t.Errorf("peak amplitude %f outside (0, 1]", peak)
	}
	if g.Err() != nil {
		t.Errorf("unexpected error: %v", g.Err())
	}
}

func TestThudIsFiniteAndBounded(t *testing.T) {
	g := NewThudGenerator(sampleRate)
	n, peak := drain(t, g)

	if n != g.Len() {
		t.Errorf("streamed %d samples, expected %d", n, g.Len())
	}
	if peak <= 0 || peak > 1 {
		t.Errorf("peak amplitude %f outside (0, 1]", peak)
	}
}

func TestThudIsRepeatable(t *testing.T) {
	a := make([][2]float64, 256)
	b := make([][2]float64, 256)
	NewThudGenerator(sampleRate).Stream(a)
	NewThudGenerator(sampleRate).Stream(b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestStreamerPerCue(t *testing.T) {
	p := NewPlayer(Options{Volume: 1})

	if _, ok := p.Streamer(flappy.CuePassedObstacle).(*ChimeGenerator); !ok {
		t.Error("pass cue should use the chime without a WAV")
	}
	if _, ok := p.Streamer(flappy.CueDied).(*ThudGenerator); !ok {
		t.Error("death cue should use the thud")
	}
	if p.Streamer(flappy.Cue(99)) != nil {
		t.Error("unknown cue should have no streamer")
	}
}

func TestPlayBeforeInitIsSilent(t *testing.T) {
	p := NewPlayer(Options{Volume: 1})

	p.Play(flappy.CuePassedObstacle)
	p.Play(flappy.CueDied)
	p.Close()

	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers, expected none", p.mixer.Len())
	}
}

func TestMissingPassSoundFallsBack(t *testing.T) {
	p := NewPlayer(Options{Volume: 1, PassSound: filepath.Join(t.TempDir(), "missing.wav")})

	if p.pass != nil {
		t.Fatal("missing file should not load")
	}
	if _, ok := p.Streamer(flappy.CuePassedObstacle).(*ChimeGenerator); !ok {
		t.Error("expected synthesized fallback")
	}
}

func TestPassSoundFromWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pass.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	src := beep.Take(1000, NewChimeGenerator(sampleRate))
	if err := wav.Encode(f, src, format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	p := NewPlayer(Options{Volume: 1, PassSound: path})
	if p.pass == nil {
		t.Fatal("WAV should load")
	}

	n, _ := drain(t, p.Streamer(flappy.CuePassedObstacle))
	if n != 1000 {
		t.Errorf("streamed %d samples, expected 1000", n)
	}
}

func TestVolumeClamped(t *testing.T) {
	if p := NewPlayer(Options{Volume: 3}); p.volume != 1 {
		t.Errorf("volume = %v, expected 1", p.volume)
	}
	if p := NewPlayer(Options{Volume: -1}); p.volume != 0 {
		t.Errorf("volume = %v, expected 0", p.volume)
	}
}
