// Package audio plays game cues through the system speaker using beep.
// Every failure degrades to silence; the game never blocks on audio.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

const sampleRate = beep.SampleRate(44100)

// Options configures a Player.
type Options struct {
	Volume    float64     // Linear gain in [0, 1]; 0 mutes
	PassSound string      // Optional WAV file for the pass cue
	Logger    *log.Logger // Defaults to the global logger
}

// Player is a flappy.AudioSink backed by the speaker.
// Until Init succeeds every Play is a no-op.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
	pass        *beep.Buffer
	logger      *log.Logger
}

// NewPlayer creates a player. A PassSound that cannot be loaded is logged
// and replaced by the synthesized chime.
func NewPlayer(opts Options) *Player {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	p := &Player{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(opts.Volume, 1)),
		logger: logger,
	}

	if opts.PassSound != "" {
		buf, err := loadWAV(opts.PassSound)
		if err != nil {
			logger.Warn("pass sound unavailable, using synthesized chime", "path", opts.PassSound, "err", err)
		} else {
			p.pass = buf
		}
	}
	return p
}

// Init opens the speaker. On error the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("audio initialized", "sample_rate", int(sampleRate))
	return nil
}

// Play queues the sound for a cue and returns immediately.
func (p *Player) Play(cue flappy.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.volume <= 0 {
		return
	}

	s := p.Streamer(cue)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(newVolume(s, p.volume))
	speaker.Unlock()
}

// Streamer returns a fresh streamer for a cue, or nil for unknown cues.
func (p *Player) Streamer(cue flappy.Cue) beep.Streamer {
	switch cue {
	case flappy.CuePassedObstacle:
		if p.pass != nil {
			return p.pass.Streamer(0, p.pass.Len())
		}
		return NewChimeGenerator(sampleRate)
	case flappy.CueDied:
		return NewThudGenerator(sampleRate)
	default:
		return nil
	}
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// loadWAV decodes a WAV file into memory at the player's sample rate.
func loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio: %s contains no samples", path)
	}
	return buf, nil
}

// newVolume wraps a streamer with a linear gain.
// math.Log2(0) is -Inf, so zero volume is expressed as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
