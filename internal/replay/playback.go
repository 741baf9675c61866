package replay

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// ErrMismatch is returned when a replay does not reproduce the recorded outcome.
var ErrMismatch = errors.New("replay: outcome mismatch")

// Result is the outcome of a replayed run.
type Result struct {
	Score  int
	Ticks  int
	Cause  flappy.DeathCause
	State  flappy.State
	Frames int
}

// Playback steps a recorded run through a fresh session one frame at a time.
type Playback struct {
	loop   *flappy.Loop
	gaps   *flappy.ScriptedGaps
	sink   flappy.RenderSink
	frames []storage.Frame
	next   int
	last   flappy.Snapshot
}

// NewPlayback prepares a run for playback. A nil sink skips rendering.
func NewPlayback(cfg config.FlappyConfig, frames []storage.Frame, gaps []int, sink flappy.RenderSink) *Playback {
	scripted := flappy.NewScriptedGaps(gaps...)
	session := flappy.NewSession(cfg, flappy.WithGaps(scripted))

	p := &Playback{
		gaps:   scripted,
		sink:   sink,
		frames: frames,
		last:   session.Snapshot(),
	}
	p.loop = flappy.NewLoop(session, core.SystemClock{}, p)
	return p
}

// Render captures the snapshot and forwards it to the sink.
func (p *Playback) Render(snap flappy.Snapshot) {
	p.last = snap
	if p.sink != nil {
		p.sink.Render(snap)
	}
}

// Step plays the next frame. It returns io.EOF once every frame is played.
func (p *Playback) Step() (flappy.Snapshot, error) {
	if p.Done() {
		return p.last, io.EOF
	}

	f := p.frames[p.next]
	events, err := core.DecodeEvents(f.Events)
	if err != nil {
		return p.last, fmt.Errorf("replay: frame %d: %w", p.next, err)
	}
	p.next++

	if err := p.loop.Step(f.DT, events); err != nil {
		return p.last, fmt.Errorf("replay: frame %d: %w", p.next-1, err)
	}
	return p.last, nil
}

// Done reports whether every frame has been played.
func (p *Playback) Done() bool {
	return p.next >= len(p.frames)
}

// NextDelay returns the recorded delta of the next frame, for real-time viewing.
func (p *Playback) NextDelay() time.Duration {
	if p.Done() {
		return 0
	}
	return time.Duration(p.frames[p.next].DT * float64(time.Millisecond))
}

// Progress returns the number of played frames and the total.
func (p *Playback) Progress() (int, int) {
	return p.next, len(p.frames)
}

// Snapshot returns the state after the most recent frame.
func (p *Playback) Snapshot() flappy.Snapshot {
	return p.last
}

// Result returns the session outcome so far.
func (p *Playback) Result() Result {
	s := p.loop.Session()
	return Result{
		Score:  s.Score(),
		Ticks:  s.Ticks(),
		Cause:  s.Cause(),
		State:  s.State(),
		Frames: p.next,
	}
}

// GapsExhausted reports whether the session asked for more gaps than were recorded.
func (p *Playback) GapsExhausted() bool {
	return p.gaps.Exhausted()
}

// Replay plays every frame and returns the outcome.
func Replay(cfg config.FlappyConfig, frames []storage.Frame, gaps []int) (Result, error) {
	p := NewPlayback(cfg, frames, gaps, nil)
	for !p.Done() {
		if _, err := p.Step(); err != nil {
			return p.Result(), err
		}
	}
	return p.Result(), nil
}

// Verify replays a stored run and checks it ends exactly as recorded
// without drawing more gaps than the journal holds.
func Verify(run storage.Run, frames []storage.Frame, gaps []int) (Result, error) {
	cfg, err := RunConfig(run)
	if err != nil {
		return Result{}, err
	}

	p := NewPlayback(cfg, frames, gaps, nil)
	for !p.Done() {
		if _, err := p.Step(); err != nil {
			return p.Result(), err
		}
	}
	res := p.Result()

	switch {
	case p.GapsExhausted():
		return res, fmt.Errorf("%w: run %s drew more gaps than the %d recorded", ErrMismatch, run.ID, len(gaps))
	case res.State != flappy.StateGameOver:
		return res, fmt.Errorf("%w: run %s ended in state %s", ErrMismatch, run.ID, res.State)
	case res.Score != run.Score:
		return res, fmt.Errorf("%w: run %s scored %d, recorded %d", ErrMismatch, run.ID, res.Score, run.Score)
	case res.Cause.String() != run.Cause:
		return res, fmt.Errorf("%w: run %s hit the %s, recorded %s", ErrMismatch, run.ID, res.Cause, run.Cause)
	case res.Ticks != run.Ticks:
		return res, fmt.Errorf("%w: run %s lasted %d ticks, recorded %d", ErrMismatch, run.ID, res.Ticks, run.Ticks)
	}
	return res, nil
}

// RunConfig decodes the configuration snapshot stored with a run.
// Runs without a snapshot use the defaults.
func RunConfig(run storage.Run) (config.FlappyConfig, error) {
	if run.Config == "" {
		return config.DefaultFlappyConfig(), nil
	}
	cfg, err := config.Decode([]byte(run.Config))
	if err != nil {
		return cfg, fmt.Errorf("replay: run %s: %w", run.ID, err)
	}
	return cfg, nil
}
