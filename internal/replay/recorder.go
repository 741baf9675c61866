// Package replay records finished games into the run journal and plays
// them back deterministically from their recorded inputs and gap draws.
package replay

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Saver persists a finished run. *storage.Store implements it.
type Saver interface {
	SaveRun(run storage.Run, frames []storage.Frame, gaps []int) error
}

// Recorder is a flappy.TickObserver that journals each game from its
// first Running tick to game over, then hands the run to a Saver.
// It is driven from the loop's goroutine and is not safe for concurrent use.
type Recorder struct {
	player string
	cfg    config.FlappyConfig
	saver  Saver
	logger *log.Logger
	clock  core.Clock

	frames []storage.Frame
	gaps   []int
	last   storage.Run
	saved  int
}

// NewRecorder creates a recorder for one player. A nil logger uses the
// global logger.
func NewRecorder(player string, cfg config.FlappyConfig, saver Saver, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		player: player,
		cfg:    cfg,
		saver:  saver,
		logger: logger,
		clock:  core.SystemClock{},
	}
}

// Gaps wraps a gap source so every draw is journaled.
func (r *Recorder) Gaps(inner flappy.GapSource) flappy.GapSource {
	return &recordingGaps{inner: inner, r: r}
}

type recordingGaps struct {
	inner flappy.GapSource
	r     *Recorder
}

func (g *recordingGaps) NextGap(max int) int {
	v := g.inner.NextGap(max)
	g.r.gaps = append(g.r.gaps, v)
	return v
}

// ObserveTick journals one frame. Idle Start frames and GameOver frames
// are not part of any run.
func (r *Recorder) ObserveTick(t flappy.Tick) {
	events := t.Events
	switch {
	case t.Before == flappy.StateGameOver:
		if t.After != flappy.StateRunning {
			r.reset()
			return
		}
		// Restarted and started in one frame. Runs replay from Start, so
		// the restarting event is not part of the new run.
		events = afterRestart(events)
	case t.Before == flappy.StateStart && t.After == flappy.StateStart:
		return
	}

	r.frames = append(r.frames, storage.Frame{DT: t.DT, Events: core.EncodeEvents(events)})

	if t.After == flappy.StateGameOver {
		r.finish(t)
	}
}

func (r *Recorder) finish(t flappy.Tick) {
	defer r.reset()

	var duration float64
	for _, f := range r.frames {
		duration += f.DT
	}

	cfgYAML, err := config.Encode(r.cfg)
	if err != nil {
		r.logger.Error("cannot snapshot config, run not saved", "err", err)
		return
	}

	run := storage.Run{
		ID:         uuid.NewString(),
		Player:     r.player,
		Score:      t.Score,
		Ticks:      t.Ticks,
		Frames:     len(r.frames),
		Cause:      t.Cause.String(),
		DurationMs: int64(duration),
		Config:     string(cfgYAML),
		CreatedAt:  r.clock.Now(),
	}

	if r.saver == nil {
		r.last = run
		return
	}
	if err := r.saver.SaveRun(run, r.frames, r.gaps); err != nil {
		r.logger.Error("cannot save run", "id", run.ID, "err", err)
		return
	}

	r.last = run
	r.saved++
	r.logger.Info("run saved", "id", run.ID, "player", run.Player, "score", run.Score, "cause", run.Cause)
}

// afterRestart drops the event that reset a finished game.
func afterRestart(events []core.Event) []core.Event {
	for i, e := range events {
		if e != core.EventQuit {
			return events[i+1:]
		}
	}
	return nil
}

func (r *Recorder) reset() {
	r.frames = nil
	r.gaps = nil
}

// Last returns the most recently finished run.
func (r *Recorder) Last() (storage.Run, bool) {
	return r.last, r.last.ID != ""
}

// Saved returns how many runs were persisted.
func (r *Recorder) Saved() int {
	return r.saved
}
