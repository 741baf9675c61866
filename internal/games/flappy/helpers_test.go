package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// recordingAudio collects cues for assertions.
type recordingAudio struct {
	cues []Cue
}

func (r *recordingAudio) Play(c Cue) {
	r.cues = append(r.cues, c)
}

func (r *recordingAudio) count(c Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// recordingSink collects rendered snapshots.
type recordingSink struct {
	snaps []Snapshot
}

func (r *recordingSink) Render(s Snapshot) {
	r.snaps = append(r.snaps, s)
}

// recordingObserver collects completed ticks.
type recordingObserver struct {
	ticks []Tick
}

func (r *recordingObserver) ObserveTick(t Tick) {
	r.ticks = append(r.ticks, t)
}

func testConfig() config.FlappyConfig {
	return config.DefaultFlappyConfig()
}

// newRunningSession returns a session already in the Running state.
func newRunningSession(cfg config.FlappyConfig, gaps ...int) (*Session, *recordingAudio) {
	audio := &recordingAudio{}
	s := NewSession(cfg, WithAudio(audio), WithGaps(NewScriptedGaps(gaps...)))
	s.Handle(core.EventUnrecognized)
	return s, audio
}

// placeObstacle inserts an obstacle at an exact position.
func placeObstacle(s *Session, x float64, gapTop int) {
	s.field.obstacles = append(s.field.obstacles, newObstacle(x, gapTop))
}
