package flappy

import (
	"math/rand"
)

// Cue is a fire-and-forget audio signal emitted by the session.
type Cue int

const (
	CuePassedObstacle Cue = iota // Avatar cleared an obstacle
	CueDied                      // Avatar hit an obstacle, the ceiling or the floor
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CuePassedObstacle:
		return "PassedObstacle"
	case CueDied:
		return "Died"
	default:
		return "Unknown"
	}
}

// AudioSink receives cues. Implementations must not block the tick;
// playback failures are the sink's concern.
type AudioSink interface {
	Play(cue Cue)
}

// NopAudio discards every cue.
type NopAudio struct{}

// Play does nothing.
func (NopAudio) Play(Cue) {}

// RenderSink consumes one snapshot per tick, after the tick's update.
type RenderSink interface {
	Render(snap Snapshot)
}

// GapSource draws the top of an obstacle gap, uniformly in [0, max].
type GapSource interface {
	NextGap(max int) int
}

// RandGaps is a seeded pseudo-random GapSource.
type RandGaps struct {
	rng *rand.Rand
}

// NewRandGaps creates a gap source with the given seed.
func NewRandGaps(seed int64) *RandGaps {
	return &RandGaps{rng: rand.New(rand.NewSource(seed))}
}

// NextGap returns a uniform value in [0, max]; max <= 0 yields 0.
func (g *RandGaps) NextGap(max int) int {
	if max <= 0 {
		return 0
	}
	return g.rng.Intn(max + 1)
}

// ScriptedGaps replays a fixed sequence of gap tops.
// Values are clamped into [0, max]; once exhausted it returns 0.
type ScriptedGaps struct {
	values []int
	next   int
}

// NewScriptedGaps creates a gap source that yields values in order.
func NewScriptedGaps(values ...int) *ScriptedGaps {
	return &ScriptedGaps{values: values}
}

// NextGap returns the next scripted value.
func (g *ScriptedGaps) NextGap(max int) int {
	if g.next >= len(g.values) {
		g.next++
		return 0
	}
	v := g.values[g.next]
	g.next++
	if v < 0 {
		return 0
	}
	if max < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Drawn returns how many gaps have been requested so far.
func (g *ScriptedGaps) Drawn() int {
	return g.next
}

// Exhausted reports whether more gaps were requested than scripted.
func (g *ScriptedGaps) Exhausted() bool {
	return g.next > len(g.values)
}
