package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	chimeNoteDuration = 90 * time.Millisecond
	thudDuration      = 350 * time.Millisecond
)

// ChimeGenerator plays two short rising notes, used when an obstacle is cleared.
type ChimeGenerator struct {
	sr      beep.SampleRate
	notes   []float64
	noteLen int
	pos     int
}

// NewChimeGenerator creates a chime generator (B5 then E6).
func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{
		sr:      sr,
		notes:   []float64{987.77, 1318.51},
		noteLen: sr.N(chimeNoteDuration),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	total := g.noteLen * len(g.notes)
	for i := range samples {
		if g.pos >= total {
			return i, i > 0
		}

		note := g.pos / g.noteLen
		local := g.pos % g.noteLen
		t := float64(local) / float64(g.sr)

		// Fast attack, exponential decay per note
		attack := math.Min(float64(local)/float64(g.sr.N(3*time.Millisecond)), 1.0)
		env := attack * math.Exp(-t*18)

		freq := g.notes[note]
		sample := 0.25 * env * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// Len returns the total number of samples the chime produces.
func (g *ChimeGenerator) Len() int {
	return g.noteLen * len(g.notes)
}

// ThudGenerator plays a falling tone with a noise burst, used on death.
type ThudGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	seed  int64
}

// NewThudGenerator creates a thud generator. The noise is seeded so the
// sound is identical on every play.
func NewThudGenerator(sr beep.SampleRate) *ThudGenerator {
	return &ThudGenerator{
		sr:    sr,
		total: sr.N(thudDuration),
		seed:  1,
	}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}

		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.total)

		// Pitch slides from 220Hz down to 55Hz
		freq := 220 * math.Pow(0.25, progress)
		env := math.Exp(-t * 9)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		sample := env * (0.35*math.Sin(2*math.Pi*freq*t) + 0.1*noise*(1-progress))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}

// Len returns the total number of samples the thud produces.
func (g *ThudGenerator) Len() int {
	return g.total
}
