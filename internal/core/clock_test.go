package core

import (
	"testing"
	"time"
)

func TestManualClockAdvance(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewManualClock(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now() = %v, expected %v", c.Now(), start)
	}

	c.Advance(16 * time.Millisecond)
	if got := c.Now().Sub(start); got != 16*time.Millisecond {
		t.Errorf("after Advance, elapsed = %v, expected 16ms", got)
	}

	c.Advance(-time.Second)
	if got := c.Now().Sub(start); got != 16*time.Millisecond {
		t.Errorf("negative Advance should be ignored, elapsed = %v", got)
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	var c Clock = SystemClock{}
	a := c.Now()
	b := c.Now()
	if b.Before(a) {
		t.Errorf("SystemClock went backwards: %v then %v", a, b)
	}
}
