package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestDrawGroundAndScore(t *testing.T) {
	s, _ := newRunningSession(testConfig(), 0)
	screen := core.NewScreen(80, 24)

	Draw(screen, s.Snapshot())

	for x := 0; x < 80; x++ {
		if c := screen.GetCell(x, 23); c.Rune != GroundChar || c.Color != core.ColorGround {
			t.Fatalf("ground cell %d = %+v", x, c)
		}
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
}

func TestDrawAvatar(t *testing.T) {
	s, _ := newRunningSession(testConfig(), 0)
	screen := core.NewScreen(80, 24)

	Draw(screen, s.Snapshot())

	// World (320, 360, 20, 20) maps to columns 20-21, rows 11-12.
	if c := screen.GetCell(20, 11); c.Rune != AvatarBody || c.Color != core.ColorAvatar {
		t.Errorf("avatar body cell = %+v", c)
	}
	if c := screen.GetCell(21, 11); c.Rune != AvatarChar {
		t.Errorf("avatar head cell = %+v", c)
	}
}

func TestDrawObstacle(t *testing.T) {
	screen := core.NewScreen(80, 24)
	snap := Snapshot{
		Field:  core.NewRect(0, 0, 1280, 720),
		Avatar: core.NewRect(320, 360, 20, 20),
		State:  StateRunning,
		Obstacles: []ObstacleView{{
			Upper: core.NewRect(640, 0, 60, 100),
			Lower: core.NewRect(640, 280, 60, 440),
		}},
	}

	Draw(screen, snap)

	if c := screen.GetCell(41, 1); c.Rune != PipeChar || c.Color != core.ColorPipe {
		t.Errorf("upper pipe cell = %+v", c)
	}
	if c := screen.GetCell(41, 3); c.Rune != PipeCapTop {
		t.Errorf("upper cap cell = %+v", c)
	}
	if c := screen.GetCell(41, 8); c.Rune != PipeCapBottom {
		t.Errorf("lower cap cell = %+v", c)
	}
	if c := screen.GetCell(41, 6); c.Rune != ' ' {
		t.Errorf("gap cell = %+v", c)
	}
	if c := screen.GetCell(41, 23); c.Rune != GroundChar {
		t.Errorf("lower pipe overwrote the ground: %+v", c)
	}
}

func TestDrawMessages(t *testing.T) {
	s := NewSession(testConfig(), WithGaps(NewScriptedGaps()))
	screen := core.NewScreen(80, 24)

	Draw(screen, s.Snapshot())
	if !strings.Contains(screen.String(), "FLAPPY") {
		t.Error("start screen should show the title")
	}

	s.Handle(core.EventPrimary)
	s.Update(1000)
	Draw(screen, s.Snapshot())
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "hit the floor") {
		t.Errorf("game over screen missing message:\n%s", out)
	}
}

func TestDrawTinyScreens(t *testing.T) {
	s, _ := newRunningSession(testConfig(), 0)
	for _, size := range [][2]int{{0, 0}, {1, 1}, {3, 2}, {10, 3}} {
		Draw(core.NewScreen(size[0], size[1]), s.Snapshot())
	}
}

func TestScreenSinkKeepsLast(t *testing.T) {
	sink := NewScreenSink(core.NewScreen(40, 12))
	s := NewSession(testConfig(), WithGaps(NewScriptedGaps()))
	snap := s.Snapshot()

	sink.Render(snap)

	if sink.Last().State != StateStart {
		t.Errorf("Last().State = %v", sink.Last().State)
	}
	if !strings.Contains(sink.Screen().String(), "FLAPPY") {
		t.Error("sink should draw into its screen")
	}
}
