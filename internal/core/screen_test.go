package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)
	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < 4; y++ {
		if row := s.Row(y); row != strings.Repeat(" ", 12) {
			t.Errorf("row %d = %q, expected blank", y, row)
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("size = %dx%d, expected 0x0", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("String() = %q, expected empty", s.String())
	}
}

func TestScreenClipsOffscreenAccess(t *testing.T) {
	s := NewScreen(4, 2)

	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 2}} {
		s.SetColored(p[0], p[1], 'X', ColorPipe)
		if c := s.GetCell(p[0], p[1]); c != blank {
			t.Errorf("GetCell%v = %+v, expected blank", p, c)
		}
	}
	if s.String() != "    \n    " {
		t.Errorf("offscreen writes leaked: %q", s.String())
	}
}

func TestScreenFillRectClips(t *testing.T) {
	s := NewScreen(6, 4)
	// A pipe hanging off the left edge and the bottom
	s.FillRect(NewRect(-2, 1, 4, 10), '█', ColorPipe)

	expected := []string{
		"      ",
		"██    ",
		"██    ",
		"██    ",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("row %d = %q, expected %q", y, got, want)
		}
	}
	if c := s.GetCell(1, 2); c.Color != ColorPipe {
		t.Errorf("fill color = %v, expected ColorPipe", c.Color)
	}
}

func TestScreenFillRectEmpty(t *testing.T) {
	s := NewScreen(4, 4)
	s.FillRect(NewRect(1, 1, 0, 3), '#', ColorPipe)
	s.FillRect(NewRect(1, 1, 3, -1), '#', ColorPipe)
	if strings.ContainsRune(s.String(), '#') {
		t.Errorf("empty rects should draw nothing: %q", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColored(1, 0, "Score: 7", ColorScore)
	s.DrawText(0, 1, "│ok")

	if got := s.Row(0); got != " Score: " {
		t.Errorf("row 0 = %q, text should clip at the right edge", got)
	}
	if s.GetCell(1, 0).Color != ColorScore {
		t.Error("DrawTextColored should apply the role")
	}
	if got := s.Row(1); got != "│ok     " {
		t.Errorf("row 1 = %q, multibyte runes take one cell each", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "GO", ColorText)
	if got := s.Row(0); got != "    GO    " {
		t.Errorf("row = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawBox(NewRect(1, 1, 5, 3), ColorFrame)

	expected := []string{
		"       ",
		" ┌───┐ ",
		" │   │ ",
		" └───┘ ",
		"       ",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("row %d = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawHLine(-1, 0, 10, '═', ColorGround)
	if got := s.Row(0); got != "═════" {
		t.Errorf("row = %q", got)
	}
}

func TestScreenResizeBlanks(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if s.Row(0) != strings.Repeat(" ", 8) {
		t.Errorf("row 0 = %q, expected blank after resize", s.Row(0))
	}

	s.Resize(15, 8)
	s.SetColored(14, 7, 'Z', ColorDefault)
	if s.Get(14, 7) != 'Z' {
		t.Error("enlarged screen should accept writes in new cells")
	}
}

func TestScreenRowOffscreen(t *testing.T) {
	s := NewScreen(3, 1)
	if s.Row(-1) != "   " || s.Row(1) != "   " {
		t.Error("offscreen rows should be spaces")
	}
}
