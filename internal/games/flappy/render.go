package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	AvatarChar    = '●'
	AvatarBody    = '█'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// ScreenSink is a RenderSink that draws each snapshot into a Screen.
type ScreenSink struct {
	screen *core.Screen
	last   Snapshot
}

// NewScreenSink creates a sink drawing into dst.
func NewScreenSink(dst *core.Screen) *ScreenSink {
	return &ScreenSink{screen: dst}
}

// Render draws the snapshot.
func (s *ScreenSink) Render(snap Snapshot) {
	s.last = snap
	Draw(s.screen, snap)
}

// Last returns the most recently rendered snapshot.
func (s *ScreenSink) Last() Snapshot {
	return s.last
}

// Screen returns the target buffer.
func (s *ScreenSink) Screen() *core.Screen {
	return s.screen
}

// Draw renders a snapshot, scaling world units onto the screen.
// The bottom row is reserved for the ground line.
func Draw(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 2 || snap.Field.Empty() {
		return
	}

	v := viewport{
		cols:   dst.Width(),
		rows:   dst.Height() - 1,
		worldW: snap.Field.W,
		worldH: snap.Field.H,
	}

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorGround)

	for _, o := range snap.Obstacles {
		drawObstacle(dst, v, o)
	}
	drawAvatar(dst, v, snap)

	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorScore)

	switch snap.State {
	case StateStart:
		drawCenteredMessage(dst, "FLAPPY", "Press Space to start  |  Q to quit")
	case StateGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  hit the %s  |  any key to continue", snap.Score, snap.Cause))
	}
}

// viewport maps world coordinates onto screen cells.
type viewport struct {
	cols, rows     int
	worldW, worldH int
}

// rect converts a world rectangle to cells. Non-empty rectangles always
// cover at least one cell.
func (v viewport) rect(r core.Rect) core.Rect {
	if r.Empty() {
		return core.Rect{}
	}
	x0 := floorDiv(r.X*v.cols, v.worldW)
	x1 := ceilDiv(r.Right()*v.cols, v.worldW)
	y0 := floorDiv(r.Y*v.rows, v.worldH)
	y1 := ceilDiv(r.Bottom()*v.rows, v.worldH)
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

func drawObstacle(dst *core.Screen, v viewport, o ObstacleView) {
	upper := v.rect(o.Upper)
	lower := v.rect(o.Lower)

	if !upper.Empty() {
		dst.FillRect(upper, PipeChar, core.ColorPipe)
		dst.DrawHLine(upper.X, upper.Bottom()-1, upper.W, PipeCapTop, core.ColorPipeCap)
	}
	if !lower.Empty() {
		// Keep the pipe off the ground row
		lower.H = min(lower.H, v.rows-lower.Y)
		dst.FillRect(lower, PipeChar, core.ColorPipe)
		dst.DrawHLine(lower.X, lower.Y, lower.W, PipeCapBottom, core.ColorPipeCap)
	}
}

func drawAvatar(dst *core.Screen, v viewport, snap Snapshot) {
	box := v.rect(snap.Avatar)
	color := core.ColorAvatar
	if snap.State == StateGameOver {
		color = core.ColorAvatarDead
	}
	dst.FillRect(box, AvatarBody, color)
	dst.SetColored(box.Right()-1, box.Y, AvatarChar, color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len([]rune(title)), len([]rune(subtitle)))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorFrame)

	dst.DrawTextCentered(boxY+1, title, core.ColorScore)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorText)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
