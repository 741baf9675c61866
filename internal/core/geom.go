// Package core holds the types shared by the simulation and the terminal
// layer: world geometry, the cell screen, input events and clocks. It
// imports nothing outside the standard library.
package core

// Rect is an axis-aligned box. X and Y are the top-left corner; Right and
// Bottom are exclusive.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// OverlapsX reports whether the horizontal spans overlap. Spans that only
// touch do not overlap.
func (r Rect) OverlapsX(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right()
}

// WithinY reports whether r's vertical extent lies inside [top, bottom].
func (r Rect) WithinY(top, bottom int) bool {
	return r.Y >= top && r.Bottom() <= bottom
}
