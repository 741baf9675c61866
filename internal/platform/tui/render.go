package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// palette holds one lipgloss style per cell role, indexed by core.Color.
var palette = func() []lipgloss.Style {
	p := make([]lipgloss.Style, core.NumColors)
	for i := range p {
		p[i] = lipgloss.NewStyle()
	}
	p[core.ColorPipe] = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	p[core.ColorPipeCap] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	p[core.ColorAvatar] = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	p[core.ColorAvatarDead] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	p[core.ColorGround] = lipgloss.NewStyle().Foreground(lipgloss.Color("137"))
	p[core.ColorScore] = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	p[core.ColorText] = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	p[core.ColorFrame] = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return p
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string. Each row is
// split into runs of one role so every run is styled once.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()

	var out strings.Builder
	out.Grow(w*h*2 + h)

	var run strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := 0; x < w; {
			role := s.GetCell(x, y).Color
			run.Reset()
			for ; x < w; x++ {
				c := s.GetCell(x, y)
				if c.Color != role {
					break
				}
				run.WriteRune(c.Rune)
			}
			if role == core.ColorDefault {
				out.WriteString(run.String())
				continue
			}
			out.WriteString(styleFor(role).Render(run.String()))
		}
	}
	return out.String()
}
