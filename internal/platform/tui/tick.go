// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, the run browser and the
// SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// replayTickMsg advances a replay by one recorded frame.
type replayTickMsg struct{}

// replayTickCmd waits for a recorded delta before the next replay frame.
func replayTickCmd(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		delay = time.Millisecond
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return replayTickMsg{}
	})
}
