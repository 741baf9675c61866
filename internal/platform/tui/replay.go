package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// ReplayKeyMap defines the key bindings while watching a replay.
type ReplayKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "left"),
			key.WithHelp("-", "slower"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Replay speed bounds
const (
	minSpeed = 0.25
	maxSpeed = 8.0
)

// ReplayModel plays a recorded run back at its recorded pace.
type ReplayModel struct {
	run      storage.Run
	playback *replay.Playback
	screen   *core.Screen
	keys     ReplayKeyMap
	help     help.Model
	logger   *log.Logger
	speed    float64
	paused   bool
	finished bool
	err      error
	quitting bool
}

// NewReplayModel prepares a stored run for viewing.
func NewReplayModel(run storage.Run, frames []storage.Frame, gaps []int, width, height int, logger *log.Logger) (*ReplayModel, error) {
	cfg, err := replay.RunConfig(run)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	screen := core.NewScreen(width, playfieldHeight(height))
	return &ReplayModel{
		run:      run,
		playback: replay.NewPlayback(cfg, frames, gaps, flappy.NewScreenSink(screen)),
		screen:   screen,
		keys:     DefaultReplayKeyMap(),
		help:     help.New(),
		logger:   logger,
		speed:    1,
	}, nil
}

// Init draws the first frame and schedules playback.
func (m *ReplayModel) Init() tea.Cmd {
	flappy.Draw(m.screen, m.playback.Snapshot())
	return m.next()
}

func (m *ReplayModel) next() tea.Cmd {
	if m.paused || m.finished {
		return nil
	}
	return replayTickCmd(time.Duration(float64(m.playback.NextDelay()) / m.speed))
}

// Update handles messages for the replay viewer.
func (m *ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, m.next()
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, minSpeed)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		flappy.Draw(m.screen, m.playback.Snapshot())
		return m, nil

	case replayTickMsg:
		if m.paused || m.finished {
			return m, nil
		}
		_, err := m.playback.Step()
		switch {
		case errors.Is(err, io.EOF) || m.playback.Done():
			m.finished = true
			m.logger.Debug("replay finished", "id", m.run.ID, "result", fmt.Sprintf("%+v", m.playback.Result()))
			return m, nil
		case err != nil:
			m.err = err
			m.finished = true
			m.logger.Error("replay failed", "id", m.run.ID, "err", err)
			return m, nil
		}
		return m, m.next()
	}

	return m, nil
}

// Err returns the playback error, if any.
func (m *ReplayModel) Err() error {
	return m.err
}

// View renders the current replay frame.
func (m *ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	done, total := m.playback.Progress()
	status := fmt.Sprintf("replay %s  %s  frame %d/%d  x%g", shortID(m.run.ID), m.run.Player, done, total, m.speed)
	switch {
	case m.err != nil:
		status += "  error: " + m.err.Error()
	case m.finished:
		status += "  finished"
	case m.paused:
		status += "  paused"
	}

	return RenderScreen(m.screen) + "\n" + statusStyle.Render(status) + "  " + helpStyle.Render(m.help.View(m.keys))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// WatchReplay plays a stored run in the terminal.
func WatchReplay(run storage.Run, frames []storage.Frame, gaps []int, width, height int, logger *log.Logger) error {
	model, err := NewReplayModel(run, frames, gaps, width, height, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
