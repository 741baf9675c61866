package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// statusDuration is how long a status message stays in the help bar.
const statusDuration = 2 * time.Second

// Options configures a game Model.
type Options struct {
	Game          config.FlappyConfig
	Runtime       core.RuntimeConfig
	Audio         flappy.AudioSink    // Nil plays nothing
	Gaps          flappy.GapSource    // Nil draws from a RandGaps seeded by Runtime.Seed
	Observer      flappy.TickObserver // Optional, e.g. the run recorder
	Clock         core.Clock          // Nil uses the system clock
	Logger        *log.Logger         // Nil uses the global logger
	ScreenshotDir string              // Empty disables screenshots
	Player        string              // Shown in the help bar and screenshot names
}

// Model is the Bubble Tea model that runs one game session.
type Model struct {
	loop     *flappy.Loop
	screen   *core.Screen
	keys     *KeyMapper
	help     help.Model
	logger   *log.Logger
	opts     Options
	pending  []core.Event
	status   string
	statusAt time.Time
	quitting bool
}

// NewModel creates a new Bubble Tea model for a game session.
func NewModel(opts Options) *Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	gaps := opts.Gaps
	if gaps == nil {
		gaps = flappy.NewRandGaps(opts.Runtime.Seed)
	}

	screen := core.NewScreen(opts.Runtime.ScreenW, playfieldHeight(opts.Runtime.ScreenH))
	session := flappy.NewSession(opts.Game, flappy.WithAudio(opts.Audio), flappy.WithGaps(gaps))
	loop := flappy.NewLoop(session, opts.Clock, flappy.NewScreenSink(screen))
	if opts.Observer != nil {
		loop.Observe(opts.Observer)
	}

	h := help.New()
	h.ShowAll = false

	return &Model{
		loop:   loop,
		screen: screen,
		keys:   NewKeyMapper(),
		help:   h,
		logger: opts.Logger,
		opts:   opts,
	}
}

// playfieldHeight leaves one row for the help bar.
func playfieldHeight(h int) int {
	return max(h-1, 0)
}

// Init starts the tick loop and draws the first frame.
func (m *Model) Init() tea.Cmd {
	flappy.Draw(m.screen, m.loop.Session().Snapshot())
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if e, ok := m.keys.MapMouse(msg); ok {
			m.pending = append(m.pending, e)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// World coordinates are independent of the terminal, so a resize
		// only changes the scale of the next frame.
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		flappy.Draw(m.screen, m.loop.Session().Snapshot())
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the key's event for the next tick. Quit is delivered
// to the loop at once so the game stops without waiting for a frame.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	e := m.keys.MapKey(msg)
	if e == core.EventQuit {
		return m, m.step([]core.Event{core.EventQuit})
	}
	m.pending = append(m.pending, e)
	return m, nil
}

// handleTick runs one frame with the input collected since the last one.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	events := m.pending
	m.pending = nil
	if cmd := m.step(events); cmd != nil {
		return m, cmd
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m *Model) step(events []core.Event) tea.Cmd {
	err := m.loop.Tick(events)
	switch {
	case errors.Is(err, flappy.ErrQuit):
		m.quitting = true
		m.logger.Debug("quit requested", "score", m.loop.Session().Score(), "state", m.loop.Session().State())
		return tea.Quit
	case err != nil:
		m.logger.Error("tick failed", "err", err)
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		m.setStatus("screenshots disabled")
		return
	}

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.opts.ScreenshotDir, "err", err)
		m.setStatus("screenshot failed")
		return
	}

	name := "flappy"
	if m.opts.Player != "" {
		name += "_" + m.opts.Player
	}
	filename := fmt.Sprintf("%s_%s.txt", name, time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		m.setStatus("screenshot failed")
		return
	}

	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("saved " + filename)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusAt = time.Now()
}

// Session returns the running game session.
func (m *Model) Session() *flappy.Session {
	return m.loop.Session()
}

// Screen returns the playfield buffer.
func (m *Model) Screen() *core.Screen {
	return m.screen
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	bar := helpStyle.Render(m.help.View(m.keys.Keys()))
	if m.status != "" && time.Since(m.statusAt) < statusDuration {
		bar += "  " + statusStyle.Render(m.status)
	}
	if m.opts.Player != "" {
		bar += helpStyle.Render("  @" + m.opts.Player)
	}

	return RenderScreen(m.screen) + "\n" + bar
}

// Run starts the Bubble Tea program for a local game session.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
