package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagMute     bool
	flagVolume   float64
	flagSound    string
	flagNoRecord bool
	flagPlayer   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up/W/K/Enter/Click  - Flap (also starts and restarts)
  Any other key             - Start or restart
  Ctrl+S                    - Save a screenshot
  Q/Ctrl+C                  - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, pipes keep their base speed

Finished games are recorded to the run journal (--db) unless
--no-record is given. Logs go to --log-file while the game runs.

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --mute
  flappy play --sound ./ding.wav --volume 0.5
  flappy play --seed 42 --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags binds the play flags to cmd. The root command shares them
// because it plays by default.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
	cmd.Flags().StringVar(&flagSound, "sound", "", "WAV file played when passing a pipe")
	cmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record finished games")
	cmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name stored with recorded runs")
}

func runPlay(_ *cobra.Command, _ []string) {
	game, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := mustFileLogger("play")
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.Options{
		Game:          game,
		Runtime:       runtime,
		Logger:        logger,
		ScreenshotDir: expandHome("~/.flappy/screenshots"),
		Player:        flagPlayer,
	}

	// A nil *audio.Player must not reach Options.Audio as a non-nil interface.
	if !flagMute && flagVolume > 0 {
		player := audio.NewPlayer(audio.Options{
			Volume:    flagVolume,
			PassSound: flagSound,
			Logger:    logger,
		})
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts.Audio = player
		}
	}

	var store *storage.Store
	if !flagNoRecord {
		store = openJournal(flagDBPath, logger)
	}

	var rec *replay.Recorder
	if store != nil {
		rec = replay.NewRecorder(flagPlayer, game, store, logger)
		opts.Observer = rec
		opts.Gaps = rec.Gaps(flappy.NewRandGaps(gapSeed()))
	}

	logger.Info("starting game", "player", flagPlayer, "size", fmt.Sprintf("%dx%d", width, height), "recording", store != nil)
	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	if rec != nil {
		if last, ok := rec.Last(); ok {
			fmt.Printf("Recorded %d run(s). Last: %s (score %d)\n", rec.Saved(), shortID(last.ID), last.Score)
			fmt.Printf("Watch it with: flappy replay %s --watch\n", shortID(last.ID))
		}
	}
}

// openJournal opens the run journal at path. On failure it logs a warning
// and returns nil; the game still runs without recording.
func openJournal(path string, logger *log.Logger) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("recording disabled", "db", path, "err", err)
		return nil
	}
	return store
}

// defaultPlayer returns the login name, or "local" when it is unknown.
func defaultPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return filepath.Base(u.Username)
	}
	return "local"
}

// shortID returns the first 8 characters of a run ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
