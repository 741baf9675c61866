package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimGames    int
	flagSimDT       float64
	flagSimMaxTicks int
	flagSimRecord   bool
	flagSimFlap     int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot games",
	Long: `Let the autopilot play games without a terminal UI and print a summary.

Each game runs with a fixed frame delta, so the same --seed always gives
the same results. Game i uses seed --seed + i. The autopilot flaps
whenever the bird sinks toward the bottom of the next gap; --flap-every
replaces it with a fixed rhythm.

Examples:
  flappy sim
  flappy sim --games 20 --seed 7
  flappy sim --difficulty hard --dt 33
  flappy sim --flap-every 40
  flappy sim --record                    # Save games to the run journal`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 5, "Number of games to play")
	simCmd.Flags().Float64Var(&flagSimDT, "dt", 16, "Frame delta in milliseconds")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 20000, "Stop a game still running after this many frames")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save finished games to the run journal")
	simCmd.Flags().IntVar(&flagSimFlap, "flap-every", 0, "Flap every N frames instead of using the autopilot")
}

// simResult is the outcome of one simulated game.
type simResult struct {
	Seed  int64
	Score int
	Ticks int
	Cause flappy.DeathCause
	State flappy.State
	RunID string
}

func runSim(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSimGames <= 0 || flagSimDT <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --games and --dt must be positive")
		os.Exit(1)
	}

	var saver replay.Saver
	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		saver = store
	}

	base := gapSeed()
	results := make([]simResult, 0, flagSimGames)
	for i := 0; i < flagSimGames; i++ {
		res, err := simulate(game, base+int64(i), saver, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error in game %d: %v\n", i+1, err)
			os.Exit(1)
		}
		results = append(results, res)
	}

	printSimResults(results)
}

// simulate plays one autopilot game with a fixed frame delta.
func simulate(game config.FlappyConfig, seed int64, saver replay.Saver, logger *log.Logger) (simResult, error) {
	var gaps flappy.GapSource = flappy.NewRandGaps(seed)
	var rec *replay.Recorder
	if saver != nil {
		rec = replay.NewRecorder("autopilot", game, saver, logger)
		gaps = rec.Gaps(gaps)
	}

	session := flappy.NewSession(game, flappy.WithGaps(gaps))
	loop := flappy.NewLoop(session, nil, nil)
	if rec != nil {
		loop.Observe(rec)
	}
	pilot := newPilot(game)

	start := time.Now()
	for i := 0; i < flagSimMaxTicks && session.State() != flappy.StateGameOver; i++ {
		if err := loop.Step(flagSimDT, pilot(i, session.Snapshot())); err != nil {
			return simResult{}, err
		}
	}

	res := simResult{
		Seed:  seed,
		Score: session.Score(),
		Ticks: session.Ticks(),
		Cause: session.Cause(),
		State: session.State(),
	}
	if rec != nil {
		if last, ok := rec.Last(); ok {
			res.RunID = last.ID
		}
	}

	logger.Debug("game finished", "seed", seed, "score", res.Score, "state", res.State, "elapsed", time.Since(start))
	return res, nil
}

// newPilot returns the input source for one game: the autopilot, or a
// fixed flap every --flap-every frames.
func newPilot(game config.FlappyConfig) func(frame int, snap flappy.Snapshot) []core.Event {
	if flagSimFlap > 0 {
		return func(frame int, _ flappy.Snapshot) []core.Event {
			if frame%flagSimFlap == 0 {
				return []core.Event{core.EventPrimary}
			}
			return nil
		}
	}
	ap := flappy.NewAutopilot(game)
	return func(_ int, snap flappy.Snapshot) []core.Event {
		return ap.Events(snap)
	}
}

func printSimResults(results []simResult) {
	fmt.Printf("  %-4s  %-20s  %-6s  %-7s  %-8s  %s\n", "Game", "Seed", "Score", "Ticks", "Result", "Run")
	fmt.Printf("  %-4s  %-20s  %-6s  %-7s  %-8s  %s\n", "----", "----", "-----", "-----", "------", "---")

	var total, best int
	for i, r := range results {
		outcome := r.Cause.String()
		if r.State != flappy.StateGameOver {
			outcome = "alive"
		}
		fmt.Printf("  %-4d  %-20d  %-6d  %-7d  %-8s  %s\n", i+1, r.Seed, r.Score, r.Ticks, outcome, shortID(r.RunID))

		total += r.Score
		best = max(best, r.Score)
	}

	fmt.Println()
	fmt.Printf("Best: %d  Average: %.1f\n", best, float64(total)/float64(len(results)))
}
