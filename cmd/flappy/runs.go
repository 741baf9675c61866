package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsPlayer string
	flagRunsPlain  bool
	flagRunsPrune  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `List the most recent runs from the run journal.

In a terminal the list opens as an interactive table; press Enter on a
run to watch its replay. With --plain, or when stdout is not a
terminal, the list is printed as text.

Examples:
  flappy runs
  flappy runs --player alice --limit 50
  flappy runs --plain
  flappy runs --prune 100                # Keep only the newest 100 runs`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunsPlayer, "player", "", "Only show runs by this player")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a plain text list")
	runsCmd.Flags().IntVar(&flagRunsPrune, "prune", -1, "Delete all but the newest N runs and exit")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsPrune >= 0 {
		n, err := store.PruneRuns(flagRunsPrune)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error pruning runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %d run(s).\n", n)
		return
	}

	var runs []storage.Run
	if flagRunsPlayer != "" {
		runs, err = store.PlayerRuns(flagRunsPlayer, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy' to record the first one!")
		return
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if flagRunsPlain || !interactive {
		printRuns(runs)
		return
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	run, ok, err := tui.BrowseRuns(runs, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		return
	}

	if err := watchRun(store, run); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching replay: %v\n", err)
		os.Exit(1)
	}
}

func printRuns(runs []storage.Run) {
	fmt.Printf("  %-8s  %-16s  %-12s  %-5s  %-8s  %s\n", "ID", "When", "Player", "Score", "Died", "Time")
	fmt.Printf("  %-8s  %-16s  %-12s  %-5s  %-8s  %s\n", "--", "----", "------", "-----", "----", "----")

	for _, r := range runs {
		fmt.Printf("  %-8s  %-16s  %-12s  %-5d  %-8s  %s\n",
			shortID(r.ID),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Player,
			r.Score,
			r.Cause,
			(time.Duration(r.DurationMs) * time.Millisecond).Round(100*time.Millisecond),
		)
	}
}
