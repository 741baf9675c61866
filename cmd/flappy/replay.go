package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagReplayWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify or watch a recorded run",
	Long: `Re-simulate a recorded run from its inputs and gap draws and check
that it ends exactly as recorded: same score, same death, same frame.

The ID may be any unique prefix of the run ID shown by 'flappy runs'.

Replay controls (--watch):
  Space      - Pause/resume
  +/-        - Faster/slower
  Q/Ctrl+C   - Quit

Examples:
  flappy replay 3f2a9c1e
  flappy replay 3f2a --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayWatch, "watch", false, "Play the run back in the terminal")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.FindRun(args[0])
	switch {
	case errors.Is(err, storage.ErrRunNotFound):
		fmt.Fprintf(os.Stderr, "Error: no run matches %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'flappy runs' to see recorded runs.")
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagReplayWatch {
		if err := watchRun(store, run); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching replay: %v\n", err)
			os.Exit(1)
		}
		return
	}

	frames, gaps, err := loadJournal(store, run.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s by %s, %s\n", run.ID, run.Player, run.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Recorded: score %d, %s after %d ticks (%d frames)\n", run.Score, run.Cause, run.Ticks, run.Frames)

	res, err := replay.Verify(run, frames, gaps)
	fmt.Printf("  Replayed: score %d, %s after %d ticks (%d frames)\n", res.Score, res.Cause, res.Ticks, res.Frames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verification failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Verified.")
}

// watchRun plays a run back in a full-screen replay viewer.
func watchRun(store *storage.Store, run storage.Run) error {
	frames, gaps, err := loadJournal(store, run.ID)
	if err != nil {
		return err
	}

	logger, closeLog := mustFileLogger("replay")
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return tui.WatchReplay(run, frames, gaps, width, height, logger)
}

func loadJournal(store *storage.Store, id string) ([]storage.Frame, []int, error) {
	frames, err := store.Frames(id)
	if err != nil {
		return nil, nil, fmt.Errorf("load frames: %w", err)
	}
	gaps, err := store.Gaps(id)
	if err != nil {
		return nil, nil, fmt.Errorf("load gaps: %w", err)
	}
	return frames, gaps, nil
}
