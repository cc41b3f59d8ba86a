package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Show recorded runs",
	Long: `Display the most recent runs of a game, newest first.

Examples:
  platformer history
  platformer history --limit 50
  platformer history --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a scrollable table")
}

func runHistory(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'platformer list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, gameID, width, height)
	}

	runs, err := store.RecentRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Run History - %s\n\n", gameID)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'platformer play %s' or 'platformer sim %s' to record one.\n", gameID, gameID)
		return nil
	}

	fmt.Printf("  %-16s  %8s  %6s  %5s  %5s  %9s  %-10s  %s\n",
		"Date", "Frames", "Ride", "Jumps", "Flips", "Duration", "End", "Script")
	for _, r := range runs {
		fmt.Printf("  %-16s  %8d  %5.0f%%  %5d  %5d  %9s  %-10s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Frames,
			r.RideRatio()*100,
			r.Jumps,
			r.Flips,
			r.Duration.Round(100*time.Millisecond),
			r.EndReason,
			r.ScriptName,
		)
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best ride: %d frames  Avg ride: %.1f frames\n",
			stats.RunsCount, stats.BestRide, stats.AvgRide)
	}
	return nil
}
