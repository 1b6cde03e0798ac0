package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsBest  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <scene>",
	Short: "Show recorded runs for a scene",
	Long: `Display the most recent runs recorded for the specified scene,
or the highest-climbing ones with --best.

Examples:
  sandbox runs box
  sandbox runs platforms --best --limit 5`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBest, "best", false, "Order by max height instead of date")
}

func runRuns(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	// Runs of scenes that are no longer registered are still shown.
	title := sceneID
	for _, info := range registry.List() {
		if info.ID == sceneID {
			title = info.Title
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runs []storage.Run
	if flagRunsBest {
		runs, err = store.TopRuns(sceneID, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(sceneID, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sandbox play %s' to record the first run!\n", sceneID)
		return
	}

	fmt.Printf("  %-5s  %-8s  %-7s  %-5s  %-5s  %-7s  %-5s  %s\n",
		"#", "Time", "Frames", "Jumps", "Boxes", "Height", "FPS", "Date")
	fmt.Printf("  %-5s  %-8s  %-7s  %-5s  %-5s  %-7s  %-5s  %s\n",
		"-", "----", "------", "-----", "-----", "------", "---", "----")

	for _, r := range runs {
		fmt.Printf("  %-5d  %-8s  %-7d  %-5d  %-5d  %-7.2f  %-5.0f  %s\n",
			r.ID, formatSeconds(r), r.Frames, r.Jumps, r.BoxEntries, r.MaxHeight, r.AvgFPS,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	count, countErr := store.RunCount(sceneID)
	best, bestErr := store.BestRun(sceneID)
	if countErr == nil && bestErr == nil && best != nil {
		fmt.Printf("%d runs. Best height: %.2f (run #%d)\n", count, best.MaxHeight, best.ID)
	}
}

func formatSeconds(r storage.Run) string {
	return fmt.Sprintf("%.1fs", r.Duration.Seconds())
}
