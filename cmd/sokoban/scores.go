package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresReset  bool
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best runs for a level",
	Long: `Display the fewest-step clears recorded for the specified level,
along with attempt statistics.

Examples:
  sokoban scores 01
  sokoban scores 03 --limit 5
  sokoban scores 02 --reset
  sokoban scores --recent          # Latest attempts across all levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete all recorded attempts for the level")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest attempts across all levels")
}

func runScores(_ *cobra.Command, args []string) {
	if flagScoresRecent {
		runRecent()
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: a level ID is required unless --recent is set")
		os.Exit(1)
	}
	levelID := args[0]

	// Resolve the level name; unknown IDs still work for levels that were removed
	title := levelID
	play, cfg, err := loadPlayConfig()
	if err == nil {
		if l, ok := play.Level(levelID); ok && l.Name != "" {
			title = fmt.Sprintf("%s (%s)", l.Name, l.ID)
		}
	}

	// Open results storage
	store, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresReset {
		if err := store.ClearResults(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all results for %s.\n", title)
		return
	}

	results, err := store.BestResults(levelID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sokoban play %s' to set the first record!\n", levelID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-12s  %s\n", "Rank", "Steps", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-12s  %s\n", "----", "-----", "------", "----")

	for i, r := range results {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-12s  %s\n", i+1, r.Steps, r.Player, dateStr)
	}

	// Show attempt statistics
	fmt.Println()
	if stats, err := store.LevelStats(levelID); err == nil {
		fmt.Printf("Attempts: %d  Cleared: %d  Best: %d  Average: %.1f\n",
			stats.Attempts, stats.Cleared, stats.BestSteps, stats.AvgSteps)
	}
}

// runRecent prints the latest attempts of every status across all levels.
func runRecent() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	results, err := store.RecentResults(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Attempts")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No attempts recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-10s  %-6s  %-12s  %s\n", "Level", "Status", "Steps", "Player", "Date")
	fmt.Printf("  %-8s  %-10s  %-6s  %-12s  %s\n", "-----", "------", "-----", "------", "----")
	for _, r := range results {
		fmt.Printf("  %-8s  %-10s  %-6d  %-12s  %s\n",
			r.LevelID, r.Status, r.Steps, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
