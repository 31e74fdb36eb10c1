package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long: `Shows every level in the catalog with its step cap and the budget
the current difficulty preset gives it.`,
	Run: runList,
}

var flagListIDs bool

func init() {
	listCmd.Flags().BoolVar(&flagListIDs, "ids", false, "Print only level IDs, one per line")
}

func runList(_ *cobra.Command, _ []string) {
	if flagListIDs {
		runListIDs()
		return
	}

	play, _, err := loadPlayConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Available levels (difficulty: %s):\n", play.Difficulty.Preset())
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range play.Levels {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-6s  %-6s  %-7s  %s\n", maxIDLen, "ID", "Crates", "Cap", "Budget", "Name")
	fmt.Printf("  %-*s  %-6s  %-6s  %-7s  %s\n", maxIDLen, "--", "------", "---", "------", "----")

	// Print levels
	for _, l := range play.Levels {
		stats := l.Stats()
		fmt.Printf("  %-*s  %-6d  %-6s  %-7s  %s\n",
			maxIDLen, l.ID, stats.Blocks, stepsLabel(l.MaxSteps), stepsLabel(play.StepBudget(l)), l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'sokoban play <id>' to play a level.")
}

// stepsLabel formats a step cap, where 0 means unlimited.
func stepsLabel(n int) string {
	if n <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

// runListIDs prints bare level IDs for scripts and shell completion.
func runListIDs() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ids, err := newLevelLoader(cfg).ListIDs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}
