package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start Sokoban in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After a level ends, you return to the menu to pick another.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Scoreboard
  Q/Esc        - Quit

Examples:
  sokoban menu
  sokoban menu --difficulty hard
  sokoban menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	play, cfg, err := loadPlayConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open results storage
	store, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	screen := terminalConfig()
	runID := storage.NewRunID()
	player := localPlayer()
	current := play.StartLevel

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(play.Levels, store, screen, current)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		screen = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(play.Levels, store, screen.ScreenW, screen.ScreenH, current)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.LevelID == "" {
			break
		}
		current = menuResult.LevelID

		game, err := play.NewGame(current)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		opts := tui.GameOptions{
			Store:  store,
			Config: screen,
			RunID:  runID,
			Player: player,
		}
		if err := tui.Run(game, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		printRunSummary(store, runID)
		store.Close()
	}
}

// printRunSummary reports the attempts recorded during this menu session.
func printRunSummary(store *storage.Store, runID string) {
	results, err := store.RunResults(runID)
	if err != nil || len(results) == 0 {
		return
	}

	cleared := 0
	for _, r := range results {
		if r.Status == storage.ResultCleared {
			cleared++
		}
	}
	fmt.Printf("This session: %d attempt(s), %d cleared\n", len(results), cleared)
	for _, r := range results {
		fmt.Printf("  %-8s  %-10s  %d steps\n", r.LevelID, r.Status, r.Steps)
	}
}
