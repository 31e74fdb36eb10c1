package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level, or the configured start level
(the first level in the catalog when none is configured).

Controls:
  Arrows/WASD  - Move and push
  R/Enter      - Restart the level
  Esc/B        - Give up and quit
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options scale each level's step cap:
  easy   - No step limit
  normal - 1.5x the level's cap
  hard   - Exactly the level's cap
  fixed  - The level's cap, ignoring scaling

Examples:
  sokoban play
  sokoban play 03
  sokoban play 02 --difficulty hard
  sokoban play 04 --max-steps 200
  sokoban play 01 --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	play, cfg, err := loadPlayConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	levelID := play.StartLevel
	if len(args) == 1 {
		levelID = args[0]
	}
	if levelID == "" {
		levelID = play.Levels[0].ID
	}

	game, err := play.NewGame(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'sokoban list' to see available levels.")
		os.Exit(1)
	}

	// Open results storage
	store, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	opts := tui.GameOptions{
		Store:  store,
		Config: terminalConfig(),
		RunID:  storage.NewRunID(),
		Player: localPlayer(),
	}

	runErr := tui.Run(game, opts)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalConfig sizes the screen to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// localPlayer names the local player in saved results.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
