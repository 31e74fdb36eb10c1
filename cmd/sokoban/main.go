// sokoban is a terminal Sokoban: push every crate onto a goal.
//
// Usage:
//
//	sokoban list               - List available levels
//	sokoban play [level]       - Play a level
//	sokoban menu               - Pick levels interactively
//	sokoban serve              - Start SSH server for remote play
//	sokoban scores <level>     - Show best runs for a level
//	sokoban check <file|dir>   - Validate level files
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.sokoban/scores.db)
//	--levels <dir>       - Load levels from a directory instead of the built-in set
//	--config <path>      - Config file (default: search ~/.sokoban/configs, ./configs)
//	--difficulty <name>  - Step budget preset: easy, normal, hard, fixed
//	--max-steps <n>      - Force a step budget for every level (0 = use presets)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	// Global flags
	flagDBPath     string
	flagLevelsDir  string
	flagConfig     string
	flagDifficulty string
	flagMaxSteps   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push crates onto goals in your terminal",
	Long: `Sokoban is a terminal block-pushing puzzle. Walk the warehouse keeper
around the board and push every crate onto a goal square.

Available commands:
  list     - Show all available levels
  play     - Play a specific level directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View best runs for a level
  check    - Validate level files

Examples:
  sokoban list
  sokoban play 02
  sokoban menu --difficulty easy
  sokoban serve --ssh :2222
  sokoban check ./my-levels`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sokoban/scores.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagMaxSteps, "max-steps", 0, "Step budget for every level (0 = from level and preset)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads the config file and applies the --difficulty flag.
func loadConfig() (config.SokobanConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SokobanConfig{}, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.SokobanConfig{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// newLevelLoader picks the level source: --levels, then the config's
// levels.dir, then the built-in set.
func newLevelLoader(cfg config.SokobanConfig) *levels.Loader {
	dir := flagLevelsDir
	if dir == "" {
		dir = cfg.Levels.Dir
	}
	if dir == "" {
		return levels.NewBuiltinLoader()
	}
	return levels.NewLoader(dir)
}

// loadPlayConfig builds everything needed to start a level. Level files that
// fail to load are reported on stderr and skipped.
func loadPlayConfig() (tui.PlayConfig, config.SokobanConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return tui.PlayConfig{}, cfg, err
	}

	loader := newLevelLoader(cfg)
	lvls, err := loader.LoadAll()
	if err != nil {
		return tui.PlayConfig{}, cfg, err
	}
	for _, loadErr := range loader.Errors() {
		fmt.Fprintf(os.Stderr, "Warning: skipped %v\n", loadErr)
	}
	if len(lvls) == 0 {
		return tui.PlayConfig{}, cfg, fmt.Errorf("no levels found")
	}

	difficulty := config.NewDifficultyManager(cfg)
	difficulty.SetOverride(flagMaxSteps)

	return tui.PlayConfig{
		Levels:     lvls,
		Difficulty: difficulty,
		Theme:      sokoban.ThemeFromConfig(cfg.Theme),
		StartLevel: cfg.Levels.Start,
	}, cfg, nil
}

// resolveDBPath prefers an explicit --db over the config's storage path.
func resolveDBPath(cfg config.SokobanConfig) string {
	if rootCmd.PersistentFlags().Changed("db") || cfg.Storage.Path == "" {
		return flagDBPath
	}
	return cfg.Storage.Path
}
