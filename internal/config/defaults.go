package config

import (
	_ "embed"
)

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultSokobanConfig returns the hard-coded configuration used when no
// file, not even the embedded one, can be read.
func DefaultSokobanConfig() SokobanConfig {
	return SokobanConfig{
		Rules: RulesConfig{
			DefaultMaxSteps: 0,
		},
		Levels: LevelsConfig{},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Scaling: ScalingConfig{
				Easy:   0,
				Normal: 1.5,
				Hard:   1.0,
			},
		},
		Theme: ThemeConfig{
			Wall:        "##",
			Floor:       " .",
			Goal:        "()",
			Block:       "[]",
			BlockOnGoal: "[]",
			Player: PlayerGlyphs{
				Up:    "/\\",
				Right: "@>",
				Down:  "\\/",
				Left:  "<@",
			},
			Colors: ThemeColors{
				Wall:        "gray",
				Floor:       "gray",
				Goal:        "bright_yellow",
				Block:       "orange",
				BlockOnGoal: "bright_green",
				Player:      "bright_cyan",
			},
		},
		Storage: StorageConfig{
			Path: "~/.sokoban/scores.db",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/sokoban_host_key",
			IdleTimeout: 1800,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSokobanYAML
}
