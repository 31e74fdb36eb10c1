// Package config provides YAML-based configuration loading and
// difficulty presets for the Sokoban game.
package config

import (
	"fmt"
	"strings"
)

// SokobanConfig contains all configuration for the game and its front ends.
type SokobanConfig struct {
	Rules      RulesConfig      `yaml:"rules"`
	Levels     LevelsConfig     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Theme      ThemeConfig      `yaml:"theme"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
}

// RulesConfig holds rule parameters that are not part of a level file.
type RulesConfig struct {
	// DefaultMaxSteps caps levels that do not declare max_steps. 0 = unlimited.
	DefaultMaxSteps int `yaml:"default_max_steps"`
}

// LevelsConfig selects where levels come from.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`   // Directory of level files; empty = built-in levels
	Start string `yaml:"start"` // Level ID to open first; empty = first by ID
}

// DifficultyConfig maps a preset onto step budgets.
type DifficultyConfig struct {
	Preset  DifficultyPreset `yaml:"preset"`
	Scaling ScalingConfig    `yaml:"scaling"`
}

// ScalingConfig is the factor applied to a level's step cap per preset.
// A factor of 0 removes the cap.
type ScalingConfig struct {
	Easy   float64 `yaml:"easy"`
	Normal float64 `yaml:"normal"`
	Hard   float64 `yaml:"hard"`
}

// ThemeConfig holds the two-character glyphs and color names used to draw a board.
type ThemeConfig struct {
	Wall        string       `yaml:"wall"`
	Floor       string       `yaml:"floor"`
	Goal        string       `yaml:"goal"`
	Block       string       `yaml:"block"`
	BlockOnGoal string       `yaml:"block_on_goal"`
	Player      PlayerGlyphs `yaml:"player"`
	Colors      ThemeColors  `yaml:"colors"`
}

// PlayerGlyphs holds one glyph per facing direction.
type PlayerGlyphs struct {
	Up    string `yaml:"up"`
	Right string `yaml:"right"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
}

// ThemeColors names the color of each board element.
type ThemeColors struct {
	Wall        string `yaml:"wall"`
	Floor       string `yaml:"floor"`
	Goal        string `yaml:"goal"`
	Block       string `yaml:"block"`
	BlockOnGoal string `yaml:"block_on_goal"`
	Player      string `yaml:"player"`
}

// StorageConfig configures the results database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the SSH front end.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleTimeout int    `yaml:"idle_timeout"` // Seconds
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted presets in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name, case-insensitively.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// IsFixedPreset returns true if the preset uses level caps exactly as authored.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ScaleFor returns the scaling factor for a preset. Fixed and unknown presets scale by 1.
func (s ScalingConfig) ScaleFor(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return s.Easy
	case DifficultyNormal:
		return s.Normal
	case DifficultyHard:
		return s.Hard
	default:
		return 1
	}
}
