package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the user and local config directories.
const ConfigFile = "sokoban.yaml"

// Load loads the Sokoban configuration.
// Search order: customPath -> ~/.sokoban/configs/sokoban.yaml -> ./configs/sokoban.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (SokobanConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SokobanConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return SokobanConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultSokobanYAML)
	if err != nil {
		return DefaultSokobanConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hard-coded defaults and validates the result.
func Parse(data []byte) (SokobanConfig, error) {
	cfg := DefaultSokobanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SokobanConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SokobanConfig{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise surface as confusing runtime behavior.
func (c SokobanConfig) Validate() error {
	if c.Rules.DefaultMaxSteps < 0 {
		return fmt.Errorf("rules.default_max_steps must be >= 0, got %d", c.Rules.DefaultMaxSteps)
	}
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		return fmt.Errorf("difficulty.preset: %w", err)
	}
	s := c.Difficulty.Scaling
	if s.Easy < 0 || s.Normal < 0 || s.Hard < 0 {
		return fmt.Errorf("difficulty.scaling factors must be >= 0")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sokoban", "configs", filename)
}

// ApplyPreset switches the config to a difficulty preset.
func ApplyPreset(cfg *SokobanConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
}
