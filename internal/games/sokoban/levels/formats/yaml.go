// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"path"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	MaxSteps int               `yaml:"max_steps,omitempty"`
	Layout   string            `yaml:"layout"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	MaxSteps int // 0 = no limit
	Layout   string
	Parsed   *core.Level
	Metadata map[string]string
}

// ParseYAML parses a YAML level file. The layout field holds the grid in the
// comma-separated text format.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("yaml level: missing id")
	}

	parsed, err := core.ParseLevel(yl.Layout)
	if err != nil {
		return Level{}, fmt.Errorf("level %s layout: %w", yl.ID, err)
	}

	maxSteps := yl.MaxSteps
	if maxSteps < 0 {
		maxSteps = 0
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:       yl.ID,
		Name:     name,
		MaxSteps: maxSteps,
		Layout:   strings.TrimSpace(yl.Layout),
		Parsed:   parsed,
		Metadata: yl.Metadata,
	}, nil
}

// ParseText parses a bare level grid. The ID and name come from the file name.
func ParseText(data []byte, filename string) (Level, error) {
	parsed, err := core.ParseLevel(string(data))
	if err != nil {
		return Level{}, err
	}

	id := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	return Level{
		ID:     id,
		Name:   id,
		Layout: parsed.Grid.String(),
		Parsed: parsed,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt", ".csv"}
}

// EncodeYAML renders a level back into the YAML file format.
func EncodeYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		MaxSteps: l.MaxSteps,
		Layout:   l.Layout + "\n",
		Metadata: l.Metadata,
	}
	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}
