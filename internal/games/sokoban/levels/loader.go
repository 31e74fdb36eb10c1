// Package levels provides level loading functionality for Sokoban.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrLevelNotFound is returned when no level has the requested ID.
var ErrLevelNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	MaxSteps int // 0 = no limit
	Layout   string
	Parsed   *core.Level
	Metadata map[string]string
	FilePath string
}

// NewState creates a play session for this level with the given step cap.
func (l *Level) NewState(maxSteps int) *core.State {
	return core.NewState(l.Parsed, maxSteps)
}

// Issues returns non-fatal validation issues for the level.
func (l *Level) Issues() []core.ValidationIssue {
	return core.Validate(l.Parsed)
}

// Stats returns summary statistics for the level.
func (l *Level) Stats() core.LevelStats {
	return core.ComputeLevelStats(l.Parsed)
}

// LoadError records a level file that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e LoadError) Unwrap() error {
	return e.Err
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS   fs.FS
	Root string // for messages only

	errs []LoadError
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// NewBuiltinLoader creates a loader over the levels compiled into the binary.
func NewBuiltinLoader() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// builtin is a literal embed directory; Sub cannot fail for it.
		panic(err)
	}
	return &Loader{FS: sub, Root: "builtin"}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Files that fail to
// load are skipped and reported by Errors.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	l.errs = nil
	seen := make(map[string]string)

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			l.errs = append(l.errs, LoadError{Path: p, Err: err})
			return nil
		}

		if first, dup := seen[level.ID]; dup {
			l.errs = append(l.errs, LoadError{
				Path: p,
				Err:  fmt.Errorf("duplicate level id %q (first in %s)", level.ID, first),
			})
			return nil
		}
		seen[level.ID] = p

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// Errors returns the files skipped by the last LoadAll.
func (l *Loader) Errors() []LoadError {
	return l.errs
}

// LoadFile loads a single level file, relative to the loader's file system.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	level, err := decode(data, p)
	if err != nil {
		return Level{}, err
	}
	level.FilePath = path.Join(l.Root, p)
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadPath loads a single level file from disk.
func LoadPath(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	level, err := decode(data, filepath.ToSlash(p))
	if err != nil {
		return Level{}, err
	}
	level.FilePath = p
	return level, nil
}

// decode routes to the correct parser and converts the result.
func decode(data []byte, p string) (Level, error) {
	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, p, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		MaxSteps: parsed.MaxSteps,
		Layout:   parsed.Layout,
		Parsed:   parsed.Parsed,
		Metadata: parsed.Metadata,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, p, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".txt", ".csv":
		return formats.ParseText(data, p)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// ToFormat converts a level back to its file-format representation.
func (l *Level) ToFormat() formats.Level {
	return formats.Level{
		ID:       l.ID,
		Name:     l.Name,
		MaxSteps: l.MaxSteps,
		Layout:   l.Layout,
		Parsed:   l.Parsed,
		Metadata: l.Metadata,
	}
}
