package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

// PlayConfig is everything needed to start a level: the catalog, the step
// budget policy and the board theme.
type PlayConfig struct {
	Levels     []levels.Level
	Difficulty *config.DifficultyManager
	Theme      sokoban.Theme
	StartLevel string // Preselected level ID
}

// Level looks up a level by ID.
func (p PlayConfig) Level(id string) (levels.Level, bool) {
	for _, l := range p.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return levels.Level{}, false
}

// StepBudget returns the engine step cap for a level.
func (p PlayConfig) StepBudget(l levels.Level) int {
	if p.Difficulty == nil {
		return l.MaxSteps
	}
	return p.Difficulty.StepBudget(l.MaxSteps)
}

// NewGame creates a game for the level with the given ID.
func (p PlayConfig) NewGame(id string) (*sokoban.Game, error) {
	l, ok := p.Level(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", levels.ErrLevelNotFound, id)
	}
	return sokoban.New(sokoban.Options{
		Level:    l,
		MaxSteps: p.StepBudget(l),
		Theme:    p.Theme,
	}), nil
}
