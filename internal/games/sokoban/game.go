// Package sokoban provides the Sokoban puzzle game: it turns platform actions
// into engine moves and draws the board into a platform screen.
package sokoban

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

// GameID identifies the game in storage and logs.
const GameID = "sokoban"

const (
	cellW     = 2 // Terminal columns per board cell
	hudHeight = 3 // Lines above the board
)

// Options configures a Game.
type Options struct {
	Level    levels.Level
	MaxSteps int // Step budget for the engine, 0 = unlimited
	Theme    Theme
}

// Game plays a single Sokoban level.
type Game struct {
	level    levels.Level
	maxSteps int
	theme    Theme

	state    *core.State
	last     core.MoveOutcome
	hasLast  bool
	rejected int
	loadErr  error

	cfg      platformcore.RuntimeConfig
	tooSmall bool
}

// New creates a game for one level. Call Reset before the first Step.
func New(opts Options) *Game {
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme()
	}
	return &Game{
		level:    opts.Level,
		maxSteps: opts.MaxSteps,
		theme:    opts.Theme,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sokoban"
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Reset reloads the level from its layout text and starts a fresh session.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = cfg
	g.last = core.MoveOutcome{}
	g.hasLast = false
	g.rejected = 0
	g.loadErr = nil
	g.state = nil

	parsed := g.level.Parsed
	if g.level.Layout != "" {
		var err error
		parsed, err = core.ParseLevel(g.level.Layout)
		if err != nil {
			g.loadErr = fmt.Errorf("level %s: %w", g.level.ID, err)
			return
		}
	}
	if parsed == nil {
		g.loadErr = fmt.Errorf("level %s: no layout", g.level.ID)
		return
	}

	lvl := g.level
	lvl.Parsed = parsed
	g.state = lvl.NewState(g.maxSteps)
}

// Step applies one input frame. Each movement action becomes one move;
// Restart reloads the level.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionRestart) {
		g.Reset(g.cfg)
		return platformcore.StepResult{State: g.State(), Moved: true}
	}
	if g.state == nil {
		return platformcore.StepResult{State: g.State()}
	}

	moved := false
	for _, a := range platformcore.MoveActions {
		if !in.Has(a) {
			continue
		}
		out, err := g.state.ApplyMove(dirForAction(a))
		if err != nil {
			continue
		}
		g.last = out
		g.hasLast = true
		switch {
		case out.Accepted():
			moved = true
		case out.Reason != core.ReasonGameOver:
			g.rejected++
		}
	}

	return platformcore.StepResult{State: g.State(), Moved: moved}
}

func dirForAction(a platformcore.Action) core.Dir {
	switch a {
	case platformcore.ActionUp:
		return core.DirUp
	case platformcore.ActionRight:
		return core.DirRight
	case platformcore.ActionDown:
		return core.DirDown
	default:
		return core.DirLeft
	}
}

// State returns the platform view of the session.
func (g *Game) State() platformcore.GameState {
	if g.state == nil {
		return platformcore.GameState{MaxSteps: g.maxSteps, GameOver: g.loadErr != nil}
	}
	status := g.state.Status()
	return platformcore.GameState{
		Steps:    g.state.Steps(),
		MaxSteps: g.state.MaxSteps(),
		Won:      status == core.StatusCleared,
		GameOver: status.IsTerminal(),
	}
}

// Engine returns the underlying rules engine, or nil when the level failed to load.
func (g *Game) Engine() *core.State {
	return g.state
}

// LastOutcome returns the outcome of the most recent move since the last reset.
func (g *Game) LastOutcome() (core.MoveOutcome, bool) {
	return g.last, g.hasLast
}

// Rejected returns how many moves were blocked since the last reset. Key
// presses after the game ended are not counted.
func (g *Game) Rejected() int {
	return g.rejected
}

// Err returns the load error of the last Reset, if any.
func (g *Game) Err() error {
	return g.loadErr
}
