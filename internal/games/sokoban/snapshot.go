package sokoban

import "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"

// Snapshot captures the observable session state for tests, logs and replay checks.
type Snapshot struct {
	LevelID      string
	Steps        int
	MaxSteps     int
	Status       core.Status
	StepLimitHit bool
	Facing       core.Dir
	Player       core.Coord
	Blocks       int
	BlocksOnGoal int
	Rejected     int
	Board        string // Grid re-encoded in the level text format
}

// Snapshot returns the current session snapshot. It is the zero value with
// only LevelID set when the level failed to load.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{LevelID: g.level.ID, Rejected: g.rejected}
	if g.state == nil {
		return snap
	}

	snap.Steps = g.state.Steps()
	snap.MaxSteps = g.state.MaxSteps()
	snap.Status = g.state.Status()
	snap.StepLimitHit = g.state.StepLimitHit()
	snap.Facing = g.state.Facing()
	snap.Player = g.state.PlayerPosition()
	snap.Blocks = g.state.BlockCount()
	snap.BlocksOnGoal = g.state.BlocksOnGoal()
	snap.Board = g.state.Grid().String()
	return snap
}
