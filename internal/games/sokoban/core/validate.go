package core

import "fmt"

// Validation issue codes.
const (
	IssueNoBlocks      = "NO_BLOCKS"
	IssueFewerGoals    = "FEWER_GOALS"
	IssueAlreadySolved = "ALREADY_SOLVED"
)

// ValidationIssue describes a level that loads but cannot be played normally.
type ValidationIssue struct {
	Code    string
	Message string
}

func (e ValidationIssue) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate reports issues with a parsed level.
// Checks:
//   - Level has at least one block
//   - There are at least as many goals as blocks
//   - Not every block starts on a goal
func Validate(l *Level) []ValidationIssue {
	var issues []ValidationIssue

	blocks := l.BlockCount()
	if blocks == 0 {
		issues = append(issues, ValidationIssue{
			Code:    IssueNoBlocks,
			Message: "level has no blocks; it can never be cleared",
		})
		return issues
	}

	if goals := l.GoalCount(); goals < blocks {
		issues = append(issues, ValidationIssue{
			Code:    IssueFewerGoals,
			Message: fmt.Sprintf("%d goals < %d blocks; level cannot be cleared", goals, blocks),
		})
	}

	if l.Grid.Count(TileBlockOnGoal) == blocks {
		issues = append(issues, ValidationIssue{
			Code:    IssueAlreadySolved,
			Message: "every block starts on a goal",
		})
	}

	return issues
}

// LevelStats summarises a parsed level.
type LevelStats struct {
	Width        int
	Height       int
	Playable     int
	Blocks       int
	Goals        int
	BlocksOnGoal int
}

// ComputeLevelStats analyzes a level and returns statistics.
func ComputeLevelStats(l *Level) LevelStats {
	g := l.Grid
	return LevelStats{
		Width:        g.W,
		Height:       g.H,
		Playable:     g.W*g.H - g.Count(TileEmpty),
		Blocks:       l.BlockCount(),
		Goals:        l.GoalCount(),
		BlocksOnGoal: g.Count(TileBlockOnGoal),
	}
}
