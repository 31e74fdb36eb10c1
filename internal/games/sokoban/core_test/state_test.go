package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// newState parses text and builds a session, failing the test on error.
func newState(t *testing.T, text string, maxSteps int) *core.State {
	t.Helper()
	lvl, err := core.ParseLevel(text)
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	s := core.NewState(lvl, maxSteps)
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken after load: %v", err)
	}
	return s
}

// move applies d and fails the test on error or broken invariants.
func move(t *testing.T, s *core.State, d core.Dir) core.MoveOutcome {
	t.Helper()
	out, err := s.ApplyMove(d)
	if err != nil {
		t.Fatalf("ApplyMove(%v) failed: %v", d, err)
	}
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken after %v: %v", d, err)
	}
	return out
}

func TestScenarioPlainStep(t *testing.T) {
	s := newState(t, "1,1,1\n1,3,1\n1,1,1", 0)

	out := move(t, s, core.DirUp)

	if out.Result != core.MovedPlayerOnly {
		t.Errorf("expected MovedPlayerOnly, got %v", out.Result)
	}
	if pos := s.PlayerPosition(); pos != core.C(1, 0) {
		t.Errorf("expected player at (1,0), got %v", pos)
	}
	if s.Steps() != 1 {
		t.Errorf("expected 1 step, got %d", s.Steps())
	}
	if s.Status() != core.StatusInProgress {
		t.Errorf("expected InProgress, got %v", s.Status())
	}
	if s.Tile(core.C(1, 1)) != core.TileFloor {
		t.Errorf("vacated cell should be Floor, got %v", s.Tile(core.C(1, 1)))
	}
	if s.Tile(core.C(1, 0)) != core.TilePlayerOnFloor {
		t.Errorf("destination should be PlayerOnFloor, got %v", s.Tile(core.C(1, 0)))
	}
}

func TestScenarioPushOntoGoalClears(t *testing.T) {
	s := newState(t, "1,1,1,1\n1,3,4,2\n1,1,1,1", 0)

	out := move(t, s, core.DirRight)

	if out.Result != core.MovedPlayerAndPushedBlock {
		t.Fatalf("expected MovedPlayerAndPushedBlock, got %v", out.Result)
	}
	if out.Block != core.EntityID(1) || out.BlockFrom != core.C(2, 1) || out.BlockTo != core.C(3, 1) {
		t.Errorf("unexpected push details %+v", out)
	}
	if pos := s.PlayerPosition(); pos != core.C(2, 1) {
		t.Errorf("expected player at (2,1), got %v", pos)
	}
	if s.Tile(core.C(3, 1)) != core.TileBlockOnGoal {
		t.Errorf("expected BlockOnGoal at (3,1), got %v", s.Tile(core.C(3, 1)))
	}
	if s.BlockCount() != 1 {
		t.Errorf("expected blockCount 1, got %d", s.BlockCount())
	}
	if s.Status() != core.StatusCleared || out.Status != core.StatusCleared {
		t.Errorf("expected Cleared, got %v / %v", s.Status(), out.Status)
	}
	if s.Steps() != 1 {
		t.Errorf("a push counts as one step, got %d", s.Steps())
	}
}

func TestScenarioPushIntoEmptyRejected(t *testing.T) {
	s := newState(t, "1,1,1,1\n1,3,4,0\n1,1,1,1", 0)
	before := s.Grid()

	out := move(t, s, core.DirRight)

	if out.Result != core.MoveRejected || out.Reason != core.ReasonPushBlocked {
		t.Errorf("expected Rejected/PushBlocked, got %v/%v", out.Result, out.Reason)
	}
	if pos := s.PlayerPosition(); pos != core.C(1, 1) {
		t.Errorf("player should stay at (1,1), got %v", pos)
	}
	if pos, _ := s.EntityPosition(1); pos != core.C(2, 1) {
		t.Errorf("block should stay at (2,1), got %v", pos)
	}
	if !s.Grid().Equal(before) {
		t.Error("grid changed on rejected push")
	}
}

func TestScenarioStepLimit(t *testing.T) {
	s := newState(t, "1,1,1\n1,3,1\n1,1,1", 1)

	move(t, s, core.DirUp)

	if s.Status() != core.StatusStepLimitReached {
		t.Fatalf("expected StepLimitReached, got %v", s.Status())
	}
	if s.StepsLeft() != 0 {
		t.Errorf("expected 0 steps left, got %d", s.StepsLeft())
	}

	out := move(t, s, core.DirDown)
	if out.Result != core.MoveRejected || out.Reason != core.ReasonGameOver {
		t.Errorf("expected Rejected/GameOver after limit, got %v/%v", out.Result, out.Reason)
	}
	if s.Steps() != 1 {
		t.Errorf("steps should stay 1, got %d", s.Steps())
	}
}

func TestClearedTakesPrecedenceOverStepLimit(t *testing.T) {
	s := newState(t, "1,1,1,1\n1,3,4,2\n1,1,1,1", 1)

	move(t, s, core.DirRight)

	if s.Status() != core.StatusCleared {
		t.Errorf("expected Cleared, got %v", s.Status())
	}
	if !s.StepLimitHit() {
		t.Error("step limit should also be reported as hit")
	}
}

func TestMoveOffGridRejected(t *testing.T) {
	tests := []struct {
		name string
		text string
		dir  core.Dir
	}{
		{"left edge", "3,1", core.DirLeft},
		{"top edge", "3\n1", core.DirUp},
		{"empty tile", "0,3,1", core.DirLeft},
		{"empty below", "3,1\n0,1", core.DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newState(t, tc.text, 0)
			before := s.Grid()
			pos := s.PlayerPosition()

			out := move(t, s, tc.dir)

			if out.Result != core.MoveRejected || out.Reason != core.ReasonOffGrid {
				t.Errorf("expected Rejected/OffGrid, got %v/%v", out.Result, out.Reason)
			}
			if out.To != pos || s.PlayerPosition() != pos {
				t.Errorf("player moved to %v", s.PlayerPosition())
			}
			if s.Steps() != 0 {
				t.Errorf("steps changed to %d", s.Steps())
			}
			if !s.Grid().Equal(before) {
				t.Error("grid changed on rejected move")
			}
		})
	}
}

func TestPushBlockIntoBlockIsAtomic(t *testing.T) {
	s := newState(t, "3,4,4,1", 0)

	out := move(t, s, core.DirRight)

	if out.Result != core.MoveRejected {
		t.Fatalf("expected Rejected, got %v", out.Result)
	}
	if s.EntityAt(core.C(1, 0)) != core.EntityID(1) {
		t.Errorf("block 1 should remain at (1,0), index holds %d", s.EntityAt(core.C(1, 0)))
	}
	if s.EntityAt(core.C(2, 0)) != core.EntityID(2) {
		t.Errorf("block 2 should remain at (2,0), index holds %d", s.EntityAt(core.C(2, 0)))
	}
	if s.Tile(core.C(3, 0)) != core.TileFloor {
		t.Errorf("(3,0) should still be Floor, got %v", s.Tile(core.C(3, 0)))
	}
}

func TestPushBlockOffEdgeRejected(t *testing.T) {
	s := newState(t, "3,4", 0)

	out := move(t, s, core.DirRight)

	if out.Result != core.MoveRejected || out.Reason != core.ReasonPushBlocked {
		t.Errorf("expected Rejected/PushBlocked, got %v/%v", out.Result, out.Reason)
	}
}

func TestGoalUnderlayIsRestored(t *testing.T) {
	// Player starts on a goal, block starts on a goal.
	s := newState(t, "5,6,1,2", 0)

	move(t, s, core.DirRight)

	expected := []core.Tile{core.TileGoal, core.TilePlayerOnGoal, core.TileBlockOnFloor, core.TileGoal}
	for x, tile := range expected {
		if got := s.Tile(core.C(x, 0)); got != tile {
			t.Errorf("(%d,0): expected %v, got %v", x, tile, got)
		}
	}
	if s.BlocksOnGoal() != 0 {
		t.Errorf("expected 0 blocks on goal, got %d", s.BlocksOnGoal())
	}
	if s.Status() != core.StatusInProgress {
		t.Errorf("expected InProgress, got %v", s.Status())
	}

	move(t, s, core.DirRight)
	if s.Status() != core.StatusCleared {
		t.Errorf("expected Cleared after second push, got %v", s.Status())
	}
	if s.Steps() != 2 {
		t.Errorf("expected 2 steps, got %d", s.Steps())
	}
}

func TestFacingUpdatesOnRejectedMove(t *testing.T) {
	s := newState(t, "3,1", 0)

	if s.Facing() != core.DirDown {
		t.Fatalf("expected initial facing Down, got %v", s.Facing())
	}

	out := move(t, s, core.DirLeft)
	if out.Accepted() {
		t.Fatal("move should be rejected")
	}
	if s.Facing() != core.DirLeft || out.Facing != core.DirLeft {
		t.Errorf("facing should follow the attempt, got %v", s.Facing())
	}

	move(t, s, core.DirUp)
	if s.Facing() != core.DirUp {
		t.Errorf("expected facing Up, got %v", s.Facing())
	}
}

func TestFacingFrozenAfterClear(t *testing.T) {
	s := newState(t, "3,4,2,1", 0)

	move(t, s, core.DirRight)
	if s.Status() != core.StatusCleared {
		t.Fatalf("expected Cleared, got %v", s.Status())
	}

	out := move(t, s, core.DirLeft)
	if out.Reason != core.ReasonGameOver {
		t.Errorf("expected GameOver reason, got %v", out.Reason)
	}
	if s.Facing() != core.DirRight {
		t.Errorf("facing should not change after clear, got %v", s.Facing())
	}
}

func TestInvalidDirection(t *testing.T) {
	s := newState(t, "3,1", 0)

	out, err := s.ApplyMove(core.Dir(9))
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if out.Accepted() {
		t.Error("invalid direction must not be accepted")
	}
	if s.Facing() != core.DirDown || s.Steps() != 0 {
		t.Error("invalid direction must not change state")
	}
}

func TestNoBlocksNeverClears(t *testing.T) {
	s := newState(t, "3,1,2", 0)

	if s.Status() != core.StatusInProgress {
		t.Fatalf("expected InProgress at load, got %v", s.Status())
	}
	move(t, s, core.DirRight)
	move(t, s, core.DirRight)
	if s.Status() != core.StatusInProgress {
		t.Errorf("expected InProgress, got %v", s.Status())
	}
}

func TestNoBlocksStepLimit(t *testing.T) {
	s := newState(t, "1,1,1\n1,3,1\n1,1,1", 1)

	move(t, s, core.DirUp)
	if s.Status() != core.StatusStepLimitReached {
		t.Errorf("expected StepLimitReached, got %v", s.Status())
	}
}

func TestStateDoesNotMutateLevel(t *testing.T) {
	lvl := core.MustParseLevel("3,4,1,2")
	original := lvl.Grid.Clone()

	s := core.NewState(lvl, 0)
	move(t, s, core.DirRight)

	if !lvl.Grid.Equal(original) {
		t.Error("level grid was mutated by the session")
	}
	if lvl.Player != core.C(0, 0) {
		t.Error("level player position was mutated")
	}
}

func TestGridSnapshotIsCopy(t *testing.T) {
	s := newState(t, "3,1", 0)

	snap := s.Grid()
	snap.Set(core.C(1, 0), core.TileGoal)

	if s.Tile(core.C(1, 0)) != core.TileFloor {
		t.Error("writing to a snapshot changed the session")
	}
}

func TestEntityPositionBounds(t *testing.T) {
	s := newState(t, "3,4,2", 0)

	if _, ok := s.EntityPosition(core.EntityID(2)); ok {
		t.Error("EntityPosition(2) should not exist with one block")
	}
	if _, ok := s.EntityPosition(core.NoEntity); ok {
		t.Error("EntityPosition(NoEntity) should not exist")
	}
	if pos, ok := s.EntityPosition(core.PlayerID); !ok || pos != core.C(0, 0) {
		t.Errorf("EntityPosition(Player) = %v, %v", pos, ok)
	}
	if s.EntityAt(core.C(9, 9)) != core.NoEntity {
		t.Error("EntityAt out of bounds should be NoEntity")
	}
}
