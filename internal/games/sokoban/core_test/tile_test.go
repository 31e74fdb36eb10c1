package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func TestTileCodesAreStable(t *testing.T) {
	tests := []struct {
		code int
		tile core.Tile
	}{
		{0, core.TileEmpty},
		{1, core.TileFloor},
		{2, core.TileGoal},
		{3, core.TilePlayerOnFloor},
		{4, core.TileBlockOnFloor},
		{5, core.TilePlayerOnGoal},
		{6, core.TileBlockOnGoal},
	}

	for _, tc := range tests {
		tile, ok := core.TileFromCode(tc.code)
		if !ok {
			t.Errorf("TileFromCode(%d): expected ok", tc.code)
			continue
		}
		if tile != tc.tile {
			t.Errorf("TileFromCode(%d) = %v, expected %v", tc.code, tile, tc.tile)
		}
		if tile.Code() != tc.code {
			t.Errorf("%v.Code() = %d, expected %d", tile, tile.Code(), tc.code)
		}
	}

	for _, code := range []int{-1, 7, 42} {
		if _, ok := core.TileFromCode(code); ok {
			t.Errorf("TileFromCode(%d): expected !ok", code)
		}
	}
}

func TestTileAxesRoundTrip(t *testing.T) {
	for code := 0; code <= 6; code++ {
		tile, _ := core.TileFromCode(code)
		if got := core.MakeTile(tile.Occupant(), tile.Underlay()); got != tile {
			t.Errorf("MakeTile(%v.Occupant(), %v.Underlay()) = %v", tile, tile, got)
		}
	}
}

func TestTileVacatedAndWith(t *testing.T) {
	tests := []struct {
		tile    core.Tile
		vacated core.Tile
		player  core.Tile
		block   core.Tile
	}{
		{core.TileFloor, core.TileFloor, core.TilePlayerOnFloor, core.TileBlockOnFloor},
		{core.TileGoal, core.TileGoal, core.TilePlayerOnGoal, core.TileBlockOnGoal},
		{core.TilePlayerOnFloor, core.TileFloor, core.TilePlayerOnFloor, core.TileBlockOnFloor},
		{core.TilePlayerOnGoal, core.TileGoal, core.TilePlayerOnGoal, core.TileBlockOnGoal},
		{core.TileBlockOnFloor, core.TileFloor, core.TilePlayerOnFloor, core.TileBlockOnFloor},
		{core.TileBlockOnGoal, core.TileGoal, core.TilePlayerOnGoal, core.TileBlockOnGoal},
		{core.TileEmpty, core.TileEmpty, core.TileEmpty, core.TileEmpty},
	}

	for _, tc := range tests {
		if got := tc.tile.Vacated(); got != tc.vacated {
			t.Errorf("%v.Vacated() = %v, expected %v", tc.tile, got, tc.vacated)
		}
		if got := tc.tile.With(core.OccupantPlayer); got != tc.player {
			t.Errorf("%v.With(Player) = %v, expected %v", tc.tile, got, tc.player)
		}
		if got := tc.tile.With(core.OccupantBlock); got != tc.block {
			t.Errorf("%v.With(Block) = %v, expected %v", tc.tile, got, tc.block)
		}
	}
}

func TestDirDelta(t *testing.T) {
	start := core.C(5, 5)
	tests := []struct {
		dir      core.Dir
		expected core.Coord
	}{
		{core.DirUp, core.C(5, 4)},
		{core.DirRight, core.C(6, 5)},
		{core.DirDown, core.C(5, 6)},
		{core.DirLeft, core.C(4, 5)},
	}

	for _, tc := range tests {
		if got := start.Step(tc.dir); got != tc.expected {
			t.Errorf("Step(%v) = %v, expected %v", tc.dir, got, tc.expected)
		}
	}

	if core.Dir(4).Valid() {
		t.Error("Dir(4) should not be valid")
	}
}
