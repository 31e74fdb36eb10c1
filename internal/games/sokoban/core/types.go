// Package core provides the rules engine for the Sokoban puzzle game.
// This package is UI-agnostic and deterministic.
package core

import "fmt"

// Dir represents a move direction.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists the four valid directions in declaration order.
var Dirs = [...]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return fmt.Sprintf("Dir(%d)", uint8(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Dir) Valid() bool {
	return d <= DirLeft
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y, matching row order in level text.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Occupant is what stands on a cell.
type Occupant uint8

const (
	OccupantNone Occupant = iota
	OccupantPlayer
	OccupantBlock
)

// Underlay is the static ground under a cell.
type Underlay uint8

const (
	UnderlayNone Underlay = iota // outside the playable area
	UnderlayFloor
	UnderlayGoal
)

// Tile classifies one grid cell. The numeric values are the level file codes
// and must not be reordered.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileFloor
	TileGoal
	TilePlayerOnFloor
	TileBlockOnFloor
	TilePlayerOnGoal
	TileBlockOnGoal

	tileCount
)

// tileAxes maps each tile to its (occupant, underlay) pair.
var tileAxes = [tileCount]struct {
	occ   Occupant
	under Underlay
}{
	TileEmpty:         {OccupantNone, UnderlayNone},
	TileFloor:         {OccupantNone, UnderlayFloor},
	TileGoal:          {OccupantNone, UnderlayGoal},
	TilePlayerOnFloor: {OccupantPlayer, UnderlayFloor},
	TileBlockOnFloor:  {OccupantBlock, UnderlayFloor},
	TilePlayerOnGoal:  {OccupantPlayer, UnderlayGoal},
	TileBlockOnGoal:   {OccupantBlock, UnderlayGoal},
}

// TileFromCode converts a level file code to a Tile.
func TileFromCode(code int) (Tile, bool) {
	if code < 0 || code >= int(tileCount) {
		return TileEmpty, false
	}
	return Tile(code), true
}

// MakeTile composes a tile from its two axes.
// Any occupant over UnderlayNone yields TileEmpty.
func MakeTile(occ Occupant, under Underlay) Tile {
	switch under {
	case UnderlayFloor:
		switch occ {
		case OccupantPlayer:
			return TilePlayerOnFloor
		case OccupantBlock:
			return TileBlockOnFloor
		default:
			return TileFloor
		}
	case UnderlayGoal:
		switch occ {
		case OccupantPlayer:
			return TilePlayerOnGoal
		case OccupantBlock:
			return TileBlockOnGoal
		default:
			return TileGoal
		}
	default:
		return TileEmpty
	}
}

// Valid reports whether t is a known tile.
func (t Tile) Valid() bool {
	return t < tileCount
}

// Occupant returns who stands on the tile.
func (t Tile) Occupant() Occupant {
	if !t.Valid() {
		return OccupantNone
	}
	return tileAxes[t].occ
}

// Underlay returns the ground under the tile.
func (t Tile) Underlay() Underlay {
	if !t.Valid() {
		return UnderlayNone
	}
	return tileAxes[t].under
}

// Vacated returns the tile left behind when the occupant walks off.
func (t Tile) Vacated() Tile {
	return MakeTile(OccupantNone, t.Underlay())
}

// With returns the tile with occ standing on this tile's underlay.
func (t Tile) With(occ Occupant) Tile {
	return MakeTile(occ, t.Underlay())
}

// IsPlayer reports whether the player stands on the tile.
func (t Tile) IsPlayer() bool {
	return t.Occupant() == OccupantPlayer
}

// IsBlock reports whether a block stands on the tile.
func (t Tile) IsBlock() bool {
	return t.Occupant() == OccupantBlock
}

// Code returns the level file code of the tile.
func (t Tile) Code() int {
	return int(t)
}

// String returns the string representation of a tile.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "Empty"
	case TileFloor:
		return "Floor"
	case TileGoal:
		return "Goal"
	case TilePlayerOnFloor:
		return "PlayerOnFloor"
	case TileBlockOnFloor:
		return "BlockOnFloor"
	case TilePlayerOnGoal:
		return "PlayerOnGoal"
	case TileBlockOnGoal:
		return "BlockOnGoal"
	default:
		return fmt.Sprintf("Tile(%d)", uint8(t))
	}
}
