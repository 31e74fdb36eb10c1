package core

import (
	"strconv"
	"strings"
)

// Grid represents the board as a rectangular grid of tiles.
// Tiles are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int
	H     int
	Tiles []Tile
}

// NewGrid creates a grid of the given dimensions with every tile Empty.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Tiles: make([]Tile, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the tile at the given coordinate.
// Returns TileEmpty if out of bounds.
func (g *Grid) Get(c Coord) Tile {
	if !g.InBounds(c) {
		return TileEmpty
	}
	return g.Tiles[g.index(c)]
}

// Set sets the tile at the given coordinate. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Coord, t Tile) {
	if g.InBounds(c) {
		g.Tiles[g.index(c)] = t
	}
}

// Passable returns true if c is inside the grid and not Empty.
func (g *Grid) Passable(c Coord) bool {
	return g.InBounds(c) && g.Tiles[g.index(c)] != TileEmpty
}

// Count returns the number of tiles equal to t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, tile := range g.Tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// CountOccupant returns the number of tiles holding the given occupant.
func (g *Grid) CountOccupant(occ Occupant) int {
	n := 0
	for _, tile := range g.Tiles {
		if tile.Occupant() == occ {
			n++
		}
	}
	return n
}

// CountUnderlay returns the number of tiles over the given underlay.
func (g *Grid) CountUnderlay(under Underlay) int {
	n := 0
	for _, tile := range g.Tiles {
		if tile.Underlay() == under {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Tiles: tiles,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, t := range g.Tiles {
		if t != other.Tiles[i] {
			return false
		}
	}
	return true
}

// String encodes the grid in the level text format, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.W; x++ {
			if x > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(g.Get(C(x, y)).Code()))
		}
	}
	return sb.String()
}
