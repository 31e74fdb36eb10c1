package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedLevel matches every error returned by ParseLevel.
var ErrMalformedLevel = errors.New("malformed level")

// Malformed level codes.
const (
	CodeEmptyLevel      = "EMPTY_LEVEL"
	CodeRaggedRow       = "RAGGED_ROW"
	CodeBadToken        = "BAD_TOKEN"
	CodeUnknownTile     = "UNKNOWN_TILE"
	CodeNoPlayer        = "NO_PLAYER"
	CodeMultiplePlayers = "MULTIPLE_PLAYERS"
)

// MalformedLevelError describes why level text could not be loaded.
// Row and Column are 1-based; zero means the error is not tied to a cell.
type MalformedLevelError struct {
	Code    string
	Row     int
	Column  int
	Message string
}

func (e *MalformedLevelError) Error() string {
	switch {
	case e.Row > 0 && e.Column > 0:
		return fmt.Sprintf("[%s] row %d, column %d: %s", e.Code, e.Row, e.Column, e.Message)
	case e.Row > 0:
		return fmt.Sprintf("[%s] row %d: %s", e.Code, e.Row, e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
}

// Is makes errors.Is(err, ErrMalformedLevel) true.
func (e *MalformedLevelError) Is(target error) bool {
	return target == ErrMalformedLevel
}

// Level is the immutable result of parsing level text.
type Level struct {
	Grid   *Grid
	Player Coord
	Blocks []Coord // row-major scan order; index i is block EntityID i+1
}

// BlockCount returns the number of blocks in the level.
func (l *Level) BlockCount() int {
	return len(l.Blocks)
}

// GoalCount returns the number of goal cells, occupied or not.
func (l *Level) GoalCount() int {
	return l.Grid.CountUnderlay(UnderlayGoal)
}

// ParseLevel parses comma-separated tile codes, one grid row per line.
// Blank lines and a leading byte order mark are dropped; the first row fixes
// the width.
func ParseLevel(text string) (*Level, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
	if len(lines) == 0 {
		return nil, &MalformedLevelError{
			Code:    CodeEmptyLevel,
			Message: "level has no rows",
		}
	}

	width := len(strings.Split(lines[0], ","))
	height := len(lines)
	g := NewGrid(width, height)

	level := &Level{Grid: g}
	players := 0

	for y, line := range lines {
		tokens := strings.Split(line, ",")
		if len(tokens) != width {
			return nil, &MalformedLevelError{
				Code:    CodeRaggedRow,
				Row:     y + 1,
				Message: fmt.Sprintf("expected %d columns, got %d", width, len(tokens)),
			}
		}

		for x, tok := range tokens {
			code, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return nil, &MalformedLevelError{
					Code:    CodeBadToken,
					Row:     y + 1,
					Column:  x + 1,
					Message: fmt.Sprintf("token %q is not an integer", tok),
				}
			}
			tile, ok := TileFromCode(code)
			if !ok {
				return nil, &MalformedLevelError{
					Code:    CodeUnknownTile,
					Row:     y + 1,
					Column:  x + 1,
					Message: fmt.Sprintf("tile code %d is outside 0..%d", code, int(tileCount)-1),
				}
			}

			c := C(x, y)
			g.Set(c, tile)
			switch tile.Occupant() {
			case OccupantPlayer:
				players++
				level.Player = c
			case OccupantBlock:
				level.Blocks = append(level.Blocks, c)
			}
		}
	}

	switch {
	case players == 0:
		return nil, &MalformedLevelError{
			Code:    CodeNoPlayer,
			Message: "level has no player tile",
		}
	case players > 1:
		return nil, &MalformedLevelError{
			Code:    CodeMultiplePlayers,
			Message: fmt.Sprintf("level has %d player tiles, want 1", players),
		}
	}

	return level, nil
}

// MustParseLevel is like ParseLevel but panics on error.
// Intended for built-in levels and tests.
func MustParseLevel(text string) *Level {
	l, err := ParseLevel(text)
	if err != nil {
		panic(fmt.Sprintf("core: MustParseLevel: %v", err))
	}
	return l
}
