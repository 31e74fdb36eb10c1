package core

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for calls that break the engine's contract,
// such as a direction outside the four-way set.
var ErrInvalidArgument = errors.New("invalid argument")

// EntityID identifies the player or a block.
type EntityID int

const (
	NoEntity EntityID = -1
	PlayerID EntityID = 0
)

// Status is the game status. Cleared and StepLimitReached are terminal.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusCleared
	StatusStepLimitReached
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "InProgress"
	case StatusCleared:
		return "Cleared"
	case StatusStepLimitReached:
		return "StepLimitReached"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further move can be accepted.
func (s Status) IsTerminal() bool {
	return s == StatusCleared || s == StatusStepLimitReached
}

// MoveResult classifies what a move request did.
type MoveResult uint8

const (
	MoveRejected MoveResult = iota
	MovedPlayerOnly
	MovedPlayerAndPushedBlock
)

// String returns the string representation of a move result.
func (r MoveResult) String() string {
	switch r {
	case MoveRejected:
		return "Rejected"
	case MovedPlayerOnly:
		return "MovedPlayerOnly"
	case MovedPlayerAndPushedBlock:
		return "MovedPlayerAndPushedBlock"
	default:
		return "Unknown"
	}
}

// RejectReason explains a rejected move.
type RejectReason uint8

const (
	ReasonNone        RejectReason = iota
	ReasonOffGrid                  // target cell out of bounds or Empty
	ReasonPushBlocked              // block cannot advance
	ReasonGameOver                 // status is terminal
)

// String returns the string representation of a reject reason.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonOffGrid:
		return "OffGrid"
	case ReasonPushBlocked:
		return "PushBlocked"
	case ReasonGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// MoveOutcome reports the effect of one ApplyMove call.
type MoveOutcome struct {
	Result MoveResult
	Reason RejectReason // set only when Result is MoveRejected
	Dir    Dir
	Facing Dir
	Status Status

	From Coord // player before the move
	To   Coord // player after the move; equals From when rejected

	Block     EntityID // pushed block, NoEntity otherwise
	BlockFrom Coord
	BlockTo   Coord
}

// Accepted reports whether the player moved.
func (o MoveOutcome) Accepted() bool {
	return o.Result != MoveRejected
}

// State is a mutable play session over one parsed level.
// It is not safe for concurrent use; callers serialize moves per session.
type State struct {
	grid      *Grid
	positions []Coord    // indexed by EntityID
	occupants []EntityID // indexed like grid.Tiles

	blockCount int
	maxSteps   int
	steps      int

	cleared      bool
	limitReached bool
	facing       Dir
}

// NewState creates a session from a parsed level. maxSteps <= 0 disables
// the step limit. The level is not modified.
func NewState(level *Level, maxSteps int) *State {
	if maxSteps < 0 {
		maxSteps = 0
	}

	g := level.Grid.Clone()
	s := &State{
		grid:       g,
		positions:  make([]Coord, 1+len(level.Blocks)),
		occupants:  make([]EntityID, len(g.Tiles)),
		blockCount: len(level.Blocks),
		maxSteps:   maxSteps,
		facing:     DirDown,
	}
	for i := range s.occupants {
		s.occupants[i] = NoEntity
	}

	s.place(PlayerID, level.Player)
	for i, c := range level.Blocks {
		s.place(EntityID(i+1), c)
	}
	return s
}

func (s *State) place(id EntityID, c Coord) {
	s.positions[id] = c
	s.occupants[s.grid.index(c)] = id
}

// ApplyMove attempts to move the player one cell in direction d, pushing at
// most one block. Blocked moves are reported as MoveRejected, not as errors;
// an error is returned only for an invalid direction.
func (s *State) ApplyMove(d Dir) (MoveOutcome, error) {
	from := s.positions[PlayerID]
	out := MoveOutcome{
		Dir:    d,
		From:   from,
		To:     from,
		Block:  NoEntity,
		Facing: s.facing,
		Status: s.Status(),
	}

	if !d.Valid() {
		return out, fmt.Errorf("core: direction %v: %w", d, ErrInvalidArgument)
	}
	if s.Status().IsTerminal() {
		out.Reason = ReasonGameOver
		return out, nil
	}

	// Facing follows the attempt, whether or not it succeeds.
	s.facing = d
	out.Facing = d

	next := from.Step(d)
	if !s.grid.Passable(next) {
		out.Reason = ReasonOffGrid
		return out, nil
	}

	out.Result = MovedPlayerOnly
	if s.grid.Get(next).IsBlock() {
		beyond := next.Step(d)
		if !s.grid.Passable(beyond) || s.grid.Get(beyond).IsBlock() {
			out.Result = MoveRejected
			out.Reason = ReasonPushBlocked
			return out, nil
		}

		id := s.occupants[s.grid.index(next)]
		s.moveEntity(id, next, beyond)
		out.Result = MovedPlayerAndPushedBlock
		out.Block = id
		out.BlockFrom = next
		out.BlockTo = beyond
	}

	s.moveEntity(PlayerID, from, next)
	s.steps++
	s.evaluate()

	out.To = next
	out.Status = s.Status()
	return out, nil
}

// moveEntity relocates id from one cell to another, reverting the vacated
// tile to its underlay. The destination must be free and passable.
func (s *State) moveEntity(id EntityID, from, to Coord) {
	occ := s.grid.Get(from).Occupant()
	s.grid.Set(from, s.grid.Get(from).Vacated())
	s.grid.Set(to, s.grid.Get(to).With(occ))

	s.occupants[s.grid.index(from)] = NoEntity
	s.occupants[s.grid.index(to)] = id
	s.positions[id] = to
}

// evaluate updates the terminal flags after an accepted move. A level without
// blocks is never cleared.
func (s *State) evaluate() {
	if s.blockCount > 0 && s.grid.Count(TileBlockOnGoal) == s.blockCount {
		s.cleared = true
	}
	if s.maxSteps > 0 && s.steps >= s.maxSteps {
		s.limitReached = true
	}
}

// Status returns the current status. Cleared takes precedence when the last
// move both solved the level and used up the step budget.
func (s *State) Status() Status {
	switch {
	case s.cleared:
		return StatusCleared
	case s.limitReached:
		return StatusStepLimitReached
	default:
		return StatusInProgress
	}
}

// StepLimitHit reports whether the step budget has been used up, even when
// Status reports Cleared.
func (s *State) StepLimitHit() bool {
	return s.limitReached
}

// Steps returns the number of accepted moves.
func (s *State) Steps() int {
	return s.steps
}

// MaxSteps returns the step cap, 0 when unlimited.
func (s *State) MaxSteps() int {
	return s.maxSteps
}

// StepsLeft returns the remaining step budget, or -1 when unlimited.
func (s *State) StepsLeft() int {
	if s.maxSteps <= 0 {
		return -1
	}
	if left := s.maxSteps - s.steps; left > 0 {
		return left
	}
	return 0
}

// BlockCount returns the number of blocks, fixed at load.
func (s *State) BlockCount() int {
	return s.blockCount
}

// BlocksOnGoal returns the number of blocks currently on goal cells.
func (s *State) BlocksOnGoal() int {
	return s.grid.Count(TileBlockOnGoal)
}

// Facing returns the direction of the last move attempt.
func (s *State) Facing() Dir {
	return s.facing
}

// Width returns the grid width.
func (s *State) Width() int {
	return s.grid.W
}

// Height returns the grid height.
func (s *State) Height() int {
	return s.grid.H
}

// Grid returns a snapshot of the current grid.
func (s *State) Grid() *Grid {
	return s.grid.Clone()
}

// Tile returns the tile at c, TileEmpty when out of bounds.
func (s *State) Tile(c Coord) Tile {
	return s.grid.Get(c)
}

// EntityPosition returns the coordinate of the given entity.
func (s *State) EntityPosition(id EntityID) (Coord, bool) {
	if id < 0 || int(id) >= len(s.positions) {
		return Coord{}, false
	}
	return s.positions[id], true
}

// PlayerPosition returns the player's coordinate.
func (s *State) PlayerPosition() Coord {
	return s.positions[PlayerID]
}

// EntityAt returns the entity standing on c, or NoEntity.
func (s *State) EntityAt(c Coord) EntityID {
	if !s.grid.InBounds(c) {
		return NoEntity
	}
	return s.occupants[s.grid.index(c)]
}

// Blocks returns block coordinates ordered by EntityID.
func (s *State) Blocks() []Coord {
	blocks := make([]Coord, s.blockCount)
	copy(blocks, s.positions[1:])
	return blocks
}

// CheckInvariants verifies that the entity table, its inverse index and the
// grid's occupant tiles agree. It returns the first disagreement found.
func (s *State) CheckInvariants() error {
	if len(s.positions) != 1+s.blockCount {
		return fmt.Errorf("entity table has %d entries, want %d", len(s.positions), 1+s.blockCount)
	}
	if n := s.grid.CountOccupant(OccupantPlayer); n != 1 {
		return fmt.Errorf("grid has %d player tiles, want 1", n)
	}
	if n := s.grid.CountOccupant(OccupantBlock); n != s.blockCount {
		return fmt.Errorf("grid has %d block tiles, want %d", n, s.blockCount)
	}

	for i, c := range s.positions {
		id := EntityID(i)
		if !s.grid.InBounds(c) {
			return fmt.Errorf("entity %d at %v is out of bounds", id, c)
		}
		if got := s.occupants[s.grid.index(c)]; got != id {
			return fmt.Errorf("entity %d at %v, but index holds %d", id, c, got)
		}
		want := OccupantBlock
		if id == PlayerID {
			want = OccupantPlayer
		}
		if occ := s.grid.Get(c).Occupant(); occ != want {
			return fmt.Errorf("entity %d at %v stands on %v", id, c, s.grid.Get(c))
		}
	}

	for i, id := range s.occupants {
		hasOcc := s.grid.Tiles[i].Occupant() != OccupantNone
		if (id != NoEntity) != hasOcc {
			return fmt.Errorf("cell %d: index holds %d but tile is %v", i, id, s.grid.Tiles[i])
		}
		if id != NoEntity && s.grid.index(s.positions[id]) != i {
			return fmt.Errorf("cell %d: index holds %d, entity is at %v", i, id, s.positions[id])
		}
	}
	return nil
}
