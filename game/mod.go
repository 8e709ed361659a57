package game

import (
	"errors"
	"fmt"
)

// Side identifies the owner of a checker and the player to move.
type Side int

const (
	NoSide Side = iota
	First       // moves toward row 0
	Second      // moves toward the last row
)

// Opponent returns the other side. NoSide has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case First:
		return Second
	case Second:
		return First
	default:
		return NoSide
	}
}

func (s Side) String() string {
	switch s {
	case First:
		return "First"
	case Second:
		return "Second"
	default:
		return "None"
	}
}

// Cell is a board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoCell marks an unset cell reference (e.g. a checker without a previous cell).
var NoCell = Cell{Row: -1, Col: -1}

// Move is a single selectable action: the checker and the cell it goes to.
// A full turn is one simple Move or a chain of capturing Moves by the same checker.
type Move struct {
	CheckerID int
	To        Cell
}

// diagonals are the four directions a checker can look along.
var diagonals = []Cell{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

var (
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidLayout    = errors.New("invalid board layout")
)

const (
	MinBoardSize = 4
	MaxBoardSize = 100
)

// ValidateBoardSize checks that size is even and within [MinBoardSize, MaxBoardSize].
func ValidateBoardSize(size int) error {
	if size < MinBoardSize || size > MaxBoardSize || size%2 != 0 {
		return fmt.Errorf("%w: want an even number between %d and %d, got %d", ErrInvalidBoardSize, MinBoardSize, MaxBoardSize, size)
	}
	return nil
}
