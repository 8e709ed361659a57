package game

// Checker is a piece in the game's arena. The board refers to it by ID.
type Checker struct {
	ID           int
	Row          int
	Col          int
	Side         Side
	IsQueen      bool
	IsActive     bool // selected, its destinations are marked on the board
	IsCutting    bool // in the middle of a capture chain
	PreviousCell Cell // cell occupied before the last step, NoCell if none
	Captured     bool // removed from the board, kept for undo
}

func (c *Checker) Cell() Cell {
	return Cell{Row: c.Row, Col: c.Col}
}

// forward is the row direction of a simple move.
func (c *Checker) forward() int {
	if c.Side == First {
		return -1
	}
	return 1
}

// backRow is the row on which the checker is promoted.
func (c *Checker) backRow(size int) int {
	if c.Side == First {
		return 0
	}
	return size - 1
}
