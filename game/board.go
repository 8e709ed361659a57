package game

// CellState is the content of a single board cell: Empty, MoveMarker or a
// checker handle. The zero value is Empty.
type CellState int

const (
	Empty      CellState = 0
	MoveMarker CellState = -1 // transient destination marker of the active checker
)

// Occupant returns the cell state holding the checker with the given handle.
func Occupant(id int) CellState {
	return CellState(id + 1)
}

// CheckerID returns the handle stored in the cell, if any.
func (c CellState) CheckerID() (int, bool) {
	if c > 0 {
		return int(c) - 1, true
	}
	return -1, false
}

// IsChecker reports whether the cell holds a checker.
func (c CellState) IsChecker() bool {
	return c > 0
}

// Board is a square grid of cells. It performs no legality checks.
type Board struct {
	size  int
	cells []CellState
}

// NewBoard returns an empty size x size board.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]CellState, size*size),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) IsOnBoard(row, col int) bool {
	return 0 <= row && row < b.size && 0 <= col && col < b.size
}

// CellAt returns the content of the cell. Off-board coordinates read as Empty.
func (b *Board) CellAt(row, col int) CellState {
	if !b.IsOnBoard(row, col) {
		return Empty
	}
	return b.cells[row*b.size+col]
}

func (b *Board) SetCell(row, col int, value CellState) {
	b.cells[row*b.size+col] = value
}

// isFree reports whether a checker could land on the cell. Markers count as free.
func (b *Board) isFree(row, col int) bool {
	return b.IsOnBoard(row, col) && !b.CellAt(row, col).IsChecker()
}

// Markers lists the cells currently holding a MoveMarker, row by row.
func (b *Board) Markers() []Cell {
	var markers []Cell
	for i, c := range b.cells {
		if c == MoveMarker {
			markers = append(markers, Cell{Row: i / b.size, Col: i % b.size})
		}
	}
	return markers
}

func (b *Board) ClearMarkers() {
	for i, c := range b.cells {
		if c == MoveMarker {
			b.cells[i] = Empty
		}
	}
}

func (b *Board) Clone() *Board {
	cells := make([]CellState, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether both boards have the same size and cell contents.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
