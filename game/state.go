package game

// Game owns the board, the checker arena and the undo history, and tracks whose
// turn it is. A Game is not safe for concurrent use; use Clone to hand an
// independent copy to another goroutine.
type Game struct {
	board     *Board
	checkers  []*Checker // arena, indexed by checker ID
	history   []Record
	layout    *Layout
	turn      Side
	chainOpen bool // the side to move is in the middle of a capture chain
	over      bool
	winner    Side
	active    int  // ID of the selected checker, -1 if none
	capturing bool // the selection marks capture landings
}

// NewGame builds a game from a layout. First moves first.
func NewGame(layout *Layout) (*Game, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	g := &Game{layout: layout}
	g.Restart()
	return g, nil
}

// Restart discards the board and history and sets the layout up again. A
// layout that leaves First without a move starts as a finished game.
func (g *Game) Restart() {
	size := g.layout.Size()
	g.board = NewBoard(size)
	g.checkers = nil
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			side := g.layout.Grid[row][col]
			if side == NoSide {
				continue
			}
			c := &Checker{
				ID:           len(g.checkers),
				Row:          row,
				Col:          col,
				Side:         side,
				PreviousCell: NoCell,
			}
			g.checkers = append(g.checkers, c)
			g.board.SetCell(row, col, Occupant(c.ID))
		}
	}
	g.history = nil
	g.turn = First
	g.chainOpen = false
	g.over = false
	g.winner = NoSide
	g.active = -1
	g.capturing = false
	g.CheckGameOver()
}

// Board returns the live board. Callers must treat it as read-only.
func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) Layout() *Layout {
	return g.layout
}

// ActiveSide returns the side to move.
func (g *Game) ActiveSide() Side {
	return g.turn
}

func (g *Game) IsGameOver() bool {
	return g.over
}

// Winner returns the winning side once the game is over, NoSide before.
func (g *Game) Winner() Side {
	return g.winner
}

// InChain reports whether the side to move must continue a capture chain.
func (g *Game) InChain() bool {
	return g.chainOpen
}

// HistoryLen returns the number of atomic transitions that can be undone.
func (g *Game) HistoryLen() int {
	return len(g.history)
}

// History returns a copy of the applied transitions, oldest first.
func (g *Game) History() []Record {
	records := make([]Record, len(g.history))
	copy(records, g.history)
	return records
}

// Checker returns the checker with the given ID, nil if there is none.
func (g *Game) Checker(id int) *Checker {
	if id < 0 || id >= len(g.checkers) {
		return nil
	}
	return g.checkers[id]
}

// CheckerAt returns the checker on the cell, nil if the cell holds none.
func (g *Game) CheckerAt(row, col int) *Checker {
	id, ok := g.board.CellAt(row, col).CheckerID()
	if !ok {
		return nil
	}
	return g.checkers[id]
}

// Checkers returns the side's checkers still on the board, in arena order.
func (g *Game) Checkers(side Side) []*Checker {
	var checkers []*Checker
	for _, c := range g.checkers {
		if c.Side == side && !c.Captured {
			checkers = append(checkers, c)
		}
	}
	return checkers
}

// Count returns the number of the side's checkers on the board.
func (g *Game) Count(side Side) int {
	n := 0
	for _, c := range g.checkers {
		if c.Side == side && !c.Captured {
			n++
		}
	}
	return n
}

// ActiveChecker returns the selected checker, nil if none is selected.
func (g *Game) ActiveChecker() *Checker {
	if g.active < 0 {
		return nil
	}
	return g.checkers[g.active]
}

// CheckGameOver ends the game if the side to move has no simple move and no
// capture. The opponent is recorded as the winner.
func (g *Game) CheckGameOver() bool {
	g.over = true
	g.winner = g.turn.Opponent()
	for _, c := range g.Checkers(g.turn) {
		if g.hasSimpleMove(c) || g.canCapture(c) {
			g.over = false
			g.winner = NoSide
			break
		}
	}
	return g.over
}

// Clone returns a deep copy that shares no mutable state with g.
func (g *Game) Clone() *Game {
	checkers := make([]*Checker, len(g.checkers))
	for i, c := range g.checkers {
		cp := *c
		checkers[i] = &cp
	}
	history := make([]Record, len(g.history))
	copy(history, g.history) // records are never mutated once pushed

	return &Game{
		board:     g.board.Clone(),
		checkers:  checkers,
		history:   history,
		layout:    g.layout,
		turn:      g.turn,
		chainOpen: g.chainOpen,
		over:      g.over,
		winner:    g.winner,
		active:    g.active,
		capturing: g.capturing,
	}
}
