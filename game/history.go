package game

// Record is one atomic transition: a simple move or one capture step. It keeps
// the values the transition overwrote so Undo can restore them exactly.
type Record struct {
	CheckerID int
	From      Cell
	To        Cell
	Captured  []int // IDs of the checkers removed by this step

	PreviousCell Cell
	WasQueen     bool
	WasCutting   bool
	Turn         Side
	ChainOpen    bool
	Over         bool
	Winner       Side
}

// IsCapture reports whether the step removed any checker.
func (r Record) IsCapture() bool {
	return len(r.Captured) > 0
}

// MakeMove commits the active checker to a marked cell. It reports whether a
// transition was applied; unmarked cells and missing selections are ignored.
func (g *Game) MakeMove(row, col int) bool {
	c := g.ActiveChecker()
	if c == nil || g.board.CellAt(row, col) != MoveMarker {
		return false
	}
	to := Cell{Row: row, Col: col}
	if g.capturing {
		g.applyCapture(c, to)
	} else {
		g.applyMove(c, to)
	}
	return true
}

// Play selects the move's checker and commits it to the move's destination,
// the same path a human takes. Illegal moves leave the game unchanged.
func (g *Game) Play(m Move) bool {
	g.ClearSelection()
	if !g.Activate(m.CheckerID) {
		return false
	}
	if !g.MakeMove(m.To.Row, m.To.Col) {
		g.ClearSelection()
		return false
	}
	return true
}

func (g *Game) newRecord(c *Checker, to Cell) Record {
	return Record{
		CheckerID:    c.ID,
		From:         c.Cell(),
		To:           to,
		PreviousCell: c.PreviousCell,
		WasQueen:     c.IsQueen,
		WasCutting:   c.IsCutting,
		Turn:         g.turn,
		ChainOpen:    g.chainOpen,
		Over:         g.over,
		Winner:       g.winner,
	}
}

func (g *Game) relocate(c *Checker, to Cell) {
	g.board.SetCell(c.Row, c.Col, Empty)
	c.PreviousCell = c.Cell()
	c.Row, c.Col = to.Row, to.Col
	g.board.SetCell(to.Row, to.Col, Occupant(c.ID))
}

func (g *Game) applyMove(c *Checker, to Cell) {
	g.history = append(g.history, g.newRecord(c, to))
	g.relocate(c, to)
	g.finalize(c)
}

// applyCapture jumps the checker to its landing cell and removes every checker
// between the landing cell and the origin. If the checker can capture again the
// chain stays open and the turn does not pass.
func (g *Game) applyCapture(c *Checker, to Cell) {
	rec := g.newRecord(c, to)
	from := c.Cell()
	dRow, dCol := sign(from.Row-to.Row), sign(from.Col-to.Col)
	for row, col := to.Row+dRow, to.Col+dCol; row != from.Row || col != from.Col; row, col = row+dRow, col+dCol {
		if id, ok := g.board.CellAt(row, col).CheckerID(); ok {
			g.checkers[id].Captured = true
			rec.Captured = append(rec.Captured, id)
		}
		g.board.SetCell(row, col, Empty)
	}
	g.history = append(g.history, rec)
	g.relocate(c, to)
	g.ClearSelection()

	c.IsCutting = true
	c.IsCutting = g.canCapture(c)
	g.chainOpen = c.IsCutting
	if c.IsCutting {
		return
	}
	g.finalize(c)
}

// finalize ends the turn: promotion, deselection, side change and the terminal
// check. A checker still in a chain is never promoted.
func (g *Game) finalize(c *Checker) {
	if !c.IsCutting && c.Row == c.backRow(g.board.Size()) {
		c.IsQueen = true
	}
	g.ClearSelection()
	g.turn = g.turn.Opponent()
	g.CheckGameOver()
}

// Undo reverts the last atomic transition. Calling it with an empty history is
// a programming error.
func (g *Game) Undo() {
	if len(g.history) == 0 {
		panic("undo with empty history")
	}
	rec := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.ClearSelection()
	c := g.checkers[rec.CheckerID]
	g.board.SetCell(c.Row, c.Col, Empty)
	for _, id := range rec.Captured {
		captured := g.checkers[id]
		captured.Captured = false
		g.board.SetCell(captured.Row, captured.Col, Occupant(id))
	}
	c.Row, c.Col = rec.From.Row, rec.From.Col
	g.board.SetCell(c.Row, c.Col, Occupant(c.ID))
	c.PreviousCell = rec.PreviousCell
	c.IsQueen = rec.WasQueen
	c.IsCutting = rec.WasCutting

	g.turn = rec.Turn
	g.chainOpen = rec.ChainOpen
	g.over = rec.Over
	g.winner = rec.Winner
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
