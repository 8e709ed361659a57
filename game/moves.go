package game

// simpleDestinations returns the cells the checker can reach without capturing.
// A simple checker steps one cell forward; a queen slides along every diagonal
// until the first occupied cell.
func (g *Game) simpleDestinations(c *Checker) []Cell {
	var cells []Cell
	if !c.IsQueen {
		row := c.Row + c.forward()
		for _, col := range []int{c.Col - 1, c.Col + 1} {
			if g.board.isFree(row, col) {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
		return cells
	}

	for _, d := range diagonals {
		row, col := c.Row+d.Row, c.Col+d.Col
		for g.board.isFree(row, col) {
			cells = append(cells, Cell{Row: row, Col: col})
			row, col = row+d.Row, col+d.Col
		}
	}
	return cells
}

// captureDestinations returns the landing cells of every capture available to
// the checker.
func (g *Game) captureDestinations(c *Checker) []Cell {
	if c.IsQueen {
		return g.queenCaptures(c)
	}

	var cells []Cell
	for _, d := range diagonals {
		row, col := c.Row+d.Row, c.Col+d.Col
		landRow, landCol := row+d.Row, col+d.Col
		if g.isEnemyAt(c, row, col) && g.board.isFree(landRow, landCol) {
			cells = append(cells, Cell{Row: landRow, Col: landCol})
		}
	}
	return cells
}

// queenCaptures scans each ray up to the first checker. If it is an enemy with
// a free cell behind it, every free cell past it up to the next checker is a
// landing cell. Within a capture chain a ray stops at the queen's previous cell.
func (g *Game) queenCaptures(c *Checker) []Cell {
	var cells []Cell
	for _, d := range diagonals {
		row, col := c.Row+d.Row, c.Col+d.Col
		for g.board.IsOnBoard(row+d.Row, col+d.Col) {
			if c.IsCutting && c.PreviousCell == (Cell{Row: row, Col: col}) {
				break
			}
			if g.board.CellAt(row, col).IsChecker() {
				if g.isEnemyAt(c, row, col) {
					landRow, landCol := row+d.Row, col+d.Col
					for g.board.isFree(landRow, landCol) {
						cells = append(cells, Cell{Row: landRow, Col: landCol})
						landRow, landCol = landRow+d.Row, landCol+d.Col
					}
				}
				break
			}
			row, col = row+d.Row, col+d.Col
		}
	}
	return cells
}

func (g *Game) isEnemyAt(c *Checker, row, col int) bool {
	other := g.CheckerAt(row, col)
	return other != nil && other.Side != c.Side
}

func (g *Game) canCapture(c *Checker) bool {
	return len(g.captureDestinations(c)) > 0
}

func (g *Game) hasSimpleMove(c *Checker) bool {
	return len(g.simpleDestinations(c)) > 0
}

// MustCapture reports whether the side to move is bound by the forced-capture
// rule: it is mid-chain or at least one of its checkers can capture.
func (g *Game) MustCapture() bool {
	if g.chainOpen {
		return true
	}
	for _, c := range g.Checkers(g.turn) {
		if g.canCapture(c) {
			return true
		}
	}
	return false
}

// CapturingCheckers returns the checkers of the side to move that may capture.
// During a chain only the chain's checker qualifies.
func (g *Game) CapturingCheckers() []*Checker {
	var checkers []*Checker
	for _, c := range g.Checkers(g.turn) {
		if g.chainOpen {
			if c.IsCutting {
				return []*Checker{c}
			}
			continue
		}
		if g.canCapture(c) {
			checkers = append(checkers, c)
		}
	}
	return checkers
}

// MovableCheckers returns the checkers of the side to move with a simple move.
func (g *Game) MovableCheckers() []*Checker {
	var checkers []*Checker
	for _, c := range g.Checkers(g.turn) {
		if g.hasSimpleMove(c) {
			checkers = append(checkers, c)
		}
	}
	return checkers
}

// LegalMoves returns every action available to the side to move. When a
// capture is mandatory only capture steps are returned.
func (g *Game) LegalMoves() []Move {
	if g.over {
		return nil
	}
	var moves []Move
	if g.MustCapture() {
		for _, c := range g.CapturingCheckers() {
			for _, to := range g.captureDestinations(c) {
				moves = append(moves, Move{CheckerID: c.ID, To: to})
			}
		}
		return moves
	}
	for _, c := range g.MovableCheckers() {
		for _, to := range g.simpleDestinations(c) {
			moves = append(moves, Move{CheckerID: c.ID, To: to})
		}
	}
	return moves
}

// Activate selects or deselects a checker of the side to move and marks its
// destinations on the board. Selecting a checker deselects the previous one.
// Requests that break the rules leave the game unchanged. It reports whether
// the checker ended up selected.
func (g *Game) Activate(id int) bool {
	c := g.Checker(id)
	if g.over || c == nil || c.Captured || c.Side != g.turn {
		return false
	}
	if c.IsActive {
		g.ClearSelection()
		return false
	}
	g.ClearSelection()

	var cells []Cell
	capturing := g.MustCapture()
	switch {
	case capturing && g.chainOpen && !c.IsCutting:
		return false
	case capturing:
		cells = g.captureDestinations(c)
	default:
		cells = g.simpleDestinations(c)
	}
	if len(cells) == 0 {
		return false
	}

	c.IsActive = true
	g.active = c.ID
	g.capturing = capturing
	for _, cell := range cells {
		g.board.SetCell(cell.Row, cell.Col, MoveMarker)
	}
	return true
}

// ClearSelection deselects the active checker and removes its markers.
func (g *Game) ClearSelection() {
	if c := g.ActiveChecker(); c != nil {
		c.IsActive = false
	}
	g.active = -1
	g.capturing = false
	g.board.ClearMarkers()
}
