package game

// Evaluator scores a position from the perspective of the side to move.
type Evaluator func(*Game) int

// Evaluate scores the position by material from the perspective of the side to
// move: its checkers on the board minus the opponent's.
func Evaluate(g *Game) int {
	return g.Count(g.turn) - g.Count(g.turn.Opponent())
}
