// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines used by parallel root search.
const GO_ROUTINES = 8

// DefaultDepth defines the minimax search depth in plies.
const DefaultDepth = 3

// DefaultBoardSize defines the board size used when no settings exist.
const DefaultBoardSize = 10

// MaxTurns caps automated games, which have no draw rule.
const MaxTurns = 300
