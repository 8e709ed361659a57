package searcher

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Loss scores a position whose side to move has no legal action. It is below
// any material balance a board of game.MaxBoardSize can hold.
const Loss = -(game.MaxBoardSize*game.MaxBoardSize + 1)

type Option func(m *Minimax)

// Minimax is a fixed-depth negamax searcher over the game's apply/undo
// protocol. A capture chain opened by a candidate is continued greedily with
// the first available capture and is not branched.
//
// FindMove is not safe for concurrent use on the same Minimax.
type Minimax struct {
	depth      int
	goroutines int
	evaluate   game.Evaluator
	rng        *rand.Rand
	metrics    metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithGoroutines evaluates root candidates in parallel, each worker on its own
// clone of the game.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluator) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:      meta.DefaultDepth,
		goroutines: 1,
		evaluate:   game.Evaluate,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// Search returns the minimax value of g for its side to move. The game is
// left exactly as it was found.
func (m *Minimax) Search(g *game.Game, depth int) int {
	m.metrics.AddNode()
	if g.IsGameOver() {
		m.metrics.AddTerminal()
		return Loss
	}
	if depth == 0 {
		m.metrics.AddLeaf()
		return m.evaluate(g)
	}

	moves := g.LegalMoves()
	if len(moves) == 0 {
		m.metrics.AddTerminal()
		return Loss
	}

	best := math.MinInt
	for _, move := range moves {
		if score := m.score(g, move, depth); score > best {
			best = score
		}
	}
	return best
}

// FindMove searches from the root and returns the first step of the best full
// move. Among equally scored candidates a fair coin decides, in candidate
// order, whether a tied move replaces the remembered one.
func (m *Minimax) FindMove(g *game.Game) (game.Move, metrics.SearchMetric) {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		panic("search asked to move without legal moves")
	}

	m.metrics.Start(m.goroutines, m.depth)
	m.metrics.AddNode()

	var scores []int
	if m.goroutines > 1 && len(moves) > 1 {
		scores = m.scoreParallel(g, moves)
	} else {
		scores = make([]int, len(moves))
		for i, move := range moves {
			scores[i] = m.score(g, move, m.depth)
		}
	}

	best, bestScore := -1, math.MinInt
	for i, score := range scores {
		switch {
		case score > bestScore:
			best, bestScore = i, score
		case score == bestScore && m.rng.Intn(2) == 1:
			best = i
		}
	}
	metric := m.metrics.Complete(len(moves), bestScore)

	log.Debug().Msgf("%s chose %+v with score %d among %d candidates", g.ActiveSide(), moves[best], bestScore, len(moves))
	return moves[best], metric
}

// score applies the candidate and its forced chain continuation, scores the
// resulting position for the mover and undoes every applied step.
func (m *Minimax) score(g *game.Game, move game.Move, depth int) int {
	if !g.Play(move) {
		panic("search produced an illegal move")
	}
	steps := 1
	for g.InChain() {
		if !g.Play(g.LegalMoves()[0]) {
			panic("search produced an illegal chain continuation")
		}
		steps++
	}

	score := -m.Search(g, depth-1)

	for i := 0; i < steps; i++ {
		g.Undo()
	}
	return score
}

func (m *Minimax) scoreParallel(g *game.Game, moves []game.Move) []int {
	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	scores := make([]int, len(moves))
	workers := min(m.goroutines, len(moves))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		clone := g.Clone()
		go func() {
			defer wg.Done()

			for idx := range task {
				scores[idx] = m.score(clone, moves[idx], m.depth)
			}
		}()
	}

	wg.Wait()
	return scores
}
