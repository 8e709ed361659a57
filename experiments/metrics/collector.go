package metrics

import (
	"checkers/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Duration   time.Duration
	Depth      int
	Candidates int   // legal first actions at the root
	Nodes      int64 // positions visited, root included
	Leaves     int64 // positions scored by the evaluation function
	Terminals  int64 // positions without legal moves
	Score      int   // minimax value of the chosen move
}

type MoveMetric struct {
	Step int
	Side game.Side
	SearchMetric
}

type GameMetric struct {
	StartingSide game.Side
	Winner       game.Side // NoSide when the turn cap was reached
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int // full moves, a capture chain counts once
	TotalSteps   int // atomic transitions
}

// AgentConfig describes one automated agent of an experiment.
type AgentConfig struct {
	ID         int
	Kind       string // "bot" or "abot"
	Depth      int
	Goroutines int
	Seed       uint64
}

type Collector interface {
	Start(goroutines, depth int)
	AddNode()
	AddLeaf()
	AddTerminal()
	Complete(candidates, score int) SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	terminals  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.terminals.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) Complete(candidates, score int) SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Depth:      m.depth,
		Candidates: candidates,
		Nodes:      m.nodes.Load(),
		Leaves:     m.leaves.Load(),
		Terminals:  m.terminals.Load(),
		Score:      score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int)                 {}
func (m *dummyCollector) AddNode()                                    {}
func (m *dummyCollector) AddLeaf()                                    {}
func (m *dummyCollector) AddTerminal()                                {}
func (m *dummyCollector) Complete(candidates, score int) SearchMetric { return SearchMetric{} }
