package player

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrUnknownKind = errors.New("unknown player kind")

// Kind tags how a player picks its moves.
type Kind int

const (
	Human  Kind = iota // moves come from board selections
	Random             // random eligible checker, then a random marked cell
	Search             // minimax search
)

// ParseKind maps the settings names "player", "bot" and "abot" to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "player":
		return Human, nil
	case "bot":
		return Random, nil
	case "abot":
		return Search, nil
	default:
		return Human, fmt.Errorf("%w: %q (want player, bot or abot)", ErrUnknownKind, name)
	}
}

func (k Kind) String() string {
	switch k {
	case Human:
		return "player"
	case Random:
		return "bot"
	case Search:
		return "abot"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Option func(p *Player)

func WithSeed(seed uint64) Option {
	return func(p *Player) {
		p.seed = &seed
	}
}

// WithSearchOptions configures the searcher of a Search player.
func WithSearchOptions(options ...searcher.Option) Option {
	return func(p *Player) {
		p.searchOptions = append(p.searchOptions, options...)
	}
}

// Player drives one side of a game.
type Player struct {
	Kind Kind
	Side game.Side

	seed          *uint64
	searchOptions []searcher.Option
	rng           *rand.Rand
	minimax       *searcher.Minimax
}

// Turn is one full move: a simple step or every step of a capture chain.
type Turn struct {
	Side    game.Side
	Steps   []game.Move
	Metrics []metrics.SearchMetric // one per step
}

func New(kind Kind, side game.Side, options ...Option) *Player {
	p := &Player{Kind: kind, Side: side}
	for _, option := range options {
		option(p)
	}

	seed := uint64(time.Now().UnixNano())
	if p.seed != nil {
		seed = *p.seed
	}
	p.rng = rand.New(rand.NewSource(seed))
	if kind == Search {
		searchOptions := append([]searcher.Option{searcher.WithSeed(seed)}, p.searchOptions...)
		p.minimax = searcher.NewMinimax(searchOptions...)
		log.Debug().Msgf("%s searches %d plies deep", side, p.minimax.Depth())
	}
	return p
}

func (p *Player) IsAutomated() bool {
	return p.Kind != Human
}

// ChooseMove picks one atomic step for the side to move and commits it to the
// game. Calling it for a human, for the wrong side or without legal moves is a
// programming error.
func (p *Player) ChooseMove(g *game.Game) (game.Move, metrics.SearchMetric) {
	if !p.IsAutomated() {
		panic("human player cannot choose a move automatically")
	}
	if g.ActiveSide() != p.Side {
		panic(fmt.Sprintf("%s player asked to move for %s", p.Side, g.ActiveSide()))
	}

	var move game.Move
	var metric metrics.SearchMetric
	switch p.Kind {
	case Random:
		move = p.randomMove(g)
	case Search:
		move, metric = p.minimax.FindMove(g)
	default:
		panic(fmt.Sprintf("unexpected player kind %s", p.Kind))
	}

	if !g.Play(move) {
		panic(fmt.Sprintf("%s player chose illegal move %+v", p.Kind, move))
	}
	return move, metric
}

// PlayTurn chooses steps until the turn passes or the game ends.
func (p *Player) PlayTurn(g *game.Game) Turn {
	turn := Turn{Side: p.Side}
	for !g.IsGameOver() && g.ActiveSide() == p.Side {
		move, metric := p.ChooseMove(g)
		turn.Steps = append(turn.Steps, move)
		turn.Metrics = append(turn.Metrics, metric)
	}
	return turn
}

func (p *Player) randomMove(g *game.Game) game.Move {
	checkers := g.MovableCheckers()
	if g.MustCapture() {
		checkers = g.CapturingCheckers()
	}
	if len(checkers) == 0 {
		panic("random player asked to move without legal moves")
	}
	checker := checkers[p.rng.Intn(len(checkers))]

	if !g.Activate(checker.ID) {
		panic(fmt.Sprintf("random player could not select checker %d", checker.ID))
	}
	cells := g.Board().Markers()
	g.ClearSelection()
	return game.Move{CheckerID: checker.ID, To: cells[p.rng.Intn(len(cells))]}
}
