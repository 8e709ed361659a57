package engine

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/player"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Local runs a game between two automated players on one goroutine.
type Local struct {
	Game    *game.Game
	players map[game.Side]*player.Player
	options
}

func LocalEngine(g *game.Game, first, second *player.Player, opts ...Option) *Local {
	if first.Side != game.First || second.Side != game.Second {
		panic(fmt.Sprintf("players play %s and %s, want First and Second", first.Side, second.Side))
	}
	if !first.IsAutomated() || !second.IsAutomated() {
		panic("local engine needs two automated players")
	}

	e := &Local{
		Game:    g,
		players: map[game.Side]*player.Player{game.First: first, game.Second: second},
		options: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&e.options)
	}
	return e
}

// Run executes the game loop until a winner is found or the turn cap is hit.
func (e *Local) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingSide: e.Game.ActiveSide(),
		StartTime:    time.Now(),
	}
	log.Info().Msgf("%s is starting", gameMetric.StartingSide)

	var moveMetrics []metrics.MoveMetric
	turns := 0
	for !e.Game.IsGameOver() && turns < e.maxTurns {
		turn := e.players[e.Game.ActiveSide()].PlayTurn(e.Game)
		for _, metric := range turn.Metrics {
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         len(moveMetrics) + 1,
				Side:         turn.Side,
				SearchMetric: metric,
			})
		}
		turns++
		e.notify(e.Game)
		log.Debug().Msgf("turn %d: %s played %d step(s)", turns, turn.Side, len(turn.Steps))
	}

	if e.Game.IsGameOver() {
		log.Info().Msgf("game ended after %d turns with winner %s", turns, e.Game.Winner())
	} else {
		log.Warn().Msgf("stopped after %d turns without a winner", turns)
	}

	gameMetric.Winner = e.Game.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turns
	gameMetric.TotalSteps = e.Game.HistoryLen()
	return gameMetric.Winner, gameMetric, moveMetrics
}
