package engine

import (
	"bytes"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/player"
	"checkers/searcher"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func newClassicGame(t *testing.T, size int) *game.Game {
	t.Helper()
	layout, err := game.ClassicLayout(size)
	require.NoError(t, err)
	g, err := game.NewGame(layout)
	require.NoError(t, err)
	return g
}

func TestLocalEngine(t *testing.T) {
	t.Run("random players play to the end", func(t *testing.T) {
		g := newClassicGame(t, 6)
		first := player.New(player.Random, game.First, player.WithSeed(1))
		second := player.New(player.Random, game.Second, player.WithSeed(2))

		observed := 0
		e := LocalEngine(g, first, second, WithMaxTurns(1000), WithObserver(func(*game.Game) { observed++ }))
		winner, gameMetric, moveMetrics := e.Run()

		require.Equal(t, g.Winner(), winner)
		if !g.IsGameOver() {
			require.Equal(t, 1000, gameMetric.TotalMoves, "Only the turn cap may stop a running game")
		}
		require.Equal(t, game.First, gameMetric.StartingSide)
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, observed, gameMetric.TotalMoves, "Observers are notified once per turn")
		require.Equal(t, g.HistoryLen(), gameMetric.TotalSteps)
		require.Len(t, moveMetrics, gameMetric.TotalSteps, "Every step gets a metric")
		require.GreaterOrEqual(t, gameMetric.TotalSteps, gameMetric.TotalMoves)
	})

	t.Run("turn cap stops the game", func(t *testing.T) {
		g := newClassicGame(t, 10)
		first := player.New(player.Random, game.First, player.WithSeed(1))
		second := player.New(player.Search, game.Second, player.WithSeed(2),
			player.WithSearchOptions(searcher.WithDepth(1), searcher.WithMetrics()))

		winner, gameMetric, moveMetrics := LocalEngine(g, first, second, WithMaxTurns(4)).Run()

		require.Equal(t, game.NoSide, winner)
		require.False(t, g.IsGameOver())
		require.Equal(t, 4, gameMetric.TotalMoves)
		require.Equal(t, game.Second, moveMetrics[1].Side)
		require.Equal(t, 1, moveMetrics[1].Depth, "The search player reports its metrics")
	})

	t.Run("layout without moves for First ends at once", func(t *testing.T) {
		layout, err := game.ParseLayout(strings.NewReader("0000\n0000\n0000\n2020"))
		require.NoError(t, err)
		g, err := game.NewGame(layout)
		require.NoError(t, err)
		first := player.New(player.Random, game.First, player.WithSeed(1))
		second := player.New(player.Random, game.Second, player.WithSeed(2))

		var winner game.Side
		var gameMetric metrics.GameMetric
		require.NotPanics(t, func() {
			winner, gameMetric, _ = LocalEngine(g, first, second).Run()
		})
		require.Equal(t, game.Second, winner)
		require.Equal(t, 0, gameMetric.TotalMoves)
	})

	t.Run("human players are rejected", func(t *testing.T) {
		g := newClassicGame(t, 8)
		require.Panics(t, func() {
			LocalEngine(g, player.New(player.Human, game.First), player.New(player.Random, game.Second))
		})
	})

	t.Run("sides must match", func(t *testing.T) {
		g := newClassicGame(t, 8)
		require.Panics(t, func() {
			LocalEngine(g, player.New(player.Random, game.Second), player.New(player.Random, game.First))
		})
	})
}

func TestRenderer(t *testing.T) {
	g := newClassicGame(t, 4)

	var out bytes.Buffer
	NewRenderer(&out, termenv.Ascii).Render(g.Snapshot())

	require.Equal(t, strings.Join([]string{
		"   0 1 2 3",
		"0  . b . b",
		"1  . . . .",
		"2  . . . .",
		"3  w . w .",
		"First to move",
		"",
	}, "\n"), out.String())
}

func TestStatus(t *testing.T) {
	require.Equal(t, "Second to move (must capture)", Status(game.Snapshot{Turn: game.Second, MustCapture: true}))
	require.Equal(t, "Game over: First wins", Status(game.Snapshot{Over: true, Winner: game.First}))
}
