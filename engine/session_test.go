package engine

import (
	"bytes"
	"checkers/game"
	"checkers/player"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, g *game.Game, first, second *player.Player, commands ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(commands, "\n") + "\n")
	require.NoError(t, NewSession(g, first, second, in, &out).Run())
	return out.String()
}

func TestSession(t *testing.T) {
	t.Run("humans select and move", func(t *testing.T) {
		g := newClassicGame(t, 10)
		out := runSession(t, g,
			player.New(player.Human, game.First),
			player.New(player.Human, game.Second),
			"select 6 1",
			"move 5 2",
			"quit",
		)

		require.Equal(t, game.First, g.CheckerAt(5, 2).Side)
		require.Equal(t, game.Second, g.ActiveSide())
		require.Contains(t, out, "Second to move")
	})

	t.Run("bot replies to the human", func(t *testing.T) {
		g := newClassicGame(t, 8)
		out := runSession(t, g,
			player.New(player.Human, game.First),
			player.New(player.Random, game.Second, player.WithSeed(4)),
			"s 5 0",
			"m 4 1",
		)

		require.Equal(t, 2, g.HistoryLen(), "The bot should answer right away")
		require.Equal(t, game.First, g.ActiveSide())
		require.NotContains(t, out, "cannot")
	})

	t.Run("undo takes back the bot reply too", func(t *testing.T) {
		g := newClassicGame(t, 8)
		runSession(t, g,
			player.New(player.Human, game.First),
			player.New(player.Random, game.Second, player.WithSeed(4)),
			"select 5 0",
			"move 4 1",
			"undo",
		)

		require.Equal(t, 0, g.HistoryLen())
		require.Equal(t, game.First, g.ActiveSide())
		require.NotNil(t, g.CheckerAt(5, 0))
	})

	t.Run("bot moves first when it plays First", func(t *testing.T) {
		g := newClassicGame(t, 8)
		runSession(t, g,
			player.New(player.Random, game.First, player.WithSeed(1)),
			player.New(player.Human, game.Second),
		)
		require.Equal(t, 1, g.HistoryLen())
		require.Equal(t, game.Second, g.ActiveSide())
	})

	t.Run("new restarts the game", func(t *testing.T) {
		g := newClassicGame(t, 8)
		runSession(t, g,
			player.New(player.Human, game.First),
			player.New(player.Human, game.Second),
			"select 5 0",
			"move 4 1",
			"new",
		)
		require.Equal(t, 0, g.HistoryLen())
		require.Equal(t, game.First, g.ActiveSide())
	})

	t.Run("bad commands are reported", func(t *testing.T) {
		g := newClassicGame(t, 8)
		out := runSession(t, g,
			player.New(player.Human, game.First),
			player.New(player.Human, game.Second),
			"jump 1 2",
			"select x 1",
			"select 4 1",
			"select 7 0",
			"move 4 1",
			"undo",
			"help",
		)

		require.Contains(t, out, `unknown command "jump"`)
		require.Contains(t, out, `bad row "x"`)
		require.Contains(t, out, "no checker on 4 1")
		require.Contains(t, out, "checker on 7 0 cannot move")
		require.Contains(t, out, "cannot move to 4 1")
		require.Contains(t, out, "nothing to undo")
		require.Contains(t, out, "commands:")
		require.Equal(t, 0, g.HistoryLen())
	})

	t.Run("observers see every change", func(t *testing.T) {
		g := newClassicGame(t, 8)
		var seen []int
		in := strings.NewReader("select 5 0\nmove 4 1\nundo\n")
		s := NewSession(g,
			player.New(player.Human, game.First),
			player.New(player.Human, game.Second),
			in, &bytes.Buffer{},
			WithObserver(func(g *game.Game) { seen = append(seen, g.HistoryLen()) }),
		)
		require.NoError(t, s.Run())
		require.Equal(t, []int{1, 0}, seen)
	})
}
