package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestGame builds a game from text rows ('0' empty, '1' First, '2' Second).
func newTestGame(t *testing.T, rows ...string) *Game {
	t.Helper()
	layout, err := ParseLayout(strings.NewReader(strings.Join(rows, "\n")))
	require.NoError(t, err)
	g, err := NewGame(layout)
	require.NoError(t, err)
	return g
}

func TestCellState(t *testing.T) {
	t.Run("occupant round trip", func(t *testing.T) {
		for _, id := range []int{0, 1, 41} {
			state := Occupant(id)
			got, ok := state.CheckerID()
			require.True(t, ok, "Occupant should hold a checker")
			require.Equal(t, id, got, "Occupant should keep the checker handle")
			require.True(t, state.IsChecker())
		}
	})

	t.Run("empty and marker hold no checker", func(t *testing.T) {
		for _, state := range []CellState{Empty, MoveMarker} {
			_, ok := state.CheckerID()
			require.False(t, ok)
			require.False(t, state.IsChecker())
		}
	})
}

func TestBoard(t *testing.T) {
	t.Run("new board is empty", func(t *testing.T) {
		b := NewBoard(4)
		require.Equal(t, 4, b.Size())
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				require.Equal(t, Empty, b.CellAt(row, col))
			}
		}
	})

	t.Run("on board bounds", func(t *testing.T) {
		b := NewBoard(10)
		require.True(t, b.IsOnBoard(0, 0))
		require.True(t, b.IsOnBoard(5, 4))
		require.True(t, b.IsOnBoard(9, 9))
		require.False(t, b.IsOnBoard(-1, -1))
		require.False(t, b.IsOnBoard(-1, 4))
		require.False(t, b.IsOnBoard(3, 10))
		require.Equal(t, Empty, b.CellAt(3, 10), "Off-board cells should read as empty")
	})

	t.Run("markers are listed and cleared", func(t *testing.T) {
		b := NewBoard(4)
		b.SetCell(0, 1, MoveMarker)
		b.SetCell(2, 3, MoveMarker)
		b.SetCell(1, 0, Occupant(0))

		require.Equal(t, []Cell{{Row: 0, Col: 1}, {Row: 2, Col: 3}}, b.Markers())

		b.ClearMarkers()
		require.Empty(t, b.Markers())
		require.Equal(t, Occupant(0), b.CellAt(1, 0), "Clearing markers should keep checkers")
	})

	t.Run("clone is independent", func(t *testing.T) {
		b := NewBoard(4)
		b.SetCell(1, 2, Occupant(3))
		clone := b.Clone()
		require.True(t, b.Equal(clone))

		clone.SetCell(1, 2, Empty)
		require.Equal(t, Occupant(3), b.CellAt(1, 2), "Mutating the clone should not touch the original")
		require.False(t, b.Equal(clone))
	})
}

func TestSide(t *testing.T) {
	require.Equal(t, Second, First.Opponent())
	require.Equal(t, First, Second.Opponent())
	require.Equal(t, NoSide, NoSide.Opponent())

	text, err := Second.MarshalText()
	require.NoError(t, err)
	var side Side
	require.NoError(t, side.UnmarshalText(text))
	require.Equal(t, Second, side)
	require.Error(t, side.UnmarshalText([]byte("third")))
}
