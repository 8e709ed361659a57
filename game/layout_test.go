package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func countSides(l *Layout) (first, second int) {
	for _, row := range l.Grid {
		for _, side := range row {
			switch side {
			case First:
				first++
			case Second:
				second++
			}
		}
	}
	return first, second
}

func TestClassicLayout(t *testing.T) {
	t.Run("10x10 places twenty checkers per side on dark cells", func(t *testing.T) {
		l, err := ClassicLayout(10)
		require.NoError(t, err)
		require.Equal(t, 10, l.Size())

		first, second := countSides(l)
		require.Equal(t, 20, first)
		require.Equal(t, 20, second)

		require.Equal(t, First, l.Grid[6][1])
		require.Equal(t, First, l.Grid[9][0])
		require.Equal(t, Second, l.Grid[3][0])
		require.Equal(t, Second, l.Grid[0][1])
		require.Equal(t, NoSide, l.Grid[0][0], "Light cells should stay empty")
		for col := 0; col < 10; col++ {
			require.Equal(t, NoSide, l.Grid[4][col], "Middle rows should stay empty")
			require.Equal(t, NoSide, l.Grid[5][col], "Middle rows should stay empty")
		}
	})

	t.Run("8x8 places twelve checkers per side", func(t *testing.T) {
		l, err := ClassicLayout(8)
		require.NoError(t, err)
		first, second := countSides(l)
		require.Equal(t, 12, first)
		require.Equal(t, 12, second)
	})

	t.Run("rejects bad sizes", func(t *testing.T) {
		for _, size := range []int{0, 2, 7, 102} {
			_, err := ClassicLayout(size)
			require.ErrorIs(t, err, ErrInvalidBoardSize, "size %d should be rejected", size)
		}
	})
}

func TestFrisianLayout(t *testing.T) {
	l, err := FrisianLayout(10)
	require.NoError(t, err)

	first, second := countSides(l)
	require.Equal(t, 40, first, "Every cell of the first player's rows should be filled")
	require.Equal(t, 40, second, "Every cell of the second player's rows should be filled")
	require.Equal(t, Second, l.Grid[0][0])
	require.Equal(t, First, l.Grid[9][9])
}

func TestParseLayout(t *testing.T) {
	t.Run("reads a square grid", func(t *testing.T) {
		l, err := ParseLayout(strings.NewReader("0200\n0000\n0000\n1000\n\n"))
		require.NoError(t, err)
		require.Equal(t, 4, l.Size())
		require.Equal(t, Second, l.Grid[0][1])
		require.Equal(t, First, l.Grid[3][0])
	})

	t.Run("accepts windows line endings", func(t *testing.T) {
		l, err := ParseLayout(strings.NewReader("0200\r\n0000\r\n0000\r\n1000\r\n"))
		require.NoError(t, err)
		require.Equal(t, 4, l.Size())
	})

	cases := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"non-square grid", "0000\n0000\n0000\n000\n"},
		{"odd size", "000\n000\n000\n"},
		{"too small", "00\n00\n"},
		{"unknown token", "0000\n0300\n0000\n0000\n"},
		{"blank row inside the grid", "0000\n\n0000\n0000\n0000\n"},
	}
	for _, tc := range cases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := ParseLayout(strings.NewReader(tc.input))
			require.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestLoadLayout(t *testing.T) {
	t.Run("patterns", func(t *testing.T) {
		l, err := LoadLayout(ClassicPattern, 8)
		require.NoError(t, err)
		require.Equal(t, ClassicPattern, l.Name)

		l, err = LoadLayout(FrisianPattern, 6)
		require.NoError(t, err)
		require.Equal(t, 6, l.Size())
	})

	t.Run("file size wins over the requested size", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "board.txt")
		require.NoError(t, os.WriteFile(path, []byte("020000\n000000\n000000\n000000\n000000\n100000\n"), 0644))

		l, err := LoadLayout(path, 10)
		require.NoError(t, err)
		require.Equal(t, 6, l.Size())
		require.Equal(t, path, l.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLayout(filepath.Join(t.TempDir(), "missing.txt"), 10)
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.txt")
		require.NoError(t, os.WriteFile(path, []byte("0x00\n0000\n0000\n0000\n"), 0644))

		_, err := LoadLayout(path, 10)
		require.ErrorIs(t, err, ErrInvalidLayout)
	})
}

func TestNewGameRejectsInvalidLayout(t *testing.T) {
	_, err := NewGame(&Layout{Grid: [][]Side{{NoSide, NoSide}, {NoSide}}})
	require.ErrorIs(t, err, ErrInvalidLayout)
}
