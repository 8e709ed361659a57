package game

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ClassicPattern = "classic"
	FrisianPattern = "frisian"
)

// Layout is a starting position: which side owns a checker on each cell.
type Layout struct {
	Name string
	Grid [][]Side
}

func (l *Layout) Size() int {
	return len(l.Grid)
}

// Validate checks that the grid is square with an allowed size.
func (l *Layout) Validate() error {
	size := len(l.Grid)
	if err := ValidateBoardSize(size); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	for row, cells := range l.Grid {
		if len(cells) != size {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLayout, row, len(cells), size)
		}
		for col, side := range cells {
			if side != NoSide && side != First && side != Second {
				return fmt.Errorf("%w: unknown side %d at row %d column %d", ErrInvalidLayout, side, row, col)
			}
		}
	}
	return nil
}

// ClassicLayout fills the dark cells of the first size/2-1 rows with Second's
// checkers and the dark cells of the last size/2-1 rows with First's.
func ClassicLayout(size int) (*Layout, error) {
	return patternLayout(ClassicPattern, size, func(row, col int) bool {
		return (row+col)%2 == 1
	})
}

// FrisianLayout is ClassicLayout with every cell of those rows occupied.
func FrisianLayout(size int) (*Layout, error) {
	return patternLayout(FrisianPattern, size, func(row, col int) bool {
		return true
	})
}

func patternLayout(name string, size int, occupied func(row, col int) bool) (*Layout, error) {
	if err := ValidateBoardSize(size); err != nil {
		return nil, err
	}
	grid := make([][]Side, size)
	for row := range grid {
		grid[row] = make([]Side, size)
		for col := range grid[row] {
			if !occupied(row, col) {
				continue
			}
			switch {
			case row < size/2-1:
				grid[row][col] = Second
			case row > size/2:
				grid[row][col] = First
			}
		}
	}
	return &Layout{Name: name, Grid: grid}, nil
}

// ParseLayout reads a text grid, one line per row and one character per cell:
// '0' for an empty cell, '1' for First and '2' for Second. Trailing blank lines
// are ignored.
func ParseLayout(r io.Reader) (*Layout, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidLayout)
	}

	grid := make([][]Side, len(lines))
	for row, line := range lines {
		grid[row] = make([]Side, 0, len(line))
		for col, token := range line {
			switch token {
			case '0':
				grid[row] = append(grid[row], NoSide)
			case '1':
				grid[row] = append(grid[row], First)
			case '2':
				grid[row] = append(grid[row], Second)
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d column %d", ErrInvalidLayout, token, row, col)
			}
		}
	}

	layout := &Layout{Name: "custom", Grid: grid}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

// LoadLayoutFile parses the text grid stored at path.
func LoadLayoutFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout file: %w", err)
	}
	defer f.Close()

	layout, err := ParseLayout(f)
	if err != nil {
		return nil, fmt.Errorf("layout file %s: %w", path, err)
	}
	layout.Name = path
	return layout, nil
}

// LoadLayout resolves a layout selector: "classic" and "frisian" build the
// pattern for the given size, anything else is read as a grid file whose own
// size wins.
func LoadLayout(selector string, size int) (*Layout, error) {
	switch selector {
	case ClassicPattern:
		return ClassicLayout(size)
	case FrisianPattern:
		return FrisianLayout(size)
	default:
		return LoadLayoutFile(selector)
	}
}
