package game

import "fmt"

// SnapshotCell is the rendering view of one cell.
type SnapshotCell struct {
	Side   Side `json:"side,omitempty"`
	Queen  bool `json:"queen,omitempty"`
	Active bool `json:"active,omitempty"`
	Marker bool `json:"marker,omitempty"`
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Size        int              `json:"size"`
	Turn        Side             `json:"turn"`
	MustCapture bool             `json:"mustCapture"`
	Over        bool             `json:"over"`
	Winner      Side             `json:"winner,omitempty"`
	Steps       int              `json:"steps"`
	Cells       [][]SnapshotCell `json:"cells"`
}

func (g *Game) Snapshot() Snapshot {
	size := g.board.Size()
	cells := make([][]SnapshotCell, size)
	for row := range cells {
		cells[row] = make([]SnapshotCell, size)
		for col := range cells[row] {
			state := g.board.CellAt(row, col)
			if state == MoveMarker {
				cells[row][col].Marker = true
				continue
			}
			if c := g.CheckerAt(row, col); c != nil {
				cells[row][col] = SnapshotCell{Side: c.Side, Queen: c.IsQueen, Active: c.IsActive}
			}
		}
	}
	return Snapshot{
		Size:        size,
		Turn:        g.turn,
		MustCapture: !g.over && g.MustCapture(),
		Over:        g.over,
		Winner:      g.winner,
		Steps:       len(g.history),
		Cells:       cells,
	}
}

func (s Side) MarshalText() ([]byte, error) {
	switch s {
	case First:
		return []byte("first"), nil
	case Second:
		return []byte("second"), nil
	default:
		return []byte(""), nil
	}
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "first":
		*s = First
	case "second":
		*s = Second
	case "":
		*s = NoSide
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}
