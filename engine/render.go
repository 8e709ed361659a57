package engine

import (
	"checkers/game"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Renderer draws snapshots as text. First's checkers are 'w', Second's 'b',
// queens are upper case and '*' marks a destination of the selected checker.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

func (r *Renderer) Render(s game.Snapshot) {
	width := len(strconv.Itoa(s.Size - 1))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width+1))
	for col := 0; col < s.Size; col++ {
		fmt.Fprintf(&b, " %*d", width, col)
	}
	b.WriteString("\n")

	for row, cells := range s.Cells {
		fmt.Fprintf(&b, "%*d ", width, row)
		for _, cell := range cells {
			b.WriteString(" ")
			b.WriteString(strings.Repeat(" ", width-1))
			b.WriteString(r.glyph(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString(Status(s))
	b.WriteString("\n")

	fmt.Fprint(r.out, b.String())
}

func (r *Renderer) glyph(cell game.SnapshotCell) string {
	var glyph string
	var color termenv.Color
	switch {
	case cell.Marker:
		return r.out.String("*").Foreground(r.out.Color("2")).String()
	case cell.Side == game.First:
		glyph, color = "w", r.out.Color("15")
	case cell.Side == game.Second:
		glyph, color = "b", r.out.Color("9")
	default:
		return "."
	}
	if cell.Queen {
		glyph = strings.ToUpper(glyph)
	}
	style := r.out.String(glyph).Foreground(color)
	if cell.Active {
		style = style.Bold().Underline()
	}
	return style.String()
}

// Status is the one-line state panel below the board.
func Status(s game.Snapshot) string {
	if s.Over {
		return fmt.Sprintf("Game over: %s wins", s.Winner)
	}
	if s.MustCapture {
		return fmt.Sprintf("%s to move (must capture)", s.Turn)
	}
	return fmt.Sprintf("%s to move", s.Turn)
}
