package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/watersort/internal/playback"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

var emptyCell = lipgloss.NewStyle().Background(lipgloss.Color("#000000"))

// cell renders one unit of liquid as a two-column block.
func cell(c puzzle.Color, ok bool) string {
	style := emptyCell
	if ok {
		style = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
	}
	return style.Render(" ") + style.Render(" ")
}

// renderPuzzle draws the tubes side by side, top level first, with a footer
// and 1-based labels.
func renderPuzzle(p *puzzle.Puzzle) string {
	var b strings.Builder

	for level := p.Capacity() - 1; level >= 0; level-- {
		for i := 0; i < p.Len(); i++ {
			c, ok := p.Tube(i).At(level)
			b.WriteString("│" + cell(c, ok) + "│ ")
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("└──┘ ", p.Len()))
	b.WriteString("\n")

	for i := 0; i < p.Len(); i++ {
		fmt.Fprintf(&b, " %02d  ", i+1)
	}
	return b.String()
}

// arrowRow marks the source tube with ↑↑ and the destination with ↓↓.
func arrowRow(tubes int, m types.Move) string {
	var b strings.Builder
	for i := 0; i < tubes; i++ {
		switch i {
		case m.From:
			b.WriteString(" ↑↑  ")
		case m.To:
			b.WriteString(" ↓↓  ")
		default:
			b.WriteString("     ")
		}
	}
	return b.String()
}

// narrateStep prints a step header, the direction row, and the state before
// the pour.
func narrateStep(w io.Writer, s playback.Step) {
	fmt.Fprintf(w, "Step %d: Pour from tube %d to tube %d\n", s.Index+1, s.Move.From+1, s.Move.To+1)
	fmt.Fprintln(w, arrowRow(s.Before.Len(), s.Move))
	fmt.Fprintln(w, renderPuzzle(s.Before))
}
