package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/SeamusWaldron/watersort/internal/solver"
)

// barEvery controls how often the search bar is redrawn.
const barEvery = 50

// searchBar draws solver progress on a single terminal line.
type searchBar struct {
	w     io.Writer
	bar   progress.Model
	shown bool
}

func newSearchBar(w io.Writer) *searchBar {
	return &searchBar{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

// update redraws the bar for the first expansion and every barEvery after.
// The fraction is of the expansion budget.
func (b *searchBar) update(pr solver.Progress) {
	if pr.Expanded != 1 && pr.Expanded%barEvery != 0 {
		return
	}
	frac := float64(pr.Expanded) / float64(pr.Budget+1)
	if frac > 1 {
		frac = 1
	}
	fmt.Fprintf(b.w, "\r%s %s/%s expanded", b.bar.ViewAs(frac),
		humanize.Comma(int64(pr.Expanded)), humanize.Comma(int64(pr.Budget)))
	b.shown = true
}

// clear erases the bar line if anything was drawn.
func (b *searchBar) clear() {
	if !b.shown {
		return
	}
	fmt.Fprint(b.w, "\r\x1b[2K")
	b.shown = false
}
