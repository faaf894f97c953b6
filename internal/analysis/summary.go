// Package analysis computes statistics for a solution played against its
// puzzle.
package analysis

import (
	"fmt"

	"github.com/SeamusWaldron/watersort/internal/playback"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

// Summary contains statistics for a single solution.
type Summary struct {
	Moves        int          `json:"moves"`
	UnitsPoured  int          `json:"units_poured"`
	StartEntropy float64      `json:"start_entropy"`
	Entropy      []float64    `json:"entropy"` // after each step
	Completions  []Completion `json:"completions,omitempty"`
	PoursFrom    []int        `json:"pours_from"` // indexed by tube
	PoursInto    []int        `json:"pours_into"`
	Reversals    int          `json:"reversals"`
}

// Completion records the step at which a tube became complete.
type Completion struct {
	Step  int    `json:"step"` // zero-based
	Tube  int    `json:"tube"`
	Color string `json:"color"`
}

// Summarize replays moves on a copy of p and collects statistics.
func Summarize(p *puzzle.Puzzle, moves []types.Move) (*Summary, error) {
	s := &Summary{
		Moves:        len(moves),
		StartEntropy: p.TotalEntropy(),
		Entropy:      make([]float64, 0, len(moves)),
		PoursFrom:    make([]int, p.Len()),
		PoursInto:    make([]int, p.Len()),
		Reversals:    CountReversals(moves),
	}

	_, err := playback.Replay(p, moves, func(step playback.Step) error {
		from, to := step.Move.From, step.Move.To
		s.UnitsPoured += step.Before.Tube(from).Len() - step.After.Tube(from).Len()
		s.PoursFrom[from]++
		s.PoursInto[to]++
		s.Entropy = append(s.Entropy, step.After.TotalEntropy())

		dst := step.After.Tube(to)
		if dst.IsComplete() && !step.Before.Tube(to).IsComplete() {
			top, _ := dst.Top()
			s.Completions = append(s.Completions, Completion{Step: step.Index, Tube: to, Color: top.Name})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to summarize solution: %w", err)
	}

	return s, nil
}

// CountReversals counts moves that immediately undo the previous pour's
// direction (A>B followed by B>A).
func CountReversals(moves []types.Move) int {
	n := 0
	for i := 1; i < len(moves); i++ {
		if moves[i] == moves[i-1].Reverse() {
			n++
		}
	}
	return n
}

// AverageUnitsPerPour returns the mean number of units moved per pour.
func (s *Summary) AverageUnitsPerPour() float64 {
	if s.Moves == 0 {
		return 0
	}
	return float64(s.UnitsPoured) / float64(s.Moves)
}
