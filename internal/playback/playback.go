// Package playback replays a solved move list against the puzzle it was
// computed from, one pour at a time.
package playback

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

var (
	// ErrReplayDiverged means a move was illegal against the state it was
	// computed for. This is never a user error.
	ErrReplayDiverged = errors.New("replay diverged from solver state")

	// ErrFinished is returned by Next once every move has been played.
	ErrFinished = errors.New("replay finished")
)

// Step is one pour of a replay.
// Before and After are snapshots and safe to keep.
type Step struct {
	Index  int // zero-based
	Move   types.Move
	Before *puzzle.Puzzle
	After  *puzzle.Puzzle
}

// Player steps through a move list, mutating a private copy of the puzzle.
type Player struct {
	initial *puzzle.Puzzle
	state   *puzzle.Puzzle
	moves   []types.Move
	pos     int
}

// NewPlayer creates a player. initial is copied and never modified.
func NewPlayer(initial *puzzle.Puzzle, moves []types.Move) *Player {
	return &Player{
		initial: initial.Clone(),
		state:   initial.Clone(),
		moves:   moves,
	}
}

// Next performs the next pour.
func (p *Player) Next() (Step, error) {
	if p.pos >= len(p.moves) {
		return Step{}, ErrFinished
	}

	m := p.moves[p.pos]
	before := p.state.Clone()
	if err := p.state.ApplyInPlace(m); err != nil {
		return Step{}, fmt.Errorf("%w: step %d (%s): %w", ErrReplayDiverged, p.pos+1, m, err)
	}

	step := Step{
		Index:  p.pos,
		Move:   m,
		Before: before,
		After:  p.state.Clone(),
	}
	p.pos++
	return step, nil
}

// Reset rewinds to the initial puzzle.
func (p *Player) Reset() {
	p.state = p.initial.Clone()
	p.pos = 0
}

// Done returns true when every move has been played.
func (p *Player) Done() bool {
	return p.pos >= len(p.moves)
}

// Position returns the number of moves played so far.
func (p *Player) Position() int {
	return p.pos
}

// Total returns the number of moves in the replay.
func (p *Player) Total() int {
	return len(p.moves)
}

// Upcoming returns the next move to play.
func (p *Player) Upcoming() (types.Move, bool) {
	if p.Done() {
		return types.Move{}, false
	}
	return p.moves[p.pos], true
}

// State returns a copy of the current puzzle.
func (p *Player) State() *puzzle.Puzzle {
	return p.state.Clone()
}

// Replay plays every move and calls fn after each one.
// It stops at the first divergence or at the first error from fn.
// The final state is returned when all moves were played.
func Replay(initial *puzzle.Puzzle, moves []types.Move, fn func(Step) error) (*puzzle.Puzzle, error) {
	p := NewPlayer(initial, moves)
	for !p.Done() {
		step, err := p.Next()
		if err != nil {
			return nil, err
		}
		if fn != nil {
			if err := fn(step); err != nil {
				return nil, err
			}
		}
	}
	return p.State(), nil
}

// MustReplay is like Replay but panics when the moves diverge from the
// puzzle. Use it where the moves come straight from the solver.
func MustReplay(initial *puzzle.Puzzle, moves []types.Move, fn func(Step)) *puzzle.Puzzle {
	final, err := Replay(initial, moves, func(s Step) error {
		if fn != nil {
			fn(s)
		}
		return nil
	})
	if err != nil {
		panic(err)
	}
	return final
}
