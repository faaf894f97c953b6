// Package watersort provides a Go library for modelling and solving water
// sort puzzles.
//
// A puzzle is a row of tubes of equal capacity, each holding a stack of
// colored liquid units. A pour moves the contiguous run of the top color from
// one tube onto another tube whose top has the same color (or which is
// empty), as far as the destination has room. The puzzle is solved when every
// tube is either empty or full of a single color.
//
// # Quick Start
//
//	red := watersort.NewColor("Red", 255, 0, 0)
//	blue := watersort.NewColor("Blue", 0, 0, 255)
//
//	p := watersort.NewPuzzle(
//	    watersort.NewTube(2, red, blue),
//	    watersort.NewTube(2, blue, red),
//	    watersort.NewTube(2),
//	)
//
//	res := watersort.Solve(p)
//	if !res.Found() {
//	    log.Fatal(res.Outcome)
//	}
//	fmt.Println(watersort.FormatMoves(res.Moves))
//
// # Search
//
// Solve runs a best-first search. States are ranked by
//
//	alpha*entropy + (1-alpha)*moves
//
// where entropy measures how mixed the tubes are. The search stops after a
// fixed number of expansions; see WithAlpha and WithBudget.
//
// # Replaying
//
// Replay applies a move list to a copy of a puzzle, calling back after each
// pour with the state before and after it:
//
//	watersort.Replay(p, res.Moves, func(s watersort.Step) error {
//	    fmt.Printf("Step %d: %s\n", s.Index+1, s.Move.Notation())
//	    return nil
//	})
//
// # Puzzle Files
//
// LoadFile reads a TOML puzzle definition:
//
//	capacity = 2
//	tubes = [["Red", "Blue"], ["Blue", "Red"], []]
//
//	[[colors]]
//	name = "Red"
//	rgb = [255, 0, 0]
//
//	[[colors]]
//	name = "Blue"
//	rgb = [0, 0, 255]
//
// Tubes list their contents bottom first.
package watersort

import (
	"github.com/SeamusWaldron/watersort/internal/playback"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/internal/puzzlefile"
	"github.com/SeamusWaldron/watersort/internal/solver"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

type (
	// Color is a named RGB liquid color. Two colors are equal only if
	// name and channels all match.
	Color = puzzle.Color

	// Tube is a bounded stack of colors, bottom first.
	Tube = puzzle.Tube

	// Puzzle is an ordered row of tubes.
	Puzzle = puzzle.Puzzle

	// Move pours from tube From into tube To. Indices are zero-based.
	Move = types.Move

	// Result is the output of Solve.
	Result = solver.Result

	// Outcome tells how a search ended.
	Outcome = solver.Outcome

	// Progress is passed to the WithProgress callback.
	Progress = solver.Progress

	// Step is one pour of a replay.
	Step = playback.Step
)

// Search outcomes.
const (
	OutcomeSolved         = solver.OutcomeSolved
	OutcomeAlreadySolved  = solver.OutcomeAlreadySolved
	OutcomeNoSolution     = solver.OutcomeNoSolution
	OutcomeBudgetExceeded = solver.OutcomeBudgetExceeded
)

// NewColor creates a color.
func NewColor(name string, r, g, b uint8) Color {
	return puzzle.NewColor(name, r, g, b)
}

// NewTube creates a tube holding content, bottom first.
// It panics if capacity is not positive or content does not fit.
func NewTube(capacity int, content ...Color) *Tube {
	return puzzle.NewTube(capacity, content...)
}

// NewPuzzle creates a puzzle from tubes.
func NewPuzzle(tubes ...*Tube) *Puzzle {
	return puzzle.New(tubes...)
}

// ParseMove parses 1-based notation such as "1>3".
func ParseMove(s string) (Move, error) {
	return types.ParseMove(s)
}

// ParseMoves parses a space-separated list of moves.
func ParseMoves(s string) ([]Move, error) {
	return types.ParseMoves(s)
}

// FormatMoves formats moves in 1-based notation.
func FormatMoves(moves []Move) string {
	return types.FormatMoves(moves)
}

// Solve searches for a move list that sorts p. p is not modified.
func Solve(p *Puzzle, opts ...Option) Result {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return solver.Solve(p, solver.Config{
		Alpha:      cfg.alpha,
		Budget:     cfg.budget,
		OnProgress: cfg.onProgress,
	})
}

// Replay applies moves to a copy of p and calls fn after each pour.
// It returns the final state, or an error wrapping ErrReplayDiverged if a
// move cannot be played.
func Replay(p *Puzzle, moves []Move, fn func(Step) error) (*Puzzle, error) {
	return playback.Replay(p, moves, fn)
}

// LoadFile reads a TOML puzzle file whose colors are all defined inline.
func LoadFile(path string) (*Puzzle, error) {
	f, err := puzzlefile.Load(path)
	if err != nil {
		return nil, err
	}
	return f.Puzzle(nil)
}
