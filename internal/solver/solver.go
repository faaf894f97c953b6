// Package solver finds pour sequences that sort a puzzle using a bounded
// best-first search.
//
// States are ranked by
//
//	score = Alpha*TotalEntropy + (1-Alpha)*len(moves)
//
// and the lowest score is expanded first; equal scores prefer the shorter
// path, then the earlier insertion. A state is skipped when it was already
// expanded, but the frontier itself is not deduplicated, so a state can be
// queued more than once before it is first expanded. The search stops after
// Budget expansions. Results are not guaranteed to be the shortest.
package solver

import (
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

const (
	// DefaultAlpha weights residual disorder against path length.
	DefaultAlpha = 0.65

	// DefaultBudget is the expansion cap.
	DefaultBudget = 5000
)

// Outcome tells apart the ways a search can end.
type Outcome int

const (
	OutcomeSolved         Outcome = iota // a winning move list was found
	OutcomeAlreadySolved                 // the start state is already sorted
	OutcomeNoSolution                    // every reachable state was expanded
	OutcomeBudgetExceeded                // the expansion budget ran out
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeAlreadySolved:
		return "already_solved"
	case OutcomeNoSolution:
		return "no_solution"
	case OutcomeBudgetExceeded:
		return "budget_exceeded"
	default:
		return "unknown"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, bool) {
	for o := OutcomeSolved; o <= OutcomeBudgetExceeded; o++ {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// Result is the output of a search.
// Moves is empty unless Outcome is OutcomeSolved.
type Result struct {
	Outcome  Outcome
	Moves    []types.Move
	Expanded int // states popped from the frontier
	Enqueued int // states ever pushed, including the start state
}

// Found returns true if the puzzle ends sorted by following Moves.
func (r Result) Found() bool {
	return r.Outcome == OutcomeSolved || r.Outcome == OutcomeAlreadySolved
}

// Progress is reported after every expansion.
type Progress struct {
	Expanded int
	Enqueued int
	Frontier int
	Budget   int
}

// Config controls a search.
type Config struct {
	Alpha      float64
	Budget     int
	OnProgress func(Progress)
}

// DefaultConfig returns the tuned search parameters.
func DefaultConfig() Config {
	return Config{
		Alpha:  DefaultAlpha,
		Budget: DefaultBudget,
	}
}

// score ranks a state reached after depth moves. Lower is better.
func score(alpha float64, state *puzzle.Puzzle, depth int) float64 {
	return alpha*state.TotalEntropy() + (1-alpha)*float64(depth)
}

// Solve searches for a move list that sorts start. start is not modified.
func Solve(start *puzzle.Puzzle, cfg Config) Result {
	visited := make(map[string]struct{})
	queue := newFrontier()
	queue.push(nil, start.Clone(), score(cfg.Alpha, start, 0))

	res := Result{Enqueued: 1}

	for queue.Len() > 0 && res.Expanded <= cfg.Budget {
		e := queue.pop()
		visited[e.state.Key()] = struct{}{}

		if e.state.IsSolved() {
			res.Expanded++
			if len(e.moves) == 0 {
				res.Outcome = OutcomeAlreadySolved
				return res
			}
			res.Outcome = OutcomeSolved
			res.Moves = e.moves
			return res
		}

		for _, m := range e.state.AvailableMoves() {
			next, err := e.state.Apply(m)
			if err != nil {
				continue
			}
			if _, seen := visited[next.Key()]; seen {
				continue
			}

			moves := make([]types.Move, len(e.moves)+1)
			copy(moves, e.moves)
			moves[len(e.moves)] = m

			queue.push(moves, next, score(cfg.Alpha, next, len(moves)))
			res.Enqueued++
		}

		res.Expanded++
		if cfg.OnProgress != nil {
			cfg.OnProgress(Progress{
				Expanded: res.Expanded,
				Enqueued: res.Enqueued,
				Frontier: queue.Len(),
				Budget:   cfg.Budget,
			})
		}
	}

	if queue.Len() == 0 {
		res.Outcome = OutcomeNoSolution
	} else {
		res.Outcome = OutcomeBudgetExceeded
	}
	return res
}
