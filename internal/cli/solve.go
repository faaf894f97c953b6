package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/watersort/internal/analysis"
	"github.com/SeamusWaldron/watersort/internal/playback"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/internal/puzzlefile"
	"github.com/SeamusWaldron/watersort/internal/solver"
	"github.com/SeamusWaldron/watersort/internal/storage"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

var (
	solveAlpha     float64
	solveBudget    int
	solveNoHistory bool
	solveFresh     bool
	solveSteps     bool
)

// progressEvery controls how often search progress is logged.
const progressEvery = 500

var solveCmd = &cobra.Command{
	Use:   "solve <puzzle.toml>",
	Short: "Find a pour sequence that sorts a puzzle",
	Long: `Search for a sequence of pours that sorts every tube.

The search is best-first and bounded: it gives up after --budget states
have been expanded. Results are recorded in the history database, and an
earlier solution of an identical puzzle with the same parameters is reused
unless --fresh is given.

Use --steps to print every pour with the state of the tubes before it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().Float64Var(&solveAlpha, "alpha", solver.DefaultAlpha, "Weight of disorder against path length")
	solveCmd.Flags().IntVar(&solveBudget, "budget", solver.DefaultBudget, "Maximum number of states to expand")
	solveCmd.Flags().BoolVar(&solveNoHistory, "no-history", false, "Do not read or write the history database")
	solveCmd.Flags().BoolVar(&solveFresh, "fresh", false, "Ignore previous solutions of the same puzzle")
	solveCmd.Flags().BoolVar(&solveSteps, "steps", false, "Print every step of the solution")
}

func runSolve(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	if solveBudget < 0 {
		return fmt.Errorf("budget must not be negative")
	}

	f, p, err := loadPuzzle(args[0])
	if err != nil {
		return err
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	logger.Debug("Loaded puzzle", "name", f.Name, "tubes", p.Len(), "capacity", p.Capacity(),
		"entropy", fmt.Sprintf("%.3f", p.TotalEntropy()))

	var repo *storage.SolveRepository
	if !solveNoHistory {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()
		repo = storage.NewSolveRepository(db)
	}

	var res solver.Result
	cached := false
	if repo != nil && !solveFresh {
		res, cached = cachedResult(logger, repo, p)
	}

	if !cached {
		var bar *searchBar
		if !verbose {
			bar = newSearchBar(os.Stderr)
		}
		res = search(logger, repo, f.Name, p, bar)
	}

	fmt.Printf("Outcome:  %s\n", res.Outcome)
	if !cached {
		fmt.Printf("Expanded: %s states (%s enqueued)\n", humanize.Comma(int64(res.Expanded)), humanize.Comma(int64(res.Enqueued)))
	}

	switch res.Outcome {
	case solver.OutcomeAlreadySolved:
		fmt.Println("The puzzle is already sorted.")
		return nil
	case solver.OutcomeNoSolution:
		return fmt.Errorf("no solution exists for %s", args[0])
	case solver.OutcomeBudgetExceeded:
		return fmt.Errorf("no solution found within %s expansions; try a larger --budget", humanize.Comma(int64(solveBudget)))
	}

	fmt.Printf("Moves:    %d\n", len(res.Moves))
	fmt.Println()
	printMoves(res.Moves)

	if sum, err := analysis.Summarize(p, res.Moves); err == nil {
		logger.Debug("Solution", "units", sum.UnitsPoured, "reversals", sum.Reversals, "completions", len(sum.Completions))
	}

	if solveSteps {
		fmt.Println()
		final := playback.MustReplay(p, res.Moves, func(s playback.Step) {
			narrateStep(os.Stdout, s)
		})
		fmt.Println("Solved:")
		fmt.Println(renderPuzzle(final))
	}

	return nil
}

// cachedResult looks up a previous solution of an identical puzzle. Entries
// that no longer replay cleanly are ignored.
func cachedResult(logger *log.Logger, repo *storage.SolveRepository, p *puzzle.Puzzle) (solver.Result, bool) {
	prev, err := repo.FindLatest(p.Fingerprint(), solveAlpha, solveBudget)
	if err != nil {
		logger.Warn("History lookup failed", "err", err)
		return solver.Result{}, false
	}
	if prev == nil {
		return solver.Result{}, false
	}

	outcome, ok := solver.ParseOutcome(prev.Outcome)
	if !ok || outcome != solver.OutcomeSolved {
		return solver.Result{}, false
	}

	final, err := playback.Replay(p, prev.Moves, nil)
	if err != nil || !final.IsSolved() {
		logger.Warn("Ignoring stale history entry", "solve", prev.SolveID)
		return solver.Result{}, false
	}

	logger.Info("Reusing previous solution", "solve", prev.SolveID[:8], "age", humanize.Time(prev.CreatedAt))
	return solver.Result{
		Outcome:  outcome,
		Moves:    prev.Moves,
		Expanded: prev.Expanded,
		Enqueued: prev.Enqueued,
	}, true
}

// search runs the solver and records the run when repo is set.
// bar may be nil.
func search(logger *log.Logger, repo *storage.SolveRepository, name string, p *puzzle.Puzzle, bar *searchBar) solver.Result {
	cfg := solver.Config{
		Alpha:  solveAlpha,
		Budget: solveBudget,
		OnProgress: func(pr solver.Progress) {
			if bar != nil {
				bar.update(pr)
			}
			if pr.Expanded%progressEvery == 0 {
				logger.Debug("Searching", "expanded", pr.Expanded, "frontier", pr.Frontier, "budget", pr.Budget)
			}
		},
	}

	t := newTimer(logger)
	res := solver.Solve(p, cfg)
	if bar != nil {
		bar.clear()
	}
	t.done("Search finished", "outcome", res.Outcome, "expanded", res.Expanded)

	if repo == nil {
		return res
	}

	if err := record(repo, name, p, res, t.elapsed().Milliseconds()); err != nil {
		logger.Warn("Failed to record solve", "err", err)
	}
	return res
}

func record(repo *storage.SolveRepository, name string, p *puzzle.Puzzle, res solver.Result, durationMs int64) error {
	src, err := encodePuzzle(puzzlefile.FromPuzzle(name, p))
	if err != nil {
		return err
	}

	s := &storage.Solve{
		Fingerprint: p.Fingerprint(),
		TubeCount:   p.Len(),
		Capacity:    p.Capacity(),
		Alpha:       solveAlpha,
		Budget:      solveBudget,
		Outcome:     res.Outcome.String(),
		Moves:       res.Moves,
		Expanded:    res.Expanded,
		Enqueued:    res.Enqueued,
		DurationMs:  durationMs,
		PuzzleTOML:  src,
	}
	if name != "" {
		s.PuzzleName = &name
	}

	if _, err := repo.Create(s); err != nil {
		return err
	}
	return nil
}

// printMoves prints the move list in lines of about 60 characters.
func printMoves(moves []types.Move) {
	var line string
	for _, m := range moves {
		n := m.Notation()
		switch {
		case line == "":
			line = n
		case len(line)+len(n)+1 > 60:
			fmt.Printf("  %s\n", line)
			line = n
		default:
			line += " " + n
		}
	}
	if line != "" {
		fmt.Printf("  %s\n", line)
	}
}
