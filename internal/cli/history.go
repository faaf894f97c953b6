package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/watersort/internal/analysis"
	"github.com/SeamusWaldron/watersort/internal/storage"
)

var (
	listLimit int
	showLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previous solves",
	Long:  `Commands for listing, showing, and deleting recorded solver runs.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solves",
	Long:  `Display a list of recent solver runs with basic statistics.`,
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long: `Display detailed information about a solver run including:
- Puzzle metadata and search parameters
- Search statistics
- The initial puzzle and the move sequence

Use --last to show the most recent solve.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <solve-id>",
	Short: "Delete a solve",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "Number of solves to show")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")

	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)
	solves, err := repo.List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Solve a puzzle with: watersort solve <puzzle.toml>")
		return nil
	}

	total, err := repo.Count()
	if err != nil {
		return err
	}

	fmt.Printf("Recent solves (showing %d of %s):\n", len(solves), humanize.Comma(int64(total)))
	fmt.Println()
	fmt.Printf("%-36s  %-14s  %-20s  %-15s  %-6s  %s\n", "ID", "When", "Puzzle", "Outcome", "Moves", "Expanded")
	fmt.Println("------------------------------------  --------------  --------------------  ---------------  ------  --------")

	for _, s := range solves {
		name := "-"
		if s.PuzzleName != nil {
			name = truncate(*s.PuzzleName, 20)
		}
		moves := "-"
		if len(s.Moves) > 0 {
			moves = fmt.Sprintf("%d", len(s.Moves))
		}

		fmt.Printf("%-36s  %-14s  %-20s  %-15s  %-6s  %s\n",
			s.SolveID,
			humanize.Time(s.CreatedAt),
			name,
			s.Outcome,
			moves,
			humanize.Comma(int64(s.Expanded)),
		)
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	var solveArgs []string
	if !showLast {
		if len(args) == 0 {
			return fmt.Errorf("please provide a solve ID or use --last")
		}
		solveArgs = args
	}

	s, err := findSolve(cmd.Context(), solveArgs)
	if err != nil {
		return err
	}

	fmt.Println("Solve Details")
	fmt.Println("=============")
	fmt.Println()

	fmt.Printf("ID:       %s\n", s.SolveID)
	fmt.Printf("Created:  %s (%s)\n", s.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(s.CreatedAt))
	if s.PuzzleName != nil {
		fmt.Printf("Puzzle:   %s\n", *s.PuzzleName)
	}
	fmt.Printf("Tubes:    %d x %d\n", s.TubeCount, s.Capacity)
	fmt.Printf("Hash:     %s\n", truncate(s.Fingerprint, 16))
	fmt.Println()

	fmt.Println("Search")
	fmt.Println("------")
	fmt.Printf("Outcome:  %s\n", s.Outcome)
	fmt.Printf("Alpha:    %.2f\n", s.Alpha)
	fmt.Printf("Budget:   %s\n", humanize.Comma(int64(s.Budget)))
	fmt.Printf("Expanded: %s\n", humanize.Comma(int64(s.Expanded)))
	fmt.Printf("Enqueued: %s\n", humanize.Comma(int64(s.Enqueued)))
	fmt.Printf("Time:     %s\n", formatDuration(time.Duration(s.DurationMs)*time.Millisecond))
	fmt.Println()

	p, err := storedPuzzle(s)
	if err != nil {
		return err
	}
	fmt.Println("Puzzle")
	fmt.Println("------")
	fmt.Println(renderPuzzle(p))
	fmt.Println()

	if len(s.Moves) == 0 {
		return nil
	}

	fmt.Printf("Moves (%d)\n", len(s.Moves))
	fmt.Println("-----")
	printMoves(s.Moves)
	fmt.Println()

	sum, err := analysis.Summarize(p, s.Moves)
	if err != nil {
		return err
	}
	printSummary(sum)

	return nil
}

func printSummary(sum *analysis.Summary) {
	fmt.Println("Analysis")
	fmt.Println("--------")
	fmt.Printf("Units poured: %d (%.2f per pour)\n", sum.UnitsPoured, sum.AverageUnitsPerPour())
	fmt.Printf("Reversals:    %d\n", sum.Reversals)
	fmt.Printf("Entropy:      %.3f -> %.3f\n", sum.StartEntropy, lastEntropy(sum))

	if len(sum.Completions) > 0 {
		fmt.Println()
		for _, c := range sum.Completions {
			fmt.Printf("  Step %-4d tube %d complete (%s)\n", c.Step+1, c.Tube+1, c.Color)
		}
	}
}

func lastEntropy(sum *analysis.Summary) float64 {
	if len(sum.Entropy) == 0 {
		return sum.StartEntropy
	}
	return sum.Entropy[len(sum.Entropy)-1]
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)
	s, err := repo.Get(args[0])
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("solve not found: %s", args[0])
	}

	if err := repo.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
