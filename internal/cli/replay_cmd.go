package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/watersort/internal/playback"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/internal/puzzlefile"
	"github.com/SeamusWaldron/watersort/internal/solver"
	"github.com/SeamusWaldron/watersort/internal/storage"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

var playCmd = &cobra.Command{
	Use:     "play [puzzle.toml | solve-id]",
	Aliases: []string{"replay"},
	Short:   "Step through a solution interactively",
	Long: `Play back a solution one pour at a time.

The argument is either a puzzle file, which is solved first with the
default parameters, or the ID of a solve from the history.

Usage:
  watersort play level.toml           # Solve and play
  watersort play <solve-id>           # Play a recorded solve
  watersort play --last               # Play the most recent solve
  watersort play level.toml --step    # Start paused`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var (
	playSpeed float64
	playStep  bool
	playLast  bool
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Float64VarP(&playSpeed, "speed", "s", 1.0, "Pours per second")
	playCmd.Flags().BoolVarP(&playStep, "step", "t", false, "Start paused and step manually")
	playCmd.Flags().BoolVar(&playLast, "last", false, "Play the most recent recorded solve")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	var title string
	var initial *puzzle.Puzzle
	var moves []types.Move

	switch {
	case len(args) == 1 && fileExists(args[0]):
		f, p, err := loadPuzzle(args[0])
		if err != nil {
			return err
		}
		res := solver.Solve(p, solver.DefaultConfig())
		logger.Debug("Solved", "outcome", res.Outcome, "expanded", res.Expanded)
		if !res.Found() {
			return fmt.Errorf("cannot play %s: %s", args[0], res.Outcome)
		}
		title, initial, moves = f.Name, p, res.Moves
		if title == "" {
			title = args[0]
		}

	case len(args) == 1 || playLast:
		s, err := findSolve(cmd.Context(), args)
		if err != nil {
			return err
		}
		p, err := storedPuzzle(s)
		if err != nil {
			return err
		}
		if s.PuzzleName != nil {
			title = *s.PuzzleName
		} else {
			title = s.SolveID[:8]
		}
		initial, moves = p, s.Moves

	default:
		return fmt.Errorf("please provide a puzzle file, a solve ID, or use --last")
	}

	model := newPlayModel(title, initial, moves, playSpeed, playStep)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	if m, ok := final.(*playModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// findSolve loads the solve named in args, or the latest one.
func findSolve(ctx context.Context, args []string) (*storage.Solve, error) {
	db, err := openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)

	if len(args) == 0 {
		solves, err := repo.List(1)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest solve: %w", err)
		}
		if len(solves) == 0 {
			return nil, fmt.Errorf("no solves found")
		}
		return &solves[0], nil
	}

	s, err := repo.Get(args[0])
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("solve not found: %s", args[0])
	}
	return s, nil
}

// storedPuzzle rebuilds the puzzle saved with a solve.
func storedPuzzle(s *storage.Solve) (*puzzle.Puzzle, error) {
	f, err := puzzlefile.Decode(strings.NewReader(s.PuzzleTOML))
	if err != nil {
		return nil, fmt.Errorf("failed to read stored puzzle: %w", err)
	}
	p, err := f.Puzzle(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored puzzle: %w", err)
	}
	return p, nil
}

// Replay model
type playModel struct {
	title    string
	player   *playback.Player
	bar      progress.Model
	speed    float64
	paused   bool
	last     *playback.Step
	tickID   int
	err      error
	quitting bool
}

func newPlayModel(title string, initial *puzzle.Puzzle, moves []types.Move, speed float64, paused bool) *playModel {
	if speed <= 0 {
		speed = 1
	}
	return &playModel{
		title:  title,
		player: playback.NewPlayer(initial, moves),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		speed:  speed,
		paused: paused,
	}
}

type playTickMsg struct{ id int }

func (m *playModel) Init() tea.Cmd {
	if m.paused {
		return nil
	}
	return m.scheduleTick()
}

// scheduleTick starts a new tick chain. Ticks from older chains are ignored.
func (m *playModel) scheduleTick() tea.Cmd {
	m.tickID++
	id := m.tickID
	delay := time.Duration(float64(time.Second) / m.speed)
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return playTickMsg{id: id}
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n":
			if !m.paused {
				m.paused = true
				return m, nil
			}
			return m, m.step()

		case "p":
			m.paused = !m.paused
			if !m.paused && !m.player.Done() {
				return m, m.scheduleTick()
			}

		case "r":
			m.player.Reset()
			m.last = nil

		case "+", "=":
			m.speed *= 2
			if m.speed > 16 {
				m.speed = 16
			}

		case "-":
			m.speed /= 2
			if m.speed < 0.25 {
				m.speed = 0.25
			}
		}

	case playTickMsg:
		if m.paused || msg.id != m.tickID {
			return m, nil
		}
		if cmd := m.step(); cmd != nil {
			return m, cmd
		}
		if m.player.Done() {
			m.paused = true
			return m, nil
		}
		return m, m.scheduleTick()
	}

	return m, nil
}

// step plays one pour. A divergence ends the program.
func (m *playModel) step() tea.Cmd {
	if m.player.Done() {
		return nil
	}
	s, err := m.player.Next()
	if err != nil {
		m.err = err
		m.quitting = true
		return tea.Quit
	}
	m.last = &s
	return nil
}

func (m *playModel) View() string {
	if m.quitting {
		if m.err != nil {
			return errorStyle.Render(m.err.Error()) + "\n"
		}
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Water Sort Replay: " + m.title))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Step %d/%d", m.player.Position(), m.player.Total())
	if m.paused {
		status += " [PAUSED]"
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString(fmt.Sprintf(" (%.2g pours/s)\n", m.speed))

	percent := 1.0
	if m.player.Total() > 0 {
		percent = float64(m.player.Position()) / float64(m.player.Total())
	}
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString("\n\n")

	if m.last != nil {
		mv := m.last.Move
		b.WriteString(fmt.Sprintf("Last:  %s\n", moveStyle.Render(fmt.Sprintf("pour from tube %d to tube %d", mv.From+1, mv.To+1))))
	}

	state := m.player.State()
	if next, ok := m.player.Upcoming(); ok {
		b.WriteString(fmt.Sprintf("Next:  %s\n\n", moveStyle.Render(fmt.Sprintf("pour from tube %d to tube %d", next.From+1, next.To+1))))
		b.WriteString(arrowRow(state.Len(), next))
	} else {
		b.WriteString(fmt.Sprintf("State: %s\n\n", solvedStyle.Render("SOLVED!")))
	}
	b.WriteString("\n")
	b.WriteString(renderPuzzle(state))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("SPACE/n=next  p=play/pause  r=reset  +/-=speed  q=quit"))
	b.WriteString("\n")

	return b.String()
}
