package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/watersort/pkg/types"
)

// Solve represents one solver run in the database.
type Solve struct {
	SolveID     string
	CreatedAt   time.Time
	PuzzleName  *string
	Fingerprint string
	TubeCount   int
	Capacity    int
	Alpha       float64
	Budget      int
	Outcome     string
	Moves       []types.Move
	Expanded    int
	Enqueued    int
	DurationMs  int64
	PuzzleTOML  string
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const solveColumns = `solve_id, created_at, puzzle_name, fingerprint, tube_count, capacity,
	alpha, budget, outcome, moves_json, expanded, enqueued, duration_ms, puzzle_toml`

// Create stores a solve and returns its new ID. SolveID and CreatedAt are
// assigned here and written back to s.
func (r *SolveRepository) Create(s *Solve) (string, error) {
	s.SolveID = uuid.New().String()
	s.CreatedAt = time.Now().UTC()

	moves := s.Moves
	if moves == nil {
		moves = []types.Move{}
	}
	movesJSON, err := json.Marshal(moves)
	if err != nil {
		return "", fmt.Errorf("failed to marshal moves: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO solves (`+solveColumns+`, move_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.SolveID, s.CreatedAt.Format(timeLayout), s.PuzzleName, s.Fingerprint,
		s.TubeCount, s.Capacity, s.Alpha, s.Budget, s.Outcome, string(movesJSON),
		s.Expanded, s.Enqueued, s.DurationMs, s.PuzzleTOML, len(moves))

	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return s.SolveID, nil
}

// Get retrieves a solve by ID. It returns nil, nil when no solve matches.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID)
	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

// FindLatest returns the newest solve of a puzzle run with the same
// parameters, or nil, nil if there is none.
func (r *SolveRepository) FindLatest(fingerprint string, alpha float64, budget int) (*Solve, error) {
	row := r.db.QueryRow(`
		SELECT `+solveColumns+`
		FROM solves
		WHERE fingerprint = ? AND alpha = ? AND budget = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, fingerprint, alpha, budget)

	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find solve: %w", err)
	}
	return s, nil
}

// List returns the most recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT `+solveColumns+`
		FROM solves
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}

	return solves, rows.Err()
}

// Count returns the number of stored solves.
func (r *SolveRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM solves").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return count, nil
}

// Delete removes a solve. Deleting a missing solve is not an error.
func (r *SolveRepository) Delete(solveID string) error {
	if _, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID); err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (*Solve, error) {
	var s Solve
	var createdAt, movesJSON string

	err := row.Scan(
		&s.SolveID, &createdAt, &s.PuzzleName, &s.Fingerprint,
		&s.TubeCount, &s.Capacity, &s.Alpha, &s.Budget, &s.Outcome,
		&movesJSON, &s.Expanded, &s.Enqueued, &s.DurationMs, &s.PuzzleTOML,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	if err := json.Unmarshal([]byte(movesJSON), &s.Moves); err != nil {
		return nil, fmt.Errorf("failed to parse moves: %w", err)
	}

	return &s, nil
}
