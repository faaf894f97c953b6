package watersort

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var (
	red   = NewColor("Red", 255, 0, 0)
	blue  = NewColor("Blue", 0, 0, 255)
	green = NewColor("Green", 0, 255, 0)
)

func TestSolveAndReplay(t *testing.T) {
	p := NewPuzzle(
		NewTube(3, red, blue, red),
		NewTube(3, blue, red, blue),
		NewTube(3),
	)
	before := p.Clone()

	res := Solve(p)
	if res.Outcome != OutcomeSolved {
		t.Fatalf("expected solved, got %s", res.Outcome)
	}
	if !p.Equal(before) {
		t.Error("Solve should not modify its input")
	}

	steps := 0
	final, err := Replay(p, res.Moves, func(s Step) error {
		if s.Index != steps {
			t.Errorf("expected step %d, got %d", steps, s.Index)
		}
		steps++
		return nil
	})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if steps != len(res.Moves) {
		t.Errorf("expected %d callbacks, got %d", len(res.Moves), steps)
	}
	if !final.IsSolved() {
		t.Errorf("expected solved final state, got %s", final)
	}
}

func TestSolveOptions(t *testing.T) {
	p := NewPuzzle(
		NewTube(2, red, blue),
		NewTube(2, blue, red),
		NewTube(2),
	)

	calls := 0
	res := Solve(p, WithBudget(0), WithProgress(func(Progress) { calls++ }))
	if res.Outcome != OutcomeBudgetExceeded {
		t.Errorf("expected budget exceeded, got %s", res.Outcome)
	}
	if calls != res.Expanded {
		t.Errorf("expected %d progress calls, got %d", res.Expanded, calls)
	}

	res = Solve(p, WithAlpha(1), WithBudget(100))
	if !res.Found() {
		t.Errorf("expected a solution with alpha 1, got %s", res.Outcome)
	}
}

func TestSolveOutcomes(t *testing.T) {
	tests := []struct {
		name string
		p    *Puzzle
		want Outcome
	}{
		{"already sorted", NewPuzzle(NewTube(2, red, red), NewTube(2)), OutcomeAlreadySolved},
		{"no moves", NewPuzzle(NewTube(2, red, blue), NewTube(2, blue, red)), OutcomeNoSolution},
		{"three colors", NewPuzzle(
			NewTube(3, red, green, blue),
			NewTube(3, green, blue, red),
			NewTube(3, blue, red, green),
			NewTube(3),
			NewTube(3),
		), OutcomeSolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Solve(tt.p).Outcome; got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	p := NewPuzzle(NewTube(2, red, red), NewTube(2, blue), NewTube(2))

	tests := []struct {
		name string
		move Move
		want error
	}{
		{"empty source", Move{From: 2, To: 1}, ErrNoContent},
		{"complete source", Move{From: 0, To: 2}, ErrCantMove},
		{"full destination", Move{From: 1, To: 0}, ErrMaxCapacity},
		{"out of range", Move{From: 0, To: 5}, ErrInvalidMove},
		{"same tube", Move{From: 1, To: 1}, ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Apply(tt.move); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := Replay(p, []Move{{From: 2, To: 1}}, nil); !errors.Is(err, ErrReplayDiverged) {
		t.Errorf("expected ErrReplayDiverged, got %v", err)
	}
	if _, err := ParseMove("0>1"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.toml")
	src := `capacity = 2
tubes = [["Red", "Blue"], ["Blue", "Red"], []]

[[colors]]
name = "Red"
rgb = [255, 0, 0]

[[colors]]
name = "Blue"
rgb = [0, 0, 255]
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := NewPuzzle(NewTube(2, red, blue), NewTube(2, blue, red), NewTube(2))
	if !p.Equal(want) {
		t.Errorf("expected %s, got %s", want, p)
	}

	if err := os.WriteFile(path, []byte("capacity = 2\ntubes = [[\"Pink\"]]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidFile) {
		t.Errorf("expected ErrInvalidFile, got %v", err)
	}
}

func TestMoveNotationRoundTrip(t *testing.T) {
	moves, err := ParseMoves("1>3 2>1 3>2")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != "1>3 2>1 3>2" {
		t.Errorf("unexpected %q", got)
	}
}
