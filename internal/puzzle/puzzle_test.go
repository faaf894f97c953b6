package puzzle

import (
	"errors"
	"math"
	"testing"

	"github.com/SeamusWaldron/watersort/pkg/types"
)

func TestIsSolved(t *testing.T) {
	tests := []struct {
		name   string
		puzzle *Puzzle
		want   bool
	}{
		{"full and empty", New(NewTube(2, red, red), NewTube(2)), true},
		{"all empty", New(NewTube(3), NewTube(3)), true},
		{"partial monochrome", New(NewTube(4, red, red), NewTube(4, red, red)), false},
		{"mixed", New(NewTube(2, blue, red), NewTube(2, red, blue)), false},
		{"no tubes", New(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.puzzle.IsSolved(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAvailableMovesMatchesCanPourInto(t *testing.T) {
	p := New(
		NewTube(4, blue, red, red),
		NewTube(4, green, red),
		NewTube(4),
		NewTube(4, green, green, green, green),
		NewTube(4, blue, blue, green, blue),
	)

	listed := make(map[types.Move]bool)
	for _, m := range p.AvailableMoves() {
		listed[m] = true
	}

	for i := 0; i < p.Len(); i++ {
		for j := 0; j < p.Len(); j++ {
			if i == j {
				continue
			}
			legal := p.Tube(i).CanPourInto(p.Tube(j)) == nil
			m := types.Move{From: i, To: j}
			if legal != listed[m] {
				t.Errorf("move %s: legal=%v listed=%v", m, legal, listed[m])
			}
		}
	}
}

func TestAvailableMovesOrder(t *testing.T) {
	p := New(NewTube(3, red), NewTube(3, red), NewTube(3))
	got := p.AvailableMoves()
	// tube 2 is empty, so 3>1 and 3>2 are not legal.
	want := []types.Move{
		{From: 0, To: 1}, {From: 1, To: 0},
		{From: 0, To: 2},
		{From: 1, To: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestScenarioBHasNoMoves(t *testing.T) {
	p := New(NewTube(2, blue, red), NewTube(2, red, blue))
	if moves := p.AvailableMoves(); len(moves) != 0 {
		t.Errorf("expected no moves, got %v", moves)
	}
}

func TestApplyIsPure(t *testing.T) {
	p := New(NewTube(2, red, blue), NewTube(2, blue))
	before := p.Clone()

	next, err := p.Apply(types.Move{From: 0, To: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Equal(before) {
		t.Error("Apply modified the receiver")
	}
	want := New(NewTube(2, red), NewTube(2, blue, blue))
	if !next.Equal(want) {
		t.Errorf("expected %s, got %s", want, next)
	}
	if next.IsSolved() {
		t.Error("scenario C result should not be solved")
	}
}

func TestApplyInPlace(t *testing.T) {
	p := New(NewTube(2, red, blue), NewTube(2, blue))
	if err := p.ApplyInPlace(types.Move{From: 0, To: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Equal(New(NewTube(2, red), NewTube(2, blue, blue))) {
		t.Errorf("unexpected state %s", p)
	}
}

func TestApplyErrors(t *testing.T) {
	p := New(NewTube(2, red), NewTube(2, blue))

	tests := []struct {
		name string
		move types.Move
		want error
	}{
		{"to out of range", types.Move{From: 0, To: 5}, ErrInvalidMove},
		{"from out of range", types.Move{From: -1, To: 1}, ErrInvalidMove},
		{"same tube", types.Move{From: 1, To: 1}, ErrInvalidMove},
		{"pour rule", types.Move{From: 0, To: 1}, ErrDiffColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Apply(tt.move); !errors.Is(err, tt.want) {
				t.Errorf("Apply: expected %v, got %v", tt.want, err)
			}
			if err := p.Clone().ApplyInPlace(tt.move); !errors.Is(err, tt.want) {
				t.Errorf("ApplyInPlace: expected %v, got %v", tt.want, err)
			}
		})
	}

	var ime *InvalidMoveError
	_, err := p.Apply(types.Move{From: 0, To: 9})
	if !errors.As(err, &ime) || ime.Reason == "" {
		t.Errorf("expected InvalidMoveError with reason, got %v", err)
	}
}

func TestTotalEntropyIsSum(t *testing.T) {
	p := New(NewTube(4, red, red), NewTube(4, red, blue), NewTube(4))
	// 0.5 + (0.5 + 0.5) + 0
	if math.Abs(p.TotalEntropy()-1.5) > 1e-12 {
		t.Errorf("expected 1.5, got %v", p.TotalEntropy())
	}
	if math.Abs(p.AverageEntropy()-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %v", p.AverageEntropy())
	}
}

func TestKeyMatchesEqual(t *testing.T) {
	a := New(NewTube(3, red, blue), NewTube(3))
	b := New(NewTube(3, red, blue), NewTube(3))
	c := New(NewTube(3, blue, red), NewTube(3))
	d := New(NewTube(3, NewColor("Red", 255, 0, 1), blue), NewTube(3))

	if a.Key() != b.Key() || !a.Equal(b) {
		t.Error("equal puzzles should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("order of units must be part of the key")
	}
	if a.Key() == d.Key() {
		t.Error("color channels must be part of the key")
	}
	if a.Fingerprint() != b.Fingerprint() || len(a.Fingerprint()) != 64 {
		t.Error("fingerprint should be a stable sha256 hex string")
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := New(NewTube(3, red, blue), NewTube(3, blue))
	c := p.Clone()
	if err := c.ApplyInPlace(types.Move{From: 0, To: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Tube(0).Len() != 2 {
		t.Error("clone shares content with original")
	}
}

func TestColorsFirstAppearance(t *testing.T) {
	p := New(NewTube(3, blue, red), NewTube(3, red, green))
	got := p.Colors()
	if len(got) != 3 || got[0] != blue || got[1] != red || got[2] != green {
		t.Errorf("unexpected colors: %v", got)
	}
}
