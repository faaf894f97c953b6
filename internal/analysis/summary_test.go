package analysis

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/watersort/internal/playback"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

var (
	red  = puzzle.NewColor("Red", 255, 0, 0)
	blue = puzzle.NewColor("Blue", 0, 0, 255)
)

func TestSummarize(t *testing.T) {
	p := puzzle.New(
		puzzle.NewTube(2, red, blue),
		puzzle.NewTube(2, blue, red),
		puzzle.NewTube(2),
	)
	moves := []types.Move{{From: 0, To: 2}, {From: 1, To: 0}, {From: 2, To: 1}}

	s, err := Summarize(p, moves)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if s.Moves != 3 || s.UnitsPoured != 3 {
		t.Errorf("expected 3 moves and 3 units, got %d and %d", s.Moves, s.UnitsPoured)
	}
	if s.AverageUnitsPerPour() != 1 {
		t.Errorf("expected 1 unit per pour, got %v", s.AverageUnitsPerPour())
	}
	if len(s.Entropy) != 3 || s.Entropy[2] != 0 {
		t.Errorf("expected entropy to reach 0, got %v", s.Entropy)
	}
	if s.StartEntropy <= 0 {
		t.Errorf("expected positive start entropy, got %v", s.StartEntropy)
	}

	want := []Completion{{Step: 1, Tube: 0, Color: "Red"}, {Step: 2, Tube: 1, Color: "Blue"}}
	if len(s.Completions) != len(want) {
		t.Fatalf("expected %v, got %v", want, s.Completions)
	}
	for i := range want {
		if s.Completions[i] != want[i] {
			t.Errorf("completion %d: expected %v, got %v", i, want[i], s.Completions[i])
		}
	}

	if s.PoursFrom[0] != 1 || s.PoursFrom[1] != 1 || s.PoursFrom[2] != 1 {
		t.Errorf("unexpected pours from %v", s.PoursFrom)
	}
	if s.PoursInto[0] != 1 || s.PoursInto[1] != 1 || s.PoursInto[2] != 1 {
		t.Errorf("unexpected pours into %v", s.PoursInto)
	}
}

func TestSummarizeMultiUnitPour(t *testing.T) {
	p := puzzle.New(puzzle.NewTube(3, blue, red, red), puzzle.NewTube(3))
	s, err := Summarize(p, []types.Move{{From: 0, To: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if s.UnitsPoured != 2 {
		t.Errorf("expected 2 units, got %d", s.UnitsPoured)
	}
}

func TestSummarizeDivergence(t *testing.T) {
	p := puzzle.New(puzzle.NewTube(2, red), puzzle.NewTube(2))
	_, err := Summarize(p, []types.Move{{From: 1, To: 0}})
	if !errors.Is(err, playback.ErrReplayDiverged) {
		t.Errorf("expected ErrReplayDiverged, got %v", err)
	}
}

func TestCountReversals(t *testing.T) {
	tests := []struct {
		name  string
		moves []types.Move
		want  int
	}{
		{"empty", nil, 0},
		{"none", []types.Move{{From: 0, To: 1}, {From: 1, To: 2}}, 0},
		{"one", []types.Move{{From: 0, To: 1}, {From: 1, To: 0}}, 1},
		{"chain", []types.Move{{From: 0, To: 1}, {From: 1, To: 0}, {From: 0, To: 1}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountReversals(tt.moves); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
