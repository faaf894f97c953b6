package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SeamusWaldron/watersort/internal/playback"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

var (
	red  = puzzle.NewColor("Red", 255, 0, 0)
	blue = puzzle.NewColor("Blue", 0, 0, 255)
)

func TestRenderPuzzleLayout(t *testing.T) {
	p := puzzle.New(
		puzzle.NewTube(2, red, blue),
		puzzle.NewTube(2, blue),
		puzzle.NewTube(2),
	)

	lines := strings.Split(renderPuzzle(p), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), renderPuzzle(p))
	}

	for i := 0; i < 2; i++ {
		if strings.Count(lines[i], "│") != 6 {
			t.Errorf("line %d: expected 6 walls, got %q", i, lines[i])
		}
	}
	if lines[2] != "└──┘ └──┘ └──┘ " {
		t.Errorf("unexpected footer %q", lines[2])
	}
	if lines[3] != " 01   02   03  " {
		t.Errorf("unexpected labels %q", lines[3])
	}
}

func TestArrowRow(t *testing.T) {
	tests := []struct {
		name  string
		tubes int
		move  types.Move
		want  string
	}{
		{"left to right", 3, types.Move{From: 0, To: 2}, " ↑↑  " + "     " + " ↓↓  "},
		{"right to left", 3, types.Move{From: 2, To: 0}, " ↓↓  " + "     " + " ↑↑  "},
		{"adjacent", 2, types.Move{From: 1, To: 0}, " ↓↓   ↑↑  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := arrowRow(tt.tubes, tt.move); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNarrateStepShowsStateBeforePour(t *testing.T) {
	before := puzzle.New(puzzle.NewTube(2, red), puzzle.NewTube(2))
	after, err := before.Apply(types.Move{From: 0, To: 1})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	narrateStep(&buf, playback.Step{Index: 0, Move: types.Move{From: 0, To: 1}, Before: before, After: after})

	out := buf.String()
	if !strings.HasPrefix(out, "Step 1: Pour from tube 1 to tube 2\n ↑↑   ↓↓  \n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, renderPuzzle(before)) {
		t.Errorf("expected state before pour:\n%s", out)
	}
}
