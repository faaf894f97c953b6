package puzzlefile

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SeamusWaldron/watersort/internal/puzzle"
)

const sample = `
name = "sample"
capacity = 2
tubes = [
  ["Red", "Blue"],
  ["Blue", "Red"],
  [],
]

[[colors]]
name = "Red"
rgb = [255, 0, 0]

[[colors]]
name = "Blue"
rgb = [0, 0, 255]
`

type mapLookup map[string]puzzle.Color

func (m mapLookup) Lookup(name string) (puzzle.Color, error) {
	if c, ok := m[name]; ok {
		return c, nil
	}
	return puzzle.Color{}, fmt.Errorf("no color %s", name)
}

func TestDecodeAndBuild(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if f.Name != "sample" || f.Capacity != 2 || len(f.Tubes) != 3 {
		t.Fatalf("unexpected file %+v", f)
	}

	p, err := f.Puzzle(nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	red := puzzle.NewColor("Red", 255, 0, 0)
	blue := puzzle.NewColor("Blue", 0, 0, 255)
	want := puzzle.New(
		puzzle.NewTube(2, red, blue),
		puzzle.NewTube(2, blue, red),
		puzzle.NewTube(2),
	)
	if !p.Equal(want) {
		t.Errorf("expected %s, got %s", want, p)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("capacity = 2\ntubes = [[]]\nextra = 1\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestBuildUsesLookup(t *testing.T) {
	f := &File{Capacity: 2, Tubes: [][]string{{"Teal"}, {}}}
	teal := puzzle.NewColor("Teal", 0, 128, 128)

	p, err := f.Puzzle(mapLookup{"Teal": teal})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if top, _ := p.Tube(0).Top(); top != teal {
		t.Errorf("expected teal, got %v", top)
	}

	if _, err := f.Puzzle(nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid without lookup, got %v", err)
	}
	if _, err := f.Puzzle(mapLookup{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for unresolved color, got %v", err)
	}
}

func TestBuildValidation(t *testing.T) {
	red := ColorDef{Name: "Red", RGB: []int{255, 0, 0}}
	tests := []struct {
		name string
		file File
	}{
		{"zero capacity", File{Capacity: 0, Tubes: [][]string{{}}}},
		{"no tubes", File{Capacity: 2}},
		{"overfull tube", File{Capacity: 1, Colors: []ColorDef{red}, Tubes: [][]string{{"Red", "Red"}}}},
		{"bad channel", File{Capacity: 1, Colors: []ColorDef{{Name: "X", RGB: []int{300, 0, 0}}}, Tubes: [][]string{{}}}},
		{"short rgb", File{Capacity: 1, Colors: []ColorDef{{Name: "X", RGB: []int{1, 2}}}, Tubes: [][]string{{}}}},
		{"duplicate color", File{Capacity: 1, Colors: []ColorDef{red, red}, Tubes: [][]string{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.file.Puzzle(nil); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestFromPuzzleRoundTrip(t *testing.T) {
	red := puzzle.NewColor("Red", 255, 0, 0)
	green := puzzle.NewColor("Green", 0, 255, 0)
	p := puzzle.New(
		puzzle.NewTube(3, red, green),
		puzzle.NewTube(3, green, green, red),
		puzzle.NewTube(3),
	)

	path := filepath.Join(t.TempDir(), "out", "level.toml")
	if err := FromPuzzle("level", p).Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	got, err := f.Puzzle(nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !got.Equal(p) {
		t.Errorf("round trip mismatch: %s vs %s", got, p)
	}
	if f.Name != "level" {
		t.Errorf("expected name level, got %q", f.Name)
	}
}

func TestEncodeWritesTubes(t *testing.T) {
	f := &File{Capacity: 2, Tubes: [][]string{{"A"}, {}}}
	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "tubes") || !strings.Contains(buf.String(), "capacity = 2") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
