// Package puzzlefile reads and writes puzzle definitions in TOML.
//
// A puzzle file lists tube contents bottom to top by color name:
//
//	name = "level 12"
//	capacity = 4
//	tubes = [
//	  ["Red", "Blue", "Red", "Blue"],
//	  ["Blue", "Red", "Blue", "Red"],
//	  [],
//	]
//
//	[[colors]]
//	name = "Red"
//	rgb = [255, 0, 0]
//
// Color names not defined in the file are resolved through a Lookup,
// normally the user's palette.
package puzzlefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/SeamusWaldron/watersort/internal/puzzle"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid puzzle file")

// Lookup resolves a color by name.
type Lookup interface {
	Lookup(name string) (puzzle.Color, error)
}

// ColorDef defines a color inline.
type ColorDef struct {
	Name string `toml:"name"`
	RGB  []int  `toml:"rgb"`
}

// File is the on-disk puzzle definition.
type File struct {
	Name     string     `toml:"name,omitempty"`
	Capacity int        `toml:"capacity"`
	Colors   []ColorDef `toml:"colors,omitempty"`
	Tubes    [][]string `toml:"tubes"`
}

// Decode parses a puzzle file. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return &f, nil
}

// Load reads and parses the puzzle file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes the file as TOML.
func (f *File) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("failed to encode puzzle: %w", err)
	}
	return nil
}

// Save writes the file to path, creating parent directories.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create puzzle directory: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}
	return nil
}

// Puzzle builds the puzzle described by the file. Inline colors take
// precedence over lookup; lookup may be nil.
func (f *File) Puzzle(lookup Lookup) (*puzzle.Puzzle, error) {
	if f.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalid, f.Capacity)
	}
	if len(f.Tubes) == 0 {
		return nil, fmt.Errorf("%w: no tubes", ErrInvalid)
	}

	inline := make(map[string]puzzle.Color, len(f.Colors))
	for _, cd := range f.Colors {
		c, err := cd.color()
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(cd.Name)
		if _, dup := inline[key]; dup {
			return nil, fmt.Errorf("%w: color %q defined twice", ErrInvalid, cd.Name)
		}
		inline[key] = c
	}

	resolve := func(name string) (puzzle.Color, error) {
		if c, ok := inline[strings.ToLower(name)]; ok {
			return c, nil
		}
		if lookup == nil {
			return puzzle.Color{}, fmt.Errorf("%w: unknown color %q", ErrInvalid, name)
		}
		c, err := lookup.Lookup(name)
		if err != nil {
			return puzzle.Color{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return c, nil
	}

	tubes := make([]*puzzle.Tube, len(f.Tubes))
	for i, names := range f.Tubes {
		if len(names) > f.Capacity {
			return nil, fmt.Errorf("%w: tube %d holds %d units, capacity is %d", ErrInvalid, i+1, len(names), f.Capacity)
		}
		content := make([]puzzle.Color, len(names))
		for j, name := range names {
			c, err := resolve(name)
			if err != nil {
				return nil, fmt.Errorf("tube %d: %w", i+1, err)
			}
			content[j] = c
		}
		tubes[i] = puzzle.NewTube(f.Capacity, content...)
	}

	return puzzle.New(tubes...), nil
}

func (cd ColorDef) color() (puzzle.Color, error) {
	if strings.TrimSpace(cd.Name) == "" {
		return puzzle.Color{}, fmt.Errorf("%w: color with empty name", ErrInvalid)
	}
	if len(cd.RGB) != 3 {
		return puzzle.Color{}, fmt.Errorf("%w: color %q needs 3 channels", ErrInvalid, cd.Name)
	}
	for _, v := range cd.RGB {
		if v < 0 || v > 255 {
			return puzzle.Color{}, fmt.Errorf("%w: color %q channel %d out of range", ErrInvalid, cd.Name, v)
		}
	}
	return puzzle.NewColor(cd.Name, uint8(cd.RGB[0]), uint8(cd.RGB[1]), uint8(cd.RGB[2])), nil
}

// FromPuzzle builds a self-contained file for p with every color inline.
// All tubes are assumed to share the first tube's capacity.
func FromPuzzle(name string, p *puzzle.Puzzle) *File {
	f := &File{Name: name, Capacity: p.Capacity()}
	for _, c := range p.Colors() {
		f.Colors = append(f.Colors, ColorDef{Name: c.Name, RGB: []int{int(c.R), int(c.G), int(c.B)}})
	}
	f.Tubes = make([][]string, p.Len())
	for i := 0; i < p.Len(); i++ {
		colors := p.Tube(i).Colors()
		names := make([]string, len(colors))
		for j, c := range colors {
			names[j] = c.Name
		}
		f.Tubes[i] = names
	}
	return f
}
