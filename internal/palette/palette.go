// Package palette manages the named color palette file.
package palette

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/watersort/internal/puzzle"
)

var (
	ErrNotFound  = errors.New("color not found in palette")
	ErrDuplicate = errors.New("color name already in palette")
)

// Entry is one persisted color.
type Entry struct {
	Name string `json:"name"`
	R    uint8  `json:"r"`
	G    uint8  `json:"g"`
	B    uint8  `json:"b"`
}

// Color converts the entry to a puzzle color.
func (e Entry) Color() puzzle.Color {
	return puzzle.NewColor(e.Name, e.R, e.G, e.B)
}

// Palette manages the palette file.
type Palette struct {
	path    string
	entries []Entry
}

// DefaultPath returns the default palette file path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".watersort")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "palette.json"), nil
}

// Open loads the palette at path. A missing file yields an empty palette.
func Open(path string) (*Palette, error) {
	p := &Palette{path: path}

	if err := p.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return p, nil
}

// OpenDefault opens the palette at the default path.
func OpenDefault() (*Palette, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Load loads the palette from disk.
func (p *Palette) Load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse palette %s: %w", p.path, err)
	}
	p.entries = entries
	return nil
}

// Save writes the palette to disk.
func (p *Palette) Save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create palette directory: %w", err)
	}

	data, err := json.MarshalIndent(p.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal palette: %w", err)
	}

	if err := os.WriteFile(p.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write palette file: %w", err)
	}

	return nil
}

// Path returns the palette file path.
func (p *Palette) Path() string {
	return p.path
}

// Entries returns a copy of the palette in stored order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Colors returns the palette as puzzle colors.
func (p *Palette) Colors() []puzzle.Color {
	out := make([]puzzle.Color, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Color()
	}
	return out
}

// Lookup finds a color by name, ignoring case.
func (p *Palette) Lookup(name string) (puzzle.Color, error) {
	for _, e := range p.entries {
		if strings.EqualFold(e.Name, name) {
			return e.Color(), nil
		}
	}
	return puzzle.Color{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Add appends a color and saves the palette.
func (p *Palette) Add(c puzzle.Color) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("color name must not be empty")
	}
	if _, err := p.Lookup(c.Name); err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicate, c.Name)
	}
	p.entries = append(p.entries, Entry{Name: c.Name, R: c.R, G: c.G, B: c.B})
	return p.Save()
}

// Remove deletes a color by name and saves the palette.
func (p *Palette) Remove(name string) error {
	for i, e := range p.entries {
		if strings.EqualFold(e.Name, name) {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return p.Save()
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// ParseRGB parses "R G B" with each channel in 0-255.
func ParseRGB(s string) (r, g, b uint8, err error) {
	var vals [3]uint8
	fields := strings.Fields(strings.NewReplacer(",", " ").Replace(s))
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 channels, got %d", len(fields))
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v > 255 {
			return 0, 0, 0, fmt.Errorf("invalid channel %q", f)
		}
		vals[i] = uint8(v)
	}
	return vals[0], vals[1], vals[2], nil
}
