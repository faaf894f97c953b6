// Package puzzle provides the water-sort puzzle model: colors, tubes and
// whole puzzle states with their pour rules.
package puzzle

import "fmt"

// Color represents one unit of a substance.
// Colors compare by the full tuple, so two colors with the same channels
// but different names are distinct.
type Color struct {
	Name string
	R    uint8
	G    uint8
	B    uint8
}

// NewColor creates a named color.
func NewColor(name string, r, g, b uint8) Color {
	return Color{Name: name, R: r, G: g, B: b}
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Name
}
