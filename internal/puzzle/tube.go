package puzzle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tube is a capacity-bounded stack of colors.
// Content index 0 is the bottom of the tube, the last element is the top.
type Tube struct {
	capacity int
	content  []Color
}

// NewTube creates a tube holding content (bottom to top).
// The content slice is copied. It panics if capacity is not positive or
// content does not fit; loaders validate input before building tubes.
func NewTube(capacity int, content ...Color) *Tube {
	if capacity < 1 {
		panic(fmt.Sprintf("puzzle: tube capacity %d is not positive", capacity))
	}
	if len(content) > capacity {
		panic(fmt.Sprintf("puzzle: %d units do not fit in a tube of capacity %d", len(content), capacity))
	}
	c := make([]Color, len(content), capacity)
	copy(c, content)
	return &Tube{capacity: capacity, content: c}
}

// Capacity returns the fixed number of units the tube can hold.
func (t *Tube) Capacity() int {
	return t.capacity
}

// Len returns the number of units currently in the tube.
func (t *Tube) Len() int {
	return len(t.content)
}

// Colors returns a copy of the content, bottom to top.
func (t *Tube) Colors() []Color {
	out := make([]Color, len(t.content))
	copy(out, t.content)
	return out
}

// At returns the unit at level i (0 is the bottom).
func (t *Tube) At(i int) (Color, bool) {
	if i < 0 || i >= len(t.content) {
		return Color{}, false
	}
	return t.content[i], true
}

// Top returns the unit nearest the tube mouth.
func (t *Tube) Top() (Color, bool) {
	return t.At(len(t.content) - 1)
}

// IsFull returns true when no more units fit.
func (t *Tube) IsFull() bool {
	return len(t.content) >= t.capacity
}

// IsEmpty returns true when the tube holds nothing.
func (t *Tube) IsEmpty() bool {
	return len(t.content) == 0
}

// IsComplete returns true when the tube is full and every unit is the same color.
// A complete tube is never poured from or into.
func (t *Tube) IsComplete() bool {
	if !t.IsFull() {
		return false
	}
	for _, c := range t.content {
		if c != t.content[0] {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the tube.
func (t *Tube) Clone() *Tube {
	return NewTube(t.capacity, t.content...)
}

// Equal reports whether both tubes have the same capacity and content.
func (t *Tube) Equal(o *Tube) bool {
	if t.capacity != o.capacity || len(t.content) != len(o.content) {
		return false
	}
	for i := range t.content {
		if t.content[i] != o.content[i] {
			return false
		}
	}
	return true
}

// CanPourInto checks whether pouring from t into dst is legal.
// Rules are checked in order and the first violation is returned.
// Neither tube is modified.
func (t *Tube) CanPourInto(dst *Tube) error {
	if dst.IsFull() {
		return ErrMaxCapacity
	}
	if t.IsEmpty() {
		return ErrNoContent
	}
	if t.IsComplete() || dst.IsComplete() {
		return ErrCantMove
	}
	if !dst.IsEmpty() && t.content[len(t.content)-1] != dst.content[len(dst.content)-1] {
		return ErrDiffColor
	}
	return nil
}

// PourInto moves the longest same-color run from the top of t into dst,
// limited by the room left in dst. Both tubes are modified.
func (t *Tube) PourInto(dst *Tube) error {
	if err := t.CanPourInto(dst); err != nil {
		return err
	}

	room := dst.capacity - len(dst.content)
	staged := make([]Color, 0, room)
	for len(t.content) > 0 && len(staged) < room {
		top := t.content[len(t.content)-1]
		if len(staged) > 0 && staged[0] != top {
			break
		}
		staged = append(staged, top)
		t.content = t.content[:len(t.content)-1]
	}

	dst.content = append(dst.content, staged...)
	return nil
}

// Entropy returns the disorder score used to rank search states.
// Each color group contributes -p*log2(p) with p = count/capacity; empty
// space contributes nothing. The denominator is the capacity, not the
// occupied length, so this is not a normalized distribution.
func (t *Tube) Entropy() float64 {
	// Counts are kept in first-appearance order so the float sum is stable.
	var order []Color
	counts := make(map[Color]int, len(t.content))
	for _, c := range t.content {
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	var sum float64
	for _, c := range order {
		p := float64(counts[c]) / float64(t.capacity)
		sum += p * math.Log2(p)
	}
	return -sum
}

// IsSorted returns true for an empty tube or a full single-color tube.
func (t *Tube) IsSorted() bool {
	if t.Entropy() > 0 {
		return false
	}
	n := len(t.content)
	return n == 0 || n == t.capacity
}

// writeKey appends a structural encoding of the tube to b.
func (t *Tube) writeKey(b *strings.Builder) {
	b.WriteString(strconv.Itoa(t.capacity))
	b.WriteByte('[')
	for _, c := range t.content {
		b.WriteString(strconv.Itoa(len(c.Name)))
		b.WriteByte(':')
		b.WriteString(c.Name)
		b.WriteByte(c.R)
		b.WriteByte(c.G)
		b.WriteByte(c.B)
	}
	b.WriteByte(']')
}

func (t *Tube) String() string {
	var b strings.Builder
	b.WriteByte('|')
	for i, c := range t.content {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Name)
	}
	for i := len(t.content); i < t.capacity; i++ {
		b.WriteString(" .")
	}
	b.WriteByte('|')
	return b.String()
}
