package puzzle

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/watersort/pkg/types"
)

// Puzzle is an ordered set of tubes.
// All tubes are expected to share one capacity; the pour rules do not rely on it.
type Puzzle struct {
	tubes []*Tube
}

// New creates a puzzle from tubes. The tubes are owned by the puzzle afterwards.
func New(tubes ...*Tube) *Puzzle {
	return &Puzzle{tubes: tubes}
}

// Len returns the number of tubes.
func (p *Puzzle) Len() int {
	return len(p.tubes)
}

// Tube returns the tube at index i, or nil if out of range.
func (p *Puzzle) Tube(i int) *Tube {
	if i < 0 || i >= len(p.tubes) {
		return nil
	}
	return p.tubes[i]
}

// Capacity returns the capacity of the first tube, or 0 for an empty puzzle.
func (p *Puzzle) Capacity() int {
	if len(p.tubes) == 0 {
		return 0
	}
	return p.tubes[0].capacity
}

// Clone creates a deep copy of the puzzle.
func (p *Puzzle) Clone() *Puzzle {
	tubes := make([]*Tube, len(p.tubes))
	for i, t := range p.tubes {
		tubes[i] = t.Clone()
	}
	return &Puzzle{tubes: tubes}
}

// Equal reports whether both puzzles hold identical tubes in the same order.
func (p *Puzzle) Equal(o *Puzzle) bool {
	if len(p.tubes) != len(o.tubes) {
		return false
	}
	for i := range p.tubes {
		if !p.tubes[i].Equal(o.tubes[i]) {
			return false
		}
	}
	return true
}

// IsSolved returns true when every tube is empty or full of a single color.
// A one-color tube that is only partly filled has zero entropy but is not solved.
func (p *Puzzle) IsSolved() bool {
	for _, t := range p.tubes {
		if !t.IsSorted() {
			return false
		}
	}
	return true
}

// AvailableMoves lists every legal pour. For each pair i<j the move i>j is
// listed before j>i.
func (p *Puzzle) AvailableMoves() []types.Move {
	var moves []types.Move
	for i := 0; i < len(p.tubes); i++ {
		for j := i + 1; j < len(p.tubes); j++ {
			if p.tubes[i].CanPourInto(p.tubes[j]) == nil {
				moves = append(moves, types.Move{From: i, To: j})
			}
			if p.tubes[j].CanPourInto(p.tubes[i]) == nil {
				moves = append(moves, types.Move{From: j, To: i})
			}
		}
	}
	return moves
}

// Apply returns a new puzzle with the move performed. The receiver is unchanged.
func (p *Puzzle) Apply(m types.Move) (*Puzzle, error) {
	if err := p.checkIndices(m); err != nil {
		return nil, err
	}
	next := p.Clone()
	if err := next.tubes[m.From].PourInto(next.tubes[m.To]); err != nil {
		return nil, err
	}
	return next, nil
}

// ApplyInPlace performs the move on the receiver. On error the puzzle is unchanged.
func (p *Puzzle) ApplyInPlace(m types.Move) error {
	if err := p.checkIndices(m); err != nil {
		return err
	}
	return p.tubes[m.From].PourInto(p.tubes[m.To])
}

func (p *Puzzle) checkIndices(m types.Move) error {
	if m.To < 0 || m.To >= len(p.tubes) {
		return &InvalidMoveError{Reason: "to tube doesn't exist"}
	}
	if m.From < 0 || m.From >= len(p.tubes) {
		return &InvalidMoveError{Reason: "from tube doesn't exist"}
	}
	if m.From == m.To {
		return &InvalidMoveError{Reason: "cannot pour a tube into itself"}
	}
	return nil
}

// TotalEntropy returns the sum of the tube entropies.
func (p *Puzzle) TotalEntropy() float64 {
	var sum float64
	for _, t := range p.tubes {
		sum += t.Entropy()
	}
	return sum
}

// AverageEntropy returns TotalEntropy divided by the tube count.
// The solver ranks states by the sum; this is kept for reporting.
func (p *Puzzle) AverageEntropy() float64 {
	if len(p.tubes) == 0 {
		return 0
	}
	return p.TotalEntropy() / float64(len(p.tubes))
}

// Key returns a canonical structural encoding of the puzzle.
// Two puzzles have the same key exactly when Equal reports true.
func (p *Puzzle) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(p.tubes)))
	for _, t := range p.tubes {
		b.WriteByte('/')
		t.writeKey(&b)
	}
	return b.String()
}

// Fingerprint returns a hex SHA-256 of Key, suitable for storage lookups.
func (p *Puzzle) Fingerprint() string {
	sum := sha256.Sum256([]byte(p.Key()))
	return hex.EncodeToString(sum[:])
}

// Colors returns the distinct colors in the puzzle in order of first appearance.
func (p *Puzzle) Colors() []Color {
	seen := make(map[Color]bool)
	var out []Color
	for _, t := range p.tubes {
		for _, c := range t.content {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func (p *Puzzle) String() string {
	parts := make([]string, len(p.tubes))
	for i, t := range p.tubes {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
