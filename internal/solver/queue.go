package solver

import (
	"container/heap"

	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

// entry is a frontier element: a reached state and the moves that reached it.
type entry struct {
	moves []types.Move
	state *puzzle.Puzzle
	score float64
	seq   int // insertion order, last tie-break
}

// frontier is a min-priority queue ordered by (score, len(moves), seq).
type frontier struct {
	entries []*entry
	nextSeq int
}

func newFrontier() *frontier {
	return &frontier{entries: make([]*entry, 0, 64)}
}

// push adds a state with its precomputed score.
func (f *frontier) push(moves []types.Move, state *puzzle.Puzzle, score float64) {
	heap.Push(f, &entry{moves: moves, state: state, score: score, seq: f.nextSeq})
	f.nextSeq++
}

// pop removes the lowest-ranked entry.
func (f *frontier) pop() *entry {
	return heap.Pop(f).(*entry)
}

// heap.Interface

func (f *frontier) Len() int {
	return len(f.entries)
}

func (f *frontier) Less(i, j int) bool {
	a, b := f.entries[i], f.entries[j]
	if a.score != b.score {
		return a.score < b.score
	}
	if len(a.moves) != len(b.moves) {
		return len(a.moves) < len(b.moves)
	}
	return a.seq < b.seq
}

func (f *frontier) Swap(i, j int) {
	f.entries[i], f.entries[j] = f.entries[j], f.entries[i]
}

func (f *frontier) Push(x any) {
	f.entries = append(f.entries, x.(*entry))
}

func (f *frontier) Pop() any {
	old := f.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	f.entries = old[:n-1]
	return e
}
