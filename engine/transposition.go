package engine

import "github.com/bitchess/bitchess/board"

// DefaultTTBits sizes the table at 2^18 entries.
const DefaultTTBits = 18

// TTEntry caches one search result. LowerBound is set when the maximizer cut
// off above beta, UpperBound when the minimizer cut off below alpha.
type TTEntry struct {
	Hash       uint64
	Score      int
	Depth      int
	LowerBound bool
	UpperBound bool
	Move       board.Move

	filled bool
}

// Exact reports whether the score is neither bound.
func (e *TTEntry) Exact() bool { return !e.LowerBound && !e.UpperBound }

// TransTable is a direct-mapped cache indexed by hash & mask.
type TransTable struct {
	entries []TTEntry
	mask    uint64
}

// NewTransTable allocates 2^bits entries.
func NewTransTable(bits uint) *TransTable {
	size := uint64(1) << bits
	return &TransTable{
		entries: make([]TTEntry, size),
		mask:    size - 1,
	}
}

// Size returns the number of slots.
func (tt *TransTable) Size() int { return len(tt.entries) }

func (tt *TransTable) slot(hash uint64) *TTEntry { return &tt.entries[hash&tt.mask] }

// Probe returns the entry for hash if it can stand in for a search of the given
// depth: full hash match, stored depth at least depth, and an exact score.
func (tt *TransTable) Probe(hash uint64, depth int) (TTEntry, bool) {
	e := tt.slot(hash)
	if !e.filled || e.Hash != hash || e.Depth < depth || !e.Exact() {
		return TTEntry{}, false
	}
	return *e, true
}

// BestMove returns the stored best move for hash regardless of depth or bounds.
func (tt *TransTable) BestMove(hash uint64) (board.Move, bool) {
	e := tt.slot(hash)
	if !e.filled || e.Hash != hash || e.Move.IsNull() {
		return board.Move{}, false
	}
	return e.Move, true
}

// Store writes e when its slot is empty or holds a result of equal or lower depth.
func (tt *TransTable) Store(e TTEntry) {
	s := tt.slot(e.Hash)
	if s.filled && s.Depth > e.Depth {
		return
	}
	e.filled = true
	*s = e
}

// Clear empties every slot.
func (tt *TransTable) Clear() { clear(tt.entries) }
