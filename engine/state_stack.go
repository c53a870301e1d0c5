package engine

// GameHistory counts how often each position hash has occurred, both in the
// moves actually played and along the line currently being searched.
type GameHistory struct {
	counts map[uint64]int
}

func NewGameHistory() *GameHistory {
	return &GameHistory{counts: make(map[uint64]int)}
}

// Count returns the occurrences recorded for hash.
func (h *GameHistory) Count(hash uint64) int { return h.counts[hash] }

// Push records one more occurrence of hash.
func (h *GameHistory) Push(hash uint64) { h.counts[hash]++ }

// Pop removes one occurrence, deleting the key when none remain.
func (h *GameHistory) Pop(hash uint64) {
	n := h.counts[hash]
	if n <= 1 {
		delete(h.counts, hash)
		return
	}
	h.counts[hash] = n - 1
}

// Len returns the number of distinct hashes recorded.
func (h *GameHistory) Len() int { return len(h.counts) }

// Reset forgets every recorded position.
func (h *GameHistory) Reset() { clear(h.counts) }
