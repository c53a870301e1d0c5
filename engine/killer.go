package engine

import "github.com/bitchess/bitchess/board"

// KillerTable keeps one cutoff move per remaining search depth.
type KillerTable struct {
	moves []board.Move
}

func NewKillerTable(maxDepth int) *KillerTable {
	return &KillerTable{moves: make([]board.Move, maxDepth+1)}
}

// Insert records m as the killer for depth.
func (k *KillerTable) Insert(depth int, m board.Move) {
	if depth >= 0 && depth < len(k.moves) {
		k.moves[depth] = m
	}
}

// Get returns the killer for depth, or the null move.
func (k *KillerTable) Get(depth int) board.Move {
	if depth < 0 || depth >= len(k.moves) {
		return board.Move{}
	}
	return k.moves[depth]
}

// ensure grows the table to hold depths 0..maxDepth.
func (k *KillerTable) ensure(maxDepth int) {
	if maxDepth < len(k.moves) {
		return
	}
	grown := make([]board.Move, maxDepth+1)
	copy(grown, k.moves)
	k.moves = grown
}

// Clear the killer moves table.
func (k *KillerTable) Clear() { clear(k.moves) }
