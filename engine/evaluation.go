package engine

import (
	"math/bits"

	"github.com/bitchess/bitchess/board"
)

// Material values in pawns. The king is never scored.
var PieceValue = [board.NumKinds]int{
	board.Pawn:   1,
	board.Knight: 3,
	board.Bishop: 3,
	board.Rook:   5,
	board.Queen:  8,
	board.King:   0,
}

// Evaluate scores p by material only: White's total minus Black's.
func Evaluate(p *board.Position) int {
	score := 0
	for k := board.Pawn; k < board.King; k++ {
		score += PieceValue[k] * (bits.OnesCount64(p.Pieces(board.White, k)) - bits.OnesCount64(p.Pieces(board.Black, k)))
	}
	return score
}
