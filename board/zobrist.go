package board

import (
	"math/bits"
	"math/rand"
)

// Zobrist keys for pieces, side to move and en-passant file.
var zobristPiece [2][NumKinds][64]uint64
var zobristEnPassant [8]uint64
var zobristSide uint64 // XORed in when Black is to move

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed keeps hashes reproducible between runs and in tests.
	rnd := rand.New(rand.NewSource(0xC0DE))

	for c := 0; c < 2; c++ {
		for k := 0; k < NumKinds; k++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][k][sq] = rnd.Uint64()
			}
		}
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeHash recomputes the Zobrist hash of the position from scratch.
func (p *Position) ComputeHash() uint64 {
	var key uint64
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for bb := p.pieces[c][k]; bb != 0; {
				sq := bits.TrailingZeros64(bb)
				bb &= bb - 1
				key ^= zobristPiece[c][k][sq]
			}
		}
	}
	if p.side == Black {
		key ^= zobristSide
	}
	if p.ep != 0 {
		key ^= zobristEnPassant[SquareOf(p.ep).File()]
	}
	return key
}
