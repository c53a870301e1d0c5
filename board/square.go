package board

import (
	"errors"
	"fmt"
	"math/bits"
)

// Square is a board index in [0, 63]. Bit 0 is a1, bit 7 is h1, bit 56 is a8
// and bit 63 is h8, so file = sq%8 and rank = sq/8.
type Square int8

const NoSquare Square = -1

// File and rank masks.
const (
	FileA uint64 = 0x0101010101010101
	FileB uint64 = FileA << 1
	FileG uint64 = FileA << 6
	FileH uint64 = FileA << 7

	Rank1 uint64 = 0x00000000000000FF
	Rank2 uint64 = Rank1 << 8
	Rank3 uint64 = Rank1 << 16
	Rank6 uint64 = Rank1 << 40
	Rank7 uint64 = Rank1 << 48
	Rank8 uint64 = Rank1 << 56
)

var errBadSquare = errors.New("invalid square")

// SquareOf returns the index of the lowest set bit. An empty bitboard has no
// square and means the caller's bitboards are corrupt.
func SquareOf(bb uint64) Square {
	if bb == 0 {
		panic("board: empty bitboard has no square")
	}
	return Square(bits.TrailingZeros64(bb))
}

// Bit returns the single-bit bitboard for the square.
func (s Square) Bit() uint64 {
	if s < 0 || s > 63 {
		panic(fmt.Sprintf("board: square %d out of range", s))
	}
	return uint64(1) << uint(s)
}

func (s Square) File() int { return int(s) % 8 }
func (s Square) Rank() int { return int(s) / 8 }

// String returns the algebraic name, e.g. "e4". NoSquare prints as "-".
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	if s < 0 || s > 63 {
		panic(fmt.Sprintf("board: square %d out of range", s))
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare converts an algebraic name such as "e4" into a Square.
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", errBadSquare, alg)
	}
	file, rank := alg[0], alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", errBadSquare, alg)
	}
	return Square(int(rank-'1')*8 + int(file-'a')), nil
}

// SquareName formats a single-bit bitboard as an algebraic square.
func SquareName(bb uint64) string { return SquareOf(bb).String() }

// popLSB removes and returns the least significant set bit of mask as a bitboard.
func popLSB(mask *uint64) uint64 {
	x := *mask & -*mask
	*mask &= *mask - 1
	return x
}
