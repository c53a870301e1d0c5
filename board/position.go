package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Position is the mutable board state. It is owned by one search at a time and
// mutated in place through Apply and Undo.
type Position struct {
	// pieces[color][kind]; the twelve boards are pairwise disjoint.
	pieces [2][NumKinds]uint64

	side     Color
	castling CastlingRights

	// En-passant target: zero or a single bit.
	ep uint64

	// Plies since the last capture or pawn move.
	halfmove int
	fullmove int

	hash uint64
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns an independent copy.
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

// Equal reports whether both positions hold identical state, hash included.
func (p *Position) Equal(o *Position) bool { return *p == *o }

func (p *Position) Pieces(c Color, k PieceKind) uint64 { return p.pieces[c][k] }

// Occupancy returns every square held by c.
func (p *Position) Occupancy(c Color) uint64 {
	b := &p.pieces[c]
	return b[Pawn] | b[Knight] | b[Bishop] | b[Rook] | b[Queen] | b[King]
}

// Occupied returns every occupied square.
func (p *Position) Occupied() uint64 { return p.Occupancy(White) | p.Occupancy(Black) }

func (p *Position) SideToMove() Color { return p.side }
func (p *Position) Castling() CastlingRights { return p.castling }
func (p *Position) EnPassant() uint64 { return p.ep }
func (p *Position) HalfmoveClock() int { return p.halfmove }
func (p *Position) FullmoveNumber() int { return p.fullmove }
func (p *Position) Hash() uint64 { return p.hash }
func (p *Position) King(c Color) uint64 { return p.pieces[c][King] }

// SetHalfmoveClock overrides the fifty-move counter; it is not part of the hash.
func (p *Position) SetHalfmoveClock(n int) { p.halfmove = n }

// PieceAt reports the piece occupying the single-bit bitboard sq, if any.
func (p *Position) PieceAt(sq uint64) (Color, PieceKind, bool) {
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			if p.pieces[c][k]&sq != 0 {
				return c, k, true
			}
		}
	}
	return White, Pawn, false
}

// xor flips delta in one piece board and keeps the hash in step.
func (p *Position) xor(c Color, k PieceKind, delta uint64) {
	p.pieces[c][k] ^= delta
	for d := delta; d != 0; {
		sq := bits.TrailingZeros64(d)
		d &= d - 1
		p.hash ^= zobristPiece[c][k][sq]
	}
}

func (p *Position) flipSide() {
	p.side = p.side.Other()
	p.hash ^= zobristSide
}

func (p *Position) setEnPassant(bb uint64) {
	if p.ep != 0 {
		p.hash ^= zobristEnPassant[SquareOf(p.ep).File()]
	}
	p.ep = bb
	if bb != 0 {
		p.hash ^= zobristEnPassant[SquareOf(bb).File()]
	}
}

// Validate checks that piece boards are disjoint, the en-passant target is
// at most one square, and the incremental hash matches a full recomputation.
func (p *Position) Validate() error {
	var seen uint64
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			bb := p.pieces[c][k]
			if seen&bb != 0 {
				return fmt.Errorf("board: %s %s overlaps another piece board", c, k)
			}
			seen |= bb
		}
	}
	if bits.OnesCount64(p.ep) > 1 {
		return errors.New("board: more than one en-passant target")
	}
	if p.hash != p.ComputeHash() {
		return fmt.Errorf("board: hash %#x does not match recomputed %#x", p.hash, p.ComputeHash())
	}
	return nil
}

// String draws the board with rank 8 at the top, '-' for empty squares.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := uint64(1) << uint(rank*8+file)
			if c, k, ok := p.PieceAt(sq); ok {
				sb.WriteByte(pieceChar(c, k))
			} else {
				sb.WriteByte('-')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
