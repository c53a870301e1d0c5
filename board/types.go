package board

import "fmt"

// Color is the side owning a piece.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind is a colorless piece type. The set is closed: Pawn through King.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// NumKinds is the number of piece kinds per side.
const NumKinds = 6

// Valid reports whether k is one of the six piece kinds.
func (k PieceKind) Valid() bool { return k <= King }

// Char returns the lowercase FEN letter for the kind.
func (k PieceKind) Char() byte {
	switch k {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	}
	panic(fmt.Sprintf("board: invalid piece kind %d", k))
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	panic(fmt.Sprintf("board: invalid piece kind %d", k))
}

// pieceFromChar converts a FEN character to its color and kind.
func pieceFromChar(ch rune) (Color, PieceKind, bool) {
	switch ch {
	case 'P':
		return White, Pawn, true
	case 'N':
		return White, Knight, true
	case 'B':
		return White, Bishop, true
	case 'R':
		return White, Rook, true
	case 'Q':
		return White, Queen, true
	case 'K':
		return White, King, true
	case 'p':
		return Black, Pawn, true
	case 'n':
		return Black, Knight, true
	case 'b':
		return Black, Bishop, true
	case 'r':
		return Black, Rook, true
	case 'q':
		return Black, Queen, true
	case 'k':
		return Black, King, true
	}
	return White, Pawn, false
}

// pieceChar is the inverse of pieceFromChar.
func pieceChar(c Color, k PieceKind) byte {
	ch := k.Char()
	if c == White {
		return ch - 'a' + 'A'
	}
	return ch
}

// CastlingRights is a bitmask of the four castling flags. Rights are carried
// through FEN but never generated or applied.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ
)
