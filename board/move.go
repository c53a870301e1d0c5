package board

import (
	"errors"
	"fmt"
	"strings"
)

// Move is an immutable pseudo-legal move. From and To are single-bit boards.
// The zero Move is the null move.
type Move struct {
	From uint64
	To   uint64

	// EnPassant is the target square created by a double pawn push, else 0.
	EnPassant uint64

	Kind  PieceKind
	Color Color

	// Promotion is only meaningful when Promotes is set.
	Promotion PieceKind
	Promotes  bool

	// EPCapture marks a pawn capturing onto the en-passant target.
	EPCapture bool
}

// IsNull reports whether m is the zero move.
func (m Move) IsNull() bool { return m.From == 0 }

// String produces coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := SquareName(m.From) + SquareName(m.To)
	if m.Promotes {
		s += string(m.Promotion.Char())
	}
	return s
}

var errBadMove = errors.New("invalid move")

// ParseMove resolves coordinate notation against the legal moves of p.
// A promotion without a suffix defaults to a queen.
func ParseMove(p *Position, s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 4 || len(s) > 5 {
		return Move{}, fmt.Errorf("%w: %q", errBadMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	promo := Queen
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return Move{}, fmt.Errorf("%w: promotion piece %q", errBadMove, s[4])
		}
	}
	for _, m := range LegalMoves(p) {
		if m.From != from.Bit() || m.To != to.Bit() {
			continue
		}
		if m.Promotes && m.Promotion != promo {
			continue
		}
		return m, nil
	}
	return Move{}, fmt.Errorf("%w: %s is not legal here", errBadMove, s)
}
