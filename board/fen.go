package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every ParseFEN failure.
var ErrInvalidFEN = errors.New("invalid FEN")

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// ParseFEN builds a Position from a FEN string. Only the placement and side
// fields are required; castling, en passant and the clocks default when
// absent. On error no Position is returned.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fenError("expected at least placement and side fields, got %d", len(fields))
	}

	p := &Position{fullmove: 1}

	// 1. Piece placement, rank 8 first.
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			c, k, ok := pieceFromChar(ch)
			if !ok {
				return nil, fenError("unrecognized board character %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d has more than 8 squares", rank+1)
			}
			p.pieces[c][k] |= uint64(1) << uint(rank*8+file)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d has %d squares", rank+1, file)
		}
	}
	for c := White; c <= Black; c++ {
		if n := bits.OnesCount64(p.pieces[c][King]); n != 1 {
			return nil, fenError("%s has %d kings", c, n)
		}
	}

	// 2. Side to move.
	switch fields[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
	default:
		return nil, fenError("side to move must be 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights: stored, never used by move generation.
	if len(fields) > 2 && fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castling |= CastlingWhiteK
			case 'Q':
				p.castling |= CastlingWhiteQ
			case 'k':
				p.castling |= CastlingBlackK
			case 'q':
				p.castling |= CastlingBlackQ
			default:
				return nil, fenError("invalid castling character %q", ch)
			}
		}
	}

	// 4. En-passant target: empty, behind a pawn of the side that just moved.
	if len(fields) > 3 && fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("en-passant square: %v", err)
		}
		target, pawn := sq.Bit(), uint64(0)
		switch {
		case p.side == White && target&Rank6 != 0:
			pawn = target >> 8
		case p.side == Black && target&Rank3 != 0:
			pawn = target << 8
		default:
			return nil, fenError("en-passant square %s not on the %s capture rank", sq, p.side)
		}
		if p.pieces[p.side.Other()][Pawn]&pawn == 0 {
			return nil, fenError("en-passant square %s has no pawn in front of it", sq)
		}
		if p.Occupied()&target != 0 {
			return nil, fenError("en-passant square %s is occupied", sq)
		}
		p.ep = target
	}

	// 5-6. Clocks.
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fenError("halfmove clock %q is not a non-negative number", fields[4])
		}
		p.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fenError("fullmove number %q is not a positive number", fields[5])
		}
		p.fullmove = n
	}

	p.hash = p.ComputeHash()
	if err := p.Validate(); err != nil {
		return nil, fenError("%v", err)
	}
	// The mover could capture the king, which Apply cannot represent.
	if DefaultGenerator.IsInCheck(p, p.side.Other()) {
		return nil, fenError("%s is in check with %s to move", p.side.Other(), p.side)
	}
	return p, nil
}

// ToFEN serializes the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			c, k, ok := p.PieceAt(uint64(1) << uint(rank*8+file))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(c, k))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.castling == 0 {
		sb.WriteByte('-')
	} else {
		for _, f := range []struct {
			flag CastlingRights
			ch   byte
		}{{CastlingWhiteK, 'K'}, {CastlingWhiteQ, 'Q'}, {CastlingBlackK, 'k'}, {CastlingBlackQ, 'q'}} {
			if p.castling&f.flag != 0 {
				sb.WriteByte(f.ch)
			}
		}
	}
	sb.WriteByte(' ')

	if p.ep != 0 {
		sb.WriteString(SquareName(p.ep))
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))
	return sb.String()
}
