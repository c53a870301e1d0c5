package board

// Moves holds pseudo-legal moves split into captures and quiet moves.
type Moves struct {
	Captures []Move
	Quiets   []Move
}

// Len returns the total number of moves.
func (ms *Moves) Len() int { return len(ms.Captures) + len(ms.Quiets) }

// All returns captures followed by quiet moves in a new slice.
func (ms Moves) All() []Move {
	out := make([]Move, 0, ms.Len())
	out = append(out, ms.Captures...)
	return append(out, ms.Quiets...)
}

func (ms *Moves) reset() {
	ms.Captures = ms.Captures[:0]
	ms.Quiets = ms.Quiets[:0]
}

// MoveGenerator produces pseudo-legal moves and answers check queries using a
// shared set of attack tables.
type MoveGenerator struct {
	t *AttackTables
}

// NewMoveGenerator binds a generator to t. t is read but never modified.
func NewMoveGenerator(t *AttackTables) *MoveGenerator {
	return &MoveGenerator{t: t}
}

// DefaultGenerator uses the package-level Tables.
var DefaultGenerator = NewMoveGenerator(Tables)

// Generate returns every pseudo-legal move for the side to move.
func (g *MoveGenerator) Generate(p *Position) Moves {
	ms := Moves{
		Captures: make([]Move, 0, 32),
		Quiets:   make([]Move, 0, 64),
	}
	g.GenerateInto(p, &ms)
	return ms
}

// GenerateInto fills ms, reusing its backing arrays. Pieces are visited in the
// order pawn, knight, bishop, queen, rook, king. Castling is never generated.
func (g *MoveGenerator) GenerateInto(p *Position, ms *Moves) {
	ms.reset()
	us := p.side
	own := p.Occupancy(us)
	opp := p.Occupancy(us.Other())

	g.pawnMoves(p, ms, own, opp)
	g.leaperMoves(p, ms, Knight, &g.t.knight, own, opp)
	g.sliderMoves(p, ms, Bishop, Diagonal[:], own, opp)
	g.sliderMoves(p, ms, Queen, AllDirections[:], own, opp)
	g.sliderMoves(p, ms, Rook, Orthogonal[:], own, opp)
	g.leaperMoves(p, ms, King, &g.t.king, own, opp)
}

func (g *MoveGenerator) pawnMoves(p *Position, ms *Moves, own, opp uint64) {
	us := p.side
	occ := own | opp
	promoRank := Rank8
	if us == Black {
		promoRank = Rank1
	}

	for pawns := p.pieces[us][Pawn]; pawns != 0; {
		from := popLSB(&pawns)

		var push, double, attacks uint64
		if us == White {
			push = (from << 8) &^ occ
			if from&Rank2 != 0 && push != 0 {
				double = (push << 8) &^ occ
			}
			attacks = (from&^FileH)<<9 | (from&^FileA)<<7
		} else {
			push = (from >> 8) &^ occ
			if from&Rank7 != 0 && push != 0 {
				double = (push >> 8) &^ occ
			}
			attacks = (from&^FileH)>>7 | (from&^FileA)>>9
		}

		if push != 0 {
			m := Move{From: from, To: push, Kind: Pawn, Color: us}
			if push&promoRank != 0 {
				ms.Quiets = appendPromotions(ms.Quiets, m)
			} else {
				ms.Quiets = append(ms.Quiets, m)
			}
		}
		if double != 0 {
			ms.Quiets = append(ms.Quiets, Move{From: from, To: double, EnPassant: push, Kind: Pawn, Color: us})
		}

		for attacks != 0 {
			to := popLSB(&attacks)
			switch {
			case to&opp != 0:
				m := Move{From: from, To: to, Kind: Pawn, Color: us}
				if to&promoRank != 0 {
					ms.Captures = appendPromotions(ms.Captures, m)
				} else {
					ms.Captures = append(ms.Captures, m)
				}
			case to == p.ep:
				ms.Captures = append(ms.Captures, Move{From: from, To: to, Kind: Pawn, Color: us, EPCapture: true})
			}
		}
	}
}

// appendPromotions fans a pawn move reaching the last rank into four moves.
func appendPromotions(dst []Move, m Move) []Move {
	for _, k := range [4]PieceKind{Queen, Rook, Bishop, Knight} {
		m.Promotion = k
		m.Promotes = true
		dst = append(dst, m)
	}
	return dst
}

func (g *MoveGenerator) leaperMoves(p *Position, ms *Moves, kind PieceKind, table *[64]uint64, own, opp uint64) {
	us := p.side
	for pieces := p.pieces[us][kind]; pieces != 0; {
		from := popLSB(&pieces)
		targets := table[SquareOf(from)] &^ own
		for caps := targets & opp; caps != 0; {
			ms.Captures = append(ms.Captures, Move{From: from, To: popLSB(&caps), Kind: kind, Color: us})
		}
		for quiets := targets &^ opp; quiets != 0; {
			ms.Quiets = append(ms.Quiets, Move{From: from, To: popLSB(&quiets), Kind: kind, Color: us})
		}
	}
}

func (g *MoveGenerator) sliderMoves(p *Position, ms *Moves, kind PieceKind, dirs []Direction, own, opp uint64) {
	us := p.side
	occ := own | opp
	for pieces := p.pieces[us][kind]; pieces != 0; {
		from := popLSB(&pieces)
		sq := SquareOf(from)
		for _, d := range dirs {
			attacks, capture := g.t.Slide(d, sq, occ, opp)
			if capture != 0 {
				ms.Captures = append(ms.Captures, Move{From: from, To: capture, Kind: kind, Color: us})
			}
			for quiets := attacks &^ occ; quiets != 0; {
				ms.Quiets = append(ms.Quiets, Move{From: from, To: popLSB(&quiets), Kind: kind, Color: us})
			}
		}
	}
}

// IsInCheck reports whether c's king is attacked, regardless of whose turn it
// is. After Apply it is asked about the side that just moved.
func (g *MoveGenerator) IsInCheck(p *Position, c Color) bool {
	king := p.pieces[c][King]
	if king == 0 {
		return false
	}
	them := c.Other()
	enemy := &p.pieces[them]

	// Pawns first: a direct pattern test, no table lookups.
	pawns := enemy[Pawn]
	var pawnAttacks uint64
	if them == White {
		pawnAttacks = (pawns&^FileH)<<9 | (pawns&^FileA)<<7
	} else {
		pawnAttacks = (pawns&^FileH)>>7 | (pawns&^FileA)>>9
	}
	if pawnAttacks&king != 0 {
		return true
	}

	sq := SquareOf(king)
	opp := p.Occupancy(them)
	if g.t.super[sq]&opp == 0 {
		return false
	}

	occ := opp | p.Occupancy(c)
	if rq := enemy[Rook] | enemy[Queen]; rq != 0 {
		for _, d := range Orthogonal {
			if _, hit := g.t.Slide(d, sq, occ, rq); hit != 0 {
				return true
			}
		}
	}
	if bq := enemy[Bishop] | enemy[Queen]; bq != 0 {
		for _, d := range Diagonal {
			if _, hit := g.t.Slide(d, sq, occ, bq); hit != 0 {
				return true
			}
		}
	}
	if g.t.knight[sq]&enemy[Knight] != 0 {
		return true
	}
	return g.t.king[sq]&enemy[King] != 0
}

// InCheck reports whether the side to move is in check.
func (g *MoveGenerator) InCheck(p *Position) bool { return g.IsInCheck(p, p.side) }

// LegalMoves filters pseudo-legal moves by applying each one and rejecting
// those that leave the mover's king attacked. p is restored before returning.
func (g *MoveGenerator) LegalMoves(p *Position) []Move {
	ms := g.Generate(p)
	out := make([]Move, 0, ms.Len())
	for _, m := range ms.All() {
		u := p.Apply(m)
		if !g.IsInCheck(p, m.Color) {
			out = append(out, m)
		}
		p.Undo(u)
	}
	return out
}

// Generate returns the pseudo-legal moves of p using DefaultGenerator.
func Generate(p *Position) Moves { return DefaultGenerator.Generate(p) }

// IsInCheck reports whether c's king is attacked using DefaultGenerator.
func IsInCheck(p *Position, c Color) bool { return DefaultGenerator.IsInCheck(p, c) }

// LegalMoves returns the legal moves of p using DefaultGenerator.
func LegalMoves(p *Position) []Move { return DefaultGenerator.LegalMoves(p) }
