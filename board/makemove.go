package board

// Toggle is a single XOR applied to one piece board.
type Toggle struct {
	Kind  PieceKind
	Color Color
	Delta uint64
}

// UndoRecord restores the position Apply changed. Toggles are self-inverse, so
// undo replays them and restores the saved scalar fields.
type UndoRecord struct {
	toggles [3]Toggle
	n       int

	halfmove int
	fullmove int
	ep       uint64
}

// Toggles returns the recorded toggles in application order.
func (u *UndoRecord) Toggles() []Toggle { return u.toggles[:u.n] }

func (u *UndoRecord) record(k PieceKind, c Color, delta uint64) {
	u.toggles[u.n] = Toggle{Kind: k, Color: c, Delta: delta}
	u.n++
}

// toggle XORs delta into the (c, k) board and records it.
func (p *Position) toggle(u *UndoRecord, k PieceKind, c Color, delta uint64) {
	p.xor(c, k, delta)
	u.record(k, c, delta)
}

// Apply plays m in place and returns the record needed to undo it. m must have
// been generated for this position; legality is checked by the caller.
func (p *Position) Apply(m Move) UndoRecord {
	u := UndoRecord{halfmove: p.halfmove, fullmove: p.fullmove, ep: p.ep}
	them := m.Color.Other()

	p.halfmove++
	switch {
	case m.EPCapture:
		// The captured pawn sits behind the target square.
		victim := m.To >> 8
		if m.Color == Black {
			victim = m.To << 8
		}
		p.toggle(&u, Pawn, them, victim)
		p.halfmove = 0
	case m.To&p.Occupancy(them) != 0:
		for k := Queen; ; k-- {
			if p.pieces[them][k]&m.To != 0 {
				p.toggle(&u, k, them, m.To)
				break
			}
			if k == Pawn {
				break
			}
		}
		p.halfmove = 0
	}

	p.toggle(&u, m.Kind, m.Color, m.From)
	if m.Promotes {
		p.toggle(&u, m.Promotion, m.Color, m.To)
	} else {
		p.toggle(&u, m.Kind, m.Color, m.To)
	}
	if m.Kind == Pawn {
		p.halfmove = 0
	}

	p.setEnPassant(m.EnPassant)
	if m.Color == Black {
		p.fullmove++
	}
	p.flipSide()
	return u
}

// Undo reverses the Apply that produced u. Calls must follow strict stack order.
func (p *Position) Undo(u UndoRecord) {
	for i := u.n - 1; i >= 0; i-- {
		t := u.toggles[i]
		p.xor(t.Color, t.Kind, t.Delta)
	}
	p.setEnPassant(u.ep)
	p.halfmove = u.halfmove
	p.fullmove = u.fullmove
	p.flipSide()
}
