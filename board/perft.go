package board

// Perft counts legal leaf nodes at the given depth.
func (g *MoveGenerator) Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{g: g, bufs: make([]Moves, depth+1)}
	return pc.run(p, depth)
}

// perftCtx keeps one move buffer per remaining depth to avoid allocations.
type perftCtx struct {
	g    *MoveGenerator
	bufs []Moves
}

func (pc *perftCtx) run(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	ms := &pc.bufs[depth]
	pc.g.GenerateInto(p, ms)

	var nodes uint64
	for _, list := range [2][]Move{ms.Captures, ms.Quiets} {
		for _, m := range list {
			u := p.Apply(m)
			if !pc.g.IsInCheck(p, m.Color) {
				nodes += pc.run(p, depth-1)
			}
			p.Undo(u)
		}
	}
	return nodes
}

// PerftDivide maps each legal root move, in coordinate notation, to the number
// of leaf nodes below it.
func (g *MoveGenerator) PerftDivide(p *Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range g.LegalMoves(p) {
		u := p.Apply(m)
		result[m.String()] = g.Perft(p, depth-1)
		p.Undo(u)
	}
	return result
}

// Perft counts leaf nodes using DefaultGenerator.
func Perft(p *Position, depth int) uint64 { return DefaultGenerator.Perft(p, depth) }

// PerftDivide splits Perft by root move using DefaultGenerator.
func PerftDivide(p *Position, depth int) map[string]uint64 {
	return DefaultGenerator.PerftDivide(p, depth)
}
