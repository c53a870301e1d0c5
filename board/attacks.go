package board

import "math/bits"

// Direction indexes the eight sliding rays.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var (
	// AllDirections lists every ray in queen order.
	AllDirections = [8]Direction{North, East, South, West, NorthEast, SouthEast, NorthWest, SouthWest}
	// Orthogonal rays are rook lines.
	Orthogonal = [4]Direction{North, East, South, West}
	// Diagonal rays are bishop lines.
	Diagonal = [4]Direction{NorthEast, SouthEast, NorthWest, SouthWest}
)

// positive reports whether the ray runs toward higher bit indices, in which
// case the nearest blocker is the lowest set bit.
func (d Direction) positive() bool {
	return d == North || d == NorthEast || d == NorthWest || d == East
}

// step shifts every bit of bb one square in direction d, dropping bits that
// would wrap around a file edge.
func step(bb uint64, d Direction) uint64 {
	switch d {
	case North:
		return bb << 8
	case South:
		return bb >> 8
	case East:
		return (bb &^ FileH) << 1
	case West:
		return (bb &^ FileA) >> 1
	case NorthEast:
		return (bb &^ FileH) << 9
	case NorthWest:
		return (bb &^ FileA) << 7
	case SouthEast:
		return (bb &^ FileH) >> 7
	case SouthWest:
		return (bb &^ FileA) >> 9
	}
	return 0
}

// AttackTables holds precomputed move sets. It is built once and never
// mutated, so a single instance is shared by every generator and search.
type AttackTables struct {
	knight [64]uint64
	king   [64]uint64
	rays   [8][64]uint64
	super  [64]uint64
}

// Tables is the process-wide instance built at package init.
var Tables = NewAttackTables()

// NewAttackTables enumerates knight, king, ray and super-piece sets for all squares.
func NewAttackTables() *AttackTables {
	t := &AttackTables{}
	for sq := 0; sq < 64; sq++ {
		b := uint64(1) << uint(sq)

		t.knight[sq] = (b&^FileH)<<17 | (b&^FileA)<<15 |
			(b&^(FileG|FileH))<<10 | (b&^(FileA|FileB))<<6 |
			(b&^FileH)>>15 | (b&^FileA)>>17 |
			(b&^(FileG|FileH))>>6 | (b&^(FileA|FileB))>>10

		var king uint64
		for d := North; d <= NorthWest; d++ {
			king |= step(b, d)

			var ray uint64
			for cur := step(b, d); cur != 0; cur = step(cur, d) {
				ray |= cur
			}
			t.rays[d][sq] = ray
			t.super[sq] |= ray
		}
		t.king[sq] = king
		t.super[sq] |= t.knight[sq]
	}
	return t
}

// Knight returns the knight move set from sq.
func (t *AttackTables) Knight(sq Square) uint64 { return t.knight[sq] }

// King returns the king move set from sq.
func (t *AttackTables) King(sq Square) uint64 { return t.king[sq] }

// Ray returns the unblocked ray from sq to the board edge, excluding sq.
func (t *AttackTables) Ray(d Direction, sq Square) uint64 { return t.rays[d][sq] }

// Super returns the union of every unblocked ray and knight move from sq.
func (t *AttackTables) Super(sq Square) uint64 { return t.super[sq] }

// Slide resolves the ray from sq in direction d against the occupancy occ.
// attacks runs up to and including the first blocker. capture is that blocker
// when it belongs to opp, otherwise zero.
func (t *AttackTables) Slide(d Direction, sq Square, occ, opp uint64) (attacks, capture uint64) {
	attacks = t.rays[d][sq]
	blockers := attacks & occ
	if blockers == 0 {
		return attacks, 0
	}
	var first int
	if d.positive() {
		first = bits.TrailingZeros64(blockers)
	} else {
		first = 63 - bits.LeadingZeros64(blockers)
	}
	attacks ^= t.rays[d][first]
	return attacks, opp & (uint64(1) << uint(first))
}
