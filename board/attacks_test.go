package board

import (
	"math/bits"
	"testing"
)

func sq(t *testing.T, alg string) Square {
	t.Helper()
	s, err := ParseSquare(alg)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", alg, err)
	}
	return s
}

func bbOf(t *testing.T, algs ...string) uint64 {
	t.Helper()
	var bb uint64
	for _, a := range algs {
		bb |= sq(t, a).Bit()
	}
	return bb
}

func TestKnightTableWrapGuards(t *testing.T) {
	if got, want := Tables.Knight(sq(t, "a1")), bbOf(t, "b3", "c2"); got != want {
		t.Fatalf("knight a1: got %#x want %#x", got, want)
	}
	if got, want := Tables.Knight(sq(t, "h8")), bbOf(t, "g6", "f7"); got != want {
		t.Fatalf("knight h8: got %#x want %#x", got, want)
	}
	if got := bits.OnesCount64(Tables.Knight(sq(t, "d4"))); got != 8 {
		t.Fatalf("knight d4: got %d squares want 8", got)
	}
	if got, want := Tables.Knight(sq(t, "b1")), bbOf(t, "a3", "c3", "d2"); got != want {
		t.Fatalf("knight b1: got %#x want %#x", got, want)
	}
}

func TestKingTableWrapGuards(t *testing.T) {
	if got, want := Tables.King(sq(t, "h1")), bbOf(t, "g1", "g2", "h2"); got != want {
		t.Fatalf("king h1: got %#x want %#x", got, want)
	}
	if got, want := Tables.King(sq(t, "a5")), bbOf(t, "a4", "a6", "b4", "b5", "b6"); got != want {
		t.Fatalf("king a5: got %#x want %#x", got, want)
	}
}

func TestRaysStopAtEdge(t *testing.T) {
	if got, want := Tables.Ray(NorthEast, sq(t, "f6")), bbOf(t, "g7", "h8"); got != want {
		t.Fatalf("NE ray f6: got %#x want %#x", got, want)
	}
	if got, want := Tables.Ray(West, sq(t, "c3")), bbOf(t, "b3", "a3"); got != want {
		t.Fatalf("W ray c3: got %#x want %#x", got, want)
	}
	if got := Tables.Ray(South, sq(t, "e1")); got != 0 {
		t.Fatalf("S ray e1: got %#x want 0", got)
	}
}

func TestSlideBlockerResolution(t *testing.T) {
	d4 := sq(t, "d4")
	own := bbOf(t, "d6")
	opp := bbOf(t, "d2", "g4")
	occ := own | opp

	cases := []struct {
		d        Direction
		attacks  uint64
		captured uint64
	}{
		{North, bbOf(t, "d5", "d6"), 0},
		{South, bbOf(t, "d3", "d2"), bbOf(t, "d2")},
		{East, bbOf(t, "e4", "f4", "g4"), bbOf(t, "g4")},
		{West, bbOf(t, "c4", "b4", "a4"), 0},
	}
	for _, c := range cases {
		attacks, capture := Tables.Slide(c.d, d4, occ, opp)
		if attacks != c.attacks || capture != c.captured {
			t.Fatalf("dir %d: got (%#x, %#x) want (%#x, %#x)", c.d, attacks, capture, c.attacks, c.captured)
		}
	}
}

func TestSuperPieceCoversRaysAndKnight(t *testing.T) {
	s := sq(t, "e4")
	want := Tables.Knight(s)
	for _, d := range AllDirections {
		want |= Tables.Ray(d, s)
	}
	if got := Tables.Super(s); got != want {
		t.Fatalf("super e4: got %#x want %#x", got, want)
	}
	if Tables.Super(s)&s.Bit() != 0 {
		t.Fatalf("super mask contains origin square")
	}
}

func TestSquareConversions(t *testing.T) {
	for i := 0; i < 64; i++ {
		s := Square(i)
		back, err := ParseSquare(s.String())
		if err != nil || back != s {
			t.Fatalf("round trip %d: got %v, %v", i, back, err)
		}
	}
	if got := Square(0).String(); got != "a1" {
		t.Fatalf("square 0: got %s want a1", got)
	}
	if got := Square(63).String(); got != "h8" {
		t.Fatalf("square 63: got %s want h8", got)
	}
	if _, err := ParseSquare("i9"); err == nil {
		t.Fatalf("expected error for i9")
	}
}

func TestSquareOfEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty bitboard")
		}
	}()
	SquareOf(0)
}
