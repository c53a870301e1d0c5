package engine

import (
	"context"
	"testing"

	"github.com/bitchess/bitchess/board"
)

func benchSearch(b *testing.B, fen string, depth int) {
	p := mustFEN(b, fen)
	s := NewSearcher(WithTimeBudget(0))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Reset()
		if _, err := s.BestMove(context.Background(), p, depth); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearch_Initial_D4(b *testing.B) {
	benchSearch(b, board.StartFEN, 4)
}

func BenchmarkSearch_Middlegame_D3(b *testing.B) {
	benchSearch(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1", 3)
}

func BenchmarkEvaluate(b *testing.B) {
	p := board.NewPosition()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(p)
	}
}
