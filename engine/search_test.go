package engine

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/bitchess/bitchess/board"
	"github.com/rs/zerolog"
)

func newTestSearcher(opts ...Option) *Searcher {
	return NewSearcher(append([]Option{WithTTBits(14)}, opts...)...)
}

func TestBestMoveStartPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("depth 5 search")
	}
	s := newTestSearcher(WithMaxDepth(5))
	p := board.NewPosition()
	before := p.Clone()

	res, err := s.BestMove(context.Background(), p, DefaultDepth)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if !regexp.MustCompile(`^[a-h][1-8][a-h][1-8]$`).MatchString(res.String()) {
		t.Fatalf("unexpected move %q", res.String())
	}
	if res.Depth < DefaultDepth {
		t.Fatalf("searched depth %d, want at least %d", res.Depth, DefaultDepth)
	}
	if res.Stats.Nodes == 0 || res.Stats.Depth != res.Depth {
		t.Fatalf("stats not filled: %+v", res.Stats)
	}
	if !p.Equal(before) {
		t.Fatalf("search left the position modified")
	}
}

func TestMateInOne(t *testing.T) {
	tests := []struct {
		fen   string
		move  string
		score int
	}{
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", Infinity},
		{"r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", "a8a1", -Infinity},
	}
	for _, tc := range tests {
		s := newTestSearcher(WithMaxDepth(4))
		res, err := s.BestMove(context.Background(), mustFEN(t, tc.fen), 2)
		if err != nil {
			t.Fatalf("BestMove: %v", err)
		}
		if res.String() != tc.move || res.Score != tc.score {
			t.Fatalf("%s: got %s (%d), want %s (%d)", tc.fen, res, res.Score, tc.move, tc.score)
		}
	}
}

func TestCheckmatedRoot(t *testing.T) {
	s := newTestSearcher()
	res, err := s.BestMove(context.Background(), mustFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"), 3)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if res.String() != Checkmate {
		t.Fatalf("got %q, want %q", res.String(), Checkmate)
	}
	if res.Score != Infinity {
		t.Fatalf("mated minimizer should score +Infinity, got %d", res.Score)
	}
}

func TestStalematedRootScoresDraw(t *testing.T) {
	s := newTestSearcher()
	res, err := s.BestMove(context.Background(), mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"), 2)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if !res.Move.IsNull() || res.Score != DrawScore {
		t.Fatalf("stalemate: got %s (%d)", res, res.Score)
	}
}

func TestRepetitionScoresDraw(t *testing.T) {
	p := mustFEN(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	s := newTestSearcher()

	s.History().Push(p.Hash())
	if _, score := s.search(p, 3, -Infinity, Infinity, true); score == DrawScore {
		t.Fatalf("a single occurrence must not count as a repetition")
	}

	s.tt.Clear()
	s.History().Push(p.Hash())
	m, score := s.search(p, 3, -Infinity, Infinity, true)
	if !m.IsNull() || score != DrawScore {
		t.Fatalf("repeated position: got %s %d, want null move and 0", m, score)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	p := mustFEN(t, "4k3/8/8/8/8/8/8/3QK3 w - - 50 80")
	s := newTestSearcher()

	if _, score := s.search(p, 2, -Infinity, Infinity, true); score != DrawScore {
		t.Fatalf("fifty-move position scored %d", score)
	}
	// Leaves are evaluated before the clock is consulted.
	if _, score := s.search(p, 0, -Infinity, Infinity, true); score != 8 {
		t.Fatalf("leaf score: got %d want 8", score)
	}

	p.SetHalfmoveClock(49)
	if _, score := s.search(p, 1, -Infinity, Infinity, true); score != 8 {
		t.Fatalf("clock at 49 should still be searched, got %d", score)
	}
}

func TestSearchWinsHangingQueen(t *testing.T) {
	s := newTestSearcher(WithMaxDepth(3))
	p := mustFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	res, err := s.BestMove(context.Background(), p, 2)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if res.String() != "d2d5" {
		t.Fatalf("got %s, want d2d5", res)
	}
}

func TestOrderMovesHints(t *testing.T) {
	s := newTestSearcher()
	p := board.NewPosition()
	ttMove, err := board.ParseMove(p, "g1f3")
	if err != nil {
		t.Fatal(err)
	}
	killer, err := board.ParseMove(p, "e2e4")
	if err != nil {
		t.Fatal(err)
	}
	s.tt.Store(TTEntry{Hash: p.Hash(), Depth: 1, Move: ttMove})
	s.killers.Insert(3, killer)

	got := s.orderMoves(p, 3)
	if len(got) != 20 {
		t.Fatalf("ordered %d moves, want 20", len(got))
	}
	if got[0] != ttMove || got[1] != killer {
		t.Fatalf("order starts %s %s, want %s %s", got[0], got[1], ttMove, killer)
	}
	if s.stats.TTMoves != 1 || s.stats.KillerMoves != 1 {
		t.Fatalf("hint counters: %+v", s.stats)
	}

	// A killer that is not playable here is ignored.
	s.killers.Insert(2, board.Move{From: 1 << 40, To: 1 << 32, Kind: board.Rook})
	if got := s.orderMoves(p, 2); len(got) != 20 || got[0] != ttMove {
		t.Fatalf("foreign killer changed ordering: %v", got)
	}
}

func TestPlayStopsAtMate(t *testing.T) {
	s := newTestSearcher(WithMaxDepth(4))
	p := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	var played []string
	res, err := s.Play(context.Background(), p, 2, func(ply int, r Result) {
		played = append(played, r.String())
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(played) != 1 || played[0] != "a1a8" {
		t.Fatalf("played %v, want [a1a8]", played)
	}
	if res.String() != Checkmate {
		t.Fatalf("final result %q, want %q", res, Checkmate)
	}
	if s.History().Count(p.Hash()) != 1 {
		t.Fatalf("final position not recorded in history")
	}
}

func TestPlayHonoursMaxPlies(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSearcher(WithMaxPlies(4), WithTimeBudget(0), WithLogger(zerolog.New(&buf)))
	p := board.NewPosition()

	plies := 0
	res, err := s.Play(context.Background(), p, 2, func(ply int, r Result) {
		plies++
		if ply != plies {
			t.Fatalf("ply %d reported as %d", plies, ply)
		}
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if plies != 4 || res.Move.IsNull() {
		t.Fatalf("played %d plies, last %s", plies, res)
	}
	if p.FullmoveNumber() != 3 || p.SideToMove() != board.White {
		t.Fatalf("position after 4 plies: fullmove %d side %s", p.FullmoveNumber(), p.SideToMove())
	}
	if strings.Count(buf.String(), `"message":"move played"`) != 4 {
		t.Fatalf("expected 4 move logs, got:\n%s", buf.String())
	}
}

func TestBestMoveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newTestSearcher()
	if _, err := s.BestMove(ctx, board.NewPosition(), 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestDepthClampedToOne(t *testing.T) {
	s := newTestSearcher(WithTimeBudget(0))
	res, err := s.BestMove(context.Background(), board.NewPosition(), 0)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if res.Move.IsNull() || res.Depth != 1 {
		t.Fatalf("got %s at depth %d, want a move at depth 1", res, res.Depth)
	}
}

func TestTimeHandlerDeepen(t *testing.T) {
	now := time.Unix(0, 0)
	th := newTimeHandler(config{timeBudget: 100 * time.Millisecond, scoreWindow: 200, maxDepth: 20}, 3)
	th.now = func() time.Time { return now }
	th.StartTime()

	if !th.Deepen(1, 10_000) {
		t.Fatalf("requested depth must always be reached")
	}
	if !th.Deepen(3, 50) {
		t.Fatalf("quiet fast pass should deepen")
	}
	if th.Deepen(3, 201) {
		t.Fatalf("score outside window should stop")
	}
	if th.Deepen(20, 0) {
		t.Fatalf("depth cap should stop")
	}
	now = now.Add(100 * time.Millisecond)
	if th.Deepen(3, 0) {
		t.Fatalf("exhausted budget should stop")
	}
	if !th.Deepen(2, 0) {
		t.Fatalf("budget never cuts short the requested depth")
	}
}

func TestSearchWithDebugChecks(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
		"1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		s := newTestSearcher(WithDebugChecks(), WithTimeBudget(0))
		p := mustFEN(t, fen)
		before := p.Clone()
		if _, err := s.BestMove(context.Background(), p, 3); err != nil {
			t.Fatalf("BestMove(%q): %v", fen, err)
		}
		if !p.Equal(before) {
			t.Fatalf("%s: position changed by search", fen)
		}
	}
}
