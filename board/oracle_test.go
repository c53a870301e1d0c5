package board_test

import (
	"strings"
	"testing"

	goose "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/bitchess/bitchess/board"
)

// Positions without castling rights, since castling is never generated here.
var oracleFENs = []string{
	board.StartFEN[:strings.Index(board.StartFEN, " KQkq")] + " - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w - - 1 8",
	"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
	"1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1",
	"4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 1",
	"8/8/8/8/8/5k2/6q1/7K w - - 0 1",
}

func ourMoves(t *testing.T, fen string) []string {
	t.Helper()
	p, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	var out []string
	for _, m := range board.LegalMoves(p) {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

func TestLegalMovesMatchDragontooth(t *testing.T) {
	for _, fen := range oracleFENs {
		dt := dragontoothmg.ParseFen(fen)
		var want []string
		for _, m := range dt.GenerateLegalMoves() {
			want = append(want, strings.ToLower(m.String()))
		}
		slices.Sort(want)

		if got := ourMoves(t, fen); !slices.Equal(got, want) {
			t.Fatalf("%s:\n got %v\nwant %v", fen, got, want)
		}
	}
}

func TestLegalMovesMatchNotnilChess(t *testing.T) {
	for _, fen := range oracleFENs {
		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("chess.FEN(%q): %v", fen, err)
		}
		game := chess.NewGame(opt)
		var want []string
		for _, m := range game.ValidMoves() {
			want = append(want, strings.ToLower(m.String()))
		}
		slices.Sort(want)

		if got := ourMoves(t, fen); !slices.Equal(got, want) {
			t.Fatalf("%s:\n got %v\nwant %v", fen, got, want)
		}
	}
}

func TestFENRoundTripAgreesWithNotnilChess(t *testing.T) {
	for _, fen := range oracleFENs {
		p, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		opt, err := chess.FEN(p.ToFEN())
		if err != nil {
			t.Fatalf("notnil/chess rejected %q: %v", p.ToFEN(), err)
		}
		if got := chess.NewGame(opt).Position().String(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestPerftMatchesGooseEngine(t *testing.T) {
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, fen := range oracleFENs {
		p, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		gb, err := goose.ParseFEN(fen)
		if err != nil {
			t.Fatalf("goosemg.ParseFEN(%q): %v", fen, err)
		}
		if got, want := board.Perft(p, depth), goose.Perft(gb, depth); got != want {
			t.Fatalf("%s perft(%d): got %d want %d", fen, depth, got, want)
		}
	}
}

func TestPerftDivideMatchesGooseEngine(t *testing.T) {
	fen := oracleFENs[1]
	p, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	gb, err := goose.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	want := make(map[string]uint64)
	for m, n := range goose.PerftDivide(gb, 2) {
		want[m.String()] = n
	}
	got := board.PerftDivide(p, 2)
	keys := maps.Keys(got)
	slices.Sort(keys)
	if wantKeys := maps.Keys(want); len(wantKeys) != len(keys) {
		t.Fatalf("divide has %d root moves, goosemg %d", len(keys), len(wantKeys))
	}
	for _, k := range keys {
		if got[k] != want[k] {
			t.Fatalf("%s: got %d want %d", k, got[k], want[k])
		}
	}
}

func TestOracleFENsParse(t *testing.T) {
	for _, fen := range oracleFENs {
		if _, err := board.ParseFEN(fen); err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
	}
}
