package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/bitchess/bitchess/board"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// Infinity is the mate score. The side that is mated scores -Infinity
	// when it maximizes and +Infinity when it minimizes.
	Infinity  = math.MaxInt32
	DrawScore = 0

	// FiftyMoveLimit is the halfmove clock at which a line is scored as drawn.
	FiftyMoveLimit = 50
	// RepetitionLimit is the number of recorded occurrences that draws a line.
	RepetitionLimit = 2
)

// Checkmate is reported in place of a move when the root has no move to play.
const Checkmate = "checkmate"

// Result is the outcome of one root search.
type Result struct {
	Move  board.Move
	Score int
	Depth int
	Stats Stats
}

// String returns the move in coordinate notation, or Checkmate for the null move.
func (r Result) String() string {
	if r.Move.IsNull() {
		return Checkmate
	}
	return r.Move.String()
}

// Searcher runs minimax with alpha-beta pruning over a single position. It
// is not safe for concurrent use; callers needing parallel searches create
// one Searcher each.
type Searcher struct {
	cfg     config
	log     zerolog.Logger
	gen     *board.MoveGenerator
	tt      *TransTable
	killers *KillerTable
	history *GameHistory

	// per remaining depth; each recursion level owns exactly one slot
	bufs  []board.Moves
	order [][]board.Move

	stats Stats
}

// NewSearcher allocates the transposition table and move buffers.
func NewSearcher(opts ...Option) *Searcher {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	s := &Searcher{
		cfg:     cfg,
		log:     cfg.logger,
		gen:     board.DefaultGenerator,
		tt:      NewTransTable(cfg.ttBits),
		killers: NewKillerTable(cfg.maxDepth),
		history: NewGameHistory(),
	}
	s.ensureDepth(cfg.maxDepth)
	return s
}

// History exposes the game history so callers can record positions played
// before the search starts.
func (s *Searcher) History() *GameHistory { return s.history }

// Reset prepares the searcher for a new game.
func (s *Searcher) Reset() {
	s.tt.Clear()
	s.killers.Clear()
	s.history.Reset()
}

func (s *Searcher) ensureDepth(depth int) {
	s.killers.ensure(depth)
	for len(s.bufs) <= depth {
		s.bufs = append(s.bufs, board.Moves{
			Captures: make([]board.Move, 0, 32),
			Quiets:   make([]board.Move, 0, 64),
		})
		s.order = append(s.order, make([]board.Move, 0, 96))
	}
}

// =============================================================================
// ROOT SEARCH
// =============================================================================

// BestMove searches p by iterative deepening and returns the move chosen by
// the last completed pass. p is restored before returning. A requested depth
// below 1 is raised to 1. The context is consulted only between passes; when
// it ends early the best result so far is returned together with its error.
func (s *Searcher) BestMove(ctx context.Context, p *board.Position, depth int) (Result, error) {
	depth = max(depth, 1)
	s.ensureDepth(max(depth, s.cfg.maxDepth))
	s.tt.Clear()
	s.stats = Stats{}

	th := newTimeHandler(s.cfg, depth)
	th.StartTime()

	maximizing := p.SideToMove() == board.White
	var res Result
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			res.Stats = s.finishStats(th, res.Depth)
			return res, err
		}

		move, score := s.search(p, i, -Infinity, Infinity, maximizing)
		res = Result{Move: move, Score: score, Depth: i}

		s.log.Debug().
			Int("depth", i).
			Int("score", score).
			Str("move", res.String()).
			Uint64("nodes", s.stats.Nodes).
			Dur("elapsed", th.Elapsed()).
			Msg("depth complete")

		if !th.Deepen(i, score) {
			break
		}
	}
	res.Stats = s.finishStats(th, res.Depth)
	return res, nil
}

func (s *Searcher) finishStats(th *TimeHandler, depth int) Stats {
	st := s.stats
	st.Depth = depth
	st.Elapsed = th.Elapsed()
	return st
}

// Play keeps choosing and applying moves to p until no move remains or the
// ply limit set by WithMaxPlies is reached. Each played position is recorded
// in the game history. fn, if not nil, is called after every played move.
// The returned Result is the final root search: its Move is null when the
// game ended.
func (s *Searcher) Play(ctx context.Context, p *board.Position, depth int, fn func(ply int, r Result)) (Result, error) {
	for ply := 0; ; ply++ {
		res, err := s.BestMove(ctx, p, depth)
		if err != nil {
			return res, err
		}
		if res.Move.IsNull() {
			s.log.Info().
				Int("ply", ply).
				Bool("in_check", s.gen.InCheck(p)).
				Str("fen", p.ToFEN()).
				Msg("game over")
			return res, nil
		}

		p.Apply(res.Move)
		s.history.Push(p.Hash())

		s.log.Info().
			Int("ply", ply+1).
			Str("move", res.Move.String()).
			Int("score", res.Score).
			Object("stats", res.Stats).
			Msg("move played")

		if fn != nil {
			fn(ply+1, res)
		}
		if s.cfg.maxPlies > 0 && ply+1 >= s.cfg.maxPlies {
			return res, nil
		}
	}
}

// =============================================================================
// MINIMAX
// =============================================================================

// search returns the best move and score for p at the given remaining depth.
// White maximizes. The null move is returned for leaves, draws and positions
// with no legal move.
func (s *Searcher) search(p *board.Position, depth, alpha, beta int, maximizing bool) (board.Move, int) {
	s.stats.Nodes++
	hash := p.Hash()

	if s.history.Count(hash) >= RepetitionLimit {
		return board.Move{}, DrawScore
	}
	if e, ok := s.tt.Probe(hash, depth); ok {
		s.stats.TTHits++
		return e.Move, e.Score
	}
	if depth <= 0 {
		return board.Move{}, Evaluate(p)
	}
	if p.HalfmoveClock() >= FiftyMoveLimit {
		return board.Move{}, DrawScore
	}

	value := Infinity
	if maximizing {
		value = -Infinity
	}
	var best board.Move
	found := false
	a, b := alpha, beta

	for _, m := range s.orderMoves(p, depth) {
		u := p.Apply(m)
		if s.gen.IsInCheck(p, m.Color) {
			p.Undo(u)
			s.stats.IllegalSkipped++
			continue
		}

		child := p.Hash()
		s.history.Push(child)
		_, score := s.search(p, depth-1, a, b, !maximizing)
		s.history.Pop(child)
		p.Undo(u)
		if s.cfg.debugChecks {
			if err := p.Validate(); err != nil {
				panic(fmt.Sprintf("undo %s: %v", m, err))
			}
		}

		if maximizing {
			if score > value || !found {
				value, best, found = score, m, true
			}
			a = max(a, value)
			if value > beta {
				s.cutoff(depth, m)
				break
			}
		} else {
			if score < value || !found {
				value, best, found = score, m, true
			}
			b = min(b, value)
			if value < alpha {
				s.cutoff(depth, m)
				break
			}
		}
	}

	if !found {
		if !s.gen.InCheck(p) {
			return board.Move{}, DrawScore
		}
		return board.Move{}, value
	}

	s.tt.Store(TTEntry{
		Hash:       hash,
		Score:      value,
		Depth:      depth,
		LowerBound: maximizing && value > beta,
		UpperBound: !maximizing && value < alpha,
		Move:       best,
	})
	return best, value
}

func (s *Searcher) cutoff(depth int, m board.Move) {
	s.stats.Cutoffs++
	s.killers.Insert(depth, m)
}

// =============================================================================
// MOVE ORDERING
// =============================================================================

// orderMoves lists the pseudo-legal moves of p as: the stored best move for
// this position, the killer for this depth, then captures, then quiet moves.
// Hints are used only when they are among the generated moves.
func (s *Searcher) orderMoves(p *board.Position, depth int) []board.Move {
	ms := &s.bufs[depth]
	s.gen.GenerateInto(p, ms)

	out := s.order[depth][:0]
	if m, ok := s.tt.BestMove(p.Hash()); ok && takeMove(ms, m) {
		out = append(out, m)
		s.stats.TTMoves++
	}
	if k := s.killers.Get(depth); !k.IsNull() && takeMove(ms, k) {
		out = append(out, k)
		s.stats.KillerMoves++
	}
	out = append(out, ms.Captures...)
	out = append(out, ms.Quiets...)
	s.order[depth] = out
	return out
}

// takeMove removes m from ms and reports whether it was present.
func takeMove(ms *board.Moves, m board.Move) bool {
	if i := slices.Index(ms.Captures, m); i >= 0 {
		ms.Captures = slices.Delete(ms.Captures, i, i+1)
		return true
	}
	if i := slices.Index(ms.Quiets, m); i >= 0 {
		ms.Quiets = slices.Delete(ms.Quiets, i, i+1)
		return true
	}
	return false
}
