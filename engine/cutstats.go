package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats collects counters for one search invocation. A fresh value is
// returned with every Result; nothing persists between searches.
type Stats struct {
	Nodes          uint64
	TTHits         uint64
	TTMoves        uint64
	KillerMoves    uint64
	Cutoffs        uint64
	IllegalSkipped uint64
	Depth          int
	Elapsed        time.Duration
}

// Add accumulates o into s. Depth keeps the larger value.
func (s *Stats) Add(o Stats) {
	s.Nodes += o.Nodes
	s.TTHits += o.TTHits
	s.TTMoves += o.TTMoves
	s.KillerMoves += o.KillerMoves
	s.Cutoffs += o.Cutoffs
	s.IllegalSkipped += o.IllegalSkipped
	s.Elapsed += o.Elapsed
	s.Depth = max(s.Depth, o.Depth)
}

// NPS returns nodes searched per second.
func (s Stats) NPS() uint64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(s.Nodes) / s.Elapsed.Seconds())
}

// MarshalZerologObject lets Stats be logged with Event.Object.
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("depth", s.Depth).
		Uint64("nodes", s.Nodes).
		Uint64("tt_hits", s.TTHits).
		Uint64("tt_moves", s.TTMoves).
		Uint64("killer_moves", s.KillerMoves).
		Uint64("cutoffs", s.Cutoffs).
		Uint64("illegal_skipped", s.IllegalSkipped).
		Dur("elapsed", s.Elapsed).
		Uint64("nps", s.NPS())
}
