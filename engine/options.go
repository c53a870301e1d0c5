package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults for the iterative-deepening loop.
const (
	DefaultMaxDepth    = 20
	DefaultTimeBudget  = 100 * time.Millisecond
	DefaultScoreWindow = 200
	DefaultDepth       = 5
)

type config struct {
	logger      zerolog.Logger
	ttBits      uint
	maxDepth    int
	timeBudget  time.Duration
	scoreWindow int
	maxPlies    int
	debugChecks bool
}

func defaultConfig() config {
	return config{
		logger:      zerolog.Nop(),
		ttBits:      DefaultTTBits,
		maxDepth:    DefaultMaxDepth,
		timeBudget:  DefaultTimeBudget,
		scoreWindow: DefaultScoreWindow,
	}
}

// Option configures a Searcher.
type Option func(*config)

// WithLogger routes search diagnostics to l.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTTBits sizes the transposition table at 2^bits entries.
func WithTTBits(bits uint) Option {
	return func(c *config) {
		if bits > 0 {
			c.ttBits = bits
		}
	}
}

// WithMaxDepth caps adaptive deepening. A requested depth above the cap is
// still searched in full.
func WithMaxDepth(d int) Option {
	return func(c *config) {
		if d > 0 {
			c.maxDepth = d
		}
	}
}

// WithTimeBudget sets the wall time after which adaptive deepening stops.
func WithTimeBudget(d time.Duration) Option {
	return func(c *config) { c.timeBudget = d }
}

// WithScoreWindow sets the score magnitude above which adaptive deepening stops.
func WithScoreWindow(w int) Option {
	return func(c *config) { c.scoreWindow = w }
}

// WithMaxPlies bounds Play. Zero means play until the game ends.
func WithMaxPlies(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxPlies = n
		}
	}
}

// WithDebugChecks validates the position after every undo and panics on a
// broken invariant. Searches run several times slower.
func WithDebugChecks() Option {
	return func(c *config) { c.debugChecks = true }
}
