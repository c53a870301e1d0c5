package engine

import (
	"time"
)

// TimeHandler decides whether iterative deepening keeps going. The clock
// starts once per root search and is measured across all depth passes.
type TimeHandler struct {
	budget         time.Duration
	scoreWindow    int
	maxDepth       int
	requestedDepth int
	start          time.Time
	now            func() time.Time
}

func newTimeHandler(c config, requestedDepth int) *TimeHandler {
	return &TimeHandler{
		budget:         c.timeBudget,
		scoreWindow:    c.scoreWindow,
		maxDepth:       c.maxDepth,
		requestedDepth: requestedDepth,
		now:            time.Now,
	}
}

func (th *TimeHandler) StartTime() {
	th.start = th.now()
}

// Elapsed returns the wall time since StartTime.
func (th *TimeHandler) Elapsed() time.Duration {
	return th.now().Sub(th.start)
}

/*
	Deepen reports whether another pass follows the one just finished at depth.
	The requested depth is always reached. Past it, deepening continues only
	while the clock is under budget and the score stays inside the window,
	up to the depth cap.
*/
func (th *TimeHandler) Deepen(depth, score int) bool {
	if depth < th.requestedDepth {
		return true
	}
	return th.Elapsed() < th.budget && abs(score) <= th.scoreWindow && depth < th.maxDepth
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
