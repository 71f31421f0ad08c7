package pace

import (
	"time"

	"github.com/benbjohnson/clock"
)

// lagTracker measures how far the paced loop trails the cadence its
// frame budget implies. Each processed frame credits one budget's
// worth of work; the lag is how much further the wall clock has moved.
type lagTracker struct {
	clk          clock.Clock
	start        time.Time
	finishedWork time.Duration
}

func newLagTracker(clk clock.Clock) lagTracker {
	return lagTracker{
		clk:          clk,
		start:        clk.Now(),
		finishedWork: time.Duration(0),
	}
}

func (lt *lagTracker) MarkDone(budget time.Duration) {
	lt.finishedWork += budget
}

func (lt *lagTracker) Lag() time.Duration {
	now := lt.clk.Now()
	current := lt.start.Add(lt.finishedWork)
	lag := now.Sub(current)
	// Shift the anchor forward so the accumulated figures stay small
	// over a long-running loop.
	lt.start = now.Add(-1 * lag)
	lt.finishedWork = time.Duration(0)
	return lag
}
