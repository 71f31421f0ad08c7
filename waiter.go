package pace

import (
	"runtime"
	"time"

	"github.com/benbjohnson/clock"
)

// Waiter is the blocking wait primitive the Throttle sleeps through.
// Implementations only promise a lower bound; the Throttle measures
// and compensates for whatever overshoot actually happens.
type Waiter interface {
	// Sleep blocks the calling goroutine for at least millis
	// milliseconds.
	Sleep(millis int64)
	// Yield offers the scheduler a single opportunity to run other
	// work without blocking for any measurable duration.
	Yield()
}

// NewWaiter returns a Waiter that sleeps on the given clock and yields
// via the Go scheduler. A nil clock means the real system clock.
func NewWaiter(clk clock.Clock) Waiter {
	if clk == nil {
		clk = clock.New()
	}
	return &clockWaiter{clk: clk}
}

type clockWaiter struct {
	clk clock.Clock
}

func (w *clockWaiter) Sleep(millis int64) {
	w.clk.Sleep(time.Duration(millis) * time.Millisecond)
}

func (w *clockWaiter) Yield() {
	runtime.Gosched()
}
