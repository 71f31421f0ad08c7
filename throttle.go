// Package pace paces a real-time update loop to a maximum rate.
package pace

import (
	"fmt"
	"math"
)

// DefaultMaxUpdateHz is the update rate cap used when none is configured.
const DefaultMaxUpdateHz = 1000

// Throttle limits how often a loop iterates by sleeping off whatever
// portion of the frame budget the frame's own work did not consume.
//
// Sleeps are issued in whole milliseconds, and the platform only
// guarantees a lower bound on their duration, so a single sleep is
// never exact. Throttle keeps a running ledger of the fractional
// remainders and the measured over-sleep, and folds that error back
// into future sleeps so the long-run average frame period matches the
// budget.
//
// All state belongs to the goroutine calling ProcessFrame. There is no
// internal locking.
type Throttle struct {
	// MaxUpdateHz is the update rate cap. A value of zero or less
	// disables throttling entirely.
	MaxUpdateHz int
	// AlwaysYield controls whether a frame that needed no timed sleep
	// still offers the scheduler a chance to run other work.
	AlwaysYield bool

	timer  *Timer
	waiter Waiter

	// sleepError is the fractional/rounding debt or credit carried
	// between frames, in milliseconds. Negative means the engine owes
	// less future sleep.
	sleepError float64

	averages runningAverages
}

// NewThrottle creates a Throttle that paces frames measured by timer.
// If waiter is nil, a real sleeping Waiter on the timer's clock is used.
func NewThrottle(timer *Timer, waiter Waiter) *Throttle {
	if waiter == nil {
		waiter = NewWaiter(timer.clk)
	}
	return &Throttle{
		MaxUpdateHz: DefaultMaxUpdateHz,
		AlwaysYield: true,
		timer:       timer,
		waiter:      waiter,
	}
}

// TargetFrameMillis returns the frame budget implied by MaxUpdateHz,
// or zero when throttling is disabled.
func (t *Throttle) TargetFrameMillis() float64 {
	if t.MaxUpdateHz <= 0 {
		return 0
	}
	return 1000.0 / float64(t.MaxUpdateHz)
}

// ProcessFrame must be called exactly once per loop iteration, after
// the frame's work is finished and timer.Update has frozen the frame's
// elapsed time. It blocks the calling goroutine for whatever portion
// of the frame budget remains, then folds the frame into the running
// averages.
func (t *Throttle) ProcessFrame() {
	t.throttle()
	t.averages.update(t.timer.ElapsedMillis())
}

// AverageFrameTime returns the smoothed frame duration in milliseconds.
func (t *Throttle) AverageFrameTime() float64 {
	return t.averages.frameTime
}

// AverageFPS returns the smoothed frame rate. This is the moving
// average of each frame's instantaneous rate, not the reciprocal of
// AverageFrameTime; the two diverge under variable frame times.
func (t *Throttle) AverageFPS() float64 {
	return t.averages.fps
}

func (t *Throttle) throttle() {
	target := t.TargetFrameMillis()
	if target <= 0 {
		return
	}

	elapsed := t.timer.ElapsedMillis()
	slept := false

	if elapsed < target {
		desired := target - elapsed
		// Only whole milliseconds can be slept.
		waitFloor := math.Floor(desired)
		if waitFloor < 0 {
			if debugChecks {
				panic(fmt.Sprintf("pace: floored wait is negative (%f)", waitFloor))
			}
			waitFloor = 0
		}
		t.sleepError += desired - waitFloor

		// Pay down accumulated error, but never enough to drive the
		// sleep duration negative.
		compensation := math.Round(t.sleepError)
		if compensation < -waitFloor {
			compensation = -waitFloor
		}
		t.sleepError -= compensation
		waitFloor += compensation

		if waitFloor > 0 {
			t.waiter.Sleep(int64(waitFloor))
			slept = true
		}

		// The sleep is a lower bound. Charge the measured overshoot
		// against the ledger and re-anchor the frame clock to the real
		// post-wait time so the next frame's elapsed measurement only
		// covers its own work.
		afterWait := t.timer.SourceMillis()
		t.sleepError += waitFloor - (afterWait - t.timer.CurrentMillis())
		t.timer.SetCurrentMillis(afterWait)
	} else {
		// Running behind. Replace whatever debt or credit was carried
		// with a fresh debt proportional to the overrun, so a slow
		// frame shrinks the next few sleeps instead of the engine
		// skipping them entirely to catch up at once.
		t.sleepError = -(elapsed - target)
	}

	if !slept && t.AlwaysYield {
		t.waiter.Yield()
	}
}
