package pace

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timer is the time source for a paced loop. All readings are float64
// milliseconds measured from the Timer's construction.
//
// SourceMillis is the true wall time and is never affected by
// throttling. CurrentMillis is the frame anchor: Update advances it to
// the source time while freezing ElapsedMillis, and the Throttle moves
// it forward again after a wait so the next frame's elapsed reading
// covers only that frame's own work, not the sleep.
type Timer struct {
	clk     clock.Clock
	epoch   time.Time
	current float64
	elapsed float64
}

// NewTimer creates a Timer on the given clock. A nil clock means the
// real system clock.
func NewTimer(clk clock.Clock) *Timer {
	if clk == nil {
		clk = clock.New()
	}
	return &Timer{
		clk:   clk,
		epoch: clk.Now(),
	}
}

// SourceMillis returns the true elapsed wall time since construction.
func (t *Timer) SourceMillis() float64 {
	return float64(t.clk.Now().Sub(t.epoch)) / float64(time.Millisecond)
}

// Update marks the end of a frame's work, freezing the frame's elapsed
// time and advancing the frame anchor to now. Call it once per
// iteration, before throttling runs.
func (t *Timer) Update() {
	src := t.SourceMillis()
	t.elapsed = src - t.current
	t.current = src
}

// ElapsedMillis returns the duration of the last frame measured by
// Update.
func (t *Timer) ElapsedMillis() float64 {
	return t.elapsed
}

// CurrentMillis returns the frame anchor timestamp.
func (t *Timer) CurrentMillis() float64 {
	return t.current
}

// SetCurrentMillis overwrites the frame anchor. The Throttle uses this
// to re-anchor the frame clock to the real post-wait time.
func (t *Timer) SetCurrentMillis(ms float64) {
	t.current = ms
}
