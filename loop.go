package pace

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// windowSamples is how many recent frames feed the heartbeat's
// windowed statistics.
const windowSamples = 120

type state int

const (
	stateInit state = iota
	stateRun  state = iota
	stateStop state = iota
)

// UpdateFn is a function that is called once per loop iteration.
// step should be treated as the amount of wall time that elapsed since
// the previous call, including any time the loop spent throttled.
type UpdateFn func(step time.Duration) error

// Loop drives an update function at a capped rate.
type Loop struct {
	// Update is called once per iteration.
	Update UpdateFn

	clk       clock.Clock
	timer     *Timer
	throttle  *Throttle
	mu        sync.Mutex
	done      chan interface{}
	err       error
	heartbeat chan PaceSample
	curState  state
}

// NewLoop creates a new paced loop on the system clock.
// maxUpdateHz of zero or less runs the loop uncapped.
func NewLoop(update UpdateFn, maxUpdateHz int) (*Loop, error) {
	return NewLoopWithClock(update, maxUpdateHz, clock.New())
}

// NewLoopWithClock creates a new paced loop on the given clock.
func NewLoopWithClock(update UpdateFn, maxUpdateHz int, clk clock.Clock) (*Loop, error) {
	// Input validation.
	if update == nil {
		return nil, wrapLoopError(nil, TokenLoop, "Update can't be nil")
	}
	if clk == nil {
		clk = clock.New()
	}

	timer := NewTimer(clk)
	throttle := NewThrottle(timer, NewWaiter(clk))
	throttle.MaxUpdateHz = maxUpdateHz

	// Init loop.
	return &Loop{
		Update:    update,
		clk:       clk,
		timer:     timer,
		throttle:  throttle,
		done:      make(chan interface{}),
		err:       nil,
		heartbeat: make(chan PaceSample),
		curState:  stateInit,
	}, nil
}

// Pacer returns the loop's throttle, whose MaxUpdateHz and AlwaysYield
// fields may be changed at any time. Telemetry readings are only safe
// from the loop's own Update function once the loop is running.
func (l *Loop) Pacer() *Throttle {
	return l.throttle
}

// Heartbeat returns the heartbeat channel which can be used to monitor
// the health of the loop. A pulse will be sent every second with
// current pacing statistics.
func (l *Loop) Heartbeat() <-chan PaceSample {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.heartbeat
}

// Done returns a chan that indicates when the loop is stopped.
// When this finishes, you should do cleanup.
func (l *Loop) Done() <-chan interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Stop halts the loop and sets Err().
// You probably want to make a call to this somewhere in Update().
func (l *Loop) Stop(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.curState != stateStop {
		close(l.done)
		l.err = err
		l.curState = stateStop
	}
}

// Err returns the reason why the loop closed if there was an error.
// Err will return nil if the loop has not yet run, is currently
// running, or closed without an error.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Start initiates the loop. This call does not block.
// To stop the loop, call Stop.
// To observe pacing statistics, pull items from the heartbeat channel.
// If Update returns an error, the loop stops and Err() reports it.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	// Silently fail on re-starts.
	if l.curState != stateInit {
		return wrapLoopError(nil, TokenLoop, "Loop is already running or is done")
	}
	l.curState = stateRun

	go func() {
		// Stats heartbeat channel set up.
		heartTick := l.clk.Ticker(time.Second)
		sendBeat := func(ps PaceSample) {
			select {
			case l.heartbeat <- ps:
			default: // Throw it away if no one is listening.
			}
		}

		defer heartTick.Stop()
		defer close(l.heartbeat)
		defer l.Stop(nil)

		// Time tracking.
		window := newStatWindow(windowSamples)
		lag := newLagTracker(l.clk)
		prevStart := l.timer.SourceMillis()
		frame := uint64(0)

		wg.Done()

		for {
			select {
			case <-l.Done():
				return
			case <-heartTick.C:
				mean, stdDev := window.Report()
				sendBeat(PaceSample{
					Frame:            frame,
					AverageFrameTime: l.throttle.AverageFrameTime(),
					AverageFPS:       l.throttle.AverageFPS(),
					WindowMean:       mean,
					WindowStdDev:     stdDev,
					Lag:              lag.Lag(),
				})
			default:
			}

			// The update step is the full wall delta between iteration
			// starts, sleep included. The throttle separately measures
			// work-only time through the timer.
			iterStart := l.timer.SourceMillis()
			step := time.Duration((iterStart - prevStart) * float64(time.Millisecond))
			prevStart = iterStart

			if er := l.Update(step); er != nil {
				wrapped := wrapLoopError(er, TokenUpdate, "Error returned by Update(%s)", step.String())
				wrapped.Misc["frame"] = frame
				l.Stop(wrapped)
				return
			}

			l.timer.Update()
			l.throttle.ProcessFrame()

			window.AddSample(step)
			if target := l.throttle.TargetFrameMillis(); target > 0 {
				lag.MarkDone(time.Duration(target * float64(time.Millisecond)))
			}
			frame++
		}
	}()
	// Don't return until the loop goroutine is actually starting.
	wg.Wait()
	return nil
}
