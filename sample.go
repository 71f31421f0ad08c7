package pace

import (
	"time"
)

// PaceSample is a once-per-second snapshot of loop pacing health,
// published on the loop's heartbeat channel.
type PaceSample struct {
	// Frame is the number of iterations processed so far.
	Frame uint64
	// AverageFrameTime is the smoothed frame duration in milliseconds.
	AverageFrameTime float64
	// AverageFPS is the smoothed frame rate.
	AverageFPS float64
	// WindowMean and WindowStdDev describe recent observed frame times.
	WindowMean   time.Duration
	WindowStdDev time.Duration
	// Lag is how far the loop trails its target cadence.
	Lag time.Duration
}
