package pace

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func TestTimerUpdate(t *testing.T) {
	mock := clock.NewMock()
	timer := NewTimer(mock)

	mock.Add(5 * time.Millisecond)
	timer.Update()
	assert.InDelta(t, 5.0, timer.ElapsedMillis(), 1e-9)
	assert.InDelta(t, 5.0, timer.CurrentMillis(), 1e-9)

	mock.Add(2500 * time.Microsecond)
	timer.Update()
	assert.InDelta(t, 2.5, timer.ElapsedMillis(), 1e-9)
	assert.InDelta(t, 7.5, timer.SourceMillis(), 1e-9)
}

func TestTimerReanchorExcludesWait(t *testing.T) {
	mock := clock.NewMock()
	timer := NewTimer(mock)

	// 3 ms of work, then a 7 ms wait re-anchors the frame clock.
	mock.Add(3 * time.Millisecond)
	timer.Update()
	mock.Add(7 * time.Millisecond)
	timer.SetCurrentMillis(timer.SourceMillis())

	// The next frame's elapsed reading covers only its own work.
	mock.Add(4 * time.Millisecond)
	timer.Update()
	assert.InDelta(t, 4.0, timer.ElapsedMillis(), 1e-9)
}

func TestStatWindow(t *testing.T) {
	window := newStatWindow(4)

	mean, stdDev := window.Report()
	assert.Equal(t, time.Duration(0), mean)
	assert.Equal(t, time.Duration(0), stdDev)

	// Partial fill only counts received samples.
	window.AddSample(10 * time.Millisecond)
	window.AddSample(20 * time.Millisecond)
	mean, stdDev = window.Report()
	assert.Equal(t, 15*time.Millisecond, mean)
	assert.Equal(t, 5*time.Millisecond, stdDev)

	// Constant samples after wrap-around report zero spread.
	for i := 0; i < 8; i++ {
		window.AddSample(10 * time.Millisecond)
	}
	mean, stdDev = window.Report()
	assert.Equal(t, 10*time.Millisecond, mean)
	assert.Equal(t, time.Duration(0), stdDev)
}

func TestLagTracker(t *testing.T) {
	mock := clock.NewMock()
	tracker := newLagTracker(mock)

	// Three frames of a 10 ms budget while 45 ms of wall time passes.
	mock.Add(45 * time.Millisecond)
	for i := 0; i < 3; i++ {
		tracker.MarkDone(10 * time.Millisecond)
	}
	assert.Equal(t, 15*time.Millisecond, tracker.Lag())

	// An on-pace stretch carries the existing lag without growing it.
	mock.Add(20 * time.Millisecond)
	tracker.MarkDone(10 * time.Millisecond)
	tracker.MarkDone(10 * time.Millisecond)
	assert.Equal(t, 15*time.Millisecond, tracker.Lag())
}
