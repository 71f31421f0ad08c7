package pace

import (
	"math"
	"time"
)

// statWindow keeps a fixed-size ring of frame time samples and reports
// their mean and standard deviation. Until the ring fills, only the
// samples actually received are counted.
type statWindow struct {
	samples  []time.Duration
	curIndex int
	filled   int
}

func newStatWindow(samples int) statWindow {
	return statWindow{
		samples:  make([]time.Duration, samples),
		curIndex: 0,
	}
}

func (p *statWindow) AddSample(sample time.Duration) {
	p.samples[p.curIndex] = sample
	p.curIndex = (p.curIndex + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

func (p *statWindow) Report() (mean, stdDev time.Duration) {
	if p.filled == 0 {
		return 0, 0
	}
	sum := time.Duration(0)
	for _, s := range p.samples[:p.filled] {
		sum += s
	}
	mean = sum / time.Duration(p.filled)
	varNumerator := time.Duration(0)
	for _, s := range p.samples[:p.filled] {
		varNumerator += (s - mean) * (s - mean)
	}
	stdDev = time.Duration(int64(math.Sqrt(float64(varNumerator) / float64(p.filled))))
	return
}
