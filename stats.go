package pace

// alpha is the smoothing factor for the running averages. Each new
// frame contributes this fraction of the update.
const alpha = 0.05

// runningAverages holds the exponentially smoothed frame statistics.
// Zero is the uninitialized sentinel; the first sample seeds both
// averages directly with no blending.
type runningAverages struct {
	frameTime float64
	fps       float64
}

func (r *runningAverages) update(elapsedMillis float64) {
	if r.frameTime == 0 {
		r.frameTime = elapsedMillis
		r.fps = 1000.0 / elapsedMillis
		return
	}
	r.frameTime = r.frameTime*(1-alpha) + elapsedMillis*alpha
	r.fps = r.fps*(1-alpha) + (1000.0/elapsedMillis)*alpha
}
