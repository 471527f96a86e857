package pitch

import (
	"github.com/blueslick/harpsense/algorithms/common"
)

// YINDetector estimates a single fundamental with the normalized-difference
// method: a squared difference function over candidate periods, cumulative
// mean normalization, and a threshold-gated first-minimum search with
// parabolic refinement.
type YINDetector struct {
	rng Range
}

// NewYINDetector creates a detector over the default frequency range.
func NewYINDetector() *YINDetector {
	return &YINDetector{rng: DefaultRange()}
}

// NewYINDetectorWithRange creates a detector bounded to the given range.
func NewYINDetectorWithRange(r Range) *YINDetector {
	return &YINDetector{rng: r}
}

// Range returns the detector's frequency range.
func (d *YINDetector) Range() Range { return d.rng }

// SetRange replaces the detector's frequency range.
func (d *YINDetector) SetRange(r Range) { d.rng = r }

// Detect estimates the fundamental frequency of the buffer. Degenerate
// input, silence, or an empty period window yield no pitch.
func (d *YINDetector) Detect(buffer []float64, sampleRate int) Result {
	if len(buffer) < 2 || sampleRate <= 0 || isSilent(buffer) {
		return noPitch
	}

	minLag, maxLag := d.rng.lagWindow(sampleRate)
	// One extra lag on each side keeps parabolic refinement in bounds.
	limit := len(buffer) / 2
	if maxLag+2 < limit {
		limit = maxLag + 2
	}
	if minLag >= limit {
		return noPitch
	}

	cmndf := cumulativeMeanNormalizedDifference(buffer, limit)

	rms := common.RMS(buffer)
	threshold := 0.4 * (1 + 0.3/(rms+0.01))
	if threshold > 0.5 {
		threshold = 0.5
	}

	lag := FindFirstMinimum(cmndf, threshold, minLag, maxLag+1)
	if lag <= 0 {
		return noPitch
	}

	period := refineLag(cmndf, lag)
	if period <= 0 {
		return noPitch
	}

	quality := cmndf[lag] / threshold
	confidence := common.Clamp(1-quality*quality, 0, 1)
	return Result{
		Pitch:      float64(sampleRate) / period,
		Confidence: confidence,
	}
}

// cumulativeMeanNormalizedDifference computes the normalized difference
// function over lags [0, limit). Only the needed lag window is evaluated,
// which keeps second-long buffers cheap.
func cumulativeMeanNormalizedDifference(buffer []float64, limit int) []float64 {
	n := len(buffer)
	window := n - limit
	diff := make([]float64, limit)
	for tau := 1; tau < limit; tau++ {
		var sum float64
		for i := 0; i < window; i++ {
			delta := buffer[i] - buffer[i+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	cmndf := make([]float64, limit)
	cmndf[0] = 1
	var runningSum float64
	for tau := 1; tau < limit; tau++ {
		runningSum += diff[tau]
		if runningSum == 0 {
			cmndf[tau] = 1
		} else {
			cmndf[tau] = diff[tau] * float64(tau) / runningSum
		}
	}
	return cmndf
}
