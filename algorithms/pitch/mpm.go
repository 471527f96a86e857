package pitch

import (
	"github.com/blueslick/harpsense/algorithms/common"
)

// mpmPeakThreshold gates normalized autocorrelation peaks; values below it
// indicate too little periodicity to trust.
const mpmPeakThreshold = 0.5

// MPMDetector estimates a single fundamental with the normalized
// square-difference (McLeod) method: the NSDF is an autocorrelation
// normalized to [-1, 1], and the first strong peak inside the period window
// marks the fundamental.
type MPMDetector struct {
	rng Range
}

// NewMPMDetector creates a detector over the default frequency range.
func NewMPMDetector() *MPMDetector {
	return &MPMDetector{rng: DefaultRange()}
}

// NewMPMDetectorWithRange creates a detector bounded to the given range.
func NewMPMDetectorWithRange(r Range) *MPMDetector {
	return &MPMDetector{rng: r}
}

// Range returns the detector's frequency range.
func (d *MPMDetector) Range() Range { return d.rng }

// SetRange replaces the detector's frequency range.
func (d *MPMDetector) SetRange(r Range) { d.rng = r }

// Detect estimates the fundamental frequency of the buffer. Degenerate
// input, silence, or an empty period window yield no pitch.
func (d *MPMDetector) Detect(buffer []float64, sampleRate int) Result {
	if len(buffer) < 2 || sampleRate <= 0 || isSilent(buffer) {
		return noPitch
	}

	minLag, maxLag := d.rng.lagWindow(sampleRate)
	limit := len(buffer) / 2
	if maxLag+2 < limit {
		limit = maxLag + 2
	}
	if minLag >= limit {
		return noPitch
	}

	nsdf := normalizedSquareDifference(buffer, limit)

	lag := firstStrongPeak(nsdf, minLag, limit)
	if lag < 0 {
		return noPitch
	}

	period := refineLag(nsdf, lag)
	if period <= 0 {
		return noPitch
	}
	return Result{
		Pitch:      float64(sampleRate) / period,
		Confidence: common.Clamp(nsdf[lag], 0, 1),
	}
}

// normalizedSquareDifference computes the NSDF over lags [0, limit) with a
// fixed correlation window, yielding values in [-1, 1].
func normalizedSquareDifference(buffer []float64, limit int) []float64 {
	n := len(buffer)
	window := n - limit
	nsdf := make([]float64, limit)
	nsdf[0] = 1
	for tau := 1; tau < limit; tau++ {
		var acf, norm float64
		for i := 0; i < window; i++ {
			acf += buffer[i] * buffer[i+tau]
			norm += buffer[i]*buffer[i] + buffer[i+tau]*buffer[i+tau]
		}
		if norm > 0 {
			nsdf[tau] = 2 * acf / norm
		}
	}
	return nsdf
}

// firstStrongPeak returns the first local maximum of nsdf past the zero-lag
// lobe, within [minLag, maxLag), exceeding the peak threshold, or -1. The
// lobe around lag 0 always starts near 1 and must be skipped or it would
// shadow every real peak.
func firstStrongPeak(nsdf []float64, minLag, maxLag int) int {
	if maxLag > len(nsdf) {
		maxLag = len(nsdf)
	}
	start := 1
	for start < maxLag && nsdf[start] > 0 {
		start++
	}
	if start < minLag {
		start = minLag
	}
	for i := start; i < maxLag; i++ {
		if nsdf[i] <= mpmPeakThreshold {
			continue
		}
		for i+1 < maxLag && nsdf[i+1] > nsdf[i] {
			i++
		}
		return i
	}
	return -1
}
