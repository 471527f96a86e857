// Package pitch implements single-pitch estimation over raw sample buffers.
//
// All detectors share the same contract: Detect never returns an error and
// never panics; buffers that carry no usable signal (nil, too short, silent,
// or outside the detector's reach) yield Result{NoDetectedPitch, 0}.
package pitch

import (
	"math"

	"github.com/blueslick/harpsense/algorithms/common"
	"github.com/blueslick/harpsense/notes"
)

// NoDetectedPitch is the sentinel pitch value reported when a detector finds
// no fundamental.
const NoDetectedPitch = -1.0

// Default frequency range, chosen to cover the lowest and highest notes
// reachable on common diatonic and chromatic harmonicas with bends.
const (
	DefaultMinFrequency = 80.0
	DefaultMaxFrequency = 4835.0
)

// Result is the outcome of a detection pass. Pitch is in Hz or
// NoDetectedPitch; Confidence is in [0, 1] and is 0 whenever no pitch was
// detected.
type Result struct {
	Pitch      float64
	Confidence float64
}

// Detected reports whether the result carries a pitch estimate.
func (r Result) Detected() bool {
	return r.Pitch != NoDetectedPitch
}

var noPitch = Result{Pitch: NoDetectedPitch, Confidence: 0}

// Range bounds the frequencies a detector searches for. Each detector holds
// its own copy, so concurrent detectors can use different ranges.
//
// A range with Min > Max is tolerated: the derived period window is empty
// and detectors simply report no pitch.
type Range struct {
	Min float64
	Max float64
}

// DefaultRange returns the standard harmonica operating range.
func DefaultRange() Range {
	return Range{Min: DefaultMinFrequency, Max: DefaultMaxFrequency}
}

// lagWindow converts the range into an inclusive lag (period) window in
// samples, widened by 25 cents on each side so notes at the range edges are
// not clipped by rounding. An unusable range yields minLag > maxLag.
func (r Range) lagWindow(sampleRate int) (minLag, maxLag int) {
	if r.Min <= 0 || r.Max <= 0 || sampleRate <= 0 {
		return 1, 0
	}
	minLag = int(float64(sampleRate) / notes.AddCents(r.Max, 25))
	maxLag = int(math.Ceil(float64(sampleRate) / notes.AddCents(r.Min, -25)))
	if minLag < 2 {
		minLag = 2
	}
	return minLag, maxLag
}

// FindFirstMinimum scans values over the half-open index window
// [minIndex, maxIndex) and returns the first local minimum that falls below
// threshold, walking downhill from the first sub-threshold sample so a
// descending slope settles on its trough. The window is clamped to
// [0, len(values)) before any element is read, so callers may pass bounds
// computed from a wider period window without risking an out-of-range read.
// Returns -1 when the clamped window is empty, when no sample qualifies, or
// when values has fewer than 2 elements.
func FindFirstMinimum(values []float64, threshold float64, minIndex, maxIndex int) int {
	if len(values) < 2 {
		return -1
	}
	if minIndex < 0 {
		minIndex = 0
	}
	if maxIndex > len(values) {
		maxIndex = len(values)
	}
	for i := minIndex; i < maxIndex; i++ {
		if values[i] >= threshold {
			continue
		}
		for i+1 < maxIndex && values[i+1] < values[i] {
			i++
		}
		return i
	}
	return -1
}

// silenceGate is the RMS level below which a buffer is treated as silent.
const silenceGate = 0.005

func isSilent(buffer []float64) bool {
	return common.RMS(buffer) < silenceGate
}

// refineLag converts an integer lag into a fractional one via parabolic
// interpolation over the surrounding difference values.
func refineLag(values []float64, lag int) float64 {
	return common.RefineExtremum(values, lag)
}
