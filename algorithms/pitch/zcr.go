package pitch

import (
	"math"

	"github.com/blueslick/harpsense/algorithms/common"
	"github.com/blueslick/harpsense/algorithms/spectral"
	"github.com/blueslick/harpsense/algorithms/windowing"
)

const (
	// zcrAmplitudeGate suppresses crossings produced by low-level noise
	// riding on the waveform.
	zcrAmplitudeGate = 0.005

	// zcrAnalysisSamples caps the samples fed to the autocorrelation and
	// spectrum stages.
	zcrAnalysisSamples = 2048

	// zcrFFTSize is the spectrum resolution for candidate refinement.
	zcrFFTSize = 2048

	// zcrACPeakThreshold is the minimum normalized autocorrelation peak
	// accepted as a period candidate.
	zcrACPeakThreshold = 0.3
)

// ZCRDetector estimates a single fundamental from amplitude-gated zero
// crossings, arbitrated by a short autocorrelation and refined against the
// magnitude spectrum. It is cheaper and coarser than the normalized
// difference detectors and suits square-ish, strongly periodic signals.
//
// A pitch outside the configured range is still reported, with its
// confidence halved; range never hard-rejects an estimate.
type ZCRDetector struct {
	rng Range
}

// NewZCRDetector creates a detector over the default frequency range.
func NewZCRDetector() *ZCRDetector {
	return &ZCRDetector{rng: DefaultRange()}
}

// NewZCRDetectorWithRange creates a detector bounded to the given range.
func NewZCRDetectorWithRange(r Range) *ZCRDetector {
	return &ZCRDetector{rng: r}
}

// Range returns the detector's frequency range.
func (d *ZCRDetector) Range() Range { return d.rng }

// SetRange replaces the detector's frequency range.
func (d *ZCRDetector) SetRange(r Range) { d.rng = r }

// Detect estimates the fundamental frequency of the buffer. Degenerate
// input or silence yields no pitch.
func (d *ZCRDetector) Detect(buffer []float64, sampleRate int) Result {
	if len(buffer) < 2 || sampleRate <= 0 || isSilent(buffer) {
		return noPitch
	}

	zcFreq := zeroCrossingEstimate(buffer, sampleRate)
	if zcFreq <= 0 {
		return noPitch
	}
	acFreq := autocorrelationEstimate(buffer, sampleRate)

	candidate := zcFreq
	agree := false
	if acFreq > 0 {
		candidate = acFreq
		agree = math.Abs(acFreq-zcFreq) < 0.1*acFreq
	}

	analysis := buffer
	if len(analysis) > zcrAnalysisSamples {
		analysis = analysis[:zcrAnalysisSamples]
	}
	spectrum := spectral.MagnitudeSpectrum(windowing.ApplyHann(analysis), zcrFFTSize)
	spectral.Normalize(spectrum)
	fftSize := 2 * len(spectrum)

	if refined := refineAgainstSpectrum(spectrum, sampleRate, fftSize, candidate); refined > 0 {
		candidate = refined
	}
	if candidate <= 0 || candidate >= float64(sampleRate)/2 {
		return noPitch
	}

	// Clamp the base score before boosting and discount last, so an
	// out-of-range pitch always reports exactly half the in-range score.
	confidence := common.Clamp(harmonicConcentration(spectrum, sampleRate, fftSize, candidate), 0, 1)
	if agree {
		confidence = math.Min(1, confidence*1.2)
	}
	if candidate < d.rng.Min || candidate > d.rng.Max {
		confidence *= 0.5
	}
	return Result{
		Pitch:      candidate,
		Confidence: confidence,
	}
}

// zeroCrossingEstimate derives a frequency from the rate of amplitude-gated
// sign changes. Two crossings per cycle.
func zeroCrossingEstimate(buffer []float64, sampleRate int) float64 {
	crossings := 0
	prev := 0.0
	for _, s := range buffer {
		if math.Abs(s) < zcrAmplitudeGate {
			continue
		}
		if prev != 0 && (s > 0) != (prev > 0) {
			crossings++
		}
		prev = s
	}
	if crossings == 0 {
		return 0
	}
	return float64(crossings) * float64(sampleRate) / (2 * float64(len(buffer)))
}

// autocorrelationEstimate searches a short normalized autocorrelation for a
// strong period. Returns 0 when no peak clears the threshold.
func autocorrelationEstimate(buffer []float64, sampleRate int) float64 {
	n := len(buffer)
	if n > zcrAnalysisSamples {
		n = zcrAnalysisSamples
	}
	maxLag := n / 2
	if maxLag < 3 {
		return 0
	}

	var energy float64
	for i := 0; i < n; i++ {
		energy += buffer[i] * buffer[i]
	}
	if energy == 0 {
		return 0
	}

	acf := make([]float64, maxLag)
	for lag := 1; lag < maxLag; lag++ {
		var sum float64
		for i := 0; i+lag < n; i++ {
			sum += buffer[i] * buffer[i+lag]
		}
		acf[lag] = sum / energy
	}

	bestLag := -1
	bestVal := zcrACPeakThreshold
	for lag := 2; lag < maxLag-1; lag++ {
		v := acf[lag]
		if v > bestVal && v >= acf[lag-1] && v >= acf[lag+1] {
			bestVal = v
			bestLag = lag
		}
	}
	if bestLag < 0 {
		return 0
	}
	period := common.RefineExtremum(acf, bestLag)
	if period <= 0 {
		return 0
	}
	return float64(sampleRate) / period
}

// refineAgainstSpectrum snaps a candidate to the strongest spectral peak
// within 30% of it, with parabolic bin refinement. Returns 0 when the
// neighborhood holds no usable peak.
func refineAgainstSpectrum(spectrum []float64, sampleRate, fftSize int, candidate float64) float64 {
	lo := spectral.FrequencyBin(candidate*0.7, sampleRate, fftSize)
	hi := spectral.FrequencyBin(candidate*1.3, sampleRate, fftSize)
	if lo < 1 {
		lo = 1
	}
	if hi > len(spectrum)-2 {
		hi = len(spectrum) - 2
	}
	if lo > hi {
		return 0
	}

	best := -1
	for i := lo; i <= hi; i++ {
		if best < 0 || spectrum[i] > spectrum[best] {
			best = i
		}
	}
	if best < 0 || spectrum[best] < 0.1 {
		return 0
	}
	return spectral.BinFrequency(common.RefineExtremum(spectrum, best), sampleRate, fftSize)
}

// harmonicConcentration measures how much of the spectrum's power sits at
// the candidate pitch and its first overtones. Near 1 for clean periodic
// signals, near 0 for broadband noise.
func harmonicConcentration(spectrum []float64, sampleRate, fftSize int, pitch float64) float64 {
	var total float64
	for _, m := range spectrum {
		total += m * m
	}
	if total == 0 {
		return 0
	}

	var harmonicPower float64
	for k := 1; k <= 8; k++ {
		bin := spectral.FrequencyBin(float64(k)*pitch, sampleRate, fftSize)
		if bin-2 < 0 || bin+2 >= len(spectrum) {
			break
		}
		for i := bin - 2; i <= bin+2; i++ {
			harmonicPower += spectrum[i] * spectrum[i]
		}
	}
	return harmonicPower / total
}
