package chord

import (
	"math"
	"sort"

	"github.com/blueslick/harpsense/algorithms/common"
	"github.com/blueslick/harpsense/algorithms/harmonic"
	"github.com/blueslick/harpsense/algorithms/pitch"
	"github.com/blueslick/harpsense/algorithms/spectral"
	"github.com/blueslick/harpsense/algorithms/windowing"
	"github.com/blueslick/harpsense/logging"
)

const (
	// chordSilenceGate is the RMS level below which a buffer is silent.
	// Chord extraction needs more energy than single-pitch tracking, so
	// this gate sits above the pitch detectors' gate.
	chordSilenceGate = 0.01

	// flatnessGate rejects broadband spectra before peak picking.
	flatnessGate = 0.4

	// peakThreshold is the minimum normalized magnitude for a spectral
	// peak to enter the pipeline.
	peakThreshold = 0.05

	// harmonicMagnitudeRatio marks a peak as an overtone when it is this
	// much weaker than a lower peak at a near-integer frequency ratio.
	harmonicMagnitudeRatio = 0.3

	// lowFrequencyPriority drops higher peaks much weaker than the
	// strongest peak below them; chord fundamentals dominate overtones.
	lowFrequencyPriority = 0.6

	// mergeDistanceHz collapses peaks closer than this into one pitch.
	mergeDistanceHz = 25.0

	// maxPitches caps the reported chord size.
	maxPitches = 4

	// modelConfidenceFloor routes low-confidence model output to the
	// deterministic fallback.
	modelConfidenceFloor = 0.5
)

// Extractor detects the pitches of a chord in a sample buffer. When a Model
// is attached its answer is used as long as it is trustworthy; otherwise a
// deterministic spectral pipeline extracts up to four pitches.
type Extractor struct {
	model  Model
	rng    pitch.Range
	logger logging.Logger
}

// NewExtractor creates an extractor with no model attached; every call runs
// the deterministic fallback.
func NewExtractor() *Extractor {
	return NewExtractorWithModel(nil)
}

// NewExtractorWithModel creates an extractor that consults model first.
// A nil model is allowed.
func NewExtractorWithModel(model Model) *Extractor {
	return &Extractor{
		model:  model,
		rng:    pitch.DefaultRange(),
		logger: logging.GetGlobalLogger().WithFields(logging.Fields{"component": "chord"}),
	}
}

// Range returns the extractor's frequency range.
func (e *Extractor) Range() pitch.Range { return e.rng }

// SetRange replaces the extractor's frequency range.
func (e *Extractor) SetRange(r pitch.Range) { e.rng = r }

// SetModel attaches or detaches (nil) the learned model.
func (e *Extractor) SetModel(model Model) { e.model = model }

// DetectChord extracts the chord pitches of the buffer. Silence returns an
// empty result with confidence 0 on every path, model or not. The output is
// deterministic for a given buffer when no model is attached.
func (e *Extractor) DetectChord(buffer []float64, sampleRate int) Result {
	if len(buffer) < 2 || sampleRate <= 0 {
		return emptyResult()
	}
	if common.RMS(buffer) < chordSilenceGate {
		return emptyResult()
	}

	if e.model != nil {
		res, err := e.model.DetectChord(buffer, sampleRate)
		switch {
		case err != nil:
			e.logger.Warn("model failed, using fallback", logging.Fields{"error": err.Error()})
		case !res.HasPitches():
			e.logger.Debug("model returned no pitches, using fallback")
		case res.Confidence < modelConfidenceFloor:
			e.logger.Debug("model confidence below floor, using fallback",
				logging.Fields{"confidence": res.Confidence})
		default:
			return res
		}
	}
	return e.fallback(buffer, sampleRate)
}

// fallback is the deterministic spectral pipeline: windowed zero-padded FFT,
// flatness gate, peak picking, overtone suppression, low-frequency
// prioritization, merging, and a cap of four pitches.
func (e *Extractor) fallback(buffer []float64, sampleRate int) Result {
	fftSize := spectral.NextPowerOfTwo(len(buffer))
	spectrum := spectral.MagnitudeSpectrum(windowing.ApplyHann(buffer), fftSize)
	spectral.Normalize(spectrum)

	flatness := spectral.FlatnessBand(spectrum, sampleRate, fftSize, e.rng.Min, e.rng.Max)
	if flatness > flatnessGate {
		e.logger.Debug("spectrum too flat for chord content", logging.Fields{"flatness": flatness})
		return emptyResult()
	}

	peaks := harmonic.DetectPeaks(spectrum, sampleRate, fftSize, peakThreshold)
	peaks = harmonic.FilterRange(peaks, e.rng.Min, e.rng.Max)
	if len(peaks) == 0 {
		return emptyResult()
	}

	peaks = suppressOvertones(peaks)
	peaks = prioritizeLowerFrequencies(peaks)
	peaks = mergeClosePeaks(peaks)

	if len(peaks) > maxPitches {
		sort.Slice(peaks, func(i, j int) bool { return peaks[i].Magnitude > peaks[j].Magnitude })
		peaks = peaks[:maxPitches]
		sort.Slice(peaks, func(i, j int) bool { return peaks[i].Frequency < peaks[j].Frequency })
	}

	pitches := make([]float64, len(peaks))
	var magSum float64
	for i, p := range peaks {
		pitches[i] = p.Frequency
		magSum += p.Magnitude
	}
	confidence := common.Clamp(magSum/float64(len(peaks))*(1-flatness), 0, 1)

	e.logger.Debug("fallback chord extraction",
		logging.Fields{"pitches": len(pitches), "confidence": confidence})
	return Result{Pitches: pitches, Confidence: confidence}
}

// suppressOvertones drops weak peaks sitting at near-integer multiples of a
// lower peak. Strong peaks survive even at harmonic ratios, since octaves
// and fifths are legitimate chord members.
func suppressOvertones(peaks []harmonic.Peak) []harmonic.Peak {
	kept := peaks[:0]
	for _, p := range peaks {
		overtone := false
		for _, lower := range kept {
			ratio := p.Frequency / lower.Frequency
			if ratio > 5.1 {
				continue
			}
			nearest := math.Round(ratio)
			if nearest < 2 {
				continue
			}
			if math.Abs(ratio-nearest) <= 0.1 && p.Magnitude < harmonicMagnitudeRatio*lower.Magnitude {
				overtone = true
				break
			}
		}
		if !overtone {
			kept = append(kept, p)
		}
	}
	return kept
}

// prioritizeLowerFrequencies drops peaks much weaker than the strongest peak
// below them.
func prioritizeLowerFrequencies(peaks []harmonic.Peak) []harmonic.Peak {
	kept := peaks[:0]
	var strongest float64
	for _, p := range peaks {
		if strongest > 0 && p.Magnitude < lowFrequencyPriority*strongest {
			continue
		}
		kept = append(kept, p)
		if p.Magnitude > strongest {
			strongest = p.Magnitude
		}
	}
	return kept
}

// mergeClosePeaks collapses runs of peaks within mergeDistanceHz into a
// single magnitude-weighted pitch.
func mergeClosePeaks(peaks []harmonic.Peak) []harmonic.Peak {
	if len(peaks) < 2 {
		return peaks
	}
	merged := make([]harmonic.Peak, 0, len(peaks))
	current := peaks[0]
	weightedFreq := current.Frequency * current.Magnitude
	weight := current.Magnitude
	for _, p := range peaks[1:] {
		if p.Frequency-current.Frequency < mergeDistanceHz {
			weightedFreq += p.Frequency * p.Magnitude
			weight += p.Magnitude
			if p.Magnitude > current.Magnitude {
				current.Magnitude = p.Magnitude
			}
			current.Frequency = weightedFreq / weight
			continue
		}
		merged = append(merged, current)
		current = p
		weightedFreq = p.Frequency * p.Magnitude
		weight = p.Magnitude
	}
	merged = append(merged, current)
	return merged
}
