// Package harmonic provides spectral peak picking used by the chord
// extractor.
package harmonic

import (
	"github.com/blueslick/harpsense/algorithms/common"
	"github.com/blueslick/harpsense/algorithms/spectral"
)

// Peak is a local maximum of a magnitude spectrum. Frequency carries the
// parabolically refined estimate; Bin is the integer bin it came from.
type Peak struct {
	Frequency float64
	Magnitude float64
	Bin       int
}

// DetectPeaks finds local maxima of a normalized magnitude spectrum whose
// magnitude exceeds threshold. Each peak's frequency is refined with
// parabolic interpolation around its bin. Peaks are returned in ascending
// frequency order.
func DetectPeaks(spectrum []float64, sampleRate, fftSize int, threshold float64) []Peak {
	if len(spectrum) < 3 {
		return nil
	}
	var peaks []Peak
	for i := 1; i < len(spectrum)-1; i++ {
		m := spectrum[i]
		if m <= threshold {
			continue
		}
		if m <= spectrum[i-1] || m < spectrum[i+1] {
			continue
		}
		refined := common.RefineExtremum(spectrum, i)
		peaks = append(peaks, Peak{
			Frequency: spectral.BinFrequency(refined, sampleRate, fftSize),
			Magnitude: m,
			Bin:       i,
		})
	}
	return peaks
}

// FilterRange keeps only peaks whose frequency lies in [minFreq, maxFreq].
func FilterRange(peaks []Peak, minFreq, maxFreq float64) []Peak {
	out := peaks[:0]
	for _, p := range peaks {
		if p.Frequency >= minFreq && p.Frequency <= maxFreq {
			out = append(out, p)
		}
	}
	return out
}
