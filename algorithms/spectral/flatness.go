package spectral

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Flatness computes the spectral flatness (Wiener entropy) of a magnitude
// spectrum: the ratio of the geometric mean to the arithmetic mean of the
// power values. Tonal spectra approach 0, white noise approaches 1. Empty or
// silent spectra return 0.
func Flatness(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	const eps = 1e-12
	power := make([]float64, len(spectrum))
	var logSum float64
	for i, m := range spectrum {
		p := m*m + eps
		power[i] = p
		logSum += math.Log(p)
	}

	arithmeticMean := stat.Mean(power, nil)
	if arithmeticMean <= eps {
		return 0
	}
	geometricMean := math.Exp(logSum / float64(len(power)))
	return geometricMean / arithmeticMean
}

// FlatnessBand computes flatness over the bins covering [minFreq, maxFreq].
// An empty band degrades to the full-spectrum flatness.
func FlatnessBand(spectrum []float64, sampleRate, fftSize int, minFreq, maxFreq float64) float64 {
	lo := FrequencyBin(minFreq, sampleRate, fftSize)
	hi := FrequencyBin(maxFreq, sampleRate, fftSize)
	if lo < 0 {
		lo = 0
	}
	if hi >= len(spectrum) {
		hi = len(spectrum) - 1
	}
	if lo >= hi {
		return Flatness(spectrum)
	}
	return Flatness(spectrum[lo : hi+1])
}
