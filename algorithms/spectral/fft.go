// Package spectral provides frequency-domain primitives shared by the pitch
// and chord analyzers.
package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// NextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// MagnitudeSpectrum computes the one-sided magnitude spectrum of the signal,
// zero-padded to fftSize. fftSize must be a power of two and at least
// len(signal); pass 0 to pad to the next power of two automatically. The
// returned slice holds fftSize/2 bins; bin k maps to frequency
// k*sampleRate/fftSize.
func MagnitudeSpectrum(signal []float64, fftSize int) []float64 {
	if len(signal) == 0 {
		return nil
	}
	if fftSize < len(signal) {
		fftSize = NextPowerOfTwo(len(signal))
	}
	padded := make([]float64, fftSize)
	copy(padded, signal)

	bins := fft.FFTReal(padded)
	mags := make([]float64, fftSize/2)
	for i := range mags {
		mags[i] = cmplx.Abs(bins[i])
	}
	return mags
}

// Normalize scales the spectrum in place so its largest magnitude is 1.
// A spectrum with no energy is left untouched.
func Normalize(spectrum []float64) {
	var max float64
	for _, m := range spectrum {
		if m > max {
			max = m
		}
	}
	if max <= 0 {
		return
	}
	for i := range spectrum {
		spectrum[i] /= max
	}
}

// BinFrequency converts a (possibly fractional) bin index to Hz.
func BinFrequency(bin float64, sampleRate, fftSize int) float64 {
	return bin * float64(sampleRate) / float64(fftSize)
}

// FrequencyBin converts a frequency in Hz to the nearest bin index.
func FrequencyBin(freq float64, sampleRate, fftSize int) int {
	return int(math.Round(freq * float64(fftSize) / float64(sampleRate)))
}
