// Package synth generates deterministic test signals for the analysis
// algorithms.
package synth

import (
	"fmt"
	"math"
	"math/rand"
)

// Sine returns a sine wave of the given frequency and amplitude.
func Sine(frequency, amplitude float64, sampleRate int, duration float64) []float64 {
	n := int(duration * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
	}
	return out
}

// Square returns a square wave of the given frequency and amplitude.
func Square(frequency, amplitude float64, sampleRate int, duration float64) []float64 {
	n := int(duration * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		if math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate)) >= 0 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out
}

// Tones mixes one sine per frequency, each with its own amplitude. It fails
// fast when the slices differ in length.
func Tones(frequencies, amplitudes []float64, sampleRate int, duration float64) ([]float64, error) {
	if len(frequencies) != len(amplitudes) {
		return nil, fmt.Errorf("synth: %d frequencies but %d amplitudes", len(frequencies), len(amplitudes))
	}
	n := int(duration * float64(sampleRate))
	out := make([]float64, n)
	for t, f := range frequencies {
		a := amplitudes[t]
		for i := range out {
			out[i] += a * math.Sin(2*math.Pi*f*float64(i)/float64(sampleRate))
		}
	}
	return out, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude]. The seed makes
// the output reproducible across runs.
func WhiteNoise(amplitude float64, sampleRate int, duration float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	n := int(duration * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// WithNoise adds seeded white noise of the given amplitude to a copy of the
// signal.
func WithNoise(signal []float64, amplitude float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, len(signal))
	for i, s := range signal {
		out[i] = s + amplitude*(2*rng.Float64()-1)
	}
	return out
}
