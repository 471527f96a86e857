// Package windowing provides analysis window functions.
package windowing

import "math"

// Hann returns a Hann window of the given size.
func Hann(size int) []float64 {
	if size <= 0 {
		return nil
	}
	w := make([]float64, size)
	if size == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}
	return w
}

// ApplyHann multiplies the signal by a Hann window in a new slice.
func ApplyHann(signal []float64) []float64 {
	w := Hann(len(signal))
	out := make([]float64, len(signal))
	for i, s := range signal {
		out[i] = s * w[i]
	}
	return out
}
