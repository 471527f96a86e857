// Package common provides shared numeric primitives used across the
// analysis algorithms.
package common

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean computes the arithmetic mean of values. Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Variance computes the population-style variance of values. Returns 0 for
// inputs shorter than 2 samples.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.Variance(values, nil)
}

// RMS computes the root mean square of the signal. Returns 0 for empty input.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sum float64
	for _, s := range signal {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(signal)))
}

// MaxAbs returns the largest absolute sample value. Returns 0 for empty input.
func MaxAbs(signal []float64) float64 {
	var max float64
	for _, s := range signal {
		if a := math.Abs(s); a > max {
			max = a
		}
	}
	return max
}

// Clamp constrains v to the inclusive interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
