package common

// ParabolicInterpolation refines the position of an extremum given the value
// at index i and its two neighbors. It returns the sub-index offset in
// (-1, 1) relative to i. A degenerate (flat) neighborhood yields 0.
func ParabolicInterpolation(left, center, right float64) float64 {
	denom := left - 2*center + right
	if denom == 0 {
		return 0
	}
	offset := 0.5 * (left - right) / denom
	// Guard against pathological spectra pushing the vertex outside the
	// sample triplet.
	return Clamp(offset, -1, 1)
}

// RefineExtremum applies parabolic interpolation around index i of values and
// returns the refined fractional index. Indices at the edges are returned
// unchanged.
func RefineExtremum(values []float64, i int) float64 {
	if i <= 0 || i >= len(values)-1 {
		return float64(i)
	}
	return float64(i) + ParabolicInterpolation(values[i-1], values[i], values[i+1])
}
