// Package chord implements multi-pitch extraction with a pluggable learned
// model and a deterministic spectral fallback.
package chord

// Result holds the pitches attributed to a chord, in ascending frequency
// order, and an aggregate confidence in [0, 1]. An empty pitch list with
// confidence 0 means nothing tonal was found.
type Result struct {
	Pitches    []float64
	Confidence float64
}

// HasPitches reports whether any pitch was extracted.
func (r Result) HasPitches() bool {
	return len(r.Pitches) > 0
}

// PitchCount returns the number of extracted pitches.
func (r Result) PitchCount() int {
	return len(r.Pitches)
}

func emptyResult() Result {
	return Result{Pitches: nil, Confidence: 0}
}
