package notes

import "strings"

// ToneSetSource yields the playable tone-sets of an instrument, each as a
// slice of frequencies in the instrument's own order. Harmonica models
// implement this to expose their chordable hole combinations.
type ToneSetSource interface {
	ToneSets() [][]float64
}

// GroupChords builds a map from chord signature to the tone-set that carries
// it. The signature is the note names of the set's frequencies joined with
// "-" in the set's original order, so voicing order distinguishes chords.
// When two tone-sets share a signature the later one wins. Empty tone-sets
// are skipped. The result is never nil.
func GroupChords(source ToneSetSource) map[string][]float64 {
	chords := make(map[string][]float64)
	if source == nil {
		return chords
	}
	for _, set := range source.ToneSets() {
		if len(set) == 0 {
			continue
		}
		chords[Signature(set)] = set
	}
	return chords
}

// Signature returns the "-"-joined note names of the frequencies in order.
func Signature(frequencies []float64) string {
	names := make([]string, len(frequencies))
	for i, f := range frequencies {
		names[i] = NoteName(f)
	}
	return strings.Join(names, "-")
}
