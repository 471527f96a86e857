// Package notes maps frequencies to equal-temperament pitch classes and
// groups harmonica tone-sets into named chords.
package notes

import "math"

// ReferenceFrequency is the tuning reference for A4.
const ReferenceFrequency = 440.0

// pitchClasses lists the 12-TET pitch class names starting at C.
var pitchClasses = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// NoteName returns the nearest 12-TET pitch class name for the frequency,
// referenced to A4 = 440 Hz. Non-positive frequencies yield "". Safe for
// concurrent use.
func NoteName(frequency float64) string {
	if frequency <= 0 {
		return ""
	}
	// Semitone distance from A4; A is pitch class index 9.
	semitones := int(math.Round(12 * math.Log2(frequency/ReferenceFrequency)))
	idx := (semitones + 9) % 12
	if idx < 0 {
		idx += 12
	}
	return pitchClasses[idx]
}

// Cents returns the signed interval from f1 to f2 in cents. Non-positive
// input yields 0.
func Cents(f1, f2 float64) float64 {
	if f1 <= 0 || f2 <= 0 {
		return 0
	}
	return 1200 * math.Log2(f2/f1)
}

// AddCents shifts a frequency by the given interval in cents.
func AddCents(frequency, cents float64) float64 {
	return frequency * math.Pow(2, cents/1200)
}
