package pitch

import (
	"testing"

	"github.com/blueslick/harpsense/synth"
	"github.com/stretchr/testify/assert"
)

func TestDefaultRange(t *testing.T) {
	r := DefaultRange()

	assert.Equal(t, 80.0, r.Min)
	assert.Equal(t, 4835.0, r.Max)
	assert.Equal(t, DefaultMinFrequency, r.Min)
	assert.Equal(t, DefaultMaxFrequency, r.Max)
}

func TestDetectorRangeIsPerInstance(t *testing.T) {
	a := NewYINDetector()
	b := NewYINDetector()

	a.SetRange(Range{Min: 100, Max: 1000})

	assert.Equal(t, Range{Min: 100, Max: 1000}, a.Range())
	assert.Equal(t, DefaultRange(), b.Range())
}

func TestInvertedRangeYieldsNoPitch(t *testing.T) {
	buffer := synth.Sine(440, 0.5, testSampleRate, 0.5)
	inverted := Range{Min: 1000, Max: 100}

	assert.NotPanics(t, func() {
		assert.False(t, NewYINDetectorWithRange(inverted).Detect(buffer, testSampleRate).Detected())
		assert.False(t, NewMPMDetectorWithRange(inverted).Detect(buffer, testSampleRate).Detected())
	})
}

func TestInvertedRangeZCRDoesNotPanic(t *testing.T) {
	buffer := synth.Sine(440, 0.5, testSampleRate, 1.0)

	// The zero-crossing detector never gates on the range, so an inverted
	// range only discounts confidence.
	assert.NotPanics(t, func() {
		res := NewZCRDetectorWithRange(Range{Min: 1000, Max: 100}).Detect(buffer, testSampleRate)
		assert.True(t, res.Detected())
	})
}

func TestNonPositiveRangeYieldsNoPitch(t *testing.T) {
	buffer := synth.Sine(440, 0.5, testSampleRate, 0.5)

	res := NewYINDetectorWithRange(Range{Min: 0, Max: 0}).Detect(buffer, testSampleRate)

	assert.False(t, res.Detected())
}
