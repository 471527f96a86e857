package pitch

import (
	"testing"

	"github.com/blueslick/harpsense/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMPMDetectsSine(t *testing.T) {
	d := NewMPMDetector()
	buffer := synth.Sine(440, 0.5, testSampleRate, 0.5)

	res := d.Detect(buffer, testSampleRate)

	require.True(t, res.Detected())
	assert.InDelta(t, 440.0, res.Pitch, 3.0)
	assert.Greater(t, res.Confidence, 0.5)
}

func TestMPMSilenceYieldsNoPitch(t *testing.T) {
	d := NewMPMDetector()
	buffer := make([]float64, testSampleRate/2)

	res := d.Detect(buffer, testSampleRate)

	assert.False(t, res.Detected())
	assert.Equal(t, 0.0, res.Confidence)
}

func TestMPMDegenerateInput(t *testing.T) {
	d := NewMPMDetector()

	assert.False(t, d.Detect(nil, testSampleRate).Detected())
	assert.False(t, d.Detect([]float64{0.4}, testSampleRate).Detected())
	assert.False(t, d.Detect(synth.Sine(440, 0.5, testSampleRate, 0.5), -1).Detected())
}

func TestMPMSurvivesAddedNoise(t *testing.T) {
	d := NewMPMDetector()
	buffer := synth.WithNoise(synth.Sine(220, 0.5, testSampleRate, 0.5), 0.05, 3)

	res := d.Detect(buffer, testSampleRate)

	require.True(t, res.Detected())
	assert.InDelta(t, 220.0, res.Pitch, 3.0)
}

func TestMPMNarrowRangeStillFindsPitch(t *testing.T) {
	d := NewMPMDetectorWithRange(Range{Min: 400, Max: 500})
	buffer := synth.Sine(440, 0.5, testSampleRate, 0.5)

	res := d.Detect(buffer, testSampleRate)

	require.True(t, res.Detected())
	assert.InDelta(t, 440.0, res.Pitch, 3.0)
}
