package chord

import (
	"errors"
	"testing"

	"github.com/blueslick/harpsense/algorithms/pitch"
	"github.com/blueslick/harpsense/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 44100

// cMajor is the triad used across the fallback tests.
var cMajor = []float64{261.63, 329.63, 392.00}

func cMajorBuffer(t *testing.T) []float64 {
	t.Helper()
	buffer, err := synth.Tones(cMajor, []float64{0.3, 0.3, 0.3}, testSampleRate, 1.0)
	require.NoError(t, err)
	return buffer
}

// stubModel returns a fixed answer, or an error when err is set.
type stubModel struct {
	result Result
	err    error
	calls  int
}

func (m *stubModel) DetectChord(buffer []float64, sampleRate int) (Result, error) {
	m.calls++
	return m.result, m.err
}

func TestFallbackExtractsTriad(t *testing.T) {
	e := NewExtractor()

	res := e.DetectChord(cMajorBuffer(t), testSampleRate)

	require.True(t, res.HasPitches())
	assert.Greater(t, res.Confidence, 0.5)
	assert.LessOrEqual(t, res.PitchCount(), 4)

	matched := 0
	for _, want := range cMajor {
		for _, got := range res.Pitches {
			if got > want-1.5 && got < want+1.5 {
				matched++
				break
			}
		}
	}
	assert.GreaterOrEqual(t, matched, 2, "pitches %v should cover the triad %v", res.Pitches, cMajor)
}

func TestFallbackExtractsTriadUnderNoise(t *testing.T) {
	e := NewExtractor()
	buffer := synth.WithNoise(cMajorBuffer(t), 0.045, 5)

	res := e.DetectChord(buffer, testSampleRate)

	require.True(t, res.HasPitches())
	assert.Greater(t, res.Confidence, 0.5)

	if res.PitchCount() >= 3 {
		matched := 0
		for _, want := range cMajor {
			for _, got := range res.Pitches {
				if got > want-1.0 && got < want+1.0 {
					matched++
					break
				}
			}
		}
		assert.GreaterOrEqual(t, matched, 2,
			"pitches %v should land within 1 Hz of at least two of %v", res.Pitches, cMajor)
	}
}

func TestFallbackSingleTone(t *testing.T) {
	e := NewExtractor()
	buffer := synth.Sine(440, 0.5, testSampleRate, 1.0)

	res := e.DetectChord(buffer, testSampleRate)

	require.Equal(t, 1, res.PitchCount())
	assert.InDelta(t, 440.0, res.Pitches[0], 1.5)
	assert.Greater(t, res.Confidence, 0.5)
}

func TestSilenceReturnsEmptyOnEveryPath(t *testing.T) {
	silence := make([]float64, testSampleRate)
	model := &stubModel{result: Result{Pitches: []float64{440}, Confidence: 0.99}}

	for name, e := range map[string]*Extractor{
		"no model":   NewExtractor(),
		"with model": NewExtractorWithModel(model),
	} {
		res := e.DetectChord(silence, testSampleRate)

		assert.False(t, res.HasPitches(), name)
		assert.Equal(t, 0.0, res.Confidence, name)
	}
	// The model must not even be consulted for silence.
	assert.Equal(t, 0, model.calls)
}

func TestNoiseReturnsEmpty(t *testing.T) {
	e := NewExtractor()
	buffer := synth.WhiteNoise(0.3, testSampleRate, 1.0, 42)

	res := e.DetectChord(buffer, testSampleRate)

	assert.False(t, res.HasPitches())
	assert.Equal(t, 0.0, res.Confidence)
}

func TestDegenerateInput(t *testing.T) {
	e := NewExtractor()

	assert.False(t, e.DetectChord(nil, testSampleRate).HasPitches())
	assert.False(t, e.DetectChord([]float64{0.5}, testSampleRate).HasPitches())
	assert.False(t, e.DetectChord(cMajorBuffer(t), 0).HasPitches())
}

func TestConfidentModelResultIsUsed(t *testing.T) {
	want := Result{Pitches: []float64{300, 400}, Confidence: 0.9}
	model := &stubModel{result: want}
	e := NewExtractorWithModel(model)

	res := e.DetectChord(cMajorBuffer(t), testSampleRate)

	assert.Equal(t, want, res)
	assert.Equal(t, 1, model.calls)
}

func TestModelErrorFallsBack(t *testing.T) {
	model := &stubModel{err: errors.New("backend unavailable")}
	e := NewExtractorWithModel(model)
	buffer := cMajorBuffer(t)

	res := e.DetectChord(buffer, testSampleRate)

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, NewExtractor().DetectChord(buffer, testSampleRate), res)
}

func TestLowConfidenceModelFallsBack(t *testing.T) {
	model := &stubModel{result: Result{Pitches: []float64{123}, Confidence: 0.2}}
	e := NewExtractorWithModel(model)
	buffer := cMajorBuffer(t)

	res := e.DetectChord(buffer, testSampleRate)

	assert.NotEqual(t, model.result, res)
	assert.True(t, res.HasPitches())
}

func TestEmptyModelResultFallsBack(t *testing.T) {
	model := &stubModel{result: Result{}}
	e := NewExtractorWithModel(model)

	res := e.DetectChord(cMajorBuffer(t), testSampleRate)

	assert.True(t, res.HasPitches())
}

func TestFallbackIsDeterministic(t *testing.T) {
	e := NewExtractor()
	buffer := cMajorBuffer(t)

	assert.Equal(t, e.DetectChord(buffer, testSampleRate), e.DetectChord(buffer, testSampleRate))
}

func TestRangeFiltersPitches(t *testing.T) {
	e := NewExtractor()
	e.SetRange(pitch.Range{Min: 300, Max: 500})

	res := e.DetectChord(cMajorBuffer(t), testSampleRate)

	for _, p := range res.Pitches {
		assert.GreaterOrEqual(t, p, 300.0)
		assert.LessOrEqual(t, p, 500.0)
	}
}
