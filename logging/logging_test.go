package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestSetGlobalLoggerNilInstallsNoOp(t *testing.T) {
	orig := GetGlobalLogger()
	defer SetGlobalLogger(orig)

	SetGlobalLogger(nil)

	assert.IsType(t, &NoOpLogger{}, GetGlobalLogger())
	assert.NotPanics(t, func() {
		Debug("ignored")
		Error(nil, "ignored")
	})
}

func TestWithFieldsMergesOverBase(t *testing.T) {
	base := Fields{"a": 1, "b": 2}

	merged := mergeFields(base, Fields{"b": 3, "c": 4})

	assert.Equal(t, Fields{"a": 1, "b": 3, "c": 4}, merged)
	// Base must not be mutated.
	assert.Equal(t, Fields{"a": 1, "b": 2}, base)
}

func TestFormatMessageIncludesSortedFields(t *testing.T) {
	l := &DefaultLogger{level: DebugLevel, useColors: false}

	msg := l.formatMessage(InfoLevel, "detected", Fields{"pitch": 440, "conf": 0.9})

	assert.Equal(t, "[INFO] detected conf=0.9 pitch=440", msg)
}

func TestLevelFiltering(t *testing.T) {
	l := NewDefaultLogger()
	l.SetLevel(ErrorLevel)

	// Suppressed levels must short-circuit without formatting.
	assert.NotPanics(t, func() {
		l.Debug("nope")
		l.Info("nope")
		l.Warn("nope")
	})
}
