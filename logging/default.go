package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// DefaultLogger writes leveled messages to stdout (debug/info) and stderr
// (warn/error) with optional ANSI colors.
type DefaultLogger struct {
	stdout    *log.Logger
	stderr    *log.Logger
	level     Level
	fields    Fields
	useColors bool
}

// NewDefaultLogger creates a logger with sensible defaults
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		stdout:    log.New(os.Stdout, "", log.LstdFlags),
		stderr:    log.New(os.Stderr, "", log.LstdFlags),
		level:     InfoLevel,
		fields:    Fields{},
		useColors: isTerminal(os.Stdout),
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func (l *DefaultLogger) Debug(msg string, fields ...Fields) {
	if l.level > DebugLevel {
		return
	}
	l.stdout.Print(l.formatMessage(DebugLevel, msg, mergeFields(l.fields, fields...)))
}

func (l *DefaultLogger) Info(msg string, fields ...Fields) {
	if l.level > InfoLevel {
		return
	}
	l.stdout.Print(l.formatMessage(InfoLevel, msg, mergeFields(l.fields, fields...)))
}

func (l *DefaultLogger) Warn(msg string, fields ...Fields) {
	if l.level > WarnLevel {
		return
	}
	l.stderr.Print(l.formatMessage(WarnLevel, msg, mergeFields(l.fields, fields...)))
}

func (l *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	if l.level > ErrorLevel {
		return
	}
	merged := mergeFields(l.fields, fields...)
	if err != nil {
		merged["error"] = err.Error()
	}
	l.stderr.Print(l.formatMessage(ErrorLevel, msg, merged))
}

func (l *DefaultLogger) WithFields(fields Fields) Logger {
	return &DefaultLogger{
		stdout:    l.stdout,
		stderr:    l.stderr,
		level:     l.level,
		fields:    mergeFields(l.fields, fields),
		useColors: l.useColors,
	}
}

func (l *DefaultLogger) SetLevel(level Level) {
	l.level = level
}

func (l *DefaultLogger) formatMessage(level Level, msg string, fields Fields) string {
	var b strings.Builder

	prefix := fmt.Sprintf("[%s]", level)
	if l.useColors {
		switch level {
		case WarnLevel:
			prefix = ColorYellow + prefix + ColorReset
		case ErrorLevel:
			prefix = ColorRed + ColorBold + prefix + ColorReset
		}
	}
	b.WriteString(prefix)
	b.WriteByte(' ')
	b.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, fields[k])
		}
	}
	return b.String()
}

func mergeFields(base Fields, extra ...Fields) Fields {
	merged := make(Fields, len(base))
	for k, v := range base {
		merged[k] = v
	}
	for _, f := range extra {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

// NoOpLogger discards all log output
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
