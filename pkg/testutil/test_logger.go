package testutil

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger is a wrapper around testing.T that implements io.Writer by
// forwarding each log line to t.Log.
type TestLogger struct {
	t *testing.T
}

// NewTestLogger creates a zerolog.Logger that writes to the provided
// testing.T
func NewTestLogger(t *testing.T) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:     &TestLogger{t: t},
		NoColor: true,
	}).Level(zerolog.DebugLevel)
}

// Write implements io.Writer
func (l *TestLogger) Write(p []byte) (int, error) {
	l.t.Helper()
	l.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
