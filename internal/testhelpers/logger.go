package testhelpers

import (
	"github.com/myrjola/veritruth/internal/logging"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// NewLogger creates a debug logger writing to logSink such as io.Discard or a buffer. Records carry no time so
// that captured output can be compared.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	return slog.New(handler)
}

// NewTestLogger creates a logger whose output only shows up for failing tests.
func NewTestLogger(t testing.TB) *slog.Logger {
	return NewLogger(testWriter{t: t})
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
