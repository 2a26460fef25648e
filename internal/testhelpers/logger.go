// Package testhelpers provides helpers shared by the tests of several packages.
package testhelpers

import (
	"io"
	"log/slog"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/logging"
)

// NewLogger creates a debug level logger with the given log sink such as testhelpers.Writer. Context attributes are
// included like in production.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
