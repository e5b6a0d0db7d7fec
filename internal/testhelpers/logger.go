package testhelpers

import (
	"io"
	"log/slog"

	"github.com/myrjola/fitplanner/internal/logging"
)

// NewLogger logs everything down to debug level to logSink, usually a [Writer].
func NewLogger(logSink io.Writer) *slog.Logger {
	return logging.NewLogger(logSink, slog.LevelDebug)
}
