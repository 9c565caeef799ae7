package testutil

import (
	"io"
	"log/slog"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
)

// MakeNoopLogger returns a logger that discards every record.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, int(slog.LevelError), "text")
}

// MakeBufferLogger returns a debug-level logger writing into w.
func MakeBufferLogger(w io.Writer) *logger.Logger {
	return logger.NewWithWriter(w, int(slog.LevelDebug), "text")
}
