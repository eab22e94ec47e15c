package logger

import (
	"io"
	"log/slog"
)

// creates a new structured logger (w/ specified debug level)
// diagnostics go to w so stdout stays reserved for the translation
func New(debug bool, w io.Writer) *slog.Logger {
	var handler slog.Handler

	if !debug || w == nil {
		// create a handler that discards all log messages
		handler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.LevelError,
		})
	} else {
		// create a text handler with debug level enabled
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
