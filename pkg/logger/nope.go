package logger

import (
	"io"
	"log/slog"
)

// NewNope creates a no-op logger that discards all output.
// Engines and loaders default to it in tests.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewWriter creates a JSON logger writing to w. Tests use it to assert on output.
func NewWriter(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
		extractors...,
	))
}
