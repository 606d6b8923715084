package utils

import (
	"io"
	"log/slog"
)

// NewLogger builds the JSON logger used by every binary
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
