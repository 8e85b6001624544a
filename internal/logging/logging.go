// Package logging builds the structured logger shared by all components.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Debug lowers the level from warn
// to debug.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return NewAt(w, level)
}

// NewAt returns a text logger writing to w at the given level.
func NewAt(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
