// Package logging builds the slog loggers used across algoviz.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// normalize standardizes common keys ("error" -> "err").
func normalize(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// New creates a text logger on Stderr, keeping Stdout free for frames and traces.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalize,
	}))
}

// NewJSON creates a JSON logger on w, used by long-running hosts.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalize,
	}))
}

// Level maps the --debug flag onto a slog level.
func Level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
