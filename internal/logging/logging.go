// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelSilent is above every standard level; nothing is logged.
const LevelSilent = slog.Level(100)

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup installs a logger for w as the slog default and returns it.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	logger := New(w, level)
	slog.SetDefault(logger)
	return logger
}

// LevelFromString converts a config value to a level.
// Supports: debug, info, warn, error, silent (case-insensitive).
// Anything else is warn.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	case "silent", "off":
		return LevelSilent
	default:
		return slog.LevelWarn
	}
}

// LevelFromFlags resolves the level from CLI flags, falling back to the
// configured level when neither flag is set.
// - quiet: silent
// - verbosity 1: info
// - verbosity >= 2: debug
func LevelFromFlags(verbosity int, quiet bool, configured string) slog.Level {
	switch {
	case quiet:
		return LevelSilent
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity >= 2:
		return slog.LevelDebug
	default:
		return LevelFromString(configured)
	}
}
