// Package logger holds the process-wide structured logger. Packages
// log through logger.Log; main decides the level and output format
// once at startup.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

func init() {
	// tests and early startup log at info/text until main configures
	Initialize("info", false)
}

// Initialize replaces the global logger. level accepts slog's textual
// forms ("debug", "info", "warn", "error", case-insensitive); unknown
// values mean info.
func Initialize(level string, useJSON bool) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler
	if useJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
