package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{" warn ", slog.LevelWarn},
		{"garbage", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestInitializeSetsGlobal(t *testing.T) {
	Initialize("debug", true)
	defer Initialize("info", false)

	assert.NotNil(t, Log)
	assert.True(t, Log.Enabled(t.Context(), slog.LevelDebug))
}
