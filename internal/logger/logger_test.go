package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{in: "debug", want: slog.LevelDebug, wantOK: true},
		{in: "DBG", want: slog.LevelDebug, wantOK: true},
		{in: "info", want: slog.LevelInfo, wantOK: true},
		{in: "", want: slog.LevelInfo, wantOK: true},
		{in: "wrn", want: slog.LevelWarn, wantOK: true},
		{in: "error", want: slog.LevelError, wantOK: true},
		{in: "loud", want: slog.LevelInfo, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := LevelFromString(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inkramp.log")

	l, closer, err := New(path, "warn")
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "file", "cat.png")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hidden")
	assert.Contains(t, string(b), "msg=shown")
	assert.Contains(t, string(b), "file=cat.png")
}

func TestNew_Stderr(t *testing.T) {
	l, closer, err := New("", "debug")
	require.NoError(t, err)
	assert.True(t, l.Enabled(t.Context(), slog.LevelDebug))
	assert.NoError(t, closer.Close())
}
