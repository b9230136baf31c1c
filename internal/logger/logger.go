package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LevelFromString maps a level name (or its three letter alias) onto a slog.Level. Unknown names fall back to info.
func LevelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf", "":
		return slog.LevelInfo, true
	case "warn", "wrn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

/*
New builds a text logger writing to path, or to stderr when path is empty. The log directory is created if needed. The returned closer releases the log file and is a no-op for stderr.
*/
func New(path, level string) (*slog.Logger, io.Closer, error) {
	loglevel, _ := LevelFromString(level)

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}

		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = logFile, logFile
	}

	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: loglevel})

	return slog.New(handler), closer, nil
}

// Init is New followed by slog.SetDefault.
func Init(path, level string) (io.Closer, error) {
	l, closer, err := New(path, level)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(l)

	return closer, nil
}
