package config

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnv turns on debug logging when set to 1.
const DebugEnv = "LK_DEBUG"

// OpenLogger returns a text logger appending to path. When the file cannot
// be opened the logger discards everything, so logging never stops lk from
// running. The returned closer releases the file.
func OpenLogger(path string) (*slog.Logger, io.Closer) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler), nopCloser{}
	}
	level := slog.LevelInfo
	if os.Getenv(DebugEnv) == "1" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
