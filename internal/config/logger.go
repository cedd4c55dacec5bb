package config

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger writing to w at the level named by
// SHOOTER_LOG_LEVEL. Unknown levels fall back to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv("SHOOTER_LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// OpenLogOutput opens the file named by SHOOTER_LOG_FILE for appending.
// Without one it returns fallback. Terminal frontends pass io.Discard so
// log lines never land on the game screen.
func OpenLogOutput(fallback io.Writer) (w io.Writer, closeFn func() error, err error) {
	path := GetEnv("SHOOTER_LOG_FILE", "")
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
