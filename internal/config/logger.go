package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger writing to w with the level taken from
// INVADERS_LOG_LEVEL (debug, info, warn, error). Unknown levels mean info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv("INVADERS_LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}

// FileLogger opens the file named by INVADERS_LOG_FILE for logging. Without
// it, logs are discarded; used by frontends that own the terminal.
// The returned close function is always non-nil.
func FileLogger(prefix string) (*log.Logger, func() error) {
	path := GetEnv("INVADERS_LOG_FILE", "")
	if path == "" {
		return NewLogger(io.Discard, prefix), func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return NewLogger(io.Discard, prefix), func() error { return nil }
	}
	return NewLogger(f, prefix), f.Close
}
