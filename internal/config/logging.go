package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to w at the level named by
// SKYRAID_LOG_LEVEL (debug, info, warn, error; default info).
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	name := GetEnv("SKYRAID_LOG_LEVEL", "info")
	level, err := log.ParseLevel(name)
	if err != nil {
		return logger, fmt.Errorf("SKYRAID_LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// OpenLogFile opens the file named by SKYRAID_LOG_FILE for appending. With the
// variable unset it returns io.Discard and a no-op close.
func OpenLogFile() (io.Writer, func() error, error) {
	path := GetEnv("SKYRAID_LOG_FILE", "")
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}
