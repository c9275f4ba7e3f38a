// Package logger provides the structured slog logger for the application.
// Logs are written in JSON format to <logDir>/quadrium.log with size-based
// rotation.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewSystemLogger creates a JSON slog.Logger that writes to
// <logDir>/quadrium.log through a rotating writer. The directory is created
// if it does not exist.
func NewSystemLogger(logDir string, level slog.Level) (*slog.Logger, error) {
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", logDir, err)
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "quadrium.log"),
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}

// NewConsoleLogger creates a text slog.Logger writing to stderr, used by
// one-shot CLI commands where a log file would be noise.
func NewConsoleLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
