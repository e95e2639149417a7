package util

import (
	"log/slog"
	"os"

	"github.com/go-logr/logr"
)

var logger logr.Logger

// InitLogger configures the global logger. Verbose enables debug output.
func InitLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	logger = logr.FromSlogHandler(handler)
}

// GetLogger returns the global logger, initializing it with defaults when
// nothing has called InitLogger yet.
func GetLogger() logr.Logger {
	if logger.GetSink() == nil {
		InitLogger(false)
	}
	return logger
}
