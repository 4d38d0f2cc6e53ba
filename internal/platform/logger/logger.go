package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Text output keeps local development
// readable; the attribute keys are what log aggregation indexes on.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
