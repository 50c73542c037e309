// Package logging builds the application logger.
package logging

import (
	"io"
	"os"
	"time"

	"alcyxob/fitness-coach/internal/config"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON to stderr, or human-readable output when cfg.Pretty is set.
// An unknown level falls back to info.
func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

func NewWithWriter(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
