// Package logger holds the process-wide structured logger
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/backrooms/config"
)

// Log is the shared logger, silent until Init configures an output
var Log = newSilent()

func newSilent() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init configures Log from cfg and returns the closer for the output file
// The terminal owns stdout, so an empty File keeps logging disabled
func Init(cfg config.LogConfig) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	Log.SetLevel(level)

	switch cfg.Format {
	case "json":
		Log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			DisableColors:   true,
			TimestampFormat: "15:04:05.000",
		})
	default:
		return nil, fmt.Errorf("log format %q: %w", cfg.Format, config.ErrInvalid)
	}

	if cfg.File == "" {
		Log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Log.SetOutput(f)
	Log.WithField("level", level.String()).Info("logging started")
	return f, nil
}
