// Package logging configures the charmbracelet/log logger shared by the CLI,
// the terminal UI, and the todo store.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nhle/geotodo/internal/model"
)

// Options holds configuration for a logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns options for human-readable stderr output.
func DefaultOptions() Options {
	return Options{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          "geotodo",
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, DefaultOptions())
}

// ParseLevel parses a string log level. Unknown values fall back to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown values fall back to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// FromConfig builds a logger from the log section of the app config.
// When toFile is true the logger writes to cfg.File (or discards when it is
// empty) so that it never draws over the terminal UI. The returned closer
// must be called on shutdown.
func FromConfig(cfg model.LogConfig, toFile bool) (*log.Logger, io.Closer, error) {
	opts := DefaultOptions()
	opts.Level = ParseLevel(cfg.Level)
	opts.Formatter = ParseFormatter(cfg.Format)

	if !toFile {
		return New(os.Stderr, opts), nopCloser{}, nil
	}
	if cfg.File == "" {
		return New(io.Discard, opts), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}
	opts.ReportTimestamp = true
	return New(f, opts), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
