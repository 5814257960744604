// Package logging configures log/slog for the indenter.
//
// Text output goes through tint for readable console logs; json output uses
// the standard slog JSON handler so logs can be collected by other tools.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownLevel is returned by ParseLevel.
var ErrUnknownLevel = errors.New("unknown log level")

// Options selects the handler built by New.
type Options struct {
	Level  slog.Level
	Format string
	// Writer defaults to os.Stderr.
	Writer io.Writer
	// NoColor disables tint's ANSI colors.
	NoColor bool
}

// ParseLevel converts debug, info, warn or error (any case) to a slog.Level.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ValidFormat reports whether format names a supported handler.
func ValidFormat(format string) bool {
	switch format {
	case "", FormatText, FormatJSON:
		return true
	}
	return false
}

// New builds a logger for opts.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	if opts.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor,
	}))
}

// Setup installs a logger for opts as the slog default and redirects the
// standard log package into it.
func Setup(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)

	// overwrite standard log so it's always redirected to slog, in case some dep is using it
	lw := &slogWriter{logger: logger}
	log.SetFlags(0)
	log.SetOutput(lw)
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type slogWriter struct {
	logger *slog.Logger
}

func (w *slogWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
