// Package logging builds the structured loggers used across wysiwyg.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the log line encoding.
type Format string

const (
	// FormatText writes key=value lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q", s)
	}
}

// Config configures a logger.
type Config struct {
	// Level is the minimum level written.
	Level slog.Level
	// Format is the line encoding. Defaults to text.
	Format Format
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Component, when set, is attached to every record.
	Component string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// New creates a logger from cfg.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		h = slog.NewTextHandler(cfg.Output, opts)
	}

	l := slog.New(h)
	if cfg.Component != "" {
		l = WithComponent(l, cfg.Component)
	}
	return l
}

// WithComponent returns a logger tagged with a component name.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With(slog.String("component", component))
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
