// Package config loads wysiwyg settings from defaults, an optional
// configuration file, WYSIWYG_ environment variables and command line
// flags, in increasing order of precedence.
//
// Configuration files may be YAML or TOML:
//
//	# wysiwyg.yaml
//	log_level: debug
//	max_undo: 200
//	action_ids: sequential
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/logging"
)

// Default values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultMaxUndo   = 1000
	DefaultActionIDs = ActionIDsUUID
	DefaultOutput    = OutputTable
)

// Action identifier generators.
const (
	ActionIDsUUID       = "uuid"
	ActionIDsSequential = "sequential"
)

// Output formats for CLI results.
const (
	OutputTable    = "table"
	OutputJSON     = "json"
	OutputHTML     = "html"
	OutputMarkdown = "markdown"
)

// Config holds every wysiwyg setting.
type Config struct {
	LogLevel    string `koanf:"log_level"`
	LogFormat   string `koanf:"log_format"`
	MaxUndo     int    `koanf:"max_undo"`
	ActionIDs   string `koanf:"action_ids"`
	Output      string `koanf:"output"`
	HistoryFile string `koanf:"history_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		MaxUndo:   DefaultMaxUndo,
		ActionIDs: DefaultActionIDs,
		Output:    DefaultOutput,
	}
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"log_level":    d.LogLevel,
		"log_format":   d.LogFormat,
		"max_undo":     d.MaxUndo,
		"action_ids":   d.ActionIDs,
		"output":       d.Output,
		"history_file": d.HistoryFile,
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Key: "log_level", Value: c.LogLevel, Message: "must be debug, info, warn or error"}
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return &ValidationError{Key: "log_format", Value: c.LogFormat, Message: "must be text or json"}
	}
	if c.MaxUndo < 0 {
		return &ValidationError{Key: "max_undo", Value: c.MaxUndo, Message: "must not be negative"}
	}
	switch c.ActionIDs {
	case ActionIDsUUID, ActionIDsSequential:
	default:
		return &ValidationError{Key: "action_ids", Value: c.ActionIDs, Message: "must be uuid or sequential"}
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputHTML, OutputMarkdown:
	default:
		return &ValidationError{Key: "output", Value: c.Output, Message: "must be table, json, html or markdown"}
	}
	return nil
}

// LoggerConfig converts the logging settings for a writer.
func (c *Config) LoggerConfig(w io.Writer) logging.Config {
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		format = logging.FormatText
	}
	return logging.Config{
		Level:  logging.ParseLevel(c.LogLevel),
		Format: format,
		Output: w,
	}
}

// IDGenerator returns the configured action identifier generator.
func (c *Config) IDGenerator() action.IDGenerator {
	if c.ActionIDs == ActionIDsSequential {
		return action.SequentialGenerator()
	}
	return action.UUIDGenerator()
}

// ComposerOptions turns the configuration into composer options.
func (c *Config) ComposerOptions(logger *slog.Logger) []composer.Option {
	opts := []composer.Option{
		composer.WithIDGenerator(c.IDGenerator()),
	}
	if c.MaxUndo > 0 {
		opts = append(opts, composer.WithMaxUndoEntries(c.MaxUndo))
	}
	if logger != nil {
		opts = append(opts, composer.WithLogger(logging.WithComponent(logger, "composer")))
	}
	return opts
}

// String returns a one-line summary of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("log_level=%s log_format=%s max_undo=%d action_ids=%s output=%s",
		c.LogLevel, c.LogFormat, c.MaxUndo, c.ActionIDs, c.Output)
}
