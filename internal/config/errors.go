package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates an explicitly named configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrValidationFailed indicates a setting holds an unusable value.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	Key     string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Key, e.Value, e.Message)
}

// Is reports ErrValidationFailed as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
