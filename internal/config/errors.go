package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownKey indicates a key that names no option.
	ErrUnknownKey = errors.New("unknown key")

	// ErrTypeMismatch indicates the value type doesn't match the option.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOutOfRange indicates a numeric value outside the option's range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnsupportedFormat indicates a file extension with no loader.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrWatcherClosed indicates use of a closed Watcher.
	ErrWatcherClosed = errors.New("watcher closed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Key is the option key at fault, if the syntax was valid.
	Key string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("parse error in %s at key %q: %s", e.Path, e.Key, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
