package search

import "errors"

// Search errors.
var (
	// ErrEmptyNeedle indicates there is nothing to search for.
	ErrEmptyNeedle = errors.New("empty search needle")

	// ErrInvalidPattern indicates the needle did not compile.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrMultiLineNeedle indicates a single pattern was requested for a
	// needle spanning rows.
	ErrMultiLineNeedle = errors.New("needle spans multiple lines")
)
