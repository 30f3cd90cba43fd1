package engine

import "errors"

// Errors returned by session operations.
var (
	// ErrFoldOverlap indicates a new fold partially overlaps an existing one.
	ErrFoldOverlap = errors.New("fold overlaps an existing fold")

	// ErrFoldEmpty indicates a fold over an empty range.
	ErrFoldEmpty = errors.New("fold range is empty")
)
