package editor

import "errors"

// Editor errors.
var (
	// ErrUnknownOption indicates an option name the editor does not know.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidOptionValue indicates a value of the wrong type or range.
	ErrInvalidOptionValue = errors.New("invalid option value")
)
