package command

import "errors"

var (
	// ErrEmptyName indicates a command without a name.
	ErrEmptyName = errors.New("command has no name")

	// ErrNoExec indicates a command without an Exec function.
	ErrNoExec = errors.New("command has no exec function")

	// ErrNilCommand indicates a nil command was executed.
	ErrNilCommand = errors.New("nil command")
)
