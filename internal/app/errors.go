// Package app wires a document, the editor and a terminal into a
// running program.
package app

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrUnsavedChanges is returned by the first quit with a modified
	// document. A second quit discards the changes.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrNoPath means the document has no file to save to.
	ErrNoPath = errors.New("no file name")

	// ErrUnknownMode is returned for a mode name nothing provides.
	ErrUnknownMode = errors.New("unknown mode")
)

// OperationError records which operation on which target failed.
type OperationError struct {
	Op     string // e.g. "open", "save", "load config"
	Target string
	Err    error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
