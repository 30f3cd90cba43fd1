package editor

import "github.com/dshills/caret/internal/engine"

// Editor event names.
const (
	// EventChange carries the engine.Delta of every document edit.
	EventChange = "change"

	// EventChangeSelection and EventChangeCursor carry no payload.
	EventChangeSelection = "changeSelection"
	EventChangeCursor    = "changeCursor"

	// EventInput fires once after a burst of edits settles.
	EventInput = "input"

	// EventCopy and EventPaste carry a *TextEvent whose text handlers
	// may rewrite.
	EventCopy  = "copy"
	EventPaste = "paste"

	// EventCut carries the Range about to be removed.
	EventCut = "cut"

	// EventBeforeEndOperation carries an *OperationEvent.
	EventBeforeEndOperation = "beforeEndOperation"

	// EventChangeSession carries a SessionChange.
	EventChangeSession = "changeSession"

	// EventDestroy fires once when the editor is destroyed.
	EventDestroy = "destroy"
)

// TextEvent is a clipboard payload.
type TextEvent struct {
	Text string
}

// OperationEvent is delivered before an operation closes.
type OperationEvent struct {
	Op     Operation
	editor *Editor
}

// Cancel drops the operation: it closes without scrolling or recording
// the selection.
func (ev *OperationEvent) Cancel() {
	e := ev.editor
	e.mu.Lock()
	e.curOp = nil
	e.mu.Unlock()
}

// SessionChange is the payload of EventChangeSession.
type SessionChange struct {
	Session    *engine.Session
	OldSession *engine.Session
}
