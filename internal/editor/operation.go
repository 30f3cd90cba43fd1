package editor

import (
	"github.com/dshills/caret/internal/command"
	"github.com/dshills/caret/internal/engine/cursor"
)

// Operation is the window around one user action. Edits made while it
// is open share its scroll policy and selection snapshot.
type Operation struct {
	// Command is nil for operations opened by edits outside a command.
	Command *Command
	Args    any

	ScrollTop       int
	SelectionBefore cursor.Snapshot
	SelectionAfter  cursor.Snapshot

	DocChanged       bool
	SelectionChanged bool
}

// CommandName returns the name of the operation's command, or "".
func (op *Operation) CommandName() string {
	if op == nil || op.Command == nil {
		return ""
	}
	return op.Command.Name
}

// CurOp returns a copy of the open operation.
func (e *Editor) CurOp() (Operation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.curOp == nil {
		return Operation{}, false
	}
	return *e.curOp, true
}

// PrevOp returns a copy of the last closed operation.
func (e *Editor) PrevOp() (Operation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prevOp == nil {
		return Operation{}, false
	}
	return *e.prevOp, true
}

// StartOperation opens an operation for ev. A nil ev opens one for edits
// made outside any command; it is closed once the caller's work is done.
// An operation opened by a command is never replaced, while one opened
// by a bare edit is superseded by the next command. Without a bound
// session nothing happens.
func (e *Editor) StartOperation(ev *CommandEvent) {
	e.mu.Lock()
	if e.session == nil {
		e.mu.Unlock()
		return
	}
	if e.curOp != nil {
		if ev == nil || e.curOp.Command != nil {
			e.mu.Unlock()
			return
		}
		e.prevOp = e.curOp
	}
	session := e.session
	sel := e.selection
	e.mu.Unlock()

	op := &Operation{
		ScrollTop:       e.renderer.ScrollTop(),
		SelectionBefore: sel.Snapshot(),
	}
	if ev != nil {
		op.Command = ev.Command
		op.Args = ev.Args
		// The command closes its own operation.
		e.opReset.Cancel()
		session.SetMergeUndoDeltas(false)
	} else {
		e.opReset.Schedule()
	}

	e.mu.Lock()
	e.curOp = op
	e.mu.Unlock()
}

// EndOperation closes the open operation. When ev carries a false return
// value the command vetoed it: the operation is dropped without scrolling
// or a selection snapshot.
func (e *Editor) EndOperation(ev *CommandEvent) {
	e.endOperation(ev, false)
}

func (e *Editor) endOperation(ev *CommandEvent, fromTimer bool) {
	e.mu.Lock()
	op := e.curOp
	if op == nil {
		e.mu.Unlock()
		return
	}
	if ev != nil && !ev.ReturnValue {
		e.curOp = nil
		e.mu.Unlock()
		e.logger.Debug("operation %q vetoed", op.CommandName())
		return
	}
	if fromTimer && op.Command != nil {
		// Command operations end with the command.
		e.mu.Unlock()
		return
	}
	session := e.session
	e.mu.Unlock()

	e.emitter.Emit(EventBeforeEndOperation, &OperationEvent{Op: *op, editor: e})

	e.mu.Lock()
	if e.curOp != op {
		e.mu.Unlock()
		e.logger.Debug("operation %q cancelled before end", op.CommandName())
		return
	}
	sel := e.selection
	e.mu.Unlock()

	var scroll command.ScrollIntoView
	if op.Command != nil {
		scroll = op.Command.ScrollIntoView
	}
	switch scroll {
	case command.ScrollCenter, command.ScrollCenterAnimate:
		e.renderer.ScrollCursorIntoView(sel.Cursor(), 0.5)
	case command.ScrollAnimate, command.ScrollCursor:
		e.renderer.ScrollCursorIntoView(sel.Cursor(), 0)
	case command.ScrollSelectionPart:
		r := sel.Range()
		if r.Start.Row >= e.renderer.LastRow() || r.End.Row <= e.renderer.FirstRow() {
			e.renderer.ScrollSelectionIntoView(sel.Anchor(), sel.Cursor())
		}
	}
	if scroll.Animated() {
		e.renderer.AnimateScrolling(op.ScrollTop)
	}

	snap := sel.Snapshot()
	if session != nil {
		session.UndoManager().AddSelection(snap)
		// The next operation starts a fresh undo group unless the
		// merge heuristic joins it to this one.
		session.SetMergeUndoDeltas(false)
	}

	e.mu.Lock()
	op.SelectionAfter = snap
	if e.curOp == op {
		e.curOp = nil
	}
	e.prevOp = op
	e.mu.Unlock()
}

// onExecStart and onExecEnd wrap every command in an operation.
func (e *Editor) onExecStart(ev *CommandEvent) { e.StartOperation(ev) }

func (e *Editor) onExecEnd(ev *CommandEvent) { e.EndOperation(ev) }
