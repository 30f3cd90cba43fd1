package editor

import "github.com/dshills/caret/internal/engine/buffer"

// CompositionPhase is the state of IME composition.
type CompositionPhase uint8

const (
	// CompositionIdle means no composition is in progress.
	CompositionIdle CompositionPhase = iota
	// CompositionComposing means text is being composed.
	CompositionComposing
)

// Composition describes how committed text relates to the selection.
// ExtendLeft and ExtendRight widen the selection by that many bytes
// before the text replaces it. RestoreStart and RestoreEnd pull the
// selection back afterwards.
type Composition struct {
	ExtendLeft   int
	ExtendRight  int
	RestoreStart int
	RestoreEnd   int
}

type compositionState struct {
	state  CompositionPhase
	text   string
	adjust Composition
}

// CompositionState returns the composition phase, the text composed so
// far and the pending selection adjustment.
func (e *Editor) CompositionState() (CompositionPhase, string, Composition) {
	return e.composition.state, e.composition.text, e.composition.adjust
}

// OnCompositionStart enters the composing state. A start
// while composing restarts the composition.
func (e *Editor) OnCompositionStart() {
	if e.session == nil {
		return
	}
	e.composition = compositionState{state: CompositionComposing}
}

// OnCompositionUpdate records the text composed so far and how the
// selection must be adjusted when it is committed. It is ignored outside
// a composition.
func (e *Editor) OnCompositionUpdate(text string, c Composition) {
	if e.composition.state != CompositionComposing {
		return
	}
	e.composition.text = text
	e.composition.adjust = c
}

// OnCompositionEnd commits the composed text, replacing the selection,
// and returns to idle.
func (e *Editor) OnCompositionEnd() {
	if e.composition.state != CompositionComposing {
		return
	}
	text, c := e.composition.text, e.composition.adjust
	e.composition = compositionState{}
	if text == "" && c == (Composition{}) {
		return
	}
	e.OnTextInput(text, &c)
}

// OnTextInput inserts typed text. Without a composition it runs the
// insertstring command; with one the selection is adjusted around the
// text for every range.
func (e *Editor) OnTextInput(text string, c *Composition) {
	if c == nil {
		if _, err := e.ExecCommand("insertstring", text); err != nil {
			e.logger.Debug("text input failed: %v", err)
		}
		return
	}
	if e.session == nil || e.ReadOnly() {
		return
	}

	ev := &CommandEvent{
		Editor:      e,
		Command:     e.commands.Get("insertstring"),
		Args:        text,
		ReturnValue: true,
	}
	e.StartOperation(ev)
	apply := &Command{
		Name: "composition",
		Exec: func(ed *Editor, _ any) bool {
			ed.applyComposition(text, *c)
			return true
		},
	}
	if e.InMultiSelectMode() {
		e.ForEachSelection(apply, nil, false)
	} else {
		apply.Exec(e, nil)
	}
	e.EndOperation(ev)
}

func (e *Editor) applyComposition(text string, c Composition) {
	session := e.session
	sel := e.selection
	if c.ExtendLeft > 0 || c.ExtendRight > 0 {
		r := sel.Range()
		r.Start.Column -= c.ExtendLeft
		if r.Start.Column < 0 && r.Start.Row > 0 {
			r.Start.Row--
			r.Start.Column += len(session.Line(r.Start.Row)) + 1
		}
		r.Start.Column = max(r.Start.Column, 0)
		r.End.Column = min(r.End.Column+c.ExtendRight, len(session.Line(r.End.Row)))
		sel.SetRange(r, false)
		if text == "" && !r.IsEmpty() {
			e.Remove(DirectionRight)
		}
	}
	if text != "" || !sel.IsEmpty() {
		e.Insert(text, true)
	}
	if c.RestoreStart > 0 || c.RestoreEnd > 0 {
		r := sel.Range()
		r.Start.Column = max(r.Start.Column-c.RestoreStart, 0)
		r.End.Column = max(r.End.Column-c.RestoreEnd, 0)
		sel.SetRange(buffer.RangeFromPoints(r.Start, r.End), false)
	}
}
