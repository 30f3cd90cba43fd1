package editor

import (
	"strings"

	"github.com/dshills/caret/internal/engine/buffer"
)

// GetCopyText returns the text a copy should place on the clipboard.
// With copyWithEmptySelection set and nothing selected, the caret rows
// are copied whole and a later paste of that text inserts full lines.
// EventCopy handlers may rewrite the text.
func (e *Editor) GetCopyText() string {
	session := e.session
	if session == nil {
		return ""
	}
	text := e.SelectedText()
	nl := session.Doc().NewLineCharacter()
	copyLine := false
	if text == "" && e.settings.copyWithEmptySelection {
		copyLine = true
		var b strings.Builder
		ranges := session.Selection().Ranges()
		for i, r := range ranges {
			if i > 0 && ranges[i-1].Start.Row == r.Start.Row {
				continue
			}
			b.WriteString(session.Line(r.Start.Row))
			b.WriteString(nl)
		}
		text = b.String()
	}

	ev := &TextEvent{Text: text}
	e.emitter.Emit(EventCopy, ev)
	e.lineModeText = ""
	if copyLine {
		e.lineModeText = ev.Text
	}
	return ev.Text
}

// OnCopy returns the copied text.
func (e *Editor) OnCopy() string {
	return e.GetCopyText()
}

// OnCut returns the copied text and removes it through the cut command.
func (e *Editor) OnCut() string {
	text := e.GetCopyText()
	if _, err := e.ExecCommand("cut", nil); err != nil {
		e.logger.Debug("cut failed: %v", err)
	}
	return text
}

// OnPaste inserts text through the paste command.
func (e *Editor) OnPaste(text string) {
	if _, err := e.ExecCommand("paste", text); err != nil {
		e.logger.Debug("paste failed: %v", err)
	}
}

// cut removes the selection, or the caret row when copying empty
// selections is on.
func (e *Editor) cut() {
	session := e.session
	if session == nil {
		return
	}
	sel := e.selection
	r := sel.Range()
	if e.settings.copyWithEmptySelection && sel.IsEmpty() {
		r = sel.LineRange(sel.Cursor().Row)
	}
	e.emitter.Emit(EventCut, r)
	if !r.IsEmpty() {
		session.Remove(r)
	}
	sel.ClearSelection()
}

// handlePaste inserts pasted text. With several ranges selected and one
// pasted line per range, each range receives its own line.
func (e *Editor) handlePaste(text string) {
	session := e.session
	if session == nil {
		return
	}
	ev := &TextEvent{Text: text}
	e.emitter.Emit(EventPaste, ev)
	text = ev.Text
	lineMode := text != "" && text == e.lineModeText

	if !e.InMultiSelectMode() || e.inVirtualSelectionMode {
		if lineMode {
			session.Insert(Point{Row: e.selection.Cursor().Row}, text)
		} else {
			e.Insert(text, true)
		}
		return
	}

	ranges := session.Selection().RangeList().Ranges()
	if lineMode {
		for i := len(ranges) - 1; i >= 0; i-- {
			session.Insert(Point{Row: ranges[i].Start.Row}, text)
		}
		return
	}

	lines := buffer.SplitLines(text)
	fullLine := len(lines) == 2 && (lines[0] == "" || lines[1] == "")
	if len(lines) != len(ranges) || fullLine {
		e.ForEachSelection(e.commands.Get("insertstring"), text, false)
		return
	}
	for i := len(ranges) - 1; i >= 0; i-- {
		r := ranges[i]
		if !r.IsEmpty() {
			session.Remove(r.Range)
		}
		session.Insert(r.Start, lines[i])
	}
}
