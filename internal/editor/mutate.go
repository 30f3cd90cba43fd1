package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/mode"
)

// Direction selects which side of the caret Remove deletes from.
type Direction uint8

const (
	// DirectionRight deletes the character after the caret.
	DirectionRight Direction = iota
	// DirectionLeft deletes the character before the caret.
	DirectionLeft
)

// Insert types text at the caret, replacing the selection.
//
// Unless pasted, the language mode may rewrite the text and place a
// selection inside it; a rewrite starts a new undo group. With auto
// indent on, a newline is followed by the next line's indentation and
// the mode may outdent the row.
func (e *Editor) Insert(text string, pasted bool) {
	session := e.session
	if session == nil {
		return
	}
	m := session.Mode()
	sel := e.selection
	pos := sel.Cursor()

	var transform mode.TransformResult
	if e.settings.behavioursEnabled && !pasted {
		transform = m.TransformInsertion(session.State(pos.Row), e, text)
		if !transform.Declined() {
			if transform.Text != text && !e.inVirtualSelectionMode {
				session.SetMergeUndoDeltas(false)
				e.mergeNextCommand = false
			}
			text = transform.Text
		}
	}

	if text == "\t" {
		text = session.TabString()
	}

	if !sel.IsEmpty() {
		pos = session.Remove(sel.Range())
		sel.ClearSelection()
	} else if session.Overwrite() && !strings.Contains(text, "\n") {
		line := session.Line(pos.Row)
		end := pos.Column
		for n := utf8.RuneCountInString(text); n > 0 && end < len(line); n-- {
			_, size := utf8.DecodeRuneInString(line[end:])
			end += size
		}
		if end > pos.Column {
			session.Remove(buffer.NewRange(pos.Row, pos.Column, pos.Row, end))
		}
	}

	if text == "\n" || text == "\r\n" {
		line := session.Line(pos.Row)
		if first := cursor.FirstNonBlank(line); pos.Column < first {
			session.Doc().RemoveInLine(pos.Row, pos.Column, first)
		}
	}

	sel.ClearSelection()
	state := session.State(pos.Row)
	line := session.Line(pos.Row)
	shouldOutdent := m.CheckOutdent(state, line, text)
	session.Insert(pos, text)

	if transform.Kind == mode.TransformTextWithSelection {
		sel.SetRange(transform.Selection.Resolve(pos), false)
	}

	if !e.settings.autoIndent {
		return
	}
	if session.Doc().IsNewLine(text) {
		column := min(pos.Column, len(line))
		indent := m.NextLineIndent(state, line[:column], session.TabString())
		session.Insert(Point{Row: pos.Row + 1}, indent)
	}
	if shouldOutdent {
		m.AutoOutdent(state, e, pos.Row)
	}
}

// Remove deletes the selection, or one character in dir when it is
// empty. The language mode may widen the range, for example to delete
// an auto-inserted closing bracket.
func (e *Editor) Remove(dir Direction) {
	session := e.session
	if session == nil {
		return
	}
	sel := e.selection
	if sel.IsEmpty() {
		if dir == DirectionLeft {
			sel.SelectLeft()
		} else {
			sel.SelectRight()
		}
	}

	r := sel.Range()
	if e.settings.behavioursEnabled {
		res := session.Mode().TransformDeletion(session.State(r.Start.Row), e, r)
		if r.End.Column == 0 {
			// Joining onto a whitespace-only row takes its indentation too.
			if strings.HasSuffix(session.TextRange(r), "\n") {
				line := session.Line(r.End.Row)
				if line != "" && strings.TrimSpace(line) == "" {
					r.End.Column = len(line)
				}
			}
		}
		if res.Kind == mode.DeletionRange {
			r = res.Range
		}
	}
	session.Remove(r)
	sel.ClearSelection()
}

// removeSelected deletes the selection after extend has grown an empty
// one.
func (e *Editor) removeSelected(extend func(*cursor.Selection)) {
	if e.session == nil {
		return
	}
	if e.selection.IsEmpty() {
		extend(e.selection)
	}
	e.session.Remove(e.selection.Range())
	e.selection.ClearSelection()
}

// RemoveWordLeft deletes back to the previous word boundary.
func (e *Editor) RemoveWordLeft() {
	e.removeSelected((*cursor.Selection).SelectWordLeft)
}

// RemoveWordRight deletes up to the next word boundary.
func (e *Editor) RemoveWordRight() {
	e.removeSelected((*cursor.Selection).SelectWordRight)
}

// RemoveToLineStart deletes back to the line start, joining with the
// previous row when the caret is already there.
func (e *Editor) RemoveToLineStart() {
	e.removeSelected(func(s *cursor.Selection) {
		s.SelectLineStart()
		if s.IsEmpty() {
			s.SelectLeft()
		}
	})
}

// RemoveToLineEnd deletes to the line end, or the line break when the
// caret is already there.
func (e *Editor) RemoveToLineEnd() {
	if e.session == nil {
		return
	}
	sel := e.selection
	if sel.IsEmpty() {
		sel.SelectLineEnd()
	}
	r := sel.Range()
	if r.IsEmpty() {
		r.End = Point{Row: r.End.Row + 1}
	}
	e.session.Remove(r)
	sel.ClearSelection()
}

// SplitLine breaks the line at the caret, leaving the caret in place.
func (e *Editor) SplitLine() {
	if e.session == nil {
		return
	}
	if !e.selection.IsEmpty() {
		e.session.Remove(e.selection.Range())
		e.selection.ClearSelection()
	}
	pos := e.selection.Cursor()
	e.Insert("\n", false)
	e.selection.MoveTo(pos.Row, pos.Column)
}

// TransposeLetters swaps the characters around the caret, or the last
// two of the line at its end.
func (e *Editor) TransposeLetters() {
	if e.session == nil || !e.selection.IsEmpty() {
		return
	}
	pos := e.selection.Cursor()
	if pos.Column == 0 {
		return
	}
	line := e.session.Line(pos.Row)
	mid := pos.Column
	if mid >= len(line) {
		mid = cursor.PrevGrapheme(line, len(line))
	}
	start := cursor.PrevGrapheme(line, mid)
	end := cursor.NextGrapheme(line, mid)
	if start == mid || end == mid {
		return
	}
	r := buffer.NewRange(pos.Row, start, pos.Row, end)
	e.session.Replace(r, line[mid:end]+line[start:mid])
	e.selection.MoveTo(r.End.Row, r.End.Column)
}

// ToUpperCase upper-cases the selection, or the word at the caret.
func (e *Editor) ToUpperCase() { e.changeCase(strings.ToUpper) }

// ToLowerCase lower-cases the selection, or the word at the caret.
func (e *Editor) ToLowerCase() { e.changeCase(strings.ToLower) }

func (e *Editor) changeCase(fn func(string) string) {
	if e.session == nil {
		return
	}
	original := e.selection.ToOrientedRange()
	if e.selection.IsEmpty() {
		e.selection.SelectWord()
	}
	r := e.selection.Range()
	e.session.Replace(r, fn(e.session.TextRange(r)))
	e.selection.FromOrientedRange(original)
}

// Indent indents the selected rows when the selection spans rows or
// holds text, and otherwise inserts indentation at the caret up to the
// next tab stop.
func (e *Editor) Indent() {
	session := e.session
	if session == nil {
		return
	}
	r := e.selection.Range()
	if r.Start.Row < r.End.Row ||
		(r.Start.Column < r.End.Column && strings.TrimSpace(session.TextRange(r)) != "") {
		e.BlockIndent()
		return
	}

	size := session.TabSize()
	column := r.Start.Column
	if session.UseSoftTabs() {
		e.Insert(strings.Repeat(" ", size-column%size), false)
		return
	}
	line := session.Line(r.Start.Row)
	for count := column % size; count > 0 && r.Start.Column > 0 && line[r.Start.Column-1] == ' '; count-- {
		r.Start.Column--
	}
	e.selection.SetRange(r, false)
	e.Insert("\t", false)
}

// BlockIndent indents every selected row by one level.
func (e *Editor) BlockIndent() {
	if e.session == nil {
		return
	}
	first, last := e.SelectedRows()
	e.session.IndentRows(first, last, e.session.TabString())
}

// BlockOutdent removes one indent level from every selected row.
func (e *Editor) BlockOutdent() {
	if e.session == nil {
		return
	}
	e.session.OutdentRows(e.selection.Range())
}

// ToggleCommentLines comments or uncomments the selected rows.
func (e *Editor) ToggleCommentLines() {
	session := e.session
	if session == nil {
		return
	}
	first, last := e.SelectedRows()
	state := session.State(e.selection.Cursor().Row)
	session.Mode().ToggleCommentLines(state, session.Doc(), first, last)
}
