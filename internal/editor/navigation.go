package editor

import "github.com/dshills/caret/internal/engine/cursor"

// NavigateLeft moves the caret left count characters. A single step over
// a non-empty selection collapses it to its start.
func (e *Editor) NavigateLeft(count int) {
	e.navigate(count, func(s *cursor.Selection) Point { return s.Range().Start }, (*cursor.Selection).MoveCursorLeft)
}

// NavigateRight moves the caret right count characters. A single step
// over a non-empty selection collapses it to its end.
func (e *Editor) NavigateRight(count int) {
	e.navigate(count, func(s *cursor.Selection) Point { return s.Range().End }, (*cursor.Selection).MoveCursorRight)
}

func (e *Editor) navigate(count int, collapse func(*cursor.Selection) Point, step func(*cursor.Selection)) {
	if e.session == nil {
		return
	}
	sel := e.selection
	if !sel.IsEmpty() && count <= 1 {
		p := collapse(sel)
		sel.MoveTo(p.Row, p.Column)
		return
	}
	sel.ClearSelection()
	for range max(count, 1) {
		step(sel)
	}
}

// NavigateUp moves the caret up count rows.
func (e *Editor) NavigateUp(count int) {
	if e.session == nil {
		return
	}
	e.selection.ClearSelection()
	e.selection.MoveCursorBy(-max(count, 1))
}

// NavigateDown moves the caret down count rows.
func (e *Editor) NavigateDown(count int) {
	if e.session == nil {
		return
	}
	e.selection.ClearSelection()
	e.selection.MoveCursorBy(max(count, 1))
}

// NavigateLineStart moves the caret to the start of its row.
func (e *Editor) NavigateLineStart() { e.navigateOnce((*cursor.Selection).MoveCursorLineStart) }

// NavigateLineEnd moves the caret to the end of its row.
func (e *Editor) NavigateLineEnd() { e.navigateOnce((*cursor.Selection).MoveCursorLineEnd) }

// NavigateFileStart moves the caret to the start of the document.
func (e *Editor) NavigateFileStart() { e.navigateOnce((*cursor.Selection).MoveCursorFileStart) }

// NavigateFileEnd moves the caret to the end of the document.
func (e *Editor) NavigateFileEnd() { e.navigateOnce((*cursor.Selection).MoveCursorFileEnd) }

// NavigateWordLeft moves the caret to the previous word start.
func (e *Editor) NavigateWordLeft() { e.navigateOnce((*cursor.Selection).MoveCursorWordLeft) }

// NavigateWordRight moves the caret past the next word.
func (e *Editor) NavigateWordRight() { e.navigateOnce((*cursor.Selection).MoveCursorWordRight) }

func (e *Editor) navigateOnce(step func(*cursor.Selection)) {
	if e.session == nil {
		return
	}
	e.selection.ClearSelection()
	step(e.selection)
}

// GotoLine moves the caret to a one-based row, clamped to the document,
// and centres it.
func (e *Editor) GotoLine(line, column int) {
	if e.session == nil {
		return
	}
	row := min(max(line-1, 0), e.session.Length()-1)
	e.session.Unfold(Range{Start: Point{Row: row}, End: Point{Row: row}})
	e.ExitMultiSelectMode()
	e.selection.MoveTo(row, max(column, 0))
	e.renderer.ScrollCursorIntoView(e.selection.Cursor(), 0.5)
}

// SelectAll selects the whole document.
func (e *Editor) SelectAll() {
	if e.session == nil {
		return
	}
	e.ExitMultiSelectMode()
	e.selection.SelectAll()
}
