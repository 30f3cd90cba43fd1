package cursor

// Cursor motions move the lead only. A collapsed selection moves as a
// whole; the Select* variants pin the anchor first.

// MoveCursorLeft moves one grapheme cluster left, wrapping to the end of
// the previous row.
func (s *Selection) MoveCursorLeft() {
	c := s.Cursor()
	if c.Column == 0 {
		if c.Row > 0 {
			s.MoveCursorTo(c.Row-1, len(s.doc.Line(c.Row-1)))
		}
		return
	}
	s.MoveCursorTo(c.Row, PrevGrapheme(s.doc.Line(c.Row), c.Column))
}

// MoveCursorRight moves one grapheme cluster right, wrapping to the
// start of the next row.
func (s *Selection) MoveCursorRight() {
	c := s.Cursor()
	line := s.doc.Line(c.Row)
	if c.Column >= len(line) {
		if c.Row+1 < s.doc.Length() {
			s.MoveCursorTo(c.Row+1, 0)
		}
		return
	}
	s.MoveCursorTo(c.Row, NextGrapheme(line, c.Column))
}

// MoveCursorBy moves the lead by rows, keeping the column the cursor
// had before the first vertical move.
func (s *Selection) MoveCursorBy(rows int) {
	s.mu.Lock()
	c := s.lead
	want := s.desiredColumn
	if want < 0 {
		want = c.Column
	}
	s.mu.Unlock()

	row := c.Row + rows
	switch {
	case row < 0:
		s.MoveCursorTo(0, 0)
		return
	case row >= s.doc.Length():
		last := s.doc.Length() - 1
		s.MoveCursorTo(last, len(s.doc.Line(last)))
		return
	}
	s.MoveCursorTo(row, want)

	s.mu.Lock()
	s.desiredColumn = want
	s.mu.Unlock()
}

// MoveCursorUp moves one row up.
func (s *Selection) MoveCursorUp() { s.MoveCursorBy(-1) }

// MoveCursorDown moves one row down.
func (s *Selection) MoveCursorDown() { s.MoveCursorBy(1) }

// MoveCursorLineStart toggles between the first non-blank character and
// column 0.
func (s *Selection) MoveCursorLineStart() {
	c := s.Cursor()
	first := FirstNonBlank(s.doc.Line(c.Row))
	if c.Column == first {
		first = 0
	}
	s.MoveCursorTo(c.Row, first)
}

// MoveCursorLineEnd moves to the end of the row.
func (s *Selection) MoveCursorLineEnd() {
	c := s.Cursor()
	s.MoveCursorTo(c.Row, len(s.doc.Line(c.Row)))
}

// MoveCursorFileStart moves to the start of the document.
func (s *Selection) MoveCursorFileStart() { s.MoveCursorTo(0, 0) }

// MoveCursorFileEnd moves to the end of the document.
func (s *Selection) MoveCursorFileEnd() {
	last := s.doc.Length() - 1
	s.MoveCursorTo(last, len(s.doc.Line(last)))
}

// MoveCursorWordRight moves past the next word or punctuation run.
func (s *Selection) MoveCursorWordRight() {
	c := s.Cursor()
	line := s.doc.Line(c.Row)
	col, ok := wordRightColumn(line, c.Column)
	if !ok && col == c.Column {
		if c.Row+1 < s.doc.Length() {
			s.MoveCursorTo(c.Row+1, 0)
		}
		return
	}
	s.MoveCursorTo(c.Row, col)
}

// MoveCursorWordLeft moves to the start of the previous word or
// punctuation run.
func (s *Selection) MoveCursorWordLeft() {
	c := s.Cursor()
	col, ok := wordLeftColumn(s.doc.Line(c.Row), c.Column)
	if !ok && col == c.Column {
		if c.Row > 0 {
			s.MoveCursorTo(c.Row-1, len(s.doc.Line(c.Row-1)))
		}
		return
	}
	s.MoveCursorTo(c.Row, col)
}

// SelectLeft extends the selection one grapheme cluster left.
func (s *Selection) SelectLeft() { s.moveSelection(s.MoveCursorLeft) }

// SelectRight extends the selection one grapheme cluster right.
func (s *Selection) SelectRight() { s.moveSelection(s.MoveCursorRight) }

// SelectUp extends the selection one row up.
func (s *Selection) SelectUp() { s.moveSelection(s.MoveCursorUp) }

// SelectDown extends the selection one row down.
func (s *Selection) SelectDown() { s.moveSelection(s.MoveCursorDown) }

// SelectLineStart extends the selection to the start of the row.
func (s *Selection) SelectLineStart() { s.moveSelection(s.MoveCursorLineStart) }

// SelectLineEnd extends the selection to the end of the row.
func (s *Selection) SelectLineEnd() { s.moveSelection(s.MoveCursorLineEnd) }

// SelectWordLeft extends the selection one word left.
func (s *Selection) SelectWordLeft() { s.moveSelection(s.MoveCursorWordLeft) }

// SelectWordRight extends the selection one word right.
func (s *Selection) SelectWordRight() { s.moveSelection(s.MoveCursorWordRight) }

// SelectFileStart extends the selection to the start of the document.
func (s *Selection) SelectFileStart() { s.moveSelection(s.MoveCursorFileStart) }

// SelectFileEnd extends the selection to the end of the document.
func (s *Selection) SelectFileEnd() { s.moveSelection(s.MoveCursorFileEnd) }
