package engine

import (
	"math"
	"strings"

	"github.com/dshills/caret/internal/engine/buffer"
)

// MoveLines moves rows first..last by dir rows, or copies them below
// themselves when dir is 0. Fold boundaries are respected on both the
// moved block and its destination. It returns the row offset applied to
// the block, or 0 when the move would leave the document.
func (s *Session) MoveLines(first, last, dir int) int {
	first = s.RowFoldStart(first)
	last = s.RowFoldEnd(last)

	var diff int
	switch {
	case dir < 0:
		row := s.RowFoldStart(first + dir)
		if row < 0 {
			return 0
		}
		diff = row - first
	case dir > 0:
		row := s.RowFoldEnd(last + dir)
		if row > s.doc.Length()-1 {
			return 0
		}
		diff = row - last
	default:
		first = s.clipRow(first)
		last = s.clipRow(last)
		diff = last - first + 1
	}

	moved := s.FoldsInRange(buffer.NewRange(first, 0, last, math.MaxInt))
	for i := range moved {
		moved[i].Range = moved[i].Range.MoveBy(diff, 0)
	}

	var lines []string
	if dir == 0 {
		lines = s.doc.Lines(first, last)
	} else {
		lines = s.doc.RemoveFullLines(first, last)
	}
	s.doc.InsertFullLines(first+diff, lines)
	s.addFoldsQuiet(moved)
	return diff
}

// MoveLinesUp moves rows first..last up by one.
func (s *Session) MoveLinesUp(first, last int) int { return s.MoveLines(first, last, -1) }

// MoveLinesDown moves rows first..last down by one.
func (s *Session) MoveLinesDown(first, last int) int { return s.MoveLines(first, last, 1) }

// DuplicateLines copies rows first..last below themselves.
func (s *Session) DuplicateLines(first, last int) int { return s.MoveLines(first, last, 0) }

// RemoveFullLines deletes rows first..last.
func (s *Session) RemoveFullLines(first, last int) []string {
	return s.doc.RemoveFullLines(first, last)
}

func (s *Session) clipRow(row int) int {
	if row < 0 {
		return 0
	}
	if n := s.doc.Length(); row >= n {
		return n - 1
	}
	return row
}

// IndentRows inserts indent at the start of rows first..last.
func (s *Session) IndentRows(first, last int, indent string) {
	for row := first; row <= last; row++ {
		s.doc.InsertInLine(Point{Row: row}, indent)
	}
}

// OutdentRows removes one indent level from every row r touches: a tab
// or up to TabSize leading spaces.
func (s *Session) OutdentRows(r Range) {
	rows := r.CollapseRows()
	size := s.TabSize()
	for row := rows.Start.Row; row <= rows.End.Row; row++ {
		line := s.doc.Line(row)
		j := 0
		for j < size && j < len(line) && line[j] == ' ' {
			j++
		}
		if j < size && j < len(line) && line[j] == '\t' {
			s.doc.RemoveInLine(row, j, j+1)
			continue
		}
		s.doc.RemoveInLine(row, 0, j)
	}
}

// IndentString returns the leading whitespace of row.
func (s *Session) IndentString(row int) string {
	line := s.doc.Line(row)
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
