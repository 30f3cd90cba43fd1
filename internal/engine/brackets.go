package engine

import (
	"strings"

	"github.com/dshills/caret/internal/mode"
)

// BracketMatch is the span between a bracket and its partner. Cursor is
// the end the caret should jump to.
type BracketMatch struct {
	Range
	Cursor Point
}

// TagMatch locates an element's opening and closing tags.
type TagMatch struct {
	OpenTag      Range
	CloseTag     Range
	OpenTagName  Range
	CloseTagName Range
}

// FindMatchingBracket returns the partner of the bracket just before p.
func (s *Session) FindMatchingBracket(p Point) (Point, bool) {
	if p.Column == 0 {
		return Point{}, false
	}
	line := s.doc.Line(p.Row)
	if p.Column > len(line) {
		return Point{}, false
	}
	c := line[p.Column-1]
	switch {
	case mode.IsOpening(c):
		return s.FindClosingBracket(c, p)
	case mode.IsClosing(c):
		return s.FindOpeningBracket(c, p)
	}
	return Point{}, false
}

// BracketRange returns the span between the bracket adjacent to p and
// its partner. The bracket before p is preferred; when the bracket
// follows p the range includes both brackets.
func (s *Session) BracketRange(p Point) (BracketMatch, bool) {
	line := s.doc.Line(p.Row)
	before := true
	var c byte
	if p.Column > 0 && p.Column <= len(line) {
		c = line[p.Column-1]
	}
	if !mode.IsOpening(c) && !mode.IsClosing(c) {
		c = 0
		if p.Column < len(line) {
			c = line[p.Column]
		}
		p = Point{Row: p.Row, Column: p.Column + 1}
		before = false
	}

	var m BracketMatch
	switch {
	case mode.IsOpening(c):
		pos, ok := s.FindClosingBracket(c, p)
		if !ok {
			return BracketMatch{}, false
		}
		m.Range = Range{Start: p, End: pos}
		if !before {
			m.End.Column++
			m.Start.Column--
		}
		m.Cursor = m.End
	case mode.IsClosing(c):
		pos, ok := s.FindOpeningBracket(c, p)
		if !ok {
			return BracketMatch{}, false
		}
		m.Range = Range{Start: pos, End: p}
		if !before {
			m.Start.Column++
			m.End.Column--
		}
		m.Cursor = m.Start
	default:
		return BracketMatch{}, false
	}
	return m, true
}

// FindOpeningBracket scans backward from p, the position just after the
// closing bracket, for the opener that balances it. Only tokens of the
// closing bracket's class are searched.
func (s *Session) FindOpeningBracket(closing byte, p Point) (Point, bool) {
	opening := mode.Pairs[closing]
	it := s.NewTokenIterator(p.Row, p.Column)
	tok, ok := it.Current()
	if !ok {
		if tok, ok = it.StepForward(); !ok {
			return Point{}, false
		}
	}
	class := bracketFamily(tok.Type)
	depth := 1
	idx := p.Column - it.Column() - 2
	value := tok.Value
	for {
		for ; idx >= 0; idx-- {
			if idx >= len(value) {
				continue
			}
			switch value[idx] {
			case opening:
				depth--
				if depth == 0 {
					return Point{Row: it.Row(), Column: idx + it.Column()}, true
				}
			case closing:
				depth++
			}
		}
		for {
			tok, ok = it.StepBackward()
			if !ok || bracketFamily(tok.Type) == class {
				break
			}
		}
		if !ok {
			return Point{}, false
		}
		value = tok.Value
		idx = len(value) - 1
	}
}

// FindClosingBracket scans forward from p, the position just after the
// opening bracket, for the closer that balances it.
func (s *Session) FindClosingBracket(opening byte, p Point) (Point, bool) {
	closing := mode.Pairs[opening]
	it := s.NewTokenIterator(p.Row, p.Column)
	tok, ok := it.Current()
	if !ok {
		if tok, ok = it.StepForward(); !ok {
			return Point{}, false
		}
	}
	class := bracketFamily(tok.Type)
	depth := 1
	idx := p.Column - it.Column()
	for {
		value := tok.Value
		for ; idx < len(value); idx++ {
			if idx < 0 {
				continue
			}
			switch value[idx] {
			case closing:
				depth--
				if depth == 0 {
					return Point{Row: it.Row(), Column: idx + it.Column()}, true
				}
			case opening:
				depth++
			}
		}
		for {
			tok, ok = it.StepForward()
			if !ok || bracketFamily(tok.Type) == class {
				break
			}
		}
		if !ok {
			return Point{}, false
		}
		idx = 0
	}
}

// bracketFamily groups token types that may hold matching brackets.
func bracketFamily(tokenType string) string {
	if strings.Contains(tokenType, "paren") {
		return "paren"
	}
	return tokenType
}

// ============================================================================
// Tags
// ============================================================================

// tagRecord is one opening or closing tag found in the token stream.
type tagRecord struct {
	closing     bool
	selfClosing bool
	complete    bool
	name        string
	start       Point // at "<" or "</"
	nameRange   Range
	closeTok    Range // the ">" or "/>" token
}

func (t tagRecord) end() Point { return t.closeTok.End }

// tagRecords lists every tag in document order.
func (s *Session) tagRecords() []tagRecord {
	var out []tagRecord
	var cur *tagRecord
	rows := s.doc.Length()
	for row := 0; row < rows; row++ {
		col := 0
		toks := s.Tokens(row)
		for i, tok := range toks {
			start := Point{Row: row, Column: col}
			tr := Range{Start: start, End: Point{Row: row, Column: col + len(tok.Value)}}
			col += len(tok.Value)
			switch {
			case tok.Value == "<" || tok.Value == "</":
				if !strings.Contains(tok.Type, "tag") {
					continue
				}
				// The name must follow on the same row.
				if i+1 >= len(toks) || !mode.IsTagName(toks[i+1].Type) {
					continue
				}
				if cur != nil {
					out = append(out, *cur)
				}
				cur = &tagRecord{closing: tok.Value == "</", start: start}
			case mode.IsTagName(tok.Type):
				if cur != nil && cur.name == "" {
					cur.name = tok.Value
					cur.nameRange = tr
				}
			case mode.IsTagClose(tok.Type):
				if cur != nil && cur.name != "" {
					cur.complete = true
					cur.selfClosing = tok.Value == "/>"
					cur.closeTok = tr
					out = append(out, *cur)
					cur = nil
				}
			}
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// findTagName locates the tag-name token p belongs to: the token at p
// when it is a name, otherwise the next name forward, or the name before
// a "/>" reached on the way.
func (s *Session) findTagName(p Point) (Range, bool) {
	it := s.NewTokenIterator(p.Row, p.Column)
	tok, ok := it.Current()
	if !ok {
		return Range{}, false
	}
	backward := false
	for !mode.IsTagName(tok.Type) {
		if backward {
			tok, ok = it.StepBackward()
		} else {
			tok, ok = it.StepForward()
		}
		if !ok {
			return Range{}, false
		}
		if tok.Value == "/>" {
			backward = true
		}
	}
	return it.TokenRange(), true
}

// MatchingTags returns the element tags around the tag at p. A
// self-closing tag matches itself.
func (s *Session) MatchingTags(p Point) (TagMatch, bool) {
	nameRange, ok := s.findTagName(p)
	if !ok {
		return TagMatch{}, false
	}
	tags := s.tagRecords()
	at := -1
	for i, t := range tags {
		if t.nameRange == nameRange {
			at = i
			break
		}
	}
	if at < 0 {
		return TagMatch{}, false
	}
	tag := tags[at]
	if !tag.complete {
		return TagMatch{}, false
	}

	if !tag.closing {
		if tag.selfClosing {
			return TagMatch{
				OpenTag:      Range{Start: tag.start, End: Point{Row: tag.nameRange.End.Row, Column: tag.nameRange.End.Column + 1}},
				CloseTag:     tag.closeTok,
				OpenTagName:  tag.nameRange,
				CloseTagName: tag.closeTok,
			}, true
		}
		depth := 0
		for _, t := range tags[at+1:] {
			if t.name != tag.name {
				continue
			}
			switch {
			case t.closing:
				depth--
			case !t.selfClosing:
				depth++
			}
			if depth < 0 {
				if !t.complete {
					return TagMatch{}, false
				}
				return TagMatch{
					OpenTag:      Range{Start: tag.start, End: tag.end()},
					CloseTag:     Range{Start: t.start, End: t.end()},
					OpenTagName:  tag.nameRange,
					CloseTagName: t.nameRange,
				}, true
			}
		}
		return TagMatch{}, false
	}

	depth := 0
	for i := at - 1; i >= 0; i-- {
		t := tags[i]
		if t.name != tag.name {
			continue
		}
		switch {
		case t.closing:
			depth--
		case !t.selfClosing:
			depth++
		}
		if depth > 0 {
			if !t.complete {
				return TagMatch{}, false
			}
			return TagMatch{
				OpenTag:      Range{Start: t.start, End: t.end()},
				CloseTag:     Range{Start: tag.start, End: tag.end()},
				OpenTagName:  t.nameRange,
				CloseTagName: tag.nameRange,
			}, true
		}
	}
	return TagMatch{}, false
}

// WordRange returns the word around (row, column).
func (s *Session) WordRange(row, column int) Range {
	return s.selection.WordRange(row, column)
}
