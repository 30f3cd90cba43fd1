package editor

import (
	"strings"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/mode"
)

// Marker class of the bracket highlight.
const bracketMarkerClass = "caret_bracket"

// JumpToMatching moves the caret to the bracket or tag that closes the
// block around it. With selectMode the selection is extended instead;
// with expand too the whole bracketed range is selected. A second
// selecting jump over an already selected range clears it.
func (e *Editor) JumpToMatching(selectMode, expand bool) {
	session := e.session
	if session == nil {
		return
	}
	pos := e.selection.Cursor()
	it := session.NewTokenIterator(pos.Row, pos.Column)
	prevToken, ok := it.Current()
	if ok && mode.IsTagName(prevToken.Type) {
		prevToken, ok = it.StepBackward()
	}
	token := prevToken
	if !ok {
		if token, ok = it.StepForward(); !ok {
			return
		}
	}

	const (
		matchNone = iota
		matchBracket
		matchTag
	)
	match := matchNone
	depth := make(map[string]int)
	i := max(pos.Column-it.Column(), 0)
	tokenCount := 0
	for match == matchNone {
		if strings.ContainsAny(token.Value, "(){}[]") {
			for ; i < len(token.Value) && match == matchNone; i++ {
				c := token.Value[i]
				open, isBracket := mode.Brackets[c]
				if !isBracket {
					continue
				}
				key := string(open) + "." + mode.BracketClass(token.Type)
				if mode.IsOpening(c) {
					depth[key]++
				} else if depth[key]--; depth[key] == -1 {
					match = matchBracket
				}
			}
		} else if mode.IsTagName(token.Type) {
			switch {
			case prevToken.Value == "<" && tokenCount > 1:
				depth[token.Value]++
			case prevToken.Value == "</":
				depth[token.Value]--
			}
			if depth[token.Value] == -1 {
				match = matchTag
			}
		}
		if match != matchNone {
			break
		}
		prevToken = token
		tokenCount++
		if token, ok = it.StepForward(); !ok {
			return
		}
		i = 0
	}

	var (
		r        buffer.Range
		hasRange bool
		target   Point
	)
	switch match {
	case matchBracket:
		if m, found := session.BracketRange(pos); found {
			r, hasRange, target = m.Range, true, m.Cursor
			break
		}
		at := Point{Row: it.Row(), Column: it.Column() + i - 1}
		r, hasRange, target = buffer.EmptyRange(at), true, at
		if expand || (at.Row == pos.Row && abs(at.Column-pos.Column) < 2) {
			m, found := session.BracketRange(at)
			if found {
				r, target = m.Range, m.Cursor
			} else {
				hasRange = false
			}
		}
	case matchTag:
		at := Point{Row: it.Row(), Column: it.Column() - 2}
		r, hasRange, target = buffer.EmptyRange(at), true, at
		if r.ComparePoint(pos.Row, pos.Column) == 0 {
			if tags, found := session.MatchingTags(pos); found {
				if tags.OpenTag.Contains(pos.Row, pos.Column) {
					r, target = tags.CloseTag, tags.CloseTag.Start
				} else {
					r, target = tags.OpenTag, tags.OpenTag.Start
					if tags.CloseTag.Start == pos {
						target = tags.OpenTag.End
					}
				}
			}
		}
	}

	sel := e.selection
	if !selectMode {
		sel.MoveTo(target.Row, target.Column)
		return
	}
	switch {
	case hasRange && expand:
		sel.SetRange(r, false)
	case hasRange && r.IsEqual(sel.Range()):
		sel.ClearSelection()
	default:
		sel.SelectTo(target.Row, target.Column)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// BracketHighlight returns the range of the highlighted bracket, if any.
func (e *Editor) BracketHighlight() (Range, bool) {
	session := e.Session()
	e.mu.Lock()
	id := e.bracketMarker
	e.mu.Unlock()
	if session == nil || id == 0 {
		return Range{}, false
	}
	m, ok := session.Marker(id)
	if !ok {
		return Range{}, false
	}
	return m.Range, true
}

// scheduleBracketHighlight drops the current highlight and recomputes it
// once the caret settles.
func (e *Editor) scheduleBracketHighlight() {
	e.clearBracketHighlight()
	if e.settings.highlightBrackets {
		e.bracketDebounce.Schedule()
	}
}

func (e *Editor) clearBracketHighlight() {
	e.mu.Lock()
	id := e.bracketMarker
	e.bracketMarker = 0
	session := e.session
	e.mu.Unlock()
	if id != 0 && session != nil {
		session.RemoveMarker(id)
	}
}

// updateBracketHighlight marks the partner of the bracket before the
// caret, or the other tag name of the element under it. It runs on a
// timer and gives up if the session went away.
func (e *Editor) updateBracketHighlight() {
	e.mu.Lock()
	session := e.session
	sel := e.selection
	e.mu.Unlock()
	if session == nil || session.Destroyed() || e.Destroyed() {
		return
	}

	pos := sel.Cursor()
	var r Range
	if p, ok := session.FindMatchingBracket(pos); ok {
		r = buffer.NewRange(p.Row, p.Column, p.Row, p.Column+1)
	} else if tags, ok := session.MatchingTags(pos); ok {
		r = tags.OpenTagName
		if tags.OpenTag.Contains(pos.Row, pos.Column) {
			r = tags.CloseTagName
		}
	} else {
		return
	}

	id := session.AddMarker(r, bracketMarkerClass, "text", false)
	e.mu.Lock()
	old := e.bracketMarker
	e.bracketMarker = id
	e.mu.Unlock()
	if old != 0 {
		session.RemoveMarker(old)
	}
}
