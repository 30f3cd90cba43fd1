package editor

import (
	"strings"
	"unicode"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/search"
)

// Search returns the editor's search. Its options persist between Find
// calls.
func (e *Editor) Search() *search.Search { return e.search }

// Find searches for needle and selects the match. An empty needle falls
// back to opts.Needle, then the selected text, then the last needle and
// finally the word under the caret. A nil opts keeps the options of the
// previous search apart from its needle.
//
// On a miss the selection collapses to its end when searching forward and
// to its start when searching backward.
func (e *Editor) Find(needle string, opts *search.Options) (Range, bool) {
	session := e.session
	if session == nil {
		return Range{}, false
	}
	// The stored needle only backs up the selection text.
	o := e.search.Options()
	o.Needle = ""
	if opts != nil {
		o = *opts
	}
	if needle != "" {
		o.Needle = needle
	}

	r := e.selection.Range()
	if o.Needle == "" {
		o.Needle = session.TextRange(r)
		if o.Needle == "" {
			o.Needle = e.search.Options().Needle
		}
		if o.Needle == "" {
			word := session.WordRange(r.Start.Row, r.Start.Column)
			o.Needle = session.TextRange(word)
			r = word
		}
	}
	if opts == nil || opts.Start == nil {
		o.Start = &r
	}
	e.search.Set(o)

	found, ok := e.search.Find(session)
	if o.PreventScroll {
		return found, ok
	}
	if ok {
		e.RevealRange(found, true)
		return found, true
	}
	if o.Backwards {
		r.End = r.Start
	} else {
		r.Start = r.End
	}
	e.selection.SetRange(r, false)
	return Range{}, false
}

// FindNext selects the next match of the selected text, or of the last
// needle when nothing is selected.
func (e *Editor) FindNext() (Range, bool) {
	return e.findFrom(false)
}

// FindPrevious is FindNext searching backwards.
func (e *Editor) FindPrevious() (Range, bool) {
	return e.findFrom(true)
}

func (e *Editor) findFrom(backwards bool) (Range, bool) {
	o := e.search.Options()
	o.Needle = ""
	o.SkipCurrent = true
	o.Backwards = backwards
	o.Start = nil
	return e.Find("", &o)
}

// RevealRange unfolds r, selects it and scrolls it into view.
func (e *Editor) RevealRange(r Range, animate bool) {
	if e.session == nil {
		return
	}
	e.session.Unfold(r)
	e.selection.SetRange(r, false)
	scrollTop := e.renderer.ScrollTop()
	e.renderer.ScrollSelectionIntoView(r.Start, r.End)
	if animate {
		e.renderer.AnimateScrolling(scrollTop)
	}
}

// Replace replaces the next match, starting at the selection, and
// selects the result. It returns the number of replacements made: 0 when
// nothing matched or the replacement template was declined.
func (e *Editor) Replace(replacement string, opts *search.Options) int {
	session := e.session
	if session == nil {
		return 0
	}
	o := e.search.Options()
	if opts != nil {
		o = *opts
	}
	sel := e.selection.Range()
	o.Start = &sel
	o.SkipCurrent = false
	e.search.Set(o)

	r, ok := e.search.Find(session)
	if !ok {
		return 0
	}
	replaced := 0
	if end, ok := e.tryReplace(r, replacement); ok {
		r.End = end
		replaced = 1
	}
	e.selection.SetRange(r, false)
	e.renderer.ScrollSelectionIntoView(r.Start, r.End)
	return replaced
}

// ReplaceAll replaces every match, last first so earlier offsets stay
// valid, and restores the selection. It returns the number of
// replacements made.
func (e *Editor) ReplaceAll(replacement string, opts *search.Options) int {
	session := e.session
	if session == nil {
		return 0
	}
	if opts != nil {
		e.search.Set(*opts)
	}
	ranges := e.search.FindAll(session)
	if len(ranges) == 0 {
		return 0
	}

	original := e.selection.ToOrientedRange()
	e.selection.MoveTo(0, 0)
	replaced := 0
	for i := len(ranges) - 1; i >= 0; i-- {
		if _, ok := e.tryReplace(ranges[i], replacement); ok {
			replaced++
		}
	}
	e.selection.FromOrientedRange(original)
	return replaced
}

// tryReplace substitutes the expanded template for r.
func (e *Editor) tryReplace(r Range, replacement string) (Point, bool) {
	input := e.session.TextRange(r)
	text, ok := e.search.Replace(input, replacement)
	if !ok {
		e.logger.Debug("replacement declined for %q", input)
		return Point{}, false
	}
	return e.session.Replace(r, text), true
}

// FindAll selects every match of needle as a multi-range selection and
// returns the number of matches.
func (e *Editor) FindAll(needle string, opts *search.Options) int {
	session := e.session
	if session == nil {
		return 0
	}
	o := e.search.Options()
	if opts != nil {
		o = *opts
	}
	if needle != "" {
		o.Needle = needle
	}
	if o.Needle == "" {
		r := e.selection.Range()
		if r.IsEmpty() {
			r = session.WordRange(r.Start.Row, r.Start.Column)
		}
		o.Needle = session.TextRange(r)
	}
	o.Start = nil
	e.search.Set(o)

	ranges := e.search.FindAll(session)
	if len(ranges) == 0 {
		return 0
	}
	sel := session.Selection()
	primary := sel.ToOrientedRange()
	sel.ToSingleRange(cursorRange(ranges[0]))
	for _, r := range ranges[1:] {
		sel.AddRange(cursorRange(r))
	}
	// Keep the match at the caret primary.
	for _, r := range ranges {
		if r.Contains(primary.Cursor().Row, primary.Cursor().Column) {
			sel.FromOrientedRange(cursorRange(r))
			break
		}
	}
	return len(ranges)
}

// SelectedText returns the text of every selected range, joined by the
// document line ending.
func (e *Editor) SelectedText() string {
	session := e.session
	if session == nil {
		return ""
	}
	ranges := session.Selection().Ranges()
	if e.inVirtualSelectionMode || len(ranges) == 1 {
		return session.TextRange(e.selection.Range())
	}
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, session.TextRange(r.Range))
	}
	return strings.Join(parts, session.Doc().NewLineCharacter())
}

// selectionHighlightNeedle returns the selected text when it is a whole
// word on one row.
func (e *Editor) selectionHighlightNeedle() (string, bool) {
	r := e.selection.Range()
	if r.IsEmpty() || r.IsMultiLine() {
		return "", false
	}
	line := e.session.Line(r.Start.Row)
	needle := line[r.Start.Column:r.End.Column]
	if len(needle) > 5000 || strings.IndexFunc(needle, isWordChar) < 0 {
		return "", false
	}
	re, err := search.AssembleRegexp(search.Options{Needle: needle, WholeWord: true, CaseSensitive: true})
	if err != nil {
		return "", false
	}
	around := line[max(r.Start.Column-1, 0):min(r.End.Column+1, len(line))]
	if ok, err := re.MatchString(around); err != nil || !ok {
		return "", false
	}
	return needle, true
}

func (e *Editor) updateSelectionHighlight() {
	needle := ""
	if e.settings.highlightSelectedWord && e.session != nil && !e.inVirtualSelectionMode {
		needle, _ = e.selectionHighlightNeedle()
	}
	e.selectionHighlight = needle
}

// SelectionHighlights returns every occurrence of the selected word.
func (e *Editor) SelectionHighlights() []Range {
	if e.selectionHighlight == "" || e.session == nil {
		return nil
	}
	s := search.New(search.Options{Needle: e.selectionHighlight, WholeWord: true, CaseSensitive: true})
	return s.FindAll(e.session)
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func cursorRange(r buffer.Range) cursor.OrientedRange {
	return cursor.OrientedRange{Range: r}
}
