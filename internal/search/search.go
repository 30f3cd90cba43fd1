// Package search finds and replaces text in a session.
//
// Patterns follow ECMAScript regular expression syntax so that needles
// and replacement templates behave the way editor users expect from the
// web. Literal needles are escaped before compilation. A needle holding
// line breaks is split into one pattern per line and matched across
// consecutive rows.
package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/dshills/caret/internal/engine/buffer"
)

// MatchTimeout bounds a single pattern evaluation.
const MatchTimeout = time.Second

// Source is the text a search runs over.
type Source interface {
	Length() int
	Line(row int) string
}

// Options configures a search.
type Options struct {
	Needle        string
	Regexp        bool
	CaseSensitive bool
	WholeWord     bool
	PreserveCase  bool
	Backwards     bool
	Wrap          bool
	SkipCurrent   bool

	// Start is where the search begins. Forward searches start at its
	// start, or its end with SkipCurrent; backward searches the reverse.
	Start *buffer.Range

	// Range limits matches to a region of the document.
	Range *buffer.Range

	PreventScroll bool
}

// Search is a configured search.
type Search struct {
	opts Options
}

// New creates a search with the given options.
func New(opts Options) *Search {
	return &Search{opts: opts}
}

// Options returns the current options.
func (s *Search) Options() Options {
	return s.opts
}

// Set replaces the options.
func (s *Search) Set(opts Options) *Search {
	s.opts = opts
	return s
}

// SetNeedle changes the needle only.
func (s *Search) SetNeedle(needle string) *Search {
	s.opts.Needle = needle
	return s
}

// Find returns the next match after the search start. Wrap lets the
// search continue from the other end of the document.
func (s *Search) Find(src Source) (buffer.Range, bool) {
	matches, err := s.matches(src)
	if err != nil || len(matches) == 0 {
		return buffer.Range{}, false
	}
	start := s.startPoint()

	if !s.opts.Backwards {
		for _, m := range matches {
			if !m.Start.Before(start) {
				return m, true
			}
		}
		if s.opts.Wrap {
			return matches[0], true
		}
		return buffer.Range{}, false
	}

	for i := len(matches) - 1; i >= 0; i-- {
		if !matches[i].End.After(start) {
			return matches[i], true
		}
	}
	if s.opts.Wrap {
		return matches[len(matches)-1], true
	}
	return buffer.Range{}, false
}

// FindAll returns every non-empty match in document order.
func (s *Search) FindAll(src Source) []buffer.Range {
	matches, err := s.matches(src)
	if err != nil {
		return nil
	}
	return matches
}

func (s *Search) startPoint() buffer.Point {
	o := s.opts
	var start buffer.Range
	switch {
	case o.Start != nil:
		start = *o.Start
	case o.Range != nil:
		start = *o.Range
		if o.Backwards {
			return start.End
		}
		return start.Start
	}
	if o.SkipCurrent != o.Backwards {
		return start.End
	}
	return start.Start
}

// matches scans the whole source, or Options.Range when set.
func (s *Search) matches(src Source) ([]buffer.Range, error) {
	res, err := assemble(s.opts)
	if err != nil {
		return nil, err
	}
	first, last := 0, src.Length()-1
	if r := s.opts.Range; r != nil {
		first = max(r.Start.Row, 0)
		last = min(r.End.Row, last)
	}

	var out []buffer.Range
	for row := first; row <= last; row++ {
		var found []buffer.Range
		if len(res) == 1 {
			found, err = lineMatches(res[0], src.Line(row), row)
		} else {
			found, err = multiLineMatch(res, src, row, last)
		}
		if err != nil {
			return nil, err
		}
		for _, m := range found {
			if s.opts.Range != nil && !s.opts.Range.ContainsRange(m) {
				continue
			}
			out = append(out, m)
		}
	}
	return out, nil
}

func lineMatches(re *regexp2.Regexp, line string, row int) ([]buffer.Range, error) {
	runes := []rune(line)
	m, err := re.FindRunesMatch(runes)
	var out []buffer.Range
	for m != nil && err == nil {
		if m.Length > 0 {
			start := byteOffset(runes, m.Index)
			end := start + len(string(runes[m.Index:m.Index+m.Length]))
			out = append(out, buffer.NewRange(row, start, row, end))
		}
		m, err = re.FindNextMatch(m)
	}
	return out, err
}

// multiLineMatch tries the patterns of a multi-line needle against the
// rows starting at row.
func multiLineMatch(res []*regexp2.Regexp, src Source, row, last int) ([]buffer.Range, error) {
	if row+len(res)-1 > last {
		return nil, nil
	}
	var start, end int
	for i, re := range res {
		runes := []rune(src.Line(row + i))
		m, err := re.FindRunesMatch(runes)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, nil
		}
		if i == 0 {
			start = byteOffset(runes, m.Index)
		}
		end = byteOffset(runes, m.Index+m.Length)
	}
	return []buffer.Range{buffer.NewRange(row, start, row+len(res)-1, end)}, nil
}

func byteOffset(runes []rune, index int) int {
	n := 0
	for _, r := range runes[:index] {
		n += utf8.RuneLen(r)
	}
	return n
}

// AssembleRegexp compiles the pattern a single-line needle stands for.
func AssembleRegexp(opts Options) (*regexp2.Regexp, error) {
	res, err := assemble(opts)
	if err != nil {
		return nil, err
	}
	if len(res) != 1 {
		return nil, ErrMultiLineNeedle
	}
	return res[0], nil
}

func assemble(opts Options) ([]*regexp2.Regexp, error) {
	if opts.Needle == "" {
		return nil, ErrEmptyNeedle
	}
	var flags regexp2.RegexOptions = regexp2.ECMAScript
	if !opts.CaseSensitive {
		flags |= regexp2.IgnoreCase
	}

	parts := strings.Split(strings.ReplaceAll(opts.Needle, "\r\n", "\n"), "\n")
	out := make([]*regexp2.Regexp, 0, len(parts))
	for i, part := range parts {
		pattern := part
		if !opts.Regexp {
			pattern = regexp.QuoteMeta(part)
		}
		if opts.WholeWord {
			pattern = wordBoundary(part, true) + pattern + wordBoundary(part, false)
		}
		if len(parts) > 1 {
			if i > 0 {
				pattern = "^" + pattern
			}
			if i < len(parts)-1 {
				pattern += "$"
			}
		}
		re, err := regexp2.Compile(pattern, flags)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		re.MatchTimeout = MatchTimeout
		out = append(out, re)
	}
	return out, nil
}

// wordBoundary returns `\b` when the needle starts (or ends) with a word
// character.
func wordBoundary(needle string, leading bool) string {
	if needle == "" {
		return ""
	}
	var r rune
	if leading {
		r, _ = utf8.DecodeRuneInString(needle)
	} else {
		r, _ = utf8.DecodeLastRuneInString(needle)
	}
	if r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return `\b`
	}
	return ""
}
