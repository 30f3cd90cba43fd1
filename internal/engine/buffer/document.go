package buffer

import (
	"errors"
	"regexp"
	"strings"
	"sync"
)

// Errors returned by document operations.
var (
	ErrRowOutOfRange = errors.New("row out of range")
	ErrRangeInvalid  = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

var lineSplitter = regexp.MustCompile(`\r\n|\r|\n`)

// SplitLines splits text on any line terminator. The result always has
// at least one element.
func SplitLines(text string) []string {
	return lineSplitter.Split(text, -1)
}

// ChangeListener receives every delta applied to a document.
type ChangeListener func(Delta)

// Document stores text as a slice of lines.
// All methods are thread-safe.
type Document struct {
	mu         sync.RWMutex
	lines      []string
	lineEnding LineEnding

	listenersMu sync.Mutex
	listeners   map[int]ChangeListener
	nextID      int
	order       []int
}

// NewDocument creates a document with initial content.
func NewDocument(text string, opts ...Option) *Document {
	d := &Document{
		lines:     SplitLines(text),
		listeners: make(map[int]ChangeListener),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option configures a Document.
type Option func(*Document)

// WithLineEnding sets the line ending used when joining lines.
func WithLineEnding(le LineEnding) Option {
	return func(d *Document) {
		d.lineEnding = le
	}
}

// OnChange registers a change listener. The returned function removes it.
func (d *Document) OnChange(fn ChangeListener) (remove func()) {
	d.listenersMu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	d.order = append(d.order, id)
	d.listenersMu.Unlock()

	return func() {
		d.listenersMu.Lock()
		defer d.listenersMu.Unlock()
		delete(d.listeners, id)
		for i, v := range d.order {
			if v == id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns the number of registered change listeners.
func (d *Document) ListenerCount() int {
	d.listenersMu.Lock()
	defer d.listenersMu.Unlock()
	return len(d.listeners)
}

func (d *Document) emit(delta Delta) {
	d.listenersMu.Lock()
	fns := make([]ChangeListener, 0, len(d.order))
	for _, id := range d.order {
		fns = append(fns, d.listeners[id])
	}
	d.listenersMu.Unlock()

	for _, fn := range fns {
		fn(delta)
	}
}

// Read Operations

// Length returns the number of rows.
func (d *Document) Length() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

// Line returns the text of a row, or "" when the row does not exist.
func (d *Document) Line(row int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row]
}

// Lines returns a copy of rows first through last inclusive.
func (d *Document) Lines(first, last int) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if first < 0 {
		first = 0
	}
	if last >= len(d.lines) {
		last = len(d.lines) - 1
	}
	if first > last {
		return nil
	}
	out := make([]string, last-first+1)
	copy(out, d.lines[first:last+1])
	return out
}

// AllLines returns a copy of every row.
func (d *Document) AllLines() []string {
	return d.Lines(0, d.Length()-1)
}

// Text returns the whole document joined with the configured line ending.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return strings.Join(d.lines, d.lineEnding.Sequence())
}

// NewLineCharacter returns the line ending sequence.
func (d *Document) NewLineCharacter() string {
	return d.lineEnding.Sequence()
}

// IsNewLine returns true if text is a single line terminator.
func (d *Document) IsNewLine(text string) bool {
	return text == "\n" || text == "\r\n" || text == "\r"
}

// TextRange returns the text covered by r, joined with the line ending.
func (d *Document) TextRange(r Range) string {
	return strings.Join(d.LinesForRange(r), d.lineEnding.Sequence())
}

// LinesForRange returns the partial lines covered by r.
func (d *Document) LinesForRange(r Range) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r = Range{Start: d.clip(r.Start), End: d.clip(r.End)}
	if r.Start.Row == r.End.Row {
		return []string{d.lines[r.Start.Row][r.Start.Column:r.End.Column]}
	}
	out := make([]string, 0, r.End.Row-r.Start.Row+1)
	out = append(out, d.lines[r.Start.Row][r.Start.Column:])
	out = append(out, d.lines[r.Start.Row+1:r.End.Row]...)
	out = append(out, d.lines[r.End.Row][:r.End.Column])
	return out
}

// ClippedPosition clamps a position to the document bounds.
func (d *Document) ClippedPosition(row, column int) Point {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.clip(Point{Row: row, Column: column})
}

func (d *Document) clip(p Point) Point {
	n := len(d.lines)
	if p.Row >= n {
		return Point{Row: n - 1, Column: len(d.lines[n-1])}
	}
	if p.Row < 0 {
		return Point{}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if l := len(d.lines[p.Row]); p.Column > l {
		p.Column = l
	}
	return p
}

// Write Operations

// Insert inserts text at p and returns the end of the inserted text.
func (d *Document) Insert(p Point, text string) Point {
	if text == "" {
		return d.ClippedPosition(p.Row, p.Column)
	}
	d.mu.Lock()
	p = d.clip(p)
	lines := SplitLines(text)
	end := Point{Row: p.Row + len(lines) - 1, Column: len(lines[len(lines)-1])}
	if len(lines) == 1 {
		end.Column += p.Column
	}
	delta := Delta{Action: ActionInsert, Start: p, End: end, Lines: lines}
	d.applyLocked(delta)
	d.mu.Unlock()

	d.emit(delta)
	return end
}

// InsertInLine inserts single-line text at p.
func (d *Document) InsertInLine(p Point, text string) Point {
	return d.Insert(p, text)
}

// Remove removes the text covered by r and returns the start point.
func (d *Document) Remove(r Range) Point {
	d.mu.Lock()
	r = Range{Start: d.clip(r.Start), End: d.clip(r.End)}
	if r.IsEmpty() {
		d.mu.Unlock()
		return r.Start
	}
	delta := Delta{Action: ActionRemove, Start: r.Start, End: r.End, Lines: d.linesForRangeLocked(r)}
	d.applyLocked(delta)
	d.mu.Unlock()

	d.emit(delta)
	return r.Start
}

// RemoveInLine removes columns [startCol, endCol) on a single row.
func (d *Document) RemoveInLine(row, startCol, endCol int) Point {
	return d.Remove(NewRange(row, startCol, row, endCol))
}

// Replace replaces r with text and returns the end of the new text.
func (d *Document) Replace(r Range, text string) Point {
	if text == d.TextRange(r) {
		return r.End
	}
	start := d.Remove(r)
	if text == "" {
		return start
	}
	return d.Insert(start, text)
}

// RemoveFullLines removes rows first through last and returns them.
func (d *Document) RemoveFullLines(first, last int) []string {
	d.mu.RLock()
	n := len(d.lines)
	d.mu.RUnlock()
	if first < 0 {
		first = 0
	}
	if last >= n {
		last = n - 1
	}
	removed := d.Lines(first, last)

	// Removing the last rows consumes the line break before them instead.
	var r Range
	switch {
	case last < n-1:
		r = NewRange(first, 0, last+1, 0)
	case first > 0:
		r = NewRange(first-1, len(d.Line(first-1)), last, len(d.Line(last)))
	default:
		r = NewRange(first, 0, last, len(d.Line(last)))
	}
	d.Remove(r)
	return removed
}

// InsertFullLines inserts whole rows before row.
func (d *Document) InsertFullLines(row int, lines []string) {
	if len(lines) == 0 {
		return
	}
	n := d.Length()
	text := strings.Join(lines, "\n")
	if row >= n {
		d.Insert(Point{Row: n - 1, Column: len(d.Line(n - 1))}, "\n"+text)
		return
	}
	if row < 0 {
		row = 0
	}
	d.Insert(Point{Row: row, Column: 0}, text+"\n")
}

// ApplyDelta applies a delta produced elsewhere, e.g. by undo.
func (d *Document) ApplyDelta(delta Delta) error {
	d.mu.Lock()
	if delta.Start.Row < 0 || delta.Start.Row >= len(d.lines) {
		d.mu.Unlock()
		return ErrRowOutOfRange
	}
	if delta.Action == ActionRemove && delta.End.Row >= len(d.lines) {
		d.mu.Unlock()
		return ErrRangeInvalid
	}
	delta.Lines = append([]string(nil), delta.Lines...)
	d.applyLocked(delta)
	d.mu.Unlock()

	d.emit(delta)
	return nil
}

// SetValue replaces the whole document content.
func (d *Document) SetValue(text string) {
	n := d.Length()
	d.Remove(NewRange(0, 0, n-1, len(d.Line(n-1))))
	d.Insert(Point{}, text)
}

func (d *Document) linesForRangeLocked(r Range) []string {
	if r.Start.Row == r.End.Row {
		return []string{d.lines[r.Start.Row][r.Start.Column:r.End.Column]}
	}
	out := make([]string, 0, r.End.Row-r.Start.Row+1)
	out = append(out, d.lines[r.Start.Row][r.Start.Column:])
	out = append(out, d.lines[r.Start.Row+1:r.End.Row]...)
	out = append(out, d.lines[r.End.Row][:r.End.Column])
	return out
}

func (d *Document) applyLocked(delta Delta) {
	row := delta.Start.Row
	line := d.lines[row]
	switch delta.Action {
	case ActionInsert:
		head, tail := line[:delta.Start.Column], line[delta.Start.Column:]
		if len(delta.Lines) == 1 {
			d.lines[row] = head + delta.Lines[0] + tail
			return
		}
		added := make([]string, len(delta.Lines))
		copy(added, delta.Lines)
		added[0] = head + added[0]
		added[len(added)-1] += tail
		rest := append([]string(nil), d.lines[row+1:]...)
		d.lines = append(append(d.lines[:row], added...), rest...)
	case ActionRemove:
		endLine := d.lines[delta.End.Row]
		joined := line[:delta.Start.Column] + endLine[delta.End.Column:]
		d.lines = append(append(d.lines[:row], joined), d.lines[delta.End.Row+1:]...)
	}
}
