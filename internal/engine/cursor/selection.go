package cursor

import (
	"sync"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/event"
)

// Selection event names. None of them carry a payload except
// EventAddRange and EventRemoveRange, which carry []OrientedRange.
const (
	EventChangeCursor    = "changeCursor"
	EventChangeSelection = "changeSelection"
	EventAddRange        = "addRange"
	EventRemoveRange     = "removeRange"
	EventMultiSelect     = "multiSelect"
	EventSingleSelect    = "singleSelect"
)

// Selection is the primary selection of a document plus the optional
// ranges of a multi-range selection.
//
// The anchor is the fixed end and the lead is the cursor. While the
// selection is collapsed the anchor follows the lead.
type Selection struct {
	mu        sync.RWMutex
	doc       *buffer.Document
	anchor    Point
	lead      Point
	collapsed bool

	// desiredColumn is kept across vertical moves; -1 when unset.
	desiredColumn int

	rangeList *RangeList
	multi     bool
	silent    int

	emitter *event.Emitter
	detach  func()
}

// NewSelection creates a collapsed selection at the start of doc and
// attaches it to the document's changes.
func NewSelection(doc *buffer.Document) *Selection {
	s := &Selection{
		doc:           doc,
		collapsed:     true,
		desiredColumn: -1,
		rangeList:     NewRangeList(),
		emitter:       event.NewEmitter(),
	}
	s.detach = doc.OnChange(s.onChange)
	return s
}

// On subscribes to one of the selection events.
func (s *Selection) On(name string, h event.Handler, opts ...event.SubscriptionOption) event.Subscription {
	return s.emitter.On(name, h, opts...)
}

// ListenerCount returns the number of active event handlers.
func (s *Selection) ListenerCount() int {
	return s.emitter.Total()
}

// Doc returns the document the selection belongs to.
func (s *Selection) Doc() *buffer.Document {
	return s.doc
}

// Detach stops following document changes. The selection keeps its
// last positions.
func (s *Selection) Detach() {
	s.mu.Lock()
	remove := s.detach
	s.detach = nil
	s.mu.Unlock()
	if remove != nil {
		remove()
	}
	s.rangeList.Detach()
}

// Mute suppresses events until the returned function is called.
// Calls nest.
func (s *Selection) Mute() (unmute func()) {
	s.mu.Lock()
	s.silent++
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.silent--
			s.mu.Unlock()
		})
	}
}

type notify struct {
	cursor    bool
	selection bool
}

func (s *Selection) fire(n notify) {
	s.mu.RLock()
	silent := s.silent > 0
	s.mu.RUnlock()
	if silent {
		return
	}
	if n.cursor {
		s.emitter.Emit(EventChangeCursor, nil)
	}
	if n.selection {
		s.emitter.Emit(EventChangeSelection, nil)
	}
}

func (s *Selection) onChange(d buffer.Delta) {
	s.mu.Lock()
	wasEmpty := s.isEmptyLocked()
	lead := buffer.TransformPoint(d, s.lead, false)
	anchor := buffer.TransformPoint(d, s.anchor, false)
	n := notify{cursor: lead != s.lead}
	if !wasEmpty && (n.cursor || anchor != s.anchor) {
		n.selection = true
	}
	s.lead = lead
	s.anchor = anchor
	if s.collapsed {
		s.anchor = s.lead
	}
	s.mu.Unlock()
	s.fire(n)
}

func (s *Selection) isEmptyLocked() bool {
	return s.collapsed || s.anchor == s.lead
}

// setLocked moves both ends and reports which events are due.
func (s *Selection) setLocked(anchor, lead Point, collapsed bool) notify {
	wasEmpty := s.isEmptyLocked()
	oldAnchor := s.anchor

	n := notify{cursor: lead != s.lead}
	if n.cursor && lead.Column != s.lead.Column {
		s.desiredColumn = -1
	}
	s.lead = lead
	s.anchor = anchor
	s.collapsed = collapsed
	if collapsed {
		s.anchor = lead
	}
	isEmpty := s.isEmptyLocked()
	n.selection = n.cursor || wasEmpty != isEmpty || s.multi ||
		(!isEmpty && s.anchor != oldAnchor)
	return n
}

func (s *Selection) clip(row, column int) Point {
	return s.doc.ClippedPosition(row, column)
}

// IsEmpty returns true if the selection is a bare cursor.
func (s *Selection) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isEmptyLocked()
}

// IsBackwards returns true if the lead sits before the anchor.
func (s *Selection) IsBackwards() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.collapsed && s.lead.Before(s.anchor)
}

// IsMultiLine returns true if the selection spans more than one row.
func (s *Selection) IsMultiLine() bool {
	return s.Range().IsMultiLine()
}

// Cursor returns the lead position.
func (s *Selection) Cursor() Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lead
}

// Anchor returns the anchor position.
func (s *Selection) Anchor() Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collapsed {
		return s.lead
	}
	return s.anchor
}

// Range returns the selected span with Start <= End.
func (s *Selection) Range() Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collapsed {
		return buffer.EmptyRange(s.lead)
	}
	return buffer.RangeFromPoints(s.anchor, s.lead)
}

// SetRange selects r. When backwards is set the cursor goes to r.Start.
func (s *Selection) SetRange(r Range, backwards bool) {
	start := s.clip(r.Start.Row, r.Start.Column)
	end := s.clip(r.End.Row, r.End.Column)
	anchor, lead := start, end
	if backwards {
		anchor, lead = end, start
	}
	s.mu.Lock()
	n := s.setLocked(anchor, lead, anchor == lead)
	s.mu.Unlock()
	s.fire(n)
}

// SetSelectionAnchor fixes the anchor at the given position so that
// later cursor moves extend the selection.
func (s *Selection) SetSelectionAnchor(row, column int) {
	p := s.clip(row, column)
	s.mu.Lock()
	wasCollapsed := s.collapsed
	s.anchor = p
	s.collapsed = false
	s.mu.Unlock()
	if wasCollapsed {
		s.fire(notify{selection: true})
	}
}

// MoveCursorTo moves the lead. A collapsed selection moves as a whole.
func (s *Selection) MoveCursorTo(row, column int) {
	p := s.clip(row, column)
	s.mu.Lock()
	n := s.setLocked(s.anchor, p, s.collapsed)
	s.mu.Unlock()
	s.fire(n)
}

// MoveCursorToPosition is MoveCursorTo for a Point.
func (s *Selection) MoveCursorToPosition(p Point) {
	s.MoveCursorTo(p.Row, p.Column)
}

// MoveTo collapses the selection at the given position.
func (s *Selection) MoveTo(row, column int) {
	p := s.clip(row, column)
	s.mu.Lock()
	n := s.setLocked(p, p, true)
	s.mu.Unlock()
	s.fire(n)
}

// SelectTo extends the selection from its anchor to the given position.
func (s *Selection) SelectTo(row, column int) {
	s.moveSelection(func() { s.MoveCursorTo(row, column) })
}

// SelectToPosition is SelectTo for a Point.
func (s *Selection) SelectToPosition(p Point) {
	s.SelectTo(p.Row, p.Column)
}

// moveSelection runs mover with the anchor pinned at its current place.
func (s *Selection) moveSelection(mover func()) {
	s.mu.Lock()
	if s.collapsed {
		s.anchor = s.lead
		s.collapsed = false
	}
	s.mu.Unlock()
	mover()
}

// ClearSelection collapses the selection onto the lead.
func (s *Selection) ClearSelection() {
	s.mu.Lock()
	if s.collapsed {
		s.mu.Unlock()
		return
	}
	n := s.setLocked(s.lead, s.lead, true)
	s.mu.Unlock()
	s.fire(n)
}

// SelectAll selects the whole document with the cursor at the end.
func (s *Selection) SelectAll() {
	last := s.doc.Length() - 1
	s.SetRange(buffer.NewRange(0, 0, last, len(s.doc.Line(last))), false)
}

// ToOrientedRange returns the primary range with its orientation.
func (s *Selection) ToOrientedRange() OrientedRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collapsed {
		return OrientedRange{Range: buffer.EmptyRange(s.lead)}
	}
	return Oriented(s.anchor, s.lead)
}

// FromOrientedRange sets the primary range from o.
func (s *Selection) FromOrientedRange(o OrientedRange) {
	s.SetRange(o.Range, o.Backwards)
}

// WordRange returns the word around the given position.
func (s *Selection) WordRange(row, column int) Range {
	return WordRange(s.doc.Line(row), row, column)
}

// SelectWord selects the word under the cursor.
func (s *Selection) SelectWord() {
	c := s.Cursor()
	s.SetRange(s.WordRange(c.Row, c.Column), false)
}

// LineRange returns the range covering row including its line break.
// The last row ends at its last character.
func (s *Selection) LineRange(row int) Range {
	if row+1 < s.doc.Length() {
		return buffer.NewRange(row, 0, row+1, 0)
	}
	return buffer.NewRange(row, 0, row, len(s.doc.Line(row)))
}

// SelectLine selects the full rows touched by the selection.
func (s *Selection) SelectLine() {
	r := s.Range()
	end := s.LineRange(r.End.Row)
	s.SetRange(Range{Start: Point{Row: r.Start.Row}, End: end.End}, false)
}

// Snapshot returns a copy of the selection suitable for undo records.
func (s *Selection) Snapshot() Snapshot {
	if s.InMultiSelectMode() {
		return Snapshot{Ranges: s.rangeList.Ranges()}
	}
	return Snapshot{Ranges: []OrientedRange{s.ToOrientedRange()}}
}

// Restore applies a snapshot taken with Snapshot.
func (s *Selection) Restore(snap Snapshot) {
	switch len(snap.Ranges) {
	case 0:
		return
	case 1:
		s.ToSingleRange(snap.Ranges[0])
	default:
		s.ToSingleRange(snap.Ranges[0])
		for i := len(snap.Ranges) - 1; i >= 0; i-- {
			s.AddRange(snap.Ranges[i])
		}
	}
}
