package engine

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/engine/history"
	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/mode"
)

// Re-export commonly used types for convenience.
type (
	// Point is a row/column position.
	Point = buffer.Point

	// Range is a span between two points.
	Range = buffer.Range

	// Delta is a single document change.
	Delta = buffer.Delta

	// Snapshot is a saved selection.
	Snapshot = cursor.Snapshot
)

// Session event names.
const (
	EventChange            = "change"
	EventChangeMode        = "changeMode"
	EventChangeOverwrite   = "changeOverwrite"
	EventChangeTabSize     = "changeTabSize"
	EventChangeFold        = "changeFold"
	EventChangeBackMarker  = "changeBackMarker"
	EventChangeFrontMarker = "changeFrontMarker"
	EventChangeAnnotation  = "changeAnnotation"
	EventTokenizerUpdate   = "tokenizerUpdate"
)

// TokenizerUpdate is the payload of EventTokenizerUpdate.
type TokenizerUpdate struct {
	First, Last int
}

// Session is an editing session: a document with its selection, mode,
// undo history, folds and markers.
//
// Reads are safe from any goroutine. Mutations are expected to come from
// the goroutine driving the editor.
type Session struct {
	mu sync.RWMutex

	doc       *buffer.Document
	selection *cursor.Selection
	undo      *history.UndoManager
	mode      mode.Mode
	emitter   *event.Emitter

	// Configuration
	tabSize     int
	useSoftTabs bool
	overwrite   bool

	mergeUndoDeltas bool
	fromUndo        bool

	tokens   []mode.LineTokens
	tokenGen uint64

	folds       []*Fold
	markers     map[int]*Marker
	nextMarker  int
	annotations []Annotation

	detachDoc func()
	destroyed atomic.Bool
}

// NewSession creates a session over text.
func NewSession(text string, opts ...Option) *Session {
	cfg := sessionConfig{
		tabSize:        DefaultTabSize,
		useSoftTabs:    true,
		maxUndoEntries: history.DefaultMaxEntries,
		lineEnding:     buffer.LineEndingLF,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := buffer.NewDocument(text, buffer.WithLineEnding(cfg.lineEnding))
	s := &Session{
		doc:         doc,
		selection:   cursor.NewSelection(doc),
		undo:        history.NewUndoManager(cfg.maxUndoEntries),
		mode:        cfg.mode,
		emitter:     event.NewEmitter(),
		tabSize:     cfg.tabSize,
		useSoftTabs: cfg.useSoftTabs,
		markers:     make(map[int]*Marker),
	}
	if s.mode == nil {
		s.mode = mode.NewTextMode()
	}
	// The selection subscribed first, so it is up to date by the time
	// session listeners see a change.
	s.detachDoc = doc.OnChange(s.onChange)
	return s
}

// ============================================================================
// Accessors
// ============================================================================

// Doc returns the session document.
func (s *Session) Doc() *buffer.Document { return s.doc }

// Selection returns the session selection.
func (s *Session) Selection() *cursor.Selection { return s.selection }

// UndoManager returns the session undo manager.
func (s *Session) UndoManager() *history.UndoManager { return s.undo }

// On subscribes to a session event.
func (s *Session) On(name string, h event.Handler, opts ...event.SubscriptionOption) event.Subscription {
	return s.emitter.On(name, h, opts...)
}

// ListenerCount returns the number of active session handlers.
func (s *Session) ListenerCount() int {
	return s.emitter.Total()
}

// Length returns the number of rows.
func (s *Session) Length() int { return s.doc.Length() }

// Line returns the text of row.
func (s *Session) Line(row int) string { return s.doc.Line(row) }

// Text returns the document text.
func (s *Session) Text() string { return s.doc.Text() }

// TextRange returns the text covered by r.
func (s *Session) TextRange(r Range) string { return s.doc.TextRange(r) }

// ============================================================================
// Mode and settings
// ============================================================================

// Mode returns the language mode.
func (s *Session) Mode() mode.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode replaces the language mode and drops cached tokens.
func (s *Session) SetMode(m mode.Mode) {
	if m == nil {
		m = mode.NewTextMode()
	}
	s.mu.Lock()
	s.mode = m
	s.tokens = nil
	s.tokenGen++
	s.mu.Unlock()
	s.emitter.Emit(EventChangeMode, m)
	s.emitter.Emit(EventTokenizerUpdate, TokenizerUpdate{First: 0, Last: s.doc.Length() - 1})
}

// TabSize returns the number of columns per indent level.
func (s *Session) TabSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tabSize
}

// SetTabSize changes the indent width.
func (s *Session) SetTabSize(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	changed := s.tabSize != n
	s.tabSize = n
	s.mu.Unlock()
	if changed {
		s.emitter.Emit(EventChangeTabSize, n)
	}
}

// UseSoftTabs reports whether indentation uses spaces.
func (s *Session) UseSoftTabs() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.useSoftTabs
}

// SetUseSoftTabs switches between spaces and tab characters.
func (s *Session) SetUseSoftTabs(v bool) {
	s.mu.Lock()
	s.useSoftTabs = v
	s.mu.Unlock()
}

// TabString returns the text one indent level inserts.
func (s *Session) TabString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.useSoftTabs {
		return strings.Repeat(" ", s.tabSize)
	}
	return "\t"
}

// Overwrite reports whether typing replaces characters.
func (s *Session) Overwrite() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overwrite
}

// SetOverwrite turns overwrite mode on or off.
func (s *Session) SetOverwrite(v bool) {
	s.mu.Lock()
	changed := s.overwrite != v
	s.overwrite = v
	s.mu.Unlock()
	if changed {
		s.emitter.Emit(EventChangeOverwrite, v)
	}
}

// ToggleOverwrite flips overwrite mode.
func (s *Session) ToggleOverwrite() {
	s.SetOverwrite(!s.Overwrite())
}

// MergeUndoDeltas reports whether the next change joins the open undo
// group.
func (s *Session) MergeUndoDeltas() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mergeUndoDeltas
}

// SetMergeUndoDeltas sets whether the next change joins the open undo
// group. Every recorded change sets it back to true.
func (s *Session) SetMergeUndoDeltas(v bool) {
	s.mu.Lock()
	s.mergeUndoDeltas = v
	s.mu.Unlock()
}

// ============================================================================
// Editing
// ============================================================================

// Insert inserts text at p and returns the end of the insertion.
func (s *Session) Insert(p Point, text string) Point {
	return s.doc.Insert(p, text)
}

// Remove removes r and returns its start.
func (s *Session) Remove(r Range) Point {
	return s.doc.Remove(r)
}

// Replace replaces r with text and returns the end of the new text.
func (s *Session) Replace(r Range, text string) Point {
	return s.doc.Replace(r, text)
}

// SetValue replaces the whole document and clears history and folds.
func (s *Session) SetValue(text string) {
	s.doc.SetValue(text)
	s.undo.Clear()
	s.mu.Lock()
	s.folds = nil
	s.mu.Unlock()
	s.selection.ToSingleRange(cursor.OrientedRange{})
}

// onChange records the delta and keeps derived state in step.
func (s *Session) onChange(d Delta) {
	s.mu.Lock()
	s.tokens = nil
	s.tokenGen++
	removed := s.updateFoldsLocked(d)
	record := !s.fromUndo
	merge := s.mergeUndoDeltas
	if record {
		s.mergeUndoDeltas = true
	}
	s.mu.Unlock()

	if record {
		s.undo.Add(d, merge)
	}
	if removed {
		s.emitter.Emit(EventChangeFold, nil)
	}
	last := d.End.Row
	if d.Action == buffer.ActionRemove || d.Start.Row != d.End.Row {
		last = s.doc.Length() - 1
	}
	s.emitter.Emit(EventTokenizerUpdate, TokenizerUpdate{First: d.Start.Row, Last: last})
	s.emitter.Emit(EventChange, d)
}

// Undo reverts the newest undo group and returns the selection to
// restore.
func (s *Session) Undo() (Snapshot, bool) {
	return s.replay(s.undo.Undo)
}

// Redo reapplies the newest undone group.
func (s *Session) Redo() (Snapshot, bool) {
	return s.replay(s.undo.Redo)
}

func (s *Session) replay(step func(history.Applier) (Snapshot, bool, error)) (Snapshot, bool) {
	s.mu.Lock()
	s.fromUndo = true
	s.mu.Unlock()
	snap, ok, err := step(s.doc)
	s.mu.Lock()
	s.fromUndo = false
	s.mu.Unlock()
	if err != nil {
		return Snapshot{}, false
	}
	return snap, ok
}

// ============================================================================
// Lifecycle
// ============================================================================

// Destroy detaches the session from its document. Deferred work must
// check Destroyed before touching a session.
func (s *Session) Destroy() {
	if s.destroyed.Swap(true) {
		return
	}
	if s.detachDoc != nil {
		s.detachDoc()
	}
	s.selection.Detach()
}

// Destroyed reports whether Destroy has been called.
func (s *Session) Destroyed() bool {
	return s.destroyed.Load()
}
