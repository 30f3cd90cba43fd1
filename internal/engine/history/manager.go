package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the undo depth used when none is given.
const DefaultMaxEntries = 1000

// Applier applies deltas during undo and redo.
type Applier interface {
	ApplyDelta(delta buffer.Delta) error
}

// Group is a single undo step.
type Group struct {
	Rev             int
	Deltas          []buffer.Delta
	SelectionBefore *cursor.Snapshot
	SelectionAfter  *cursor.Snapshot
	Timestamp       time.Time
}

// Range returns the span touched by the last delta of the group.
func (g *Group) Range() buffer.Range {
	if len(g.Deltas) == 0 {
		return buffer.Range{}
	}
	return g.Deltas[len(g.Deltas)-1].Range()
}

// UndoManager manages undo/redo state for a session.
type UndoManager struct {
	mu sync.Mutex

	undoStack []*Group
	redoStack []*Group

	// open is the group that merged deltas join; nil starts a new one.
	open *Group

	lastSelection *cursor.Snapshot

	rev      int
	cleanRev int

	// Configuration
	maxEntries int
}

// NewUndoManager creates a new undo manager.
func NewUndoManager(maxEntries int) *UndoManager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &UndoManager{
		maxEntries: maxEntries,
	}
}

// Add records a delta. With allowMerge set the delta joins the open group;
// otherwise it starts a new one. The redo stack is cleared.
func (m *UndoManager) Add(delta buffer.Delta, allowMerge bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.redoStack = nil

	if !allowMerge || m.open == nil {
		m.rev++
		g := &Group{
			Rev:             m.rev,
			SelectionBefore: m.lastSelection,
			Timestamp:       time.Now(),
		}
		m.undoStack = append(m.undoStack, g)
		m.open = g

		// Enforce max entries
		if len(m.undoStack) > m.maxEntries {
			excess := len(m.undoStack) - m.maxEntries
			m.undoStack = m.undoStack[excess:]
		}
	}
	m.open.Deltas = append(m.open.Deltas, delta)
}

// AddSelection records the selection after the latest action.
func (m *UndoManager) AddSelection(snap cursor.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastSelection = &snap
	if m.open != nil {
		m.open.SelectionAfter = &snap
	}
}

// StartNewGroup closes the open group so the next delta starts a new one
// even when merging is allowed.
func (m *UndoManager) StartNewGroup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = nil
}

// Undo reverts the newest group through target and returns the selection
// recorded before it, if any.
func (m *UndoManager) Undo(target Applier) (cursor.Snapshot, bool, error) {
	m.mu.Lock()
	if len(m.undoStack) == 0 {
		m.mu.Unlock()
		return cursor.Snapshot{}, false, ErrNothingToUndo
	}
	g := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.open = nil
	m.mu.Unlock()

	for i := len(g.Deltas) - 1; i >= 0; i-- {
		if err := target.ApplyDelta(g.Deltas[i].Invert()); err != nil {
			return cursor.Snapshot{}, false, fmt.Errorf("undo rev %d: %w", g.Rev, err)
		}
	}

	m.mu.Lock()
	m.redoStack = append(m.redoStack, g)
	m.mu.Unlock()

	if g.SelectionBefore != nil {
		return *g.SelectionBefore, true, nil
	}
	return fallbackSelection(g.Deltas[0].Invert()), true, nil
}

// Redo reapplies the newest undone group and returns the selection
// recorded after it, if any.
func (m *UndoManager) Redo(target Applier) (cursor.Snapshot, bool, error) {
	m.mu.Lock()
	if len(m.redoStack) == 0 {
		m.mu.Unlock()
		return cursor.Snapshot{}, false, ErrNothingToRedo
	}
	g := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.mu.Unlock()

	for _, d := range g.Deltas {
		if err := target.ApplyDelta(d); err != nil {
			return cursor.Snapshot{}, false, fmt.Errorf("redo rev %d: %w", g.Rev, err)
		}
	}

	m.mu.Lock()
	m.undoStack = append(m.undoStack, g)
	m.open = nil
	m.mu.Unlock()

	if g.SelectionAfter != nil {
		return *g.SelectionAfter, true, nil
	}
	return fallbackSelection(g.Deltas[len(g.Deltas)-1]), true, nil
}

// fallbackSelection places the caret at the end of an insertion or at
// the start of a removal.
func fallbackSelection(d buffer.Delta) cursor.Snapshot {
	p := d.Start
	if d.Action == buffer.ActionInsert {
		p = d.End
	}
	return cursor.Snapshot{Ranges: []cursor.OrientedRange{{Range: buffer.EmptyRange(p)}}}
}

// CanUndo returns true if undo is available.
func (m *UndoManager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (m *UndoManager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (m *UndoManager) UndoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack)
}

// RedoCount returns the number of redo steps available.
func (m *UndoManager) RedoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack)
}

// Peek returns the newest undo group without removing it.
func (m *UndoManager) Peek() (*Group, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undoStack) == 0 {
		return nil, false
	}
	return m.undoStack[len(m.undoStack)-1], true
}

// MarkClean records the current state as saved.
func (m *UndoManager) MarkClean() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanRev = m.currentRevLocked()
}

// IsClean returns true if the history is at the revision marked clean.
func (m *UndoManager) IsClean() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanRev == m.currentRevLocked()
}

func (m *UndoManager) currentRevLocked() int {
	if len(m.undoStack) == 0 {
		return 0
	}
	return m.undoStack[len(m.undoStack)-1].Rev
}

// Clear removes all undo/redo history.
func (m *UndoManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.undoStack = nil
	m.redoStack = nil
	m.open = nil
	m.lastSelection = nil
	m.cleanRev = 0
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (m *UndoManager) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.maxEntries = max
	if len(m.undoStack) > max {
		excess := len(m.undoStack) - max
		m.undoStack = m.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (m *UndoManager) MaxEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxEntries
}
