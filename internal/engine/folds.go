package engine

import (
	"sort"

	"github.com/dshills/caret/internal/engine/buffer"
)

// Fold is a collapsed span shown as a placeholder.
type Fold struct {
	Range       Range
	Placeholder string
}

// AddFold folds r. A fold may contain or sit inside other folds but may
// not cross one.
func (s *Session) AddFold(placeholder string, r Range) (*Fold, error) {
	if r.IsEmpty() {
		return nil, ErrFoldEmpty
	}
	s.mu.Lock()
	for _, f := range s.folds {
		crosses := f.Range.Start.Before(r.End) && r.Start.Before(f.Range.End)
		if crosses && !f.Range.ContainsRange(r) && !r.ContainsRange(f.Range) {
			s.mu.Unlock()
			return nil, ErrFoldOverlap
		}
	}
	f := &Fold{Range: r, Placeholder: placeholder}
	s.folds = append(s.folds, f)
	sort.SliceStable(s.folds, func(i, j int) bool {
		return s.folds[i].Range.Start.Before(s.folds[j].Range.Start)
	})
	s.mu.Unlock()
	s.emitter.Emit(EventChangeFold, f)
	return f, nil
}

// RemoveFold unfolds f.
func (s *Session) RemoveFold(f *Fold) {
	s.mu.Lock()
	found := false
	for i, g := range s.folds {
		if g == f {
			s.folds = append(s.folds[:i], s.folds[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.emitter.Emit(EventChangeFold, nil)
	}
}

// Unfold removes every fold touching r. It returns the number removed.
func (s *Session) Unfold(r Range) int {
	s.mu.Lock()
	kept := s.folds[:0]
	n := 0
	for _, f := range s.folds {
		if f.Range.Intersects(r) {
			n++
			continue
		}
		kept = append(kept, f)
	}
	s.folds = kept
	s.mu.Unlock()
	if n > 0 {
		s.emitter.Emit(EventChangeFold, nil)
	}
	return n
}

// Folds returns a copy of every fold in document order.
func (s *Session) Folds() []Fold {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Fold, len(s.folds))
	for i, f := range s.folds {
		out[i] = *f
	}
	return out
}

// FoldsInRange returns the folds intersecting r.
func (s *Session) FoldsInRange(r Range) []Fold {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Fold
	for _, f := range s.folds {
		if f.Range.Intersects(r) {
			out = append(out, *f)
		}
	}
	return out
}

// FoldAt returns the fold containing (row, column). With side 1 a fold
// ending at the position is skipped, with side -1 one starting there.
func (s *Session) FoldAt(row, column, side int) (*Fold, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := Point{Row: row, Column: column}
	for _, f := range s.folds {
		if !f.Range.Contains(row, column) {
			continue
		}
		if side == 1 && f.Range.End == p {
			continue
		}
		if side == -1 && f.Range.Start == p {
			continue
		}
		return f, true
	}
	return nil, false
}

// RowFoldStart returns the first row of the folded block containing row.
func (s *Session) RowFoldStart(row int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := row
	for _, f := range s.folds {
		if f.Range.Start.Row <= row && f.Range.End.Row >= row && f.Range.Start.Row < start {
			start = f.Range.Start.Row
		}
	}
	return start
}

// RowFoldEnd returns the last row of the folded block containing row.
func (s *Session) RowFoldEnd(row int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	end := row
	for _, f := range s.folds {
		if f.Range.Start.Row <= row && f.Range.End.Row >= row && f.Range.End.Row > end {
			end = f.Range.End.Row
		}
	}
	return end
}

// addFoldsQuiet restores folds moved along with their rows.
func (s *Session) addFoldsQuiet(folds []Fold) {
	if len(folds) == 0 {
		return
	}
	s.mu.Lock()
	for _, f := range folds {
		f := f
		s.folds = append(s.folds, &f)
	}
	sort.SliceStable(s.folds, func(i, j int) bool {
		return s.folds[i].Range.Start.Before(s.folds[j].Range.Start)
	})
	s.mu.Unlock()
	s.emitter.Emit(EventChangeFold, nil)
}

// updateFoldsLocked shifts folds across d and drops those it erased.
func (s *Session) updateFoldsLocked(d Delta) (removed bool) {
	if len(s.folds) == 0 {
		return false
	}
	kept := s.folds[:0]
	for _, f := range s.folds {
		if d.Action == buffer.ActionRemove && d.Range().ContainsRange(f.Range) {
			removed = true
			continue
		}
		f.Range = buffer.TransformRange(d, f.Range)
		if f.Range.IsEmpty() {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	s.folds = kept
	return removed
}
