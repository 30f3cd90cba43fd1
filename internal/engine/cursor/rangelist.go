package cursor

import (
	"sort"
	"sync"

	"github.com/dshills/caret/internal/engine/buffer"
)

// RangeList holds the ranges of a multi-range selection.
// Ranges are sorted by start position. Add and Merge keep them
// non-overlapping; document deltas only shift them.
type RangeList struct {
	mu     sync.RWMutex
	ranges []OrientedRange
	detach func()
}

// NewRangeList creates an empty range list.
func NewRangeList() *RangeList {
	return &RangeList{}
}

// Len returns the number of ranges.
func (rl *RangeList) Len() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.ranges)
}

// Ranges returns a copy of all ranges.
func (rl *RangeList) Ranges() []OrientedRange {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	out := make([]OrientedRange, len(rl.ranges))
	copy(out, rl.ranges)
	return out
}

// At returns the range at index i.
func (rl *RangeList) At(i int) OrientedRange {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if i < 0 || i >= len(rl.ranges) {
		return OrientedRange{}
	}
	return rl.ranges[i]
}

// Set replaces the range at index i without re-sorting.
func (rl *RangeList) Set(i int, r OrientedRange) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if i < 0 || i >= len(rl.ranges) {
		return
	}
	rl.ranges[i] = r
}

// SetAll replaces every range without merging.
func (rl *RangeList) SetAll(ranges []OrientedRange) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.ranges = append(rl.ranges[:0:0], ranges...)
}

// Add inserts r in sorted position and removes the ranges it overlaps.
// A non-empty range does not overlap ranges that merely touch its ends.
func (rl *RangeList) Add(r OrientedRange) (removed []OrientedRange) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	kept := rl.ranges[:0:0]
	for _, existing := range rl.ranges {
		if overlaps(existing.Range, r.Range) {
			removed = append(removed, existing)
			continue
		}
		kept = append(kept, existing)
	}

	i := sort.Search(len(kept), func(i int) bool {
		return r.Start.Before(kept[i].Start)
	})
	kept = append(kept, OrientedRange{})
	copy(kept[i+1:], kept[i:])
	kept[i] = r
	rl.ranges = kept
	return removed
}

func overlaps(existing, r Range) bool {
	if r.IsEmpty() {
		return existing.Contains(r.Start.Row, r.Start.Column)
	}
	return existing.End.After(r.Start) && existing.Start.Before(r.End)
}

// RemoveAll empties the list and returns the removed ranges.
func (rl *RangeList) RemoveAll() []OrientedRange {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := rl.ranges
	rl.ranges = nil
	return removed
}

// Merge sorts the ranges and joins the ones that overlap. Two non-empty
// ranges that only touch stay separate.
func (rl *RangeList) Merge() (removed []OrientedRange) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.ranges) <= 1 {
		return nil
	}

	sort.SliceStable(rl.ranges, func(i, j int) bool {
		return rl.ranges[i].Start.Before(rl.ranges[j].Start)
	})

	merged := rl.ranges[:1]
	for _, next := range rl.ranges[1:] {
		last := &merged[len(merged)-1]
		cmp := last.End.Compare(next.Start)
		if cmp < 0 || (cmp == 0 && !last.IsEmpty() && !next.IsEmpty()) {
			merged = append(merged, next)
			continue
		}
		if last.End.Before(next.End) {
			last.End = next.End
		}
		removed = append(removed, next)
	}
	rl.ranges = merged
	return removed
}

// RangeAtPoint returns the range containing p.
func (rl *RangeList) RangeAtPoint(p Point) (OrientedRange, bool) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	for _, r := range rl.ranges {
		if r.Contains(p.Row, p.Column) {
			return r, true
		}
	}
	return OrientedRange{}, false
}

// Attach starts shifting the ranges with every delta applied to doc.
func (rl *RangeList) Attach(doc *buffer.Document) {
	rl.Detach()
	remove := doc.OnChange(rl.onChange)
	rl.mu.Lock()
	rl.detach = remove
	rl.mu.Unlock()
}

// Detach stops tracking document changes.
func (rl *RangeList) Detach() {
	rl.mu.Lock()
	remove := rl.detach
	rl.detach = nil
	rl.mu.Unlock()
	if remove != nil {
		remove()
	}
}

// IsAttached returns true while the list follows document changes.
func (rl *RangeList) IsAttached() bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return rl.detach != nil
}

func (rl *RangeList) onChange(d buffer.Delta) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for i, r := range rl.ranges {
		rl.ranges[i].Range = buffer.TransformRange(d, r.Range)
	}
}
