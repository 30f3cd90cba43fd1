// Package cursor provides cursor and selection management for text editing.
//
// The cursor package handles:
//
//   - The primary selection with an anchor/lead model via Selection
//   - Multi-range selections kept in a RangeList
//   - Orientation-carrying ranges (OrientedRange) and Snapshots
//   - Grapheme and word boundaries used for one-character and word steps
//
// Selection Model:
//
// Selections use an anchor/lead model where:
//   - Anchor: The position where the selection started
//   - Lead: The current cursor position (where typing would occur)
//
// When the selection is collapsed the anchor follows the lead. Both points
// follow document deltas while the selection is attached to its document.
//
// Multi-Range Support:
//
// RangeList manages ranges that are:
//   - Kept sorted by start position
//   - Non-overlapping after Add and Merge
//   - Shifted by document deltas while attached
//
// Basic usage:
//
//	doc := buffer.NewDocument("hello\nworld")
//	sel := cursor.NewSelection(doc)
//	sel.MoveTo(0, 5)
//	sel.SelectTo(1, 2)
//	sel.AddRange(cursor.OrientedRange{Range: buffer.NewRange(1, 4, 1, 5)})
//
// Thread Safety:
//
// Selection and RangeList are safe for concurrent use. Events are emitted
// after internal locks are released.
package cursor
