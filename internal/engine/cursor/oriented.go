package cursor

import (
	"fmt"

	"github.com/dshills/caret/internal/engine/buffer"
)

// Point and Range are aliases for the buffer types for convenience.
type (
	Point = buffer.Point
	Range = buffer.Range
)

// OrientedRange is a range that remembers which end holds the cursor.
type OrientedRange struct {
	buffer.Range
	Backwards bool // Cursor sits at Start instead of End
}

// Oriented creates an oriented range from anchor and lead points.
func Oriented(anchor, lead Point) OrientedRange {
	return OrientedRange{Range: buffer.RangeFromPoints(anchor, lead), Backwards: lead.Before(anchor)}
}

// Cursor returns the end of the range that holds the cursor.
func (o OrientedRange) Cursor() Point {
	if o.Backwards {
		return o.Start
	}
	return o.End
}

// Anchor returns the fixed end of the range.
func (o OrientedRange) Anchor() Point {
	if o.Backwards {
		return o.End
	}
	return o.Start
}

// MoveBy returns the range shifted by rows and columns, keeping orientation.
func (o OrientedRange) MoveBy(rows, columns int) OrientedRange {
	return OrientedRange{Range: o.Range.MoveBy(rows, columns), Backwards: o.Backwards}
}

// String returns a human-readable representation of the range.
func (o OrientedRange) String() string {
	if o.Backwards {
		return fmt.Sprintf("%s (backwards)", o.Range)
	}
	return o.Range.String()
}

// Snapshot is a serializable copy of a selection.
// A single element describes a plain selection; more describe a
// multi-range selection in document order.
type Snapshot struct {
	Ranges []OrientedRange `json:"ranges"`
}

// Primary returns the first range of the snapshot.
func (s Snapshot) Primary() OrientedRange {
	if len(s.Ranges) == 0 {
		return OrientedRange{}
	}
	return s.Ranges[0]
}

// Equal returns true if both snapshots describe the same selection.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.Ranges) != len(other.Ranges) {
		return false
	}
	for i := range s.Ranges {
		if s.Ranges[i] != other.Ranges[i] {
			return false
		}
	}
	return true
}
