package buffer

import "fmt"

// Range represents a span between two points.
// Start is always at or before End; orientation is tracked by the owner.
type Range struct {
	Start Point // Inclusive start position
	End   Point // End position
}

// NewRange creates a range from row/column pairs, swapping the ends if
// they are given in reverse order.
func NewRange(startRow, startCol, endRow, endCol int) Range {
	return RangeFromPoints(Point{Row: startRow, Column: startCol}, Point{Row: endRow, Column: endCol})
}

// RangeFromPoints creates a normalized range covering both points.
func RangeFromPoints(a, b Point) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Normalize returns r with its ends swapped when End is before Start.
// Ranges built as literals may be reversed; constructors never are.
func (r Range) Normalize() Range {
	return RangeFromPoints(r.Start, r.End)
}

// EmptyRange returns a zero-width range at p.
func EmptyRange(p Point) Range {
	return Range{Start: p, End: p}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s -> %s]", r.Start.String(), r.End.String())
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsMultiLine returns true if the range spans more than one row.
func (r Range) IsMultiLine() bool {
	return r.Start.Row != r.End.Row
}

// IsEqual returns true if both ranges cover the same span.
func (r Range) IsEqual(other Range) bool {
	return r.Start == other.Start && r.End == other.End
}

// ComparePoint locates a position relative to the range.
// It returns -1 if the position is before the range, 1 if it is after and
// 0 if it lies within it. Both ends are inclusive.
func (r Range) ComparePoint(row, column int) int {
	if !r.IsMultiLine() && row == r.Start.Row {
		switch {
		case column < r.Start.Column:
			return -1
		case column > r.End.Column:
			return 1
		default:
			return 0
		}
	}
	if row < r.Start.Row {
		return -1
	}
	if row > r.End.Row {
		return 1
	}
	if row == r.Start.Row {
		if column >= r.Start.Column {
			return 0
		}
		return -1
	}
	if row == r.End.Row {
		if column <= r.End.Column {
			return 0
		}
		return 1
	}
	return 0
}

// Contains returns true if the position lies within the range, ends included.
func (r Range) Contains(row, column int) bool {
	return r.ComparePoint(row, column) == 0
}

// ContainsRange returns true if other lies entirely within r.
func (r Range) ContainsRange(other Range) bool {
	return r.Contains(other.Start.Row, other.Start.Column) && r.Contains(other.End.Row, other.End.Column)
}

// Intersects returns true if the ranges share at least one position.
func (r Range) Intersects(other Range) bool {
	return !other.End.Before(r.Start) && !other.Start.After(r.End)
}

// Extend returns the smallest range containing r and the given position.
func (r Range) Extend(row, column int) Range {
	p := Point{Row: row, Column: column}
	switch r.ComparePoint(row, column) {
	case -1:
		return Range{Start: p, End: r.End}
	case 1:
		return Range{Start: r.Start, End: p}
	}
	return r
}

// Union returns the smallest range that contains both ranges.
func (r Range) Union(other Range) Range {
	return Range{Start: MinPoint(r.Start, other.Start), End: MaxPoint(r.End, other.End)}
}

// MoveBy returns the range shifted by the given row and column deltas.
func (r Range) MoveBy(rows, columns int) Range {
	return Range{
		Start: Point{Row: r.Start.Row + rows, Column: r.Start.Column + columns},
		End:   Point{Row: r.End.Row + rows, Column: r.End.Column + columns},
	}
}

// CollapseRows returns a column-0 range over the rows the range touches.
// A range ending at column 0 of a later row does not include that row.
func (r Range) CollapseRows() Range {
	if r.End.Column == 0 {
		last := r.End.Row - 1
		if last < r.Start.Row {
			last = r.Start.Row
		}
		return NewRange(r.Start.Row, 0, last, 0)
	}
	return NewRange(r.Start.Row, 0, r.End.Row, 0)
}

// ClipRows clamps the range to the rows [first, last].
func (r Range) ClipRows(first, last int) Range {
	if r.End.Row > last {
		r.End = Point{Row: last + 1, Column: 0}
	} else if r.End.Row < first {
		r.End = Point{Row: first, Column: 0}
	}
	if r.Start.Row > last {
		r.Start = Point{Row: last + 1, Column: 0}
	} else if r.Start.Row < first {
		r.Start = Point{Row: first, Column: 0}
	}
	return r
}
