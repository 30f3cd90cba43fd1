package buffer

import "fmt"

// Point represents a row and column position.
// Both Row and Column are 0-indexed.
// Column is measured in bytes from the start of the line.
type Point struct {
	Row    int // 0-indexed row
	Column int // 0-indexed column (byte offset within line)
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Row == 0 && p.Column == 0
}

// MinPoint returns the earlier of two points.
func MinPoint(a, b Point) Point {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPoint returns the later of two points.
func MaxPoint(a, b Point) Point {
	if b.After(a) {
		return b
	}
	return a
}
