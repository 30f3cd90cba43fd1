package buffer

import (
	"fmt"
	"strings"
)

// Action identifies the kind of document change.
type Action uint8

const (
	ActionInsert Action = iota // Text was inserted
	ActionRemove               // Text was removed
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Delta describes a single change to a document.
// Lines holds the inserted or removed text split on line breaks, so
// len(Lines) == End.Row-Start.Row+1.
type Delta struct {
	Action Action
	Start  Point
	End    Point
	Lines  []string
}

// String returns a human-readable representation of the delta.
func (d Delta) String() string {
	return fmt.Sprintf("%s%s%q", d.Action, RangeFromPoints(d.Start, d.End), d.Text())
}

// Text joins the delta lines with "\n".
func (d Delta) Text() string {
	return strings.Join(d.Lines, "\n")
}

// Range returns the span covered by the delta.
func (d Delta) Range() Range {
	return Range{Start: d.Start, End: d.End}
}

// Invert returns the delta that reverses d.
func (d Delta) Invert() Delta {
	inv := d
	inv.Lines = append([]string(nil), d.Lines...)
	if d.Action == ActionInsert {
		inv.Action = ActionRemove
	} else {
		inv.Action = ActionInsert
	}
	return inv
}

// pointsInOrder reports whether a comes before b, treating equal
// points as ordered when equalInOrder is set.
func pointsInOrder(a, b Point, equalInOrder bool) bool {
	colAfter := a.Column < b.Column
	if equalInOrder {
		colAfter = a.Column <= b.Column
	}
	return a.Row < b.Row || (a.Row == b.Row && colAfter)
}

// TransformPoint returns where p ends up after d is applied.
// When stayOnInsert is set, a point sitting exactly at an insertion
// stays in place instead of being pushed past the inserted text.
func TransformPoint(d Delta, p Point, stayOnInsert bool) Point {
	isInsert := d.Action == ActionInsert
	sign := -1
	if isInsert {
		sign = 1
	}
	rowShift := sign * (d.End.Row - d.Start.Row)
	colShift := sign * (d.End.Column - d.Start.Column)
	start := d.Start
	end := d.End
	if isInsert {
		end = start
	}

	if pointsInOrder(p, start, stayOnInsert) {
		return p
	}
	if pointsInOrder(end, p, !stayOnInsert) {
		moved := Point{Row: p.Row + rowShift, Column: p.Column}
		if p.Row == end.Row {
			moved.Column += colShift
		}
		return moved
	}
	return start
}

// TransformRange shifts both ends of r through d. Text inserted exactly
// at either end pushes that end forward.
func TransformRange(d Delta, r Range) Range {
	start := TransformPoint(d, r.Start, false)
	end := TransformPoint(d, r.End, false)
	return RangeFromPoints(start, end)
}
