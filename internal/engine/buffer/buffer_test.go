package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPointCompare(t *testing.T) {
	tests := []struct {
		a, b Point
		want int
	}{
		{Point{0, 0}, Point{0, 0}, 0},
		{Point{0, 1}, Point{0, 2}, -1},
		{Point{1, 0}, Point{0, 9}, 1},
		{Point{2, 3}, Point{2, 1}, 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewRangeNormalizes(t *testing.T) {
	r := NewRange(3, 4, 1, 2)
	if r.Start != (Point{1, 2}) || r.End != (Point{3, 4}) {
		t.Errorf("NewRange did not normalize: %s", r)
	}
}

func TestRangeNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Range
		want Range
	}{
		{"reversed", Range{Start: Point{3, 4}, End: Point{1, 2}}, NewRange(1, 2, 3, 4)},
		{"same row reversed", Range{Start: Point{0, 5}, End: Point{0, 1}}, NewRange(0, 1, 0, 5)},
		{"already ordered", NewRange(0, 1, 2, 0), NewRange(0, 1, 2, 0)},
		{"empty", EmptyRange(Point{2, 2}), EmptyRange(Point{2, 2})},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("%s: Normalize() = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestRangeComparePoint(t *testing.T) {
	single := NewRange(1, 2, 1, 5)
	multi := NewRange(1, 2, 3, 4)
	tests := []struct {
		name     string
		r        Range
		row, col int
		want     int
	}{
		{"single before", single, 1, 1, -1},
		{"single start", single, 1, 2, 0},
		{"single end", single, 1, 5, 0},
		{"single after", single, 1, 6, 1},
		{"multi row before", multi, 0, 9, -1},
		{"multi first row before col", multi, 1, 1, -1},
		{"multi middle row", multi, 2, 99, 0},
		{"multi last row past end", multi, 3, 5, 1},
		{"multi row after", multi, 4, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.ComparePoint(tt.row, tt.col); got != tt.want {
				t.Errorf("ComparePoint(%d,%d) = %d, want %d", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestRangeCollapseRows(t *testing.T) {
	if got := NewRange(2, 3, 4, 0).CollapseRows(); got != NewRange(2, 0, 3, 0) {
		t.Errorf("CollapseRows ending at column 0 = %s", got)
	}
	if got := NewRange(2, 3, 2, 0).CollapseRows(); got != NewRange(2, 0, 2, 0) {
		t.Errorf("CollapseRows single row = %s", got)
	}
	if got := NewRange(2, 3, 4, 1).CollapseRows(); got != NewRange(2, 0, 4, 0) {
		t.Errorf("CollapseRows = %s", got)
	}
}

func TestRangeExtend(t *testing.T) {
	r := NewRange(1, 1, 1, 3)
	if got := r.Extend(0, 0); got != NewRange(0, 0, 1, 3) {
		t.Errorf("Extend before = %s", got)
	}
	if got := r.Extend(2, 0); got != NewRange(1, 1, 2, 0) {
		t.Errorf("Extend after = %s", got)
	}
	if got := r.Extend(1, 2); got != r {
		t.Errorf("Extend inside = %s", got)
	}
}

func TestDocumentInsertRemove(t *testing.T) {
	doc := NewDocument("hello\nworld")

	end := doc.Insert(Point{0, 5}, ",\nbig")
	if end != (Point{1, 3}) {
		t.Errorf("Insert end = %s, want (1:3)", end)
	}
	if got := doc.Text(); got != "hello,\nbig\nworld" {
		t.Fatalf("Text() = %q", got)
	}

	start := doc.Remove(NewRange(0, 5, 1, 3))
	if start != (Point{0, 5}) {
		t.Errorf("Remove start = %s", start)
	}
	if got := doc.Text(); got != "hello\nworld" {
		t.Errorf("Text() after remove = %q", got)
	}
}

func TestDocumentEmitsDeltas(t *testing.T) {
	doc := NewDocument("abc")
	var deltas []Delta
	remove := doc.OnChange(func(d Delta) { deltas = append(deltas, d) })

	doc.Insert(Point{0, 1}, "XY")
	doc.Remove(NewRange(0, 0, 0, 1))
	remove()
	doc.Insert(Point{0, 0}, "ignored")

	want := []Delta{
		{Action: ActionInsert, Start: Point{0, 1}, End: Point{0, 3}, Lines: []string{"XY"}},
		{Action: ActionRemove, Start: Point{0, 0}, End: Point{0, 1}, Lines: []string{"a"}},
	}
	if diff := cmp.Diff(want, deltas); diff != "" {
		t.Errorf("deltas mismatch (-want +got):\n%s", diff)
	}
	if doc.ListenerCount() != 0 {
		t.Errorf("listener not removed")
	}
}

func TestDocumentFullLines(t *testing.T) {
	tests := []struct {
		name        string
		first, last int
		insertAt    int
		want        []string
	}{
		{"move first down", 0, 0, 1, []string{"b", "a", "c"}},
		{"move last up", 2, 2, 1, []string{"a", "c", "b"}},
		{"move middle to end", 1, 1, 2, []string{"a", "c", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument("a\nb\nc")
			lines := doc.RemoveFullLines(tt.first, tt.last)
			doc.InsertFullLines(tt.insertAt, lines)
			if diff := cmp.Diff(tt.want, doc.AllLines()); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeltaInvertRoundTrip(t *testing.T) {
	doc := NewDocument("one\ntwo")
	var last Delta
	doc.OnChange(func(d Delta) { last = d })
	doc.Insert(Point{1, 0}, "x\ny")
	if err := doc.ApplyDelta(last.Invert()); err != nil {
		t.Fatalf("ApplyDelta: %v", err)
	}
	if got := doc.Text(); got != "one\ntwo" {
		t.Errorf("Text() = %q", got)
	}
}

func TestTransformPoint(t *testing.T) {
	insert := Delta{Action: ActionInsert, Start: Point{0, 5}, End: Point{1, 2}, Lines: []string{"a", "bc"}}
	remove := Delta{Action: ActionRemove, Start: Point{0, 2}, End: Point{1, 3}, Lines: []string{"xx", "yyy"}}
	tests := []struct {
		name string
		d    Delta
		p    Point
		stay bool
		want Point
	}{
		{"insert before point", insert, Point{0, 7}, false, Point{1, 4}},
		{"insert after point", insert, Point{0, 1}, false, Point{0, 1}},
		{"insert at point moves", insert, Point{0, 5}, false, Point{1, 2}},
		{"insert at point stays", insert, Point{0, 5}, true, Point{0, 5}},
		{"remove after end", remove, Point{1, 5}, false, Point{0, 4}},
		{"remove inside", remove, Point{1, 1}, false, Point{0, 2}},
		{"remove later row", remove, Point{3, 1}, false, Point{2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformPoint(tt.d, tt.p, tt.stay); got != tt.want {
				t.Errorf("TransformPoint = %s, want %s", got, tt.want)
			}
		})
	}
}
