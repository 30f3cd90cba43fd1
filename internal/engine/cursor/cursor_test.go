package cursor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/caret/internal/engine/buffer"
)

func pt(row, col int) Point { return Point{Row: row, Column: col} }

func TestSelectionStartsCollapsed(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("hello"))
	if !sel.IsEmpty() {
		t.Error("new selection should be empty")
	}
	if sel.Cursor() != pt(0, 0) {
		t.Errorf("cursor = %v, want 0:0", sel.Cursor())
	}
}

func TestSelectToAndBackwards(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("hello\nworld"))
	sel.MoveTo(1, 3)
	sel.SelectTo(0, 1)

	if !sel.IsBackwards() {
		t.Error("expected backwards selection")
	}
	want := buffer.NewRange(0, 1, 1, 3)
	if diff := cmp.Diff(want, sel.Range()); diff != "" {
		t.Errorf("Range mismatch (-want +got):\n%s", diff)
	}
	if sel.Anchor() != pt(1, 3) {
		t.Errorf("anchor = %v, want 1:3", sel.Anchor())
	}

	o := sel.ToOrientedRange()
	if !o.Backwards || o.Cursor() != pt(0, 1) {
		t.Errorf("oriented range = %v", o)
	}
}

func TestMoveToClips(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("ab\ncd"))
	sel.MoveTo(5, 9)
	if sel.Cursor() != pt(1, 2) {
		t.Errorf("cursor = %v, want 1:2", sel.Cursor())
	}
}

func TestSelectionFollowsDeltas(t *testing.T) {
	doc := buffer.NewDocument("hello world")
	sel := NewSelection(doc)
	sel.SetRange(buffer.NewRange(0, 6, 0, 11), false)

	doc.Insert(pt(0, 0), ">> ")
	want := buffer.NewRange(0, 9, 0, 14)
	if diff := cmp.Diff(want, sel.Range()); diff != "" {
		t.Errorf("after insert (-want +got):\n%s", diff)
	}

	doc.Remove(buffer.NewRange(0, 0, 0, 10))
	want = buffer.NewRange(0, 0, 0, 4)
	if diff := cmp.Diff(want, sel.Range()); diff != "" {
		t.Errorf("after remove (-want +got):\n%s", diff)
	}

	sel.Detach()
	doc.Insert(pt(0, 0), "xx")
	if diff := cmp.Diff(want, sel.Range()); diff != "" {
		t.Errorf("detached selection moved (-want +got):\n%s", diff)
	}
}

func TestSelectionEvents(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("hello"))
	var cursorEvents, selectionEvents int
	sel.On(EventChangeCursor, func(any) { cursorEvents++ })
	sel.On(EventChangeSelection, func(any) { selectionEvents++ })

	sel.MoveTo(0, 2)
	if cursorEvents != 1 || selectionEvents != 1 {
		t.Errorf("after MoveTo: cursor=%d selection=%d", cursorEvents, selectionEvents)
	}

	sel.SelectTo(0, 4)
	if cursorEvents != 2 || selectionEvents != 2 {
		t.Errorf("after SelectTo: cursor=%d selection=%d", cursorEvents, selectionEvents)
	}

	unmute := sel.Mute()
	sel.MoveTo(0, 0)
	unmute()
	if cursorEvents != 2 {
		t.Errorf("muted selection emitted events")
	}
}

func TestSelectLeftRightGraphemes(t *testing.T) {
	// "e" followed by a combining acute accent is one cluster of 3 bytes.
	doc := buffer.NewDocument("ae\u0301b")
	sel := NewSelection(doc)
	sel.MoveTo(0, 1)

	sel.SelectRight()
	if got := doc.TextRange(sel.Range()); got != "e\u0301" {
		t.Errorf("SelectRight selected %q", got)
	}

	sel.MoveTo(0, 4)
	sel.SelectLeft()
	if got := doc.TextRange(sel.Range()); got != "e\u0301" {
		t.Errorf("SelectLeft selected %q", got)
	}
}

func TestSelectLeftWrapsRows(t *testing.T) {
	doc := buffer.NewDocument("ab\ncd")
	sel := NewSelection(doc)
	sel.MoveTo(1, 0)
	sel.SelectLeft()
	if diff := cmp.Diff(buffer.NewRange(0, 2, 1, 0), sel.Range()); diff != "" {
		t.Errorf("Range mismatch (-want +got):\n%s", diff)
	}
}

func TestWordRange(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		column int
		want   [2]int
	}{
		{"inside word", "foo bar", 1, [2]int{0, 3}},
		{"end of word", "foo bar", 3, [2]int{0, 3}},
		{"start of second", "foo bar", 4, [2]int{4, 7}},
		{"punctuation", "a(()b", 2, [2]int{1, 4}},
		{"whitespace run", "a    b", 3, [2]int{1, 5}},
		{"unicode word", "h\u00e9llo!", 3, [2]int{0, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WordRange(tt.line, 0, tt.column)
			got := [2]int{r.Start.Column, r.End.Column}
			if got != tt.want {
				t.Errorf("WordRange(%q, %d) = %v, want %v", tt.line, tt.column, got, tt.want)
			}
		})
	}
}

func TestMoveCursorLineStartToggles(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("    code"))
	sel.MoveTo(0, 6)
	sel.MoveCursorLineStart()
	if sel.Cursor() != pt(0, 4) {
		t.Errorf("first press: %v", sel.Cursor())
	}
	sel.MoveCursorLineStart()
	if sel.Cursor() != pt(0, 0) {
		t.Errorf("second press: %v", sel.Cursor())
	}
}

func TestMoveCursorVerticalKeepsColumn(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("abcdef\nab\nabcdef"))
	sel.MoveTo(0, 5)
	sel.MoveCursorDown()
	if sel.Cursor() != pt(1, 2) {
		t.Errorf("down: %v", sel.Cursor())
	}
	sel.MoveCursorDown()
	if sel.Cursor() != pt(2, 5) {
		t.Errorf("down again: %v", sel.Cursor())
	}
}

func TestWordMotion(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("foo.bar  baz"))
	sel.MoveCursorWordRight()
	if sel.Cursor() != pt(0, 3) {
		t.Errorf("word right: %v", sel.Cursor())
	}
	sel.MoveCursorWordRight()
	if sel.Cursor() != pt(0, 4) {
		t.Errorf("word right over punctuation: %v", sel.Cursor())
	}
	sel.MoveTo(0, 12)
	sel.MoveCursorWordLeft()
	if sel.Cursor() != pt(0, 9) {
		t.Errorf("word left: %v", sel.Cursor())
	}
}

func TestSelectLine(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("one\ntwo\nthree"))
	sel.MoveTo(1, 1)
	sel.SelectLine()
	if diff := cmp.Diff(buffer.NewRange(1, 0, 2, 0), sel.Range()); diff != "" {
		t.Errorf("SelectLine (-want +got):\n%s", diff)
	}
	sel.MoveTo(2, 1)
	sel.SelectLine()
	if diff := cmp.Diff(buffer.NewRange(2, 0, 2, 5), sel.Range()); diff != "" {
		t.Errorf("SelectLine on last row (-want +got):\n%s", diff)
	}
}

func TestAddRangeEntersMultiSelect(t *testing.T) {
	doc := buffer.NewDocument("aaaa\nbbbb\ncccc")
	sel := NewSelection(doc)
	multi := 0
	sel.On(EventMultiSelect, func(any) { multi++ })

	sel.MoveTo(0, 1)
	sel.AddRange(OrientedRange{Range: buffer.NewRange(1, 1, 1, 3)})

	if !sel.InMultiSelectMode() || sel.RangeCount() != 2 || multi != 1 {
		t.Fatalf("multi=%v count=%d events=%d", sel.InMultiSelectMode(), sel.RangeCount(), multi)
	}
	if sel.Range() != buffer.NewRange(1, 1, 1, 3) {
		t.Errorf("primary = %v, want last added range", sel.Range())
	}

	// Edits above shift every range.
	doc.Insert(pt(0, 0), "x\n")
	want := []OrientedRange{
		{Range: buffer.NewRange(1, 1, 1, 1)},
		{Range: buffer.NewRange(2, 1, 2, 3)},
	}
	if diff := cmp.Diff(want, sel.Ranges()); diff != "" {
		t.Errorf("ranges after insert (-want +got):\n%s", diff)
	}
}

func TestAddSameRangeStaysSingle(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("abc"))
	sel.MoveTo(0, 1)
	sel.AddRange(OrientedRange{Range: buffer.EmptyRange(pt(0, 1))})
	if sel.InMultiSelectMode() {
		t.Error("adding the current caret should not enter multi-select mode")
	}
}

func TestOverlappingRangeReplacesAndLeavesMulti(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("abcdefgh"))
	sel.MoveTo(0, 1)
	sel.AddRange(OrientedRange{Range: buffer.NewRange(0, 4, 0, 4)})
	sel.AddRange(OrientedRange{Range: buffer.NewRange(0, 0, 0, 6)})

	if sel.InMultiSelectMode() {
		t.Errorf("expected single range, got %v", sel.Ranges())
	}
	if sel.Range() != buffer.NewRange(0, 0, 0, 6) {
		t.Errorf("range = %v", sel.Range())
	}
}

func TestToSingleRange(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("abc\ndef"))
	sel.AddRange(OrientedRange{Range: buffer.EmptyRange(pt(1, 1))})
	sel.ToSingleRange(OrientedRange{Range: buffer.EmptyRange(pt(0, 2))})
	if sel.InMultiSelectMode() || sel.RangeCount() != 0 {
		t.Error("still in multi-select mode")
	}
	if sel.RangeList().IsAttached() {
		t.Error("range list still attached")
	}
}

func TestSnapshotRestore(t *testing.T) {
	sel := NewSelection(buffer.NewDocument("abc\ndef\nghi"))
	sel.MoveTo(0, 1)
	sel.AddRange(OrientedRange{Range: buffer.NewRange(2, 0, 2, 2), Backwards: true})
	snap := sel.Snapshot()

	sel.ToSingleRange(OrientedRange{})
	sel.Restore(snap)

	if diff := cmp.Diff(snap, sel.Snapshot()); diff != "" {
		t.Errorf("restored snapshot (-want +got):\n%s", diff)
	}
	if sel.Range() != buffer.EmptyRange(pt(0, 1)) {
		t.Errorf("primary after restore = %v", sel.Range())
	}
}

func TestRangeListMerge(t *testing.T) {
	rl := NewRangeList()
	rl.SetAll([]OrientedRange{
		{Range: buffer.NewRange(0, 5, 0, 8)},
		{Range: buffer.NewRange(0, 0, 0, 3)},
		{Range: buffer.NewRange(0, 3, 0, 4)},
		{Range: buffer.NewRange(0, 6, 0, 9)},
		{Range: buffer.EmptyRange(pt(1, 0))},
		{Range: buffer.EmptyRange(pt(1, 0))},
	})
	removed := rl.Merge()

	want := []OrientedRange{
		{Range: buffer.NewRange(0, 0, 0, 3)},
		{Range: buffer.NewRange(0, 3, 0, 4)},
		{Range: buffer.NewRange(0, 5, 0, 9)},
		{Range: buffer.EmptyRange(pt(1, 0))},
	}
	if diff := cmp.Diff(want, rl.Ranges()); diff != "" {
		t.Errorf("merged ranges (-want +got):\n%s", diff)
	}
	if len(removed) != 2 {
		t.Errorf("removed %d ranges, want 2", len(removed))
	}
}

func TestRangeListDetachStopsTracking(t *testing.T) {
	doc := buffer.NewDocument("a\nb\nc")
	rl := NewRangeList()
	rl.Add(OrientedRange{Range: buffer.EmptyRange(pt(2, 0))})
	rl.Attach(doc)
	doc.Insert(pt(0, 0), "\n")
	if rl.At(0).Start != pt(3, 0) {
		t.Errorf("attached range = %v", rl.At(0))
	}
	rl.Detach()
	doc.Insert(pt(0, 0), "\n")
	if rl.At(0).Start != pt(3, 0) {
		t.Errorf("detached range moved to %v", rl.At(0))
	}
	if doc.ListenerCount() != 0 {
		t.Errorf("document still has %d listeners", doc.ListenerCount())
	}
}
