package viewport

import (
	"testing"

	"github.com/dshills/caret/internal/engine/buffer"
)

func pt(row, col int) buffer.Point { return buffer.Point{Row: row, Column: col} }

func TestNew(t *testing.T) {
	v := New(80, 24)

	if v.Width() != 80 || v.Height() != 24 {
		t.Errorf("size = %dx%d, want 80x24", v.Width(), v.Height())
	}
	if v.ScrollTop() != 0 || v.LeftColumn() != 0 {
		t.Errorf("origin = %d,%d, want 0,0", v.ScrollTop(), v.LeftColumn())
	}

	v = New(0, -3)
	if v.Width() != 1 || v.Height() != 1 {
		t.Errorf("clamped size = %dx%d, want 1x1", v.Width(), v.Height())
	}
}

func TestVisibleRows(t *testing.T) {
	v := New(80, 24)
	v.SetRowCount(100)

	if v.FirstRow() != 0 || v.LastRow() != 23 {
		t.Errorf("rows = %d-%d, want 0-23", v.FirstRow(), v.LastRow())
	}

	v.ScrollTo(10)
	if v.FirstRow() != 10 || v.LastRow() != 33 {
		t.Errorf("rows = %d-%d, want 10-33", v.FirstRow(), v.LastRow())
	}

	v.SetRowCount(5)
	if v.FirstRow() != 4 || v.LastRow() != 4 {
		t.Errorf("after shrinking rows = %d-%d, want 4-4", v.FirstRow(), v.LastRow())
	}
}

func TestScrollCursorIntoView(t *testing.T) {
	tests := []struct {
		name    string
		top     int
		cursor  buffer.Point
		offset  float64
		wantTop int
	}{
		{"already visible", 0, pt(5, 0), 0, 0},
		{"below view", 0, pt(30, 0), 0, 30 - 10 + 1 + 2},
		{"above view", 20, pt(5, 0), 0, 5 - 2},
		{"into top margin", 10, pt(11, 0), 0, 9},
		{"centered", 0, pt(50, 0), 0.5, 45},
		{"centered near start", 40, pt(2, 0), 0.5, 0},
		{"visible ignores offset", 0, pt(5, 0), 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(40, 10)
			v.SetRowCount(100)
			v.ScrollTo(tt.top)

			v.ScrollCursorIntoView(tt.cursor, tt.offset)

			if got := v.ScrollTop(); got != tt.wantTop {
				t.Errorf("ScrollTop = %d, want %d", got, tt.wantTop)
			}
			if !v.IsRowVisible(tt.cursor.Row) {
				t.Errorf("row %d not visible", tt.cursor.Row)
			}
		})
	}
}

func TestScrollCursorIntoViewHorizontal(t *testing.T) {
	v := New(20, 10)
	v.SetMargins(NoMargins())

	v.ScrollCursorIntoView(pt(0, 25), 0)
	if got := v.LeftColumn(); got != 6 {
		t.Errorf("LeftColumn = %d, want 6", got)
	}
	if r, c := v.ToScreen(0, 25); r != 0 || c != 19 {
		t.Errorf("ToScreen = %d,%d, want 0,19", r, c)
	}

	v.ScrollCursorIntoView(pt(0, 2), 0)
	if got := v.LeftColumn(); got != 2 {
		t.Errorf("LeftColumn = %d, want 2", got)
	}
}

func TestScrollSelectionIntoViewFavorsLead(t *testing.T) {
	v := New(40, 10)
	v.SetMargins(NoMargins())
	v.SetRowCount(100)

	v.ScrollSelectionIntoView(pt(0, 0), pt(50, 0))

	if !v.IsRowVisible(50) {
		t.Error("lead not visible")
	}
	if got := v.ScrollTop(); got != 41 {
		t.Errorf("ScrollTop = %d, want 41", got)
	}
}

func TestAnimateScrolling(t *testing.T) {
	v := New(40, 10)
	v.SetRowCount(200)

	v.ScrollTo(100)
	v.AnimateScrolling(0)

	if !v.IsAnimating() {
		t.Fatal("not animating")
	}
	if got := v.ScrollTop(); got != 0 {
		t.Fatalf("animation starts at %d, want 0", got)
	}

	prev := v.ScrollTop()
	for i := 0; v.IsAnimating(); i++ {
		if i > 1000 {
			t.Fatal("animation never finished")
		}
		if !v.Update(1.0 / 60) {
			t.Fatal("Update reported no movement while animating")
		}
		if v.ScrollTop() <= prev {
			t.Fatalf("animation went backwards: %d after %d", v.ScrollTop(), prev)
		}
		prev = v.ScrollTop()
	}
	if got := v.ScrollTop(); got != 100 {
		t.Errorf("animation ended at %d, want 100", got)
	}
	if v.Update(1.0 / 60) {
		t.Error("Update moved a settled view")
	}
}

func TestAnimateScrollingDisabled(t *testing.T) {
	v := New(40, 10)
	v.SetRowCount(200)
	v.SetSmoothScroll(false)

	v.ScrollTo(100)
	v.AnimateScrolling(0)

	if v.IsAnimating() || v.ScrollTop() != 100 {
		t.Errorf("ScrollTop = %d animating = %v, want a plain jump", v.ScrollTop(), v.IsAnimating())
	}
}

func TestRevealStopsAnimation(t *testing.T) {
	v := New(40, 10)
	v.SetRowCount(200)
	v.ScrollTo(100)
	v.AnimateScrolling(0)

	v.ScrollCursorIntoView(pt(104, 0), 0)

	if v.IsAnimating() {
		t.Error("still animating after a reveal")
	}
	if got := v.ScrollTop(); got != 100 {
		t.Errorf("ScrollTop = %d, want the animation target 100", got)
	}
}

func TestPaging(t *testing.T) {
	v := New(40, 10)
	v.SetRowCount(100)

	v.PageDown()
	if got := v.ScrollTop(); got != 8 {
		t.Errorf("after PageDown ScrollTop = %d, want 8", got)
	}
	v.PageUp()
	v.PageUp()
	if got := v.ScrollTop(); got != 0 {
		t.Errorf("after PageUp ScrollTop = %d, want 0", got)
	}
}
