package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/caret/internal/engine"
	"github.com/dshills/caret/internal/search"
)

func TestFindAndFindNext(t *testing.T) {
	session := engine.NewSession("foo bar foo")
	e, _ := newTestEditor(t, session)

	exec(t, e, "find", "foo")
	if got := e.Selection().Range(); got != rng(0, 0, 0, 3) {
		t.Fatalf("find selected %v, want 0:0-0:3", got)
	}

	exec(t, e, "findnext", nil)
	if got := e.Selection().Range(); got != rng(0, 8, 0, 11) {
		t.Fatalf("findnext selected %v, want 0:8-0:11", got)
	}

	exec(t, e, "findnext", nil)
	if got := e.Selection().Range(); got != rng(0, 0, 0, 3) {
		t.Errorf("wrapped findnext selected %v, want 0:0-0:3", got)
	}

	exec(t, e, "findprevious", nil)
	if got := e.Selection().Range(); got != rng(0, 8, 0, 11) {
		t.Errorf("findprevious selected %v, want 0:8-0:11", got)
	}
}

func TestFindMissCollapsesSelection(t *testing.T) {
	tests := []struct {
		name      string
		backwards bool
		want      Point
	}{
		{"forward collapses to end", false, pt(0, 5)},
		{"backward collapses to start", true, pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := engine.NewSession("hello world")
			session.Selection().SetRange(rng(0, 0, 0, 5), false)
			e, _ := newTestEditor(t, session)

			var ok bool
			do(t, e, func(e *Editor) {
				_, ok = e.Find("zzz", &search.Options{Backwards: tt.backwards})
			})

			if ok {
				t.Fatal("Find reported a match")
			}
			sel := e.Selection()
			if !sel.IsEmpty() || sel.Cursor() != tt.want {
				t.Errorf("selection = %v, want collapsed at %v", sel.Range(), tt.want)
			}
		})
	}
}

func TestFindUsesWordUnderCaret(t *testing.T) {
	session := engine.NewSession("alpha beta alpha")
	session.Selection().MoveTo(0, 2)
	e, _ := newTestEditor(t, session)

	var found Range
	do(t, e, func(e *Editor) {
		found, _ = e.Find("", &search.Options{SkipCurrent: true, Wrap: true})
	})
	if found != rng(0, 11, 0, 16) {
		t.Errorf("found %v, want the next alpha at 0:11-0:16", found)
	}
	if got := e.Search().Options().Needle; got != "alpha" {
		t.Errorf("needle = %q, want alpha", got)
	}
}

func TestFindNeedlePriority(t *testing.T) {
	tests := []struct {
		name       string
		previous   string
		selection  Range
		needle     string
		opts       *search.Options
		wantNeedle string
		want       Range
	}{
		{
			name:       "argument beats options and selection",
			previous:   "foo",
			selection:  rng(0, 4, 0, 7),
			needle:     "baz",
			opts:       &search.Options{Needle: "bar", Wrap: true},
			wantNeedle: "baz",
			want:       rng(0, 12, 0, 15),
		},
		{
			name:       "options needle beats selection",
			previous:   "foo",
			selection:  rng(0, 4, 0, 7),
			opts:       &search.Options{Needle: "baz", Wrap: true},
			wantNeedle: "baz",
			want:       rng(0, 12, 0, 15),
		},
		{
			name:       "selection beats previous needle",
			previous:   "foo",
			selection:  rng(0, 12, 0, 15),
			wantNeedle: "baz",
			want:       rng(0, 12, 0, 15),
		},
		{
			name:       "previous needle without a selection",
			previous:   "foo",
			selection:  rng(0, 5, 0, 5),
			wantNeedle: "foo",
			want:       rng(0, 8, 0, 11),
		},
		{
			name:       "word under caret as a last resort",
			selection:  rng(0, 5, 0, 5),
			wantNeedle: "bar",
			want:       rng(0, 4, 0, 7),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := engine.NewSession("foo bar foo baz")
			session.Selection().SetRange(tt.selection, false)
			e, _ := newTestEditor(t, session)
			e.Search().SetNeedle(tt.previous)

			var found Range
			var ok bool
			do(t, e, func(e *Editor) {
				found, ok = e.Find(tt.needle, tt.opts)
			})

			if !ok {
				t.Fatal("Find reported no match")
			}
			if found != tt.want {
				t.Errorf("found %v, want %v", found, tt.want)
			}
			if got := e.Search().Options().Needle; got != tt.wantNeedle {
				t.Errorf("needle = %q, want %q", got, tt.wantNeedle)
			}
		})
	}
}

func TestFindNextUsesNewSelection(t *testing.T) {
	session := engine.NewSession("foo bar foo bar")
	e, _ := newTestEditor(t, session)

	exec(t, e, "find", "foo")
	e.Selection().SetRange(rng(0, 4, 0, 7), false)
	exec(t, e, "findnext", nil)
	if got := e.Selection().Range(); got != rng(0, 12, 0, 15) {
		t.Fatalf("findnext selected %v, want the next bar at 0:12-0:15", got)
	}

	exec(t, e, "findprevious", nil)
	if got := e.Selection().Range(); got != rng(0, 4, 0, 7) {
		t.Errorf("findprevious selected %v, want 0:4-0:7", got)
	}
	if got := e.Search().Options().Needle; got != "bar" {
		t.Errorf("needle = %q, want bar", got)
	}
}

func TestReplace(t *testing.T) {
	session := engine.NewSession("foo bar foo")
	e, _ := newTestEditor(t, session)

	var n int
	do(t, e, func(e *Editor) {
		n = e.Replace("baz", &search.Options{Needle: "foo"})
	})

	if n != 1 {
		t.Errorf("Replace = %d, want 1", n)
	}
	if got := session.Text(); got != "baz bar foo" {
		t.Errorf("Text = %q", got)
	}
	if got := e.Selection().Range(); got != rng(0, 0, 0, 3) {
		t.Errorf("selection = %v, want the replacement 0:0-0:3", got)
	}
}

func TestReplaceAll(t *testing.T) {
	session := engine.NewSession("axxxxayyyyazzzz")
	session.Selection().MoveTo(0, 3)
	e, _ := newTestEditor(t, session)

	ok := exec(t, e, "replaceall", ReplaceArgs{
		Replacement: "bb",
		Options:     &search.Options{Needle: "a", CaseSensitive: true},
	})

	if !ok {
		t.Error("replaceall reported no replacements")
	}
	if got := session.Text(); got != "bbxxxxbbyyyybbzzzz" {
		t.Errorf("Text = %q, want %q", got, "bbxxxxbbyyyybbzzzz")
	}
}

func TestReplaceAllCount(t *testing.T) {
	session := engine.NewSession("axxxxayyyyazzzz")
	e, _ := newTestEditor(t, session)

	var n int
	do(t, e, func(e *Editor) {
		n = e.ReplaceAll("bb", &search.Options{Needle: "a"})
	})
	if n != 3 {
		t.Errorf("ReplaceAll = %d, want 3", n)
	}
}

func TestFindAllSelectsEveryMatch(t *testing.T) {
	session := engine.NewSession("foo bar foo\nfoo")
	session.Selection().MoveTo(0, 9)
	e, _ := newTestEditor(t, session)

	if !exec(t, e, "findall", "foo") {
		t.Fatal("findall found nothing")
	}

	var got []Range
	for _, r := range session.Selection().Ranges() {
		got = append(got, r.Range)
	}
	want := []Range{rng(0, 0, 0, 3), rng(0, 8, 0, 11), rng(1, 0, 1, 3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranges (-want +got):\n%s", diff)
	}
	if got := e.Selection().Range(); got != rng(0, 8, 0, 11) {
		t.Errorf("primary = %v, want the match under the caret", got)
	}
}

func TestSelectionHighlight(t *testing.T) {
	session := engine.NewSession("foo food foo")
	e, _ := newTestEditor(t, session)

	do(t, e, func(e *Editor) { e.Selection().SetRange(rng(0, 0, 0, 3), false) })

	want := []Range{rng(0, 0, 0, 3), rng(0, 9, 0, 12)}
	if diff := cmp.Diff(want, e.SelectionHighlights()); diff != "" {
		t.Errorf("highlights (-want +got):\n%s", diff)
	}
}
