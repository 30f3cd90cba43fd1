package editor

import (
	"testing"

	"github.com/dshills/caret/internal/engine"
	"github.com/dshills/caret/internal/mode"
)

func TestInsertRemoveInverse(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   Point
		ins  string
	}{
		{"middle", "hello", pt(0, 2), "xyz"},
		{"line end", "hello", pt(0, 5), "!"},
		{"multi line", "ab\ncd", pt(1, 1), "x\ny"},
		{"empty doc", "", pt(0, 0), "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := engine.NewSession(tt.text)
			session.Selection().MoveTo(tt.at.Row, tt.at.Column)
			e, _ := newTestEditor(t, session)

			var end Point
			do(t, e, func(e *Editor) {
				e.Insert(tt.ins, false)
				end = e.Selection().Cursor()
			})
			do(t, e, func(e *Editor) {
				e.Selection().SetRange(Range{Start: tt.at, End: end}, false)
				e.Remove(DirectionLeft)
			})

			if got := session.Text(); got != tt.text {
				t.Errorf("Text = %q, want %q", got, tt.text)
			}
			if got := e.Selection().Cursor(); got != tt.at {
				t.Errorf("cursor = %v, want %v", got, tt.at)
			}
		})
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	session := engine.NewSession("hello world")
	session.Selection().SetRange(rng(0, 0, 0, 5), false)
	e, _ := newTestEditor(t, session)

	exec(t, e, "insertstring", "bye")

	if got := session.Text(); got != "bye world" {
		t.Errorf("Text = %q, want %q", got, "bye world")
	}
	if !e.Selection().IsEmpty() || e.Selection().Cursor() != pt(0, 3) {
		t.Errorf("selection = %v, want collapsed at 0:3", e.Selection().Range())
	}
}

func TestInsertOverwrite(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		ins  string
		want string
	}{
		{"replaces len(T)", "abcdef", 1, "XY", "aXYdef"},
		{"clamped at line end", "ab", 1, "XYZ", "aXYZ"},
		{"counts runes", "añbc", 1, "é", "aébc"},
		{"newline never overwrites", "abc", 1, "\n", "a\nbc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := engine.NewSession(tt.line)
			session.SetOverwrite(true)
			session.Selection().MoveTo(0, tt.col)
			e, _ := newTestEditor(t, session, WithOptions(map[string]any{"autoIndent": false}))

			do(t, e, func(e *Editor) { e.Insert(tt.ins, false) })

			if got := session.Text(); got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertNewlineDropsSplitIndent(t *testing.T) {
	session := engine.NewSession("    foo")
	session.Selection().MoveTo(0, 2)
	e, _ := newTestEditor(t, session)

	do(t, e, func(e *Editor) { e.Insert("\n", false) })

	if got := session.Text(); got != "  \n  foo" {
		t.Errorf("Text = %q, want %q", got, "  \n  foo")
	}
}

func TestInsertAutoIndent(t *testing.T) {
	session := engine.NewSession("\tif x {", engine.WithMode(mode.NewCStyleMode("c")))
	session.SetUseSoftTabs(false)
	session.Selection().MoveTo(0, 7)
	e, _ := newTestEditor(t, session)

	exec(t, e, "insertstring", "\n")

	if got := session.Text(); got != "\tif x {\n\t\t" {
		t.Errorf("Text = %q, want %q", got, "\tif x {\n\t\t")
	}
	if got := e.Selection().Cursor(); got != pt(1, 2) {
		t.Errorf("cursor = %v, want 1:2", got)
	}
}

func TestInsertBehaviourTransform(t *testing.T) {
	session := engine.NewSession("", engine.WithMode(mode.NewCStyleMode("c")))
	e, _ := newTestEditor(t, session)

	exec(t, e, "insertstring", "(")

	if got := session.Text(); got != "()" {
		t.Errorf("Text = %q, want ()", got)
	}
	if got := e.Selection().Cursor(); got != pt(0, 1) {
		t.Errorf("cursor = %v, want 0:1", got)
	}

	// Pasted text skips the transform.
	do(t, e, func(e *Editor) { e.Insert("[", true) })
	if got := session.Text(); got != "([)" {
		t.Errorf("after paste Text = %q, want ([)", got)
	}
}

func TestInsertTabUsesTabString(t *testing.T) {
	session := engine.NewSession("x", engine.WithTabSize(2))
	e, _ := newTestEditor(t, session)

	do(t, e, func(e *Editor) { e.Insert("\t", false) })

	if got := session.Text(); got != "  x" {
		t.Errorf("Text = %q, want %q", got, "  x")
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   Point
		dir  Direction
		want string
	}{
		{"left", "abc", pt(0, 2), DirectionLeft, "ac"},
		{"right", "abc", pt(0, 1), DirectionRight, "ac"},
		{"joins rows", "ab\ncd", pt(1, 0), DirectionLeft, "abcd"},
		{"takes blank row indent", "ab\n   ", pt(0, 2), DirectionRight, "ab"},
		{"at doc start", "abc", pt(0, 0), DirectionLeft, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := engine.NewSession(tt.text)
			session.Selection().MoveTo(tt.at.Row, tt.at.Column)
			e, _ := newTestEditor(t, session)

			do(t, e, func(e *Editor) { e.Remove(tt.dir) })

			if got := session.Text(); got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveBehaviourPair(t *testing.T) {
	session := engine.NewSession("()", engine.WithMode(mode.NewCStyleMode("c")))
	session.Selection().MoveTo(0, 1)
	e, _ := newTestEditor(t, session)

	exec(t, e, "backspace", nil)

	if got := session.Text(); got != "" {
		t.Errorf("Text = %q, want empty", got)
	}
}

func TestLineEdits(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   Point
		cmd  string
		want string
	}{
		{"remove word left", "foo bar", pt(0, 7), "removewordleft", "foo "},
		{"remove word right", "foo bar", pt(0, 0), "removewordright", " bar"},
		{"remove to line start", "foo bar", pt(0, 4), "removetolinestart", "bar"},
		{"remove to line end", "foo bar", pt(0, 3), "removetolineend", "foo"},
		{"remove line break at end", "foo\nbar", pt(0, 3), "removetolineend", "foobar"},
		{"split line", "foobar", pt(0, 3), "splitline", "foo\nbar"},
		{"transpose", "abc", pt(0, 1), "transposeletters", "bac"},
		{"transpose at end", "abc", pt(0, 3), "transposeletters", "acb"},
		{"upper case word", "foo bar", pt(0, 1), "touppercase", "FOO bar"},
		{"lower case word", "FOO BAR", pt(0, 5), "tolowercase", "FOO bar"},
		{"remove line", "a\nb\nc", pt(1, 0), "removeline", "a\nc"},
		{"duplicate line", "a\nb", pt(0, 0), "duplicateSelection", "a\na\nb"},
		{"block indent", "a\nb", pt(0, 0), "blockindent", "    a\nb"},
		{"toggle comment", "x = 1", pt(0, 0), "togglecomment", "x = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := engine.NewSession(tt.text)
			session.Selection().MoveTo(tt.at.Row, tt.at.Column)
			e, _ := newTestEditor(t, session)

			exec(t, e, tt.cmd, nil)

			if got := session.Text(); got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortLines(t *testing.T) {
	session := engine.NewSession("b\nA\nc\n")
	session.Selection().SetRange(rng(0, 0, 2, 1), false)
	e, _ := newTestEditor(t, session)

	exec(t, e, "sortlines", nil)

	if got := session.Text(); got != "A\nb\nc\n" {
		t.Errorf("Text = %q, want %q", got, "A\nb\nc\n")
	}
}

func TestToggleComment(t *testing.T) {
	session := engine.NewSession("a\nb", engine.WithMode(mode.NewCStyleMode("c")))
	session.Selection().SetRange(rng(0, 0, 1, 1), false)
	e, _ := newTestEditor(t, session)

	exec(t, e, "togglecomment", nil)
	if got := session.Text(); got != "// a\n// b" {
		t.Fatalf("Text = %q, want commented rows", got)
	}
	exec(t, e, "togglecomment", nil)
	if got := session.Text(); got != "a\nb" {
		t.Errorf("Text = %q, want rows uncommented", got)
	}
}

func TestIndentToTabStop(t *testing.T) {
	session := engine.NewSession("ab", engine.WithTabSize(4))
	session.Selection().MoveTo(0, 1)
	e, _ := newTestEditor(t, session)

	exec(t, e, "indent", nil)

	if got := session.Text(); got != "a   b" {
		t.Errorf("Text = %q, want %q", got, "a   b")
	}
}

func TestBlockOutdent(t *testing.T) {
	session := engine.NewSession("    a\n\tb\n  c")
	session.Selection().SetRange(rng(0, 0, 2, 1), false)
	e, _ := newTestEditor(t, session)

	exec(t, e, "blockoutdent", nil)

	if got := session.Text(); got != "a\nb\nc" {
		t.Errorf("Text = %q, want %q", got, "a\nb\nc")
	}
}
