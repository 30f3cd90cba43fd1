package editor

import (
	"testing"

	"github.com/dshills/caret/internal/engine"
)

func TestJumpToMatching(t *testing.T) {
	session := engine.NewSession("( foo )")
	session.Selection().MoveTo(0, 1)
	e, _ := newTestEditor(t, session)

	exec(t, e, "jumptomatching", nil)
	if got := e.Selection().Cursor(); got != pt(0, 6) {
		t.Fatalf("first jump cursor = %v, want 0:6", got)
	}
	exec(t, e, "jumptomatching", nil)
	if got := e.Selection().Cursor(); got != pt(0, 1) {
		t.Errorf("second jump cursor = %v, want 0:1", got)
	}
}

func TestSelectToMatching(t *testing.T) {
	session := engine.NewSession("( foo )")
	session.Selection().MoveTo(0, 1)
	e, _ := newTestEditor(t, session)

	exec(t, e, "selecttomatching", nil)
	if got := e.Selection().Range(); got != rng(0, 1, 0, 6) {
		t.Fatalf("selection = %v, want 0:1-0:6", got)
	}

	exec(t, e, "selecttomatching", nil)
	if !e.Selection().IsEmpty() {
		t.Errorf("repeat over the selected block left %v selected", e.Selection().Range())
	}
}

func TestExpandToMatching(t *testing.T) {
	session := engine.NewSession("( foo )")
	session.Selection().MoveTo(0, 3)
	e, _ := newTestEditor(t, session)

	exec(t, e, "expandtomatching", nil)
	if got := e.Selection().Range(); got != rng(0, 1, 0, 6) {
		t.Errorf("selection = %v, want the bracket contents 0:1-0:6", got)
	}
}

func TestJumpToMatchingWithoutBrackets(t *testing.T) {
	session := engine.NewSession("plain text")
	session.Selection().MoveTo(0, 3)
	e, _ := newTestEditor(t, session)

	exec(t, e, "jumptomatching", nil)
	if got := e.Selection().Cursor(); got != pt(0, 3) {
		t.Errorf("cursor = %v, want it unmoved", got)
	}
}

func TestBracketHighlight(t *testing.T) {
	session := engine.NewSession("( foo )")
	e, _ := newTestEditor(t, session, WithOptions(map[string]any{"highlightBrackets": true}))

	do(t, e, func(e *Editor) { e.Selection().MoveTo(0, 7) })
	e.bracketDebounce.Flush()

	got, ok := e.BracketHighlight()
	if !ok {
		t.Fatal("no bracket highlight")
	}
	if got != rng(0, 0, 0, 1) {
		t.Errorf("highlight = %v, want 0:0-0:1", got)
	}

	if err := e.SetOption("highlightBrackets", false); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.BracketHighlight(); ok {
		t.Error("highlight kept after turning the option off")
	}
}
