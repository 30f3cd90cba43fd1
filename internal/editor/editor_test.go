package editor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/caret/internal/command"
	"github.com/dshills/caret/internal/engine"
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/event"
)

// fakeRenderer records scroll requests.
type fakeRenderer struct {
	mu    sync.Mutex
	calls []string
	first int
	last  int
}

func (r *fakeRenderer) record(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *fakeRenderer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *fakeRenderer) ScrollTop() int { return 0 }
func (r *fakeRenderer) FirstRow() int  { return r.first }
func (r *fakeRenderer) LastRow() int   { return r.last }

func (r *fakeRenderer) ScrollCursorIntoView(_ Point, offset float64) {
	if offset == 0.5 {
		r.record("cursor-center")
		return
	}
	r.record("cursor")
}

func (r *fakeRenderer) ScrollSelectionIntoView(Point, Point) { r.record("selection") }
func (r *fakeRenderer) AnimateScrolling(int)                 { r.record("animate") }

func pt(row, col int) Point { return Point{Row: row, Column: col} }

func rng(r1, c1, r2, c2 int) Range { return buffer.NewRange(r1, c1, r2, c2) }

// newTestEditor binds a fresh editor to session. The bracket highlight
// timer is off unless a test turns it back on.
func newTestEditor(t *testing.T, session *engine.Session, opts ...Option) (*Editor, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{last: 40}
	opts = append([]Option{WithOptions(map[string]any{"highlightBrackets": false})}, opts...)
	e, err := New(r, session, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Destroy)
	return e, r
}

// do runs fn inside a command operation so no reset timer is involved.
func do(t *testing.T, e *Editor, fn func(e *Editor)) {
	t.Helper()
	cmd := &Command{Name: "test", Exec: func(e *Editor, _ any) bool { fn(e); return true }}
	if _, err := e.Commands().ExecCommand(e, cmd, nil); err != nil {
		t.Fatalf("ExecCommand: %v", err)
	}
}

// holdReset replaces the zero-delay operation reset with one that only
// fires when flushed.
func holdReset(e *Editor) {
	e.opReset.Cancel()
	e.opReset = event.NewDebouncer(time.Hour, func() { e.endOperation(nil, true) })
}

func exec(t *testing.T, e *Editor, name string, args any) bool {
	t.Helper()
	ok, err := e.ExecCommand(name, args)
	if err != nil {
		t.Fatalf("ExecCommand(%q): %v", name, err)
	}
	return ok
}

func TestNewAssignsID(t *testing.T) {
	e, _ := newTestEditor(t, engine.NewSession("x"), WithIDGenerator(func() string { return "ed-1" }))
	if e.ID() != "ed-1" {
		t.Errorf("ID = %q, want ed-1", e.ID())
	}

	other, _ := newTestEditor(t, engine.NewSession("x"))
	if other.ID() == "" {
		t.Error("default ID should not be empty")
	}
}

func TestOperationClosesWithCommand(t *testing.T) {
	e, r := newTestEditor(t, engine.NewSession("abc"))

	if !exec(t, e, "gotoright", nil) {
		t.Fatal("gotoright reported false")
	}
	if _, open := e.CurOp(); open {
		t.Error("operation still open after the command")
	}
	prev, ok := e.PrevOp()
	if !ok {
		t.Fatal("no previous operation")
	}
	if prev.CommandName() != "gotoright" {
		t.Errorf("PrevOp command = %q, want gotoright", prev.CommandName())
	}
	if !prev.SelectionChanged || prev.DocChanged {
		t.Errorf("PrevOp flags = selection %v doc %v, want true false", prev.SelectionChanged, prev.DocChanged)
	}
	if got := prev.SelectionAfter.Primary().Cursor(); got != pt(0, 1) {
		t.Errorf("SelectionAfter cursor = %v, want 0:1", got)
	}
	if diff := cmp.Diff([]string{"cursor"}, r.Calls()); diff != "" {
		t.Errorf("scroll calls (-want +got):\n%s", diff)
	}
}

func TestOperationVetoSkipsScroll(t *testing.T) {
	veto := &Command{
		Name:           "veto",
		Exec:           func(e *Editor, _ any) bool { e.Selection().MoveTo(0, 2); return false },
		ScrollIntoView: command.ScrollCenter,
	}
	e, r := newTestEditor(t, engine.NewSession("abc"), WithCommands(veto))

	exec(t, e, "gotoright", nil)
	if exec(t, e, "veto", nil) {
		t.Error("veto reported true")
	}

	if _, open := e.CurOp(); open {
		t.Error("vetoed operation left open")
	}
	prev, _ := e.PrevOp()
	if prev.CommandName() != "gotoright" {
		t.Errorf("PrevOp = %q, want the operation before the veto", prev.CommandName())
	}
	if got := e.Selection().Cursor(); got != pt(0, 2) {
		t.Errorf("cursor = %v, want the command's own move to 0:2", got)
	}
	if diff := cmp.Diff([]string{"cursor"}, r.Calls()); diff != "" {
		t.Errorf("scroll calls (-want +got):\n%s", diff)
	}
}

func TestBeforeEndOperationCancel(t *testing.T) {
	e, r := newTestEditor(t, engine.NewSession("abc"))
	var seen []string
	e.On(EventBeforeEndOperation, func(p any) {
		ev := p.(*OperationEvent)
		seen = append(seen, ev.Op.CommandName())
		ev.Cancel()
	})

	exec(t, e, "gotoright", nil)

	if diff := cmp.Diff([]string{"gotoright"}, seen); diff != "" {
		t.Errorf("beforeEndOperation (-want +got):\n%s", diff)
	}
	if _, ok := e.PrevOp(); ok {
		t.Error("cancelled operation recorded as previous")
	}
	if len(r.Calls()) != 0 {
		t.Errorf("cancelled operation scrolled: %v", r.Calls())
	}
}

func TestScrollPolicies(t *testing.T) {
	tests := []struct {
		policy command.ScrollIntoView
		want   []string
	}{
		{command.ScrollNone, nil},
		{command.ScrollCursor, []string{"cursor"}},
		{command.ScrollAnimate, []string{"cursor", "animate"}},
		{command.ScrollCenter, []string{"cursor-center"}},
		{command.ScrollCenterAnimate, []string{"cursor-center", "animate"}},
		{command.ScrollSelectionPart, []string{"selection"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			cmd := &Command{
				Name:           "scroll",
				Exec:           func(*Editor, any) bool { return true },
				ScrollIntoView: tt.policy,
			}
			e, r := newTestEditor(t, engine.NewSession("abc"), WithCommands(cmd))
			r.first, r.last = 10, 20
			exec(t, e, "scroll", nil)
			if diff := cmp.Diff(tt.want, r.Calls()); diff != "" {
				t.Errorf("scroll calls (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAutoOperationEndsOnReset(t *testing.T) {
	session := engine.NewSession("abc")
	e, _ := newTestEditor(t, session)
	holdReset(e)

	e.StartOperation(nil)
	if _, open := e.CurOp(); !open {
		t.Fatal("StartOperation(nil) did not open an operation")
	}
	e.opReset.Flush()
	if _, open := e.CurOp(); open {
		t.Error("reset left the operation open")
	}
	if _, ok := e.PrevOp(); !ok {
		t.Error("reset did not record the operation")
	}
}

func TestCommandSupersedesAutoOperation(t *testing.T) {
	e, _ := newTestEditor(t, engine.NewSession("abc"))
	holdReset(e)

	e.StartOperation(nil)
	exec(t, e, "gotoright", nil)

	if e.opReset.Pending() {
		t.Error("command left the reset timer armed")
	}
	prev, _ := e.PrevOp()
	if prev.CommandName() != "gotoright" {
		t.Errorf("PrevOp = %q, want gotoright", prev.CommandName())
	}
}

func TestSetSessionEndsOperationAndDetaches(t *testing.T) {
	first := engine.NewSession("one")
	second := engine.NewSession("two")
	baseSession, baseSel := first.ListenerCount(), first.Selection().ListenerCount()

	e, _ := newTestEditor(t, first)
	if first.ListenerCount() <= baseSession || first.Selection().ListenerCount() <= baseSel {
		t.Fatal("editor did not subscribe to the session")
	}

	var changes []SessionChange
	e.On(EventChangeSession, func(p any) { changes = append(changes, p.(SessionChange)) })

	cmd := &Command{Name: "pending"}
	e.StartOperation(&CommandEvent{Command: cmd, ReturnValue: true})
	e.SetSession(second)

	if _, open := e.CurOp(); open {
		t.Error("operation survived the session swap")
	}
	prev, _ := e.PrevOp()
	if prev.CommandName() != "pending" {
		t.Errorf("PrevOp = %q, want pending", prev.CommandName())
	}
	if got := first.ListenerCount(); got != baseSession {
		t.Errorf("old session listeners = %d, want %d", got, baseSession)
	}
	if got := first.Selection().ListenerCount(); got != baseSel {
		t.Errorf("old selection listeners = %d, want %d", got, baseSel)
	}
	if len(changes) != 1 || changes[0].Session != second || changes[0].OldSession != first {
		t.Errorf("changeSession payloads = %+v", changes)
	}
	if e.Session() != second {
		t.Error("Session() does not return the new session")
	}

	// Edits on the old session no longer reach the editor.
	var edits int
	e.On(EventChange, func(any) { edits++ })
	first.Insert(pt(0, 0), "x")
	if edits != 0 {
		t.Errorf("old session edit delivered %d change events", edits)
	}
}

func TestNilSessionIsNoop(t *testing.T) {
	e, _ := newTestEditor(t, nil)

	e.StartOperation(nil)
	if _, open := e.CurOp(); open {
		t.Error("operation opened without a session")
	}
	e.Insert("x", false)
	e.Remove(DirectionLeft)
	e.MoveLinesDown()
	e.JumpToMatching(false, false)
	if _, ok := e.Find("x", nil); ok {
		t.Error("Find without a session reported a match")
	}
	if n := e.ReplaceAll("y", nil); n != 0 {
		t.Errorf("ReplaceAll without a session = %d, want 0", n)
	}
}

func TestDestroy(t *testing.T) {
	session := engine.NewSession("abc")
	e, _ := newTestEditor(t, session)
	destroyed := 0
	e.On(EventDestroy, func(any) { destroyed++ })

	e.Destroy()
	e.Destroy()

	if destroyed != 1 {
		t.Errorf("destroy events = %d, want 1", destroyed)
	}
	if !e.Destroyed() || !session.Destroyed() {
		t.Error("Destroy did not destroy the editor and its session")
	}
	if e.Session() != nil {
		t.Error("destroyed editor still bound to a session")
	}
}

func TestReadOnlyBlocksEdits(t *testing.T) {
	session := engine.NewSession("abc")
	e, _ := newTestEditor(t, session, WithOptions(map[string]any{"readOnly": true}))

	if exec(t, e, "insertstring", "x") {
		t.Error("insertstring ran on a read-only editor")
	}
	if !exec(t, e, "gotoright", nil) {
		t.Error("navigation refused on a read-only editor")
	}
	if got := session.Text(); got != "abc" {
		t.Errorf("Text = %q, want abc", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	e, _ := newTestEditor(t, engine.NewSession(""))
	ok, err := e.ExecCommand("nope", nil)
	if ok || err != nil {
		t.Errorf("ExecCommand(nope) = %v, %v; want false, nil", ok, err)
	}
}

func TestUndoRestoresSelection(t *testing.T) {
	session := engine.NewSession("abc")
	session.Selection().MoveTo(0, 3)
	e, _ := newTestEditor(t, session)

	exec(t, e, "insertstring", "d")
	if got := session.Text(); got != "abcd" {
		t.Fatalf("Text = %q, want abcd", got)
	}
	if !exec(t, e, "undo", nil) {
		t.Fatal("undo reported false")
	}
	if got := session.Text(); got != "abc" {
		t.Errorf("after undo Text = %q, want abc", got)
	}
	if got := e.Selection().Cursor(); got != pt(0, 3) {
		t.Errorf("after undo cursor = %v, want 0:3", got)
	}
	exec(t, e, "redo", nil)
	if got := session.Text(); got != "abcd" {
		t.Errorf("after redo Text = %q, want abcd", got)
	}
}

func TestOptions(t *testing.T) {
	session := engine.NewSession("")
	e, _ := newTestEditor(t, session)

	if err := e.SetOption("tabSize", int64(8)); err != nil {
		t.Fatalf("SetOption(tabSize): %v", err)
	}
	if session.TabSize() != 8 {
		t.Errorf("session TabSize = %d, want 8", session.TabSize())
	}
	if err := e.SetOption("mergeUndoDeltas", "always"); err != nil {
		t.Fatalf("SetOption(mergeUndoDeltas): %v", err)
	}
	if v, _ := e.GetOption("mergeUndoDeltas"); v != MergeAlways {
		t.Errorf("mergeUndoDeltas = %v, want always", v)
	}
	if err := e.SetOptions(map[string]any{"useSoftTabs": false, "overwrite": "true"}); err != nil {
		t.Fatalf("SetOptions: %v", err)
	}
	if session.UseSoftTabs() || !session.Overwrite() {
		t.Error("session options not applied")
	}
	if v, ok := e.GetOption("wrap"); !ok || v != true {
		t.Errorf("wrap = %v, %v; want true", v, ok)
	}

	errTests := []struct {
		name  string
		value any
		want  error
	}{
		{"bogus", true, ErrUnknownOption},
		{"autoIndent", "maybe", ErrInvalidOptionValue},
		{"tabSize", 0, ErrInvalidOptionValue},
		{"tabSize", 2.5, ErrInvalidOptionValue},
		{"mergeUndoDeltas", 3, ErrInvalidOptionValue},
	}
	for _, tt := range errTests {
		if err := e.SetOption(tt.name, tt.value); !errors.Is(err, tt.want) {
			t.Errorf("SetOption(%q, %v) = %v, want %v", tt.name, tt.value, err, tt.want)
		}
	}
	if session.TabSize() != 8 {
		t.Error("a rejected value changed the tab size")
	}
}

func TestSessionOptionsWithoutSession(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	if err := e.SetOption("tabSize", 2); err != nil {
		t.Errorf("SetOption without session = %v, want nil", err)
	}
	if _, ok := e.GetOption("tabSize"); ok {
		t.Error("GetOption(tabSize) without session reported a value")
	}
}
