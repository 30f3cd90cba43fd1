package lua

import (
	"testing"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/mode"
)

type fakeHost struct {
	doc *buffer.Document
	sel buffer.Range
}

func (h fakeHost) Doc() *buffer.Document        { return h.doc }
func (h fakeHost) SelectionRange() buffer.Range { return h.sel }
func (h fakeHost) InMultiSelectMode() bool      { return false }
func (h fakeHost) TabString() string            { return "  " }
func (h fakeHost) FindMatchingBracket(buffer.Point) (buffer.Point, bool) {
	return buffer.Point{}, false
}

const testScript = `
function transform_insertion(state, line, column, text)
  if text == "<" then
    return "<>", {1, 1}
  end
  if text == "!" then
    return "!!"
  end
  if text == "?" then
    error("boom")
  end
  return nil
end

function next_line_indent(state, line, tab)
  if string.sub(line, -3) == "end" then
    return ""
  end
  return tab
end
`

func newTestMode(t *testing.T) *ScriptMode {
	t.Helper()
	m, err := NewScriptMode("script", testScript, mode.NewCStyleMode(""))
	if err != nil {
		t.Fatalf("NewScriptMode() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestScriptModeTransformInsertion(t *testing.T) {
	m := newTestMode(t)
	h := fakeHost{doc: buffer.NewDocument("abc"), sel: buffer.EmptyRange(buffer.Point{Column: 3})}

	tests := []struct {
		name string
		text string
		want mode.TransformResult
	}{
		{"with selection", "<", mode.TextWithSelection("<>", mode.SameRow(1, 1))},
		{"text only", "!", mode.TextOnly("!!")},
		{"declined", "x", mode.None()},
		{"script error declines", "?", mode.None()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.TransformInsertion(mode.StateStart, h, tt.text); got != tt.want {
				t.Errorf("TransformInsertion(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScriptModeHooksAndFallback(t *testing.T) {
	m := newTestMode(t)

	if got := m.NextLineIndent(mode.StateStart, "if x then", "\t"); got != "\t" {
		t.Errorf("NextLineIndent = %q", got)
	}
	if got := m.NextLineIndent(mode.StateStart, "end", "\t"); got != "" {
		t.Errorf("NextLineIndent after end = %q", got)
	}
	// check_outdent is not defined: the C-style fallback answers.
	if !m.CheckOutdent(mode.StateStart, "    ", "}") {
		t.Error("CheckOutdent should defer to the fallback mode")
	}
	if m.LineCommentStart() != "//" {
		t.Errorf("LineCommentStart = %q", m.LineCommentStart())
	}
}

func TestScriptModeLoadError(t *testing.T) {
	if _, err := NewScriptMode("bad", "this is not lua", nil); err == nil {
		t.Error("NewScriptMode() should fail on a syntax error")
	}
}
