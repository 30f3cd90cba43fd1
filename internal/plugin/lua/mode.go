package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/mode"
)

// Script hook names.
const (
	hookTransformInsertion = "transform_insertion"
	hookNextLineIndent     = "next_line_indent"
	hookCheckOutdent       = "check_outdent"
)

// ScriptMode is a language mode whose behaviours come from a Lua script.
type ScriptMode struct {
	id       string
	state    *State
	fallback mode.Mode
}

// NewScriptMode runs source in a fresh state and returns a mode backed
// by it. A nil fallback means plain text.
func NewScriptMode(id, source string, fallback mode.Mode, opts ...StateOption) (*ScriptMode, error) {
	return newScriptMode(id, fallback, func(s *State) error { return s.DoString(source) }, opts)
}

// LoadScriptMode is NewScriptMode for a script file.
func LoadScriptMode(id, path string, fallback mode.Mode, opts ...StateOption) (*ScriptMode, error) {
	return newScriptMode(id, fallback, func(s *State) error { return s.DoFile(path) }, opts)
}

func newScriptMode(id string, fallback mode.Mode, load func(*State) error, opts []StateOption) (*ScriptMode, error) {
	if fallback == nil {
		fallback = mode.NewTextMode()
	}
	state, err := NewState(opts...)
	if err != nil {
		return nil, err
	}
	if err := load(state); err != nil {
		state.Close()
		return nil, fmt.Errorf("load mode %s: %w", id, err)
	}
	return &ScriptMode{id: id, state: state, fallback: fallback}, nil
}

// Close releases the script state.
func (m *ScriptMode) Close() error {
	return m.state.Close()
}

// ID implements mode.Mode.
func (m *ScriptMode) ID() string { return m.id }

// Tokenizer implements mode.Mode.
func (m *ScriptMode) Tokenizer() mode.Tokenizer { return m.fallback.Tokenizer() }

// TransformInsertion calls transform_insertion(state, line, column, text).
func (m *ScriptMode) TransformInsertion(state string, host mode.Host, text string) mode.TransformResult {
	if !m.state.HasFunction(hookTransformInsertion) {
		return m.fallback.TransformInsertion(state, host, text)
	}
	cur := host.SelectionRange().Start
	line := host.Doc().Line(cur.Row)
	ret, err := m.state.Call(hookTransformInsertion, 2,
		lua.LString(state), lua.LString(line), lua.LNumber(cur.Column), lua.LString(text))
	if err != nil {
		return mode.None()
	}
	out, ok := ret[0].(lua.LString)
	if !ok {
		return mode.None()
	}
	if sel, ok := selectionFromTable(ret[1]); ok {
		return mode.TextWithSelection(string(out), sel)
	}
	return mode.TextOnly(string(out))
}

// selectionFromTable reads {start, end} or {row1, col1, row2, col2}.
func selectionFromTable(v lua.LValue) (mode.RelativeSelection, bool) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return mode.RelativeSelection{}, false
	}
	n := tbl.Len()
	nums := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		num, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			return mode.RelativeSelection{}, false
		}
		nums = append(nums, int(num))
	}
	switch n {
	case 2:
		return mode.SameRow(nums[0], nums[1]), true
	case 4:
		return mode.RowsAndCols(nums[0], nums[1], nums[2], nums[3]), true
	}
	return mode.RelativeSelection{}, false
}

// TransformDeletion implements mode.Mode.
func (m *ScriptMode) TransformDeletion(state string, host mode.Host, r buffer.Range) mode.DeletionResult {
	return m.fallback.TransformDeletion(state, host, r)
}

// NextLineIndent calls next_line_indent(state, line, tab).
func (m *ScriptMode) NextLineIndent(state, line, tab string) string {
	if !m.state.HasFunction(hookNextLineIndent) {
		return m.fallback.NextLineIndent(state, line, tab)
	}
	ret, err := m.state.Call(hookNextLineIndent, 1, lua.LString(state), lua.LString(line), lua.LString(tab))
	if err != nil {
		return mode.LeadingWhitespace(line)
	}
	if s, ok := ret[0].(lua.LString); ok {
		return string(s)
	}
	return mode.LeadingWhitespace(line)
}

// CheckOutdent calls check_outdent(state, line, text).
func (m *ScriptMode) CheckOutdent(state, line, input string) bool {
	if !m.state.HasFunction(hookCheckOutdent) {
		return m.fallback.CheckOutdent(state, line, input)
	}
	ret, err := m.state.Call(hookCheckOutdent, 1, lua.LString(state), lua.LString(line), lua.LString(input))
	if err != nil {
		return false
	}
	return lua.LVAsBool(ret[0])
}

// AutoOutdent implements mode.Mode.
func (m *ScriptMode) AutoOutdent(state string, host mode.Host, row int) {
	m.fallback.AutoOutdent(state, host, row)
}

// LineCommentStart implements mode.Mode.
func (m *ScriptMode) LineCommentStart() string { return m.fallback.LineCommentStart() }

// ToggleCommentLines implements mode.Mode.
func (m *ScriptMode) ToggleCommentLines(state string, doc *buffer.Document, first, last int) {
	m.fallback.ToggleCommentLines(state, doc, first, last)
}

var _ mode.Mode = (*ScriptMode)(nil)
