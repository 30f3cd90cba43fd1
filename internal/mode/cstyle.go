package mode

import (
	"regexp"
	"strings"

	"github.com/dshills/caret/internal/engine/buffer"
)

var (
	indentAfter   = regexp.MustCompile(`^.*(?:\bcase\b.*:|[\{\(\[])\s*$`)
	closingBrace  = regexp.MustCompile(`^(\s*\})`)
	startsClosing = regexp.MustCompile(`^\s*\}`)
)

// CStyleMode provides brace languages with auto-closing pairs, brace
// expansion on newline and closing-brace outdent.
type CStyleMode struct {
	Base
}

// NewCStyleMode returns a C-style mode using the basic tokenizer.
func NewCStyleMode(id string) *CStyleMode {
	if id == "" {
		id = "c"
	}
	return &CStyleMode{Base: Base{
		id: id,
		tokenizer: BasicTokenizer{
			LineComment:  "//",
			BlockComment: [2]string{"/*", "*/"},
			Quotes:       `"'`,
		},
		commentStart: "//",
	}}
}

// TransformInsertion implements Mode.
func (m *CStyleMode) TransformInsertion(_ string, host Host, text string) TransformResult {
	return cstyleInsertion(host, text)
}

// TransformDeletion implements Mode.
func (m *CStyleMode) TransformDeletion(_ string, host Host, r buffer.Range) DeletionResult {
	return cstyleDeletion(host, r)
}

// NextLineIndent adds one level after an opening bracket or case label.
func (m *CStyleMode) NextLineIndent(state, line, tab string) string {
	indent := LeadingWhitespace(line)
	if state == StateStart && indentAfter.MatchString(line) {
		indent += tab
	}
	return indent
}

// CheckOutdent reports whether typing input on a blank line starts with
// a closing brace.
func (m *CStyleMode) CheckOutdent(_, line, input string) bool {
	if strings.TrimSpace(line) != "" || line == "" {
		return false
	}
	return startsClosing.MatchString(input)
}

// AutoOutdent aligns a closing brace on row with its opening line.
func (m *CStyleMode) AutoOutdent(_ string, host Host, row int) {
	braceOutdent(host, row)
}

func braceOutdent(host Host, row int) {
	doc := host.Doc()
	line := doc.Line(row)
	match := closingBrace.FindString(line)
	if match == "" {
		return
	}
	column := len(match)
	open, ok := host.FindMatchingBracket(buffer.Point{Row: row, Column: column})
	if !ok || open.Row == row {
		return
	}
	indent := LeadingWhitespace(doc.Line(open.Row))
	doc.Replace(buffer.NewRange(row, 0, row, column-1), indent)
}

func cstyleInsertion(host Host, text string) TransformResult {
	sel := host.SelectionRange()
	doc := host.Doc()

	if len(text) == 1 {
		c := text[0]
		if IsOpening(c) || c == '"' || c == '\'' {
			if !sel.IsEmpty() {
				return wrapped(sel, doc.TextRange(sel), c)
			}
		}
	}

	cur := sel.Start
	line := doc.Line(cur.Row)
	left, right := byteBefore(line, cur.Column), byteAt(line, cur.Column)

	switch text {
	case "(", "[", "{":
		if right == 0 || right == ' ' || right == '\t' || IsClosing(right) || right == ';' || right == ',' {
			return TextWithSelection(text+string(Pairs[text[0]]), SameRow(1, 1))
		}
	case ")", "]", "}":
		if sel.IsEmpty() && right == text[0] {
			return TextWithSelection("", SameRow(1, 1))
		}
	case `"`, "'":
		if !sel.IsEmpty() {
			return None()
		}
		q := text[0]
		if right == q {
			return TextWithSelection("", SameRow(1, 1))
		}
		if left == '\\' || isWordByte(left) || isWordByte(right) {
			return None()
		}
		return TextWithSelection(text+text, SameRow(1, 1))
	case "\n", "\r\n":
		if left == '{' && right == '}' {
			closing := LeadingWhitespace(line)
			indent := closing + host.TabString()
			return TextWithSelection(text+indent+text+closing,
				RowsAndCols(1, len(indent), 1, len(indent)))
		}
	}
	return None()
}

// wrapped surrounds the selected text with a bracket or quote pair and
// keeps the original text selected.
func wrapped(sel buffer.Range, selected string, open byte) TransformResult {
	closing := open
	if IsOpening(open) {
		closing = Pairs[open]
	}
	rowDiff := sel.End.Row - sel.Start.Row
	endCol := sel.End.Column
	if rowDiff == 0 {
		endCol++
	}
	return TextWithSelection(string(open)+selected+string(closing),
		RowsAndCols(0, sel.Start.Column+1, rowDiff, endCol))
}

func cstyleDeletion(host Host, r buffer.Range) DeletionResult {
	if r.IsMultiLine() || r.End.Column-r.Start.Column != 1 {
		return KeepDeletion()
	}
	line := host.Doc().Line(r.Start.Row)
	c := byteAt(line, r.Start.Column)
	next := byteAt(line, r.End.Column)
	switch {
	case IsOpening(c) && next == Pairs[c]:
	case (c == '"' || c == '\'') && next == c:
	default:
		return KeepDeletion()
	}
	r.End.Column++
	return DeleteRange(r)
}

func byteAt(line string, column int) byte {
	if column < 0 || column >= len(line) {
		return 0
	}
	return line[column]
}

func byteBefore(line string, column int) byte {
	return byteAt(line, column-1)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}
