package mode

import (
	"regexp"
	"strings"
)

var openTagAtEnd = regexp.MustCompile(`<([A-Za-z_][\w:.-]*)[^<>]*>\s*$`)

// MarkupMode handles tag languages. Typing ">" after an opening tag
// inserts the matching close tag, and a newline between the two indents
// the content.
type MarkupMode struct {
	Base
}

// NewMarkupMode returns a markup mode using the basic tag tokenizer.
func NewMarkupMode(id string) *MarkupMode {
	if id == "" {
		id = "xml"
	}
	return &MarkupMode{Base: Base{
		id:        id,
		tokenizer: BasicTokenizer{Tags: true, BlockComment: [2]string{"<!--", "-->"}, Quotes: `"'`},
	}}
}

// TransformInsertion implements Mode.
func (m *MarkupMode) TransformInsertion(_ string, host Host, text string) TransformResult {
	sel := host.SelectionRange()
	if !sel.IsEmpty() {
		return None()
	}
	line := host.Doc().Line(sel.Start.Row)
	before, after := line[:sel.Start.Column], line[sel.Start.Column:]

	switch text {
	case ">":
		candidate := before + ">"
		loc := openTagAtEnd.FindStringSubmatchIndex(candidate)
		if loc == nil || strings.HasSuffix(before, "/") || strings.HasPrefix(after, "</") {
			return None()
		}
		name := candidate[loc[2]:loc[3]]
		return TextWithSelection("></"+name+">", SameRow(1, 1))
	case "\n", "\r\n":
		if !strings.HasSuffix(before, ">") || !strings.HasPrefix(after, "</") {
			return None()
		}
		closing := LeadingWhitespace(line)
		indent := closing + host.TabString()
		return TextWithSelection(text+indent+text+closing,
			RowsAndCols(1, len(indent), 1, len(indent)))
	}
	return None()
}

// NextLineIndent adds one level after a line ending in an opening tag.
func (m *MarkupMode) NextLineIndent(_, line, tab string) string {
	indent := LeadingWhitespace(line)
	if openTagAtEnd.MatchString(line) && !strings.HasSuffix(strings.TrimSpace(line), "/>") {
		indent += tab
	}
	return indent
}
