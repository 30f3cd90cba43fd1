package mode

import (
	"errors"
	"strings"

	"github.com/dshills/caret/internal/engine/buffer"
)

// ErrUnknownMode is returned by New for names it does not know.
var ErrUnknownMode = errors.New("unknown mode")

// Host is the view of the editor a mode needs while transforming input.
type Host interface {
	Doc() *buffer.Document
	SelectionRange() buffer.Range
	InMultiSelectMode() bool
	TabString() string
	FindMatchingBracket(p buffer.Point) (buffer.Point, bool)
}

// Mode supplies language behaviour to the editor.
type Mode interface {
	ID() string
	Tokenizer() Tokenizer

	// TransformInsertion may rewrite typed text before it is inserted.
	TransformInsertion(state string, host Host, text string) TransformResult

	// TransformDeletion may widen a range before it is removed.
	TransformDeletion(state string, host Host, r buffer.Range) DeletionResult

	NextLineIndent(state, line, tab string) string
	CheckOutdent(state, line, input string) bool
	AutoOutdent(state string, host Host, row int)

	LineCommentStart() string
	ToggleCommentLines(state string, doc *buffer.Document, first, last int)
}

// TransformKind tags a TransformResult.
type TransformKind uint8

const (
	TransformNone TransformKind = iota
	TransformTextOnly
	TransformTextWithSelection
)

// TransformResult is the outcome of an insertion transform.
type TransformResult struct {
	Kind      TransformKind
	Text      string
	Selection RelativeSelection
}

// None declines the transform.
func None() TransformResult { return TransformResult{} }

// TextOnly replaces the inserted text.
func TextOnly(text string) TransformResult {
	return TransformResult{Kind: TransformTextOnly, Text: text}
}

// TextWithSelection replaces the inserted text and selects part of it
// afterwards.
func TextWithSelection(text string, sel RelativeSelection) TransformResult {
	return TransformResult{Kind: TransformTextWithSelection, Text: text, Selection: sel}
}

// Declined reports whether the mode left the input alone.
func (t TransformResult) Declined() bool { return t.Kind == TransformNone }

// SelectionKind tags a RelativeSelection.
type SelectionKind uint8

const (
	SelectionSameRow SelectionKind = iota
	SelectionRowsAndCols
)

// RelativeSelection places a selection relative to where text was
// inserted. SameRow uses column offsets from the insertion column;
// RowsAndCols uses row offsets from the insertion row and absolute
// columns.
type RelativeSelection struct {
	Kind                  SelectionKind
	StartRow, StartColumn int
	EndRow, EndColumn     int
}

// SameRow selects [start, end) columns after the insertion column.
func SameRow(start, end int) RelativeSelection {
	return RelativeSelection{Kind: SelectionSameRow, StartColumn: start, EndColumn: end}
}

// RowsAndCols selects from (row+rowDelta1, col1) to (row+rowDelta2, col2).
func RowsAndCols(rowDelta1, col1, rowDelta2, col2 int) RelativeSelection {
	return RelativeSelection{
		Kind:     SelectionRowsAndCols,
		StartRow: rowDelta1, StartColumn: col1,
		EndRow: rowDelta2, EndColumn: col2,
	}
}

// Resolve returns the absolute range for an insertion made at origin.
func (s RelativeSelection) Resolve(origin buffer.Point) buffer.Range {
	if s.Kind == SelectionSameRow {
		return buffer.NewRange(origin.Row, origin.Column+s.StartColumn,
			origin.Row, origin.Column+s.EndColumn)
	}
	return buffer.NewRange(origin.Row+s.StartRow, s.StartColumn,
		origin.Row+s.EndRow, s.EndColumn)
}

// DeletionKind tags a DeletionResult.
type DeletionKind uint8

const (
	DeletionNone DeletionKind = iota
	DeletionRange
)

// DeletionResult is the outcome of a deletion transform.
type DeletionResult struct {
	Kind  DeletionKind
	Range buffer.Range
}

// KeepDeletion declines the deletion transform.
func KeepDeletion() DeletionResult { return DeletionResult{} }

// DeleteRange replaces the range to remove.
func DeleteRange(r buffer.Range) DeletionResult {
	return DeletionResult{Kind: DeletionRange, Range: r}
}

// Base implements Mode with neutral behaviour. Concrete modes embed it
// and override what they need.
type Base struct {
	id           string
	tokenizer    Tokenizer
	commentStart string
}

// ID returns the mode identifier.
func (b *Base) ID() string { return b.id }

// Tokenizer returns the mode tokenizer.
func (b *Base) Tokenizer() Tokenizer { return b.tokenizer }

// TransformInsertion declines.
func (b *Base) TransformInsertion(string, Host, string) TransformResult { return None() }

// TransformDeletion declines.
func (b *Base) TransformDeletion(string, Host, buffer.Range) DeletionResult {
	return KeepDeletion()
}

// NextLineIndent keeps the indentation of line.
func (b *Base) NextLineIndent(_, line, _ string) string { return LeadingWhitespace(line) }

// CheckOutdent returns false.
func (b *Base) CheckOutdent(string, string, string) bool { return false }

// AutoOutdent does nothing.
func (b *Base) AutoOutdent(string, Host, int) {}

// LineCommentStart returns the line comment marker, if any.
func (b *Base) LineCommentStart() string { return b.commentStart }

// ToggleCommentLines comments rows first..last with the line comment
// marker, or uncomments them when every non-blank row already carries it.
func (b *Base) ToggleCommentLines(_ string, doc *buffer.Document, first, last int) {
	marker := b.commentStart
	if marker == "" {
		return
	}

	commented := true
	minIndent := -1
	for row := first; row <= last; row++ {
		line := doc.Line(row)
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(LeadingWhitespace(line))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
		if !strings.HasPrefix(line[indent:], marker) {
			commented = false
		}
	}
	if minIndent < 0 {
		return
	}

	for row := first; row <= last; row++ {
		line := doc.Line(row)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if commented {
			at := len(LeadingWhitespace(line))
			end := at + len(marker)
			if end < len(line) && line[end] == ' ' {
				end++
			}
			doc.RemoveInLine(row, at, end)
			continue
		}
		doc.InsertInLine(buffer.Point{Row: row, Column: minIndent}, marker+" ")
	}
}

// LeadingWhitespace returns the run of spaces and tabs starting line.
func LeadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// TextMode is plain text: no behaviours, indentation carried over.
type TextMode struct {
	Base
}

// NewTextMode returns the plain text mode.
func NewTextMode() *TextMode {
	return &TextMode{Base: Base{id: "text", tokenizer: BasicTokenizer{}}}
}

// New returns the built-in mode registered under name.
func New(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "", "text", "plain":
		return NewTextMode(), nil
	case "c", "cstyle", "go", "javascript", "js", "java", "rust":
		return NewCStyleMode(name), nil
	case "html", "xml", "markup":
		return NewMarkupMode(name), nil
	}
	return nil, ErrUnknownMode
}

// ForFilename picks a mode from a file name. Files chroma cannot
// classify get the plain text mode.
func ForFilename(filename string) Mode {
	tok := ChromaTokenizerForFile(filename)
	if tok == nil {
		return NewTextMode()
	}
	switch name := strings.ToLower(tok.Name()); name {
	case "html", "xml", "svg":
		m := NewMarkupMode(name)
		m.tokenizer = tok
		return m
	case "c", "c++", "go", "javascript", "typescript", "java", "rust", "c#", "lua":
		m := NewCStyleMode(name)
		m.tokenizer = tok
		if name == "lua" {
			m.commentStart = "--"
		}
		return m
	default:
		m := NewTextMode()
		m.id = name
		m.tokenizer = tok
		return m
	}
}
