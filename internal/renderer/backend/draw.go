package backend

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/mode"
	"github.com/dshills/caret/internal/renderer/highlight"
	"github.com/dshills/caret/internal/renderer/viewport"
)

// Styles are the styles text is drawn in.
type Styles struct {
	Text      tcell.Style
	Selection tcell.Style
	Highlight tcell.Style
	Bracket   tcell.Style
	Status    tcell.Style

	// Syntax styles a token type. Nil draws every token as Text.
	Syntax func(tokenType string) tcell.Style
}

// ThemeStyles draws with a syntax theme.
func ThemeStyles(t *highlight.Theme) Styles {
	return Styles{
		Text:      t.Text,
		Selection: t.Selection,
		Highlight: t.Highlight,
		Bracket:   t.Bracket,
		Status:    t.Status,
		Syntax:    t.StyleFor,
	}
}

// DefaultStyles returns the built-in styles.
func DefaultStyles() Styles {
	return Styles{
		Text:      tcell.StyleDefault,
		Selection: tcell.StyleDefault.Reverse(true),
		Highlight: tcell.StyleDefault.Underline(true),
		Bracket:   tcell.StyleDefault.Bold(true).Underline(true),
		Status:    tcell.StyleDefault.Reverse(true),
	}
}

// Source supplies the rows to draw.
type Source interface {
	Length() int
	Line(row int) string
}

// TokenSource is a Source that can also tokenize its rows.
type TokenSource interface {
	Source
	Tokens(row int) []mode.Token
}

// Frame is one screen's worth of editor state.
type Frame struct {
	Cursor     buffer.Point
	Selections []buffer.Range
	Highlights []buffer.Range
	Brackets   []buffer.Range
	Status     string
	TabSize    int
}

// Draw renders the rows visible in v, the status line on the last
// terminal row, and places the cursor. The viewport's left column is
// taken in display cells.
func (t *Terminal) Draw(src Source, v *viewport.Viewport, f Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tabSize := f.TabSize
	if tabSize < 1 {
		tabSize = 4
	}
	width, height := t.screen.Size()
	t.screen.Fill(' ', t.styles.Text)

	left := v.LeftColumn()
	first, last := v.FirstRow(), min(v.LastRow(), src.Length()-1)
	tokens, _ := src.(TokenSource)
	for row := first; row <= last && row-first < height-1; row++ {
		var base []tcell.Style
		if tokens != nil && t.styles.Syntax != nil {
			base = t.tokenStyles(tokens.Tokens(row))
		}
		t.drawLine(row-first, src.Line(row), row, left, width, tabSize, base, f)
	}

	status := []rune(f.Status)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		t.screen.SetContent(x, height-1, r, nil, t.styles.Status)
		x += max(runewidth.RuneWidth(r), 1)
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, height-1, ' ', nil, t.styles.Status)
	}

	cx := DisplayColumn(src.Line(f.Cursor.Row), f.Cursor.Column, tabSize) - left
	cy := f.Cursor.Row - first
	if cy >= 0 && cy < height-1 && cx >= 0 && cx < width {
		t.screen.ShowCursor(cx, cy)
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
}

// tokenStyles returns the syntax style of every byte of a row.
func (t *Terminal) tokenStyles(tokens []mode.Token) []tcell.Style {
	var out []tcell.Style
	for _, tok := range tokens {
		style := t.styles.Syntax(tok.Type)
		for range len(tok.Value) {
			out = append(out, style)
		}
	}
	return out
}

func (t *Terminal) drawLine(y int, line string, row, left, width, tabSize int, base []tcell.Style, f Frame) {
	cell := 0
	for col, r := range line {
		text := t.styles.Text
		if col < len(base) {
			text = base[col]
		}
		style := t.styleAt(buffer.Point{Row: row, Column: col}, text, f)
		w := runewidth.RuneWidth(r)
		if r == '\t' {
			w = tabSize - cell%tabSize
			r = ' '
		}
		for i := range w {
			x := cell + i - left
			if x < 0 || x >= width {
				continue
			}
			// Wide runes occupy their first cell; tabs fill every cell.
			if i == 0 || r == ' ' {
				t.screen.SetContent(x, y, r, nil, style)
			}
		}
		cell += w
	}
}

func (t *Terminal) styleAt(p buffer.Point, text tcell.Style, f Frame) tcell.Style {
	for _, r := range f.Brackets {
		if inRange(r, p) {
			return t.styles.Bracket
		}
	}
	for _, r := range f.Selections {
		if inRange(r, p) {
			return t.styles.Selection
		}
	}
	for _, r := range f.Highlights {
		if inRange(r, p) {
			return t.styles.Highlight
		}
	}
	return text
}

// inRange reports whether the character starting at p lies in r.
func inRange(r buffer.Range, p buffer.Point) bool {
	return !r.IsEmpty() && r.ComparePoint(p.Row, p.Column) == 0 && p != r.End
}

// DisplayColumn converts a byte column of line to a cell column,
// expanding tabs to tabSize stops.
func DisplayColumn(line string, column, tabSize int) int {
	if tabSize < 1 {
		tabSize = 4
	}
	cell := 0
	for col, r := range line {
		if col >= column {
			break
		}
		if r == '\t' {
			cell += tabSize - cell%tabSize
			continue
		}
		cell += runewidth.RuneWidth(r)
	}
	return cell
}
