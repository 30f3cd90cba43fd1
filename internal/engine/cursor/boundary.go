package cursor

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/caret/internal/engine/buffer"
)

// PrevGrapheme returns the byte column of the grapheme cluster that ends
// at column. It returns 0 at the start of the line.
func PrevGrapheme(line string, column int) int {
	if column > len(line) {
		column = len(line)
	}
	prev := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		from, to := g.Positions()
		if to >= column {
			return from
		}
		prev = to
	}
	return prev
}

// NextGrapheme returns the byte column just past the grapheme cluster
// that starts at column. It returns len(line) at the end of the line.
func NextGrapheme(line string, column int) int {
	if column >= len(line) {
		return len(line)
	}
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		_, to := g.Positions()
		if to > column {
			return to
		}
	}
	return len(line)
}

// IsWordRune reports whether r is part of an identifier-like word.
func IsWordRune(r rune) bool {
	return r == '_' || r >= 0xa1 || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNonWordRune(r rune) bool { return !IsWordRune(r) }

func runeAt(line string, column int) (rune, bool) {
	if column < 0 || column >= len(line) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(line[column:])
	return r, true
}

func runeBefore(line string, column int) (rune, bool) {
	if column <= 0 || column > len(line) {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(line[:column])
	return r, true
}

// WordRange returns the run of same-class characters around column on
// the given row. Word characters win over whitespace, and a position
// between two spaces selects the whitespace run.
func WordRange(line string, row, column int) Range {
	if column > len(line) {
		column = len(line)
	}
	if column < 0 {
		column = 0
	}

	before, hasBefore := runeBefore(line, column)
	at, hasAt := runeAt(line, column)

	var class func(rune) bool
	switch {
	case (hasBefore && IsWordRune(before)) || (hasAt && IsWordRune(at)):
		class = IsWordRune
	case hasBefore && hasAt && unicode.IsSpace(before) && unicode.IsSpace(at):
		class = unicode.IsSpace
	default:
		class = isNonWordRune
	}

	start := column
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if !class(r) {
			break
		}
		start -= size
	}
	end := column
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !class(r) {
			break
		}
		end += size
	}
	return buffer.NewRange(row, start, row, end)
}

// wordRightColumn returns the column after skipping leading whitespace
// and then one run of same-class characters. ok is false at end of line.
func wordRightColumn(line string, column int) (int, bool) {
	for column < len(line) {
		r, size := utf8.DecodeRuneInString(line[column:])
		if !unicode.IsSpace(r) {
			break
		}
		column += size
	}
	r, ok := runeAt(line, column)
	if !ok {
		return column, false
	}
	word := IsWordRune(r)
	for column < len(line) {
		r, size := utf8.DecodeRuneInString(line[column:])
		if unicode.IsSpace(r) || IsWordRune(r) != word {
			break
		}
		column += size
	}
	return column, true
}

// wordLeftColumn mirrors wordRightColumn towards the start of the line.
func wordLeftColumn(line string, column int) (int, bool) {
	for column > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:column])
		if !unicode.IsSpace(r) {
			break
		}
		column -= size
	}
	r, ok := runeBefore(line, column)
	if !ok {
		return column, false
	}
	word := IsWordRune(r)
	for column > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:column])
		if unicode.IsSpace(r) || IsWordRune(r) != word {
			break
		}
		column -= size
	}
	return column, true
}

// FirstNonBlank returns the column of the first non-whitespace character,
// or len(line) when the line is blank.
func FirstNonBlank(line string) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}
