package search

import (
	"strings"
	"unicode"
)

// Replace substitutes replacement for input, which must be one complete
// match of the needle. Templates understand $& for the whole match, $n
// and $nn for groups and $$ for a dollar sign. It declines, returning
// false, when input is not a full match or a template names a group the
// pattern does not have.
func (s *Search) Replace(input, replacement string) (string, bool) {
	res, err := assemble(s.opts)
	if err != nil {
		return "", false
	}
	if len(res) > 1 {
		// Multi-line needles are replaced verbatim.
		return replacement, true
	}
	re := res[0]
	m, err := re.FindStringMatch(input)
	if err != nil || m == nil || m.Index != 0 || m.Length != len([]rune(input)) {
		return "", false
	}

	groups := m.Groups()
	var b strings.Builder
	for i := 0; i < len(replacement); i++ {
		c := replacement[i]
		if c != '$' || i+1 >= len(replacement) {
			b.WriteByte(c)
			continue
		}
		next := replacement[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(input)
			i++
		case next >= '0' && next <= '9':
			n := int(next - '0')
			width := 1
			if i+2 < len(replacement) && isDigit(replacement[i+2]) {
				if two := n*10 + int(replacement[i+2]-'0'); two < len(groups) {
					n, width = two, 2
				}
			}
			if n == 0 || n >= len(groups) {
				return "", false
			}
			b.WriteString(groups[n].String())
			i += width
		default:
			b.WriteByte(c)
		}
	}

	out := b.String()
	if s.opts.PreserveCase {
		out = preserveCase(input, out)
	}
	return out, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// preserveCase copies the letter case of input onto the leading runes
// of replacement.
func preserveCase(input, replacement string) string {
	in := []rune(input)
	out := []rune(replacement)
	for i := 0; i < len(in) && i < len(out); i++ {
		if unicode.IsUpper(in[i]) {
			out[i] = unicode.ToUpper(out[i])
		} else {
			out[i] = unicode.ToLower(out[i])
		}
	}
	return string(out)
}
