package mode

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a typed slice of a line. Types use dotted classes such as
// "paren.lparen" or "meta.tag.tag-name"; consumers match on substrings.
type Token struct {
	Type  string
	Value string
}

// LineTokens holds the tokens of one row and the tokenizer state at the
// end of that row.
type LineTokens struct {
	Tokens []Token
	State  string
}

// Tokenizer splits document lines into tokens. Implementations must be
// deterministic and must cover every byte of each line.
type Tokenizer interface {
	Tokenize(lines []string) []LineTokens
}

// Tokenizer states.
const (
	StateStart   = "start"
	StateTag     = "tag"
	StateComment = "comment"
)

// Token types produced by the built-in tokenizers.
const (
	TypeText       = "text"
	TypeLParen     = "paren.lparen"
	TypeRParen     = "paren.rparen"
	TypeString     = "string"
	TypeComment    = "comment"
	TypeIdentifier = "identifier"
	TypeKeyword    = "keyword"
	TypeNumber     = "constant.numeric"
	TypeTagOpen    = "meta.tag.punctuation.tag-open"
	TypeEndTagOpen = "meta.tag.punctuation.end-tag-open"
	TypeTagClose   = "meta.tag.punctuation.tag-close"
	TypeTagName    = "meta.tag.tag-name"
	TypeAttribute  = "entity.other.attribute-name"
	TypeAttrEquals = "keyword.operator.attribute-equals"
	TypeTagText    = "meta.tag.text"
)

// IsTagName reports whether a token type names a markup tag.
func IsTagName(tokenType string) bool {
	return strings.Contains(tokenType, "tag-name")
}

// IsTagClose reports whether a token type ends a markup tag.
func IsTagClose(tokenType string) bool {
	return strings.Contains(tokenType, "tag-close")
}

// BracketClass normalizes a token type so opening and closing brackets
// of the same family compare equal.
func BracketClass(tokenType string) string {
	return strings.Replace(tokenType, "rparen", "lparen", 1)
}

// Brackets maps every bracket character to its opening form.
var Brackets = map[byte]byte{
	'(': '(', ')': '(',
	'[': '[', ']': '[',
	'{': '{', '}': '{',
}

// Pairs maps opening brackets to closing ones and back.
var Pairs = map[byte]byte{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
}

// IsOpening reports whether c opens a bracket pair.
func IsOpening(c byte) bool { return c == '(' || c == '[' || c == '{' }

// IsClosing reports whether c closes a bracket pair.
func IsClosing(c byte) bool { return c == ')' || c == ']' || c == '}' }

// BasicTokenizer is a small language-agnostic tokenizer. It recognizes
// brackets, quoted strings, comments, numbers, identifiers and,
// when Tags is set, markup tags.
type BasicTokenizer struct {
	Tags         bool
	LineComment  string // e.g. "//"; empty disables
	BlockComment [2]string
	Quotes       string // quote characters, e.g. `"'`
}

// Tokenize implements Tokenizer.
func (b BasicTokenizer) Tokenize(lines []string) []LineTokens {
	out := make([]LineTokens, len(lines))
	state := StateStart
	for i, line := range lines {
		var toks []Token
		toks, state = b.tokenizeLine(line, state)
		out[i] = LineTokens{Tokens: toks, State: state}
	}
	return out
}

type lineScanner struct {
	line string
	pos  int
	toks []Token
}

func (s *lineScanner) emit(tokenType string, end int) {
	if end <= s.pos {
		return
	}
	value := s.line[s.pos:end]
	s.pos = end
	if n := len(s.toks); n > 0 && tokenType == TypeText && s.toks[n-1].Type == TypeText {
		s.toks[n-1].Value += value
		return
	}
	s.toks = append(s.toks, Token{Type: tokenType, Value: value})
}

func (s *lineScanner) rest() string { return s.line[s.pos:] }

func (b BasicTokenizer) tokenizeLine(line, state string) ([]Token, string) {
	s := &lineScanner{line: line}
	for s.pos < len(line) {
		switch state {
		case StateComment:
			end := b.BlockComment[1]
			if i := strings.Index(s.rest(), end); i >= 0 {
				s.emit(TypeComment, s.pos+i+len(end))
				state = StateStart
			} else {
				s.emit(TypeComment, len(line))
			}
		case StateTag:
			state = b.scanTag(s)
		default:
			state = b.scanStart(s)
		}
	}
	return s.toks, state
}

func (b BasicTokenizer) scanStart(s *lineScanner) string {
	rest := s.rest()
	c := rest[0]
	r, size := utf8.DecodeRuneInString(rest)

	switch {
	case unicode.IsSpace(r):
		s.emit(TypeText, s.pos+spaceRun(rest))
	case b.LineComment != "" && strings.HasPrefix(rest, b.LineComment):
		s.emit(TypeComment, len(s.line))
	case b.BlockComment[0] != "" && strings.HasPrefix(rest, b.BlockComment[0]):
		end := b.BlockComment[1]
		if i := strings.Index(rest[len(b.BlockComment[0]):], end); i >= 0 {
			s.emit(TypeComment, s.pos+len(b.BlockComment[0])+i+len(end))
			return StateStart
		}
		s.emit(TypeComment, len(s.line))
		return StateComment
	case strings.IndexByte(b.Quotes, c) >= 0:
		s.emit(TypeString, s.pos+quotedLen(rest))
	case b.Tags && strings.HasPrefix(rest, "</") && startsName(rest[2:]):
		s.emit(TypeEndTagOpen, s.pos+2)
		s.emit(TypeTagName, s.pos+nameLen(s.rest()))
		return StateTag
	case b.Tags && c == '<' && startsName(rest[1:]):
		s.emit(TypeTagOpen, s.pos+1)
		s.emit(TypeTagName, s.pos+nameLen(s.rest()))
		return StateTag
	case IsOpening(c):
		s.emit(TypeLParen, s.pos+1)
	case IsClosing(c):
		s.emit(TypeRParen, s.pos+1)
	case unicode.IsDigit(r):
		s.emit(TypeNumber, s.pos+wordLen(rest))
	case r == '_' || unicode.IsLetter(r) || r >= 0xa1:
		s.emit(TypeIdentifier, s.pos+wordLen(rest))
	default:
		s.emit(TypeText, s.pos+size)
	}
	return StateStart
}

func (b BasicTokenizer) scanTag(s *lineScanner) string {
	rest := s.rest()
	c := rest[0]
	r, size := utf8.DecodeRuneInString(rest)
	switch {
	case unicode.IsSpace(r):
		s.emit(TypeTagText, s.pos+spaceRun(rest))
	case strings.HasPrefix(rest, "/>"):
		s.emit(TypeTagClose, s.pos+2)
		return StateStart
	case c == '>':
		s.emit(TypeTagClose, s.pos+1)
		return StateStart
	case c == '=':
		s.emit(TypeAttrEquals, s.pos+1)
	case strings.IndexByte(b.Quotes, c) >= 0:
		s.emit(TypeString, s.pos+quotedLen(rest))
	case startsName(rest):
		s.emit(TypeAttribute, s.pos+nameLen(rest))
	default:
		s.emit(TypeTagText, s.pos+size)
	}
	return StateTag
}

func spaceRun(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}

func wordLen(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r < 0xa1 {
			break
		}
		n += size
	}
	return n
}

func startsName(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r) || r == '_'
}

func nameLen(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r != '_' && r != '-' && r != ':' && r != '.' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		n += size
	}
	return n
}

// quotedLen returns the length of the quoted string at the start of s,
// or len(s) when it is not terminated on this line.
func quotedLen(s string) int {
	q := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i + 1
		}
	}
	return len(s)
}
