package mode

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ChromaTokenizer adapts a chroma lexer to the Tokenizer contract.
// Bracket punctuation is split into single-character paren tokens and
// markup punctuation into tag-open/tag-close tokens.
type ChromaTokenizer struct {
	lexer chroma.Lexer
}

// NewChromaTokenizer returns a tokenizer for the named chroma lexer.
// It returns nil if chroma has no lexer of that name.
func NewChromaTokenizer(name string) *ChromaTokenizer {
	lex := lexers.Get(name)
	if lex == nil {
		return nil
	}
	return &ChromaTokenizer{lexer: chroma.Coalesce(lex)}
}

// ChromaTokenizerForFile picks a lexer from the file name.
func ChromaTokenizerForFile(filename string) *ChromaTokenizer {
	lex := lexers.Match(filename)
	if lex == nil {
		return nil
	}
	return &ChromaTokenizer{lexer: chroma.Coalesce(lex)}
}

// Name returns the lexer name.
func (c *ChromaTokenizer) Name() string {
	return c.lexer.Config().Name
}

// Tokenize implements Tokenizer. The whole document is lexed at once so
// constructs spanning rows keep their context.
func (c *ChromaTokenizer) Tokenize(lines []string) []LineTokens {
	out := make([]LineTokens, len(lines))
	for i := range out {
		out[i].State = StateStart
	}

	it, err := c.lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		// Lexing failures degrade to plain text rows.
		for i, line := range lines {
			if line != "" {
				out[i].Tokens = []Token{{Type: TypeText, Value: line}}
			}
		}
		return out
	}

	row := 0
	for _, tok := range it.Tokens() {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				if tok.Type.InCategory(chroma.Comment) {
					out[row].State = StateComment
				}
				row++
			}
			if row >= len(out) {
				return out
			}
			if part == "" {
				continue
			}
			for _, t := range classify(tok.Type, part) {
				out[row].Tokens = appendToken(out[row].Tokens, t)
			}
		}
	}
	return out
}

func appendToken(toks []Token, t Token) []Token {
	if n := len(toks); n > 0 && t.Type == TypeText && toks[n-1].Type == TypeText {
		toks[n-1].Value += t.Value
		return toks
	}
	return append(toks, t)
}

// classify maps one chroma token to one or more typed tokens.
func classify(tt chroma.TokenType, value string) []Token {
	switch {
	case tt == chroma.NameTag:
		return []Token{{Type: TypeTagName, Value: value}}
	case tt.InCategory(chroma.Comment):
		return []Token{{Type: TypeComment, Value: value}}
	case tt.InCategory(chroma.LiteralString):
		return []Token{{Type: TypeString, Value: value}}
	case tt.InCategory(chroma.LiteralNumber):
		return []Token{{Type: TypeNumber, Value: value}}
	case tt == chroma.NameAttribute:
		return []Token{{Type: TypeAttribute, Value: value}}
	case tt == chroma.Punctuation:
		return splitPunctuation(value)
	case tt.InCategory(chroma.Keyword):
		return []Token{{Type: TypeKeyword, Value: value}}
	case tt.InCategory(chroma.Name):
		return []Token{{Type: TypeIdentifier, Value: value}}
	}
	return []Token{{Type: TypeText, Value: value}}
}

// splitPunctuation breaks coalesced punctuation such as "})" or "></"
// into bracket and tag tokens.
func splitPunctuation(value string) []Token {
	var out []Token
	for i := 0; i < len(value); {
		c := value[i]
		switch {
		case IsOpening(c):
			out = append(out, Token{Type: TypeLParen, Value: value[i : i+1]})
			i++
		case IsClosing(c):
			out = append(out, Token{Type: TypeRParen, Value: value[i : i+1]})
			i++
		case strings.HasPrefix(value[i:], "</"):
			out = append(out, Token{Type: TypeEndTagOpen, Value: "</"})
			i += 2
		case strings.HasPrefix(value[i:], "/>"):
			out = append(out, Token{Type: TypeTagClose, Value: "/>"})
			i += 2
		case c == '<':
			out = append(out, Token{Type: TypeTagOpen, Value: "<"})
			i++
		case c == '>':
			out = append(out, Token{Type: TypeTagClose, Value: ">"})
			i++
		default:
			out = appendToken(out, Token{Type: TypeText, Value: value[i : i+1]})
			i++
		}
	}
	return out
}
