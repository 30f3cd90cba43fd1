package engine

import (
	"github.com/dshills/caret/internal/mode"
)

// TokenInfo is a token located in its row.
type TokenInfo struct {
	mode.Token
	Index int // position in the row's token list
	Start int // column of the first byte
}

// lineTokens returns the cached tokens of every row, tokenizing the
// document when the cache is stale.
func (s *Session) lineTokens() []mode.LineTokens {
	s.mu.RLock()
	toks := s.tokens
	m := s.mode
	gen := s.tokenGen
	s.mu.RUnlock()
	if toks != nil {
		return toks
	}

	lines := s.doc.AllLines()
	toks = m.Tokenizer().Tokenize(lines)
	s.mu.Lock()
	if s.tokenGen == gen {
		s.tokens = toks
	}
	s.mu.Unlock()
	return toks
}

// Tokens returns the tokens of row.
func (s *Session) Tokens(row int) []mode.Token {
	toks := s.lineTokens()
	if row < 0 || row >= len(toks) {
		return nil
	}
	return toks[row].Tokens
}

// State returns the tokenizer state at the end of row.
func (s *Session) State(row int) string {
	toks := s.lineTokens()
	if row < 0 || row >= len(toks) {
		return mode.StateStart
	}
	return toks[row].State
}

// TokenAt returns the token covering column on row: the first token
// whose end is at or after column. A column of -1 selects the last token.
func (s *Session) TokenAt(row, column int) (TokenInfo, bool) {
	tokens := s.Tokens(row)
	if len(tokens) == 0 {
		return TokenInfo{}, false
	}
	i, c := 0, 0
	if column < 0 {
		i = len(tokens) - 1
		c = len(s.doc.Line(row))
	} else {
		for i = 0; i < len(tokens); i++ {
			c += len(tokens[i].Value)
			if c >= column {
				break
			}
		}
	}
	if i >= len(tokens) {
		return TokenInfo{}, false
	}
	return TokenInfo{Token: tokens[i], Index: i, Start: c - len(tokens[i].Value)}, true
}

// TokenIterator walks tokens across rows.
type TokenIterator struct {
	session *Session
	row     int
	tokens  []mode.Token
	index   int
}

// NewTokenIterator positions an iterator on the token at (row, column).
func (s *Session) NewTokenIterator(row, column int) *TokenIterator {
	it := &TokenIterator{session: s, row: row, tokens: s.Tokens(row), index: -1}
	if tok, ok := s.TokenAt(row, column); ok {
		it.index = tok.Index
	}
	return it
}

// Current returns the token under the iterator.
func (it *TokenIterator) Current() (mode.Token, bool) {
	if it.index < 0 || it.index >= len(it.tokens) {
		return mode.Token{}, false
	}
	return it.tokens[it.index], true
}

// StepBackward moves to the previous token, crossing rows.
func (it *TokenIterator) StepBackward() (mode.Token, bool) {
	it.index--
	for it.index < 0 {
		it.row--
		if it.row < 0 {
			it.row = 0
			return mode.Token{}, false
		}
		it.tokens = it.session.Tokens(it.row)
		it.index = len(it.tokens) - 1
	}
	return it.tokens[it.index], true
}

// StepForward moves to the next token, crossing rows.
func (it *TokenIterator) StepForward() (mode.Token, bool) {
	it.index++
	rows := it.session.Length()
	for it.index >= len(it.tokens) {
		it.row++
		if it.row >= rows {
			it.row = rows - 1
			return mode.Token{}, false
		}
		it.tokens = it.session.Tokens(it.row)
		it.index = 0
	}
	return it.tokens[it.index], true
}

// Row returns the row of the current token.
func (it *TokenIterator) Row() int { return it.row }

// Column returns the column where the current token starts.
func (it *TokenIterator) Column() int {
	c := 0
	for i := 0; i < it.index && i < len(it.tokens); i++ {
		c += len(it.tokens[i].Value)
	}
	return c
}

// Position returns the start of the current token.
func (it *TokenIterator) Position() Point {
	return Point{Row: it.row, Column: it.Column()}
}

// TokenRange returns the span of the current token.
func (it *TokenIterator) TokenRange() Range {
	tok, _ := it.Current()
	start := it.Position()
	return Range{Start: start, End: Point{Row: start.Row, Column: start.Column + len(tok.Value)}}
}
