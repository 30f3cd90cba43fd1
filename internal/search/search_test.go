package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/caret/internal/engine/buffer"
)

type lines []string

func (l lines) Length() int         { return len(l) }
func (l lines) Line(row int) string { return l[row] }

func text(s string) lines { return strings.Split(s, "\n") }

func at(r1, c1, r2, c2 int) *buffer.Range {
	r := buffer.NewRange(r1, c1, r2, c2)
	return &r
}

func TestFindForward(t *testing.T) {
	src := text("a--a--a")

	r, ok := New(Options{Needle: "a"}).Find(src)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 0, 0, 1), r)

	r, ok = New(Options{Needle: "a", Start: at(0, 0, 0, 1), SkipCurrent: true}).Find(src)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 3, 0, 4), r)
}

func TestFindBackward(t *testing.T) {
	src := text("a--a--a")

	r, ok := New(Options{Needle: "a", Backwards: true, Start: at(0, 7, 0, 7)}).Find(src)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 6, 0, 7), r)

	r, ok = New(Options{Needle: "a", Backwards: true, SkipCurrent: true, Start: at(0, 6, 0, 7)}).Find(src)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 3, 0, 4), r)
}

func TestFindWrap(t *testing.T) {
	src := text("x a\ny")
	opts := Options{Needle: "a", Start: at(1, 0, 1, 0)}

	_, ok := New(opts).Find(src)
	assert.False(t, ok, "no match after the start without wrap")

	opts.Wrap = true
	r, ok := New(opts).Find(src)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 2, 0, 3), r)

	opts = Options{Needle: "y", Backwards: true, Wrap: true, Start: at(0, 0, 0, 0)}
	r, ok = New(opts).Find(src)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(1, 0, 1, 1), r)
}

func TestFindAllOptions(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want []buffer.Range
	}{
		{
			name: "case insensitive",
			text: "Foo foo",
			opts: Options{Needle: "foo"},
			want: []buffer.Range{buffer.NewRange(0, 0, 0, 3), buffer.NewRange(0, 4, 0, 7)},
		},
		{
			name: "case sensitive",
			text: "Foo foo",
			opts: Options{Needle: "foo", CaseSensitive: true},
			want: []buffer.Range{buffer.NewRange(0, 4, 0, 7)},
		},
		{
			name: "whole word",
			text: "cat catalog cat",
			opts: Options{Needle: "cat", WholeWord: true},
			want: []buffer.Range{buffer.NewRange(0, 0, 0, 3), buffer.NewRange(0, 12, 0, 15)},
		},
		{
			name: "regexp",
			text: "a1 b22",
			opts: Options{Needle: `\d+`, Regexp: true},
			want: []buffer.Range{buffer.NewRange(0, 1, 0, 2), buffer.NewRange(0, 4, 0, 6)},
		},
		{
			name: "literal metacharacters",
			text: "a.b axb",
			opts: Options{Needle: "a.b"},
			want: []buffer.Range{buffer.NewRange(0, 0, 0, 3)},
		},
		{
			name: "byte columns after multibyte runes",
			text: "héllo wörld",
			opts: Options{Needle: "wö"},
			want: []buffer.Range{buffer.NewRange(0, 7, 0, 10)},
		},
		{
			name: "multi-line needle",
			text: "foo\nbar\nbaz",
			opts: Options{Needle: "o\nba"},
			want: []buffer.Range{buffer.NewRange(0, 2, 1, 2)},
		},
		{
			name: "restricted range",
			text: "aa\naa\naa",
			opts: Options{Needle: "a", Range: at(1, 1, 2, 1)},
			want: []buffer.Range{buffer.NewRange(1, 1, 1, 2), buffer.NewRange(2, 0, 2, 1)},
		},
		{
			name: "empty matches skipped",
			text: "abc",
			opts: Options{Needle: "x*", Regexp: true},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.opts).FindAll(text(tt.text))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssembleRegexpErrors(t *testing.T) {
	_, err := AssembleRegexp(Options{})
	assert.ErrorIs(t, err, ErrEmptyNeedle)

	_, err = AssembleRegexp(Options{Needle: "(", Regexp: true})
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = AssembleRegexp(Options{Needle: "a\nb"})
	assert.ErrorIs(t, err, ErrMultiLineNeedle)

	re, err := AssembleRegexp(Options{Needle: "word", WholeWord: true})
	require.NoError(t, err)
	ok, err := re.MatchString("a word here")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Nil(t, New(Options{Needle: "(", Regexp: true}).FindAll(text("(")))
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		input       string
		replacement string
		want        string
		ok          bool
	}{
		{"literal", Options{Needle: "a"}, "a", "bb", "bb", true},
		{"groups", Options{Needle: `(\w+)@(\w+)`, Regexp: true}, "me@host", "$2 at $1 $$ $&", "host at me $ me@host", true},
		{"missing group declines", Options{Needle: `(\w+)`, Regexp: true}, "abc", "$3", "", false},
		{"partial match declines", Options{Needle: "a"}, "ab", "x", "", false},
		{"trailing dollar", Options{Needle: "a"}, "a", "cost$", "cost$", true},
		{"preserve case", Options{Needle: "hello", PreserveCase: true}, "Hello", "world", "World", true},
		{"invalid needle declines", Options{Needle: "[", Regexp: true}, "[", "x", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := New(tt.opts).Replace(tt.input, tt.replacement)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetNeedleKeepsOptions(t *testing.T) {
	s := New(Options{Needle: "a", CaseSensitive: true, Wrap: true})
	s.SetNeedle("b")
	opts := s.Options()
	assert.Equal(t, "b", opts.Needle)
	assert.True(t, opts.CaseSensitive)
	assert.True(t, opts.Wrap)
}
