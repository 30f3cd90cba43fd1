package engine

import (
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/mode"
)

// DefaultTabSize is the indent width used when none is given.
const DefaultTabSize = 4

type sessionConfig struct {
	tabSize        int
	useSoftTabs    bool
	maxUndoEntries int
	lineEnding     buffer.LineEnding
	mode           mode.Mode
}

// Option configures a Session during creation.
type Option func(*sessionConfig)

// WithTabSize sets the indent width.
func WithTabSize(n int) Option {
	return func(c *sessionConfig) {
		if n > 0 {
			c.tabSize = n
		}
	}
}

// WithSoftTabs selects spaces (true) or tab characters for indentation.
func WithSoftTabs(v bool) Option {
	return func(c *sessionConfig) {
		c.useSoftTabs = v
	}
}

// WithMaxUndoEntries sets the maximum number of undo groups.
func WithMaxUndoEntries(max int) Option {
	return func(c *sessionConfig) {
		if max > 0 {
			c.maxUndoEntries = max
		}
	}
}

// WithLineEnding sets the line ending used when joining lines.
func WithLineEnding(le buffer.LineEnding) Option {
	return func(c *sessionConfig) {
		c.lineEnding = le
	}
}

// WithMode sets the initial language mode.
func WithMode(m mode.Mode) Option {
	return func(c *sessionConfig) {
		c.mode = m
	}
}
