package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// optionEntry describes one named option. apply receives a value that
// has already passed validate.
type optionEntry struct {
	validate func(value any) (any, error)
	apply    func(e *Editor, value any)
	current  func(e *Editor) any

	// session marks options stored on the bound session; they are
	// skipped while no session is bound.
	session bool
}

var optionTable = map[string]optionEntry{
	"behavioursEnabled": boolOption(func(s *settings) *bool { return &s.behavioursEnabled }),
	"autoIndent":        boolOption(func(s *settings) *bool { return &s.autoIndent }),
	"readOnly":          boolOption(func(s *settings) *bool { return &s.readOnly }),
	"highlightBrackets": {
		validate: asBool,
		apply: func(e *Editor, v any) {
			e.settings.highlightBrackets = v.(bool)
			if e.settings.highlightBrackets {
				e.scheduleBracketHighlight()
			} else {
				e.clearBracketHighlight()
			}
		},
		current: func(e *Editor) any { return e.settings.highlightBrackets },
	},
	"highlightSelectedWord": {
		validate: asBool,
		apply: func(e *Editor, v any) {
			e.settings.highlightSelectedWord = v.(bool)
			e.updateSelectionHighlight()
		},
		current: func(e *Editor) any { return e.settings.highlightSelectedWord },
	},
	"copyWithEmptySelection": boolOption(func(s *settings) *bool { return &s.copyWithEmptySelection }),
	"mergeUndoDeltas": {
		validate: func(v any) (any, error) { return ParseMergeMode(v) },
		apply:    func(e *Editor, v any) { e.mergeMode = v.(MergeMode) },
		current:  func(e *Editor) any { return e.mergeMode },
	},
	"wrap": {
		validate: asBool,
		apply: func(e *Editor, v any) {
			o := e.search.Options()
			o.Wrap = v.(bool)
			e.search.Set(o)
		},
		current: func(e *Editor) any { return e.search.Options().Wrap },
	},
	"overwrite": {
		validate: asBool,
		apply:    func(e *Editor, v any) { e.session.SetOverwrite(v.(bool)) },
		current:  func(e *Editor) any { return e.session.Overwrite() },
		session:  true,
	},
	"tabSize": {
		validate: func(v any) (any, error) {
			n, err := asInt(v)
			if err != nil {
				return nil, err
			}
			if n.(int) < 1 {
				return nil, fmt.Errorf("tab size %d: %w", n, ErrInvalidOptionValue)
			}
			return n, nil
		},
		apply:   func(e *Editor, v any) { e.session.SetTabSize(v.(int)) },
		current: func(e *Editor) any { return e.session.TabSize() },
		session: true,
	},
	"useSoftTabs": {
		validate: asBool,
		apply:    func(e *Editor, v any) { e.session.SetUseSoftTabs(v.(bool)) },
		current:  func(e *Editor) any { return e.session.UseSoftTabs() },
		session:  true,
	},
}

func boolOption(field func(*settings) *bool) optionEntry {
	return optionEntry{
		validate: asBool,
		apply:    func(e *Editor, v any) { *field(&e.settings) = v.(bool) },
		current:  func(e *Editor) any { return *field(&e.settings) },
	}
}

// OptionNames returns the names SetOption accepts, sorted.
func OptionNames() []string {
	names := make([]string, 0, len(optionTable))
	for name := range optionTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetOption validates value and applies it. Options stored on the
// session are ignored while no session is bound.
func (e *Editor) SetOption(name string, value any) error {
	entry, ok := optionTable[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownOption)
	}
	v, err := entry.validate(value)
	if err != nil {
		return fmt.Errorf("option %q: %w", name, err)
	}
	if entry.session && e.session == nil {
		e.logger.Debug("option %s ignored: no session", name)
		return nil
	}
	entry.apply(e, v)
	return nil
}

// GetOption returns the current value of name.
func (e *Editor) GetOption(name string) (any, bool) {
	entry, ok := optionTable[name]
	if !ok || (entry.session && e.session == nil) {
		return nil, false
	}
	return entry.current(e), true
}

// SetOptions applies values in name order and stops at the first error.
func (e *Editor) SetOptions(values map[string]any) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.SetOption(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

func asBool(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", b, ErrInvalidOptionValue)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("%v (%T): %w", v, v, ErrInvalidOptionValue)
}

func asInt(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err == nil {
			return parsed, nil
		}
	}
	return nil, fmt.Errorf("%v (%T): %w", v, v, ErrInvalidOptionValue)
}
