package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Options holds every setting a config file may carry.
type Options struct {
	// Editor options, named as editor.SetOption expects them.
	BehavioursEnabled      bool
	AutoIndent             bool
	MergeUndoDeltas        string // off, on or always
	Overwrite              bool
	TabSize                int
	UseSoftTabs            bool
	ReadOnly               bool
	HighlightSelectedWord  bool
	HighlightBrackets      bool
	CopyWithEmptySelection bool
	Wrap                   bool

	// Application options.
	LogLevel string
	Mode     string
	Theme    string // empty keeps the terminal's colors
}

// Default returns the built-in options.
func Default() Options {
	return Options{
		BehavioursEnabled:     true,
		AutoIndent:            true,
		MergeUndoDeltas:       "on",
		TabSize:               4,
		UseSoftTabs:           true,
		HighlightSelectedWord: true,
		HighlightBrackets:     true,
		Wrap:                  true,
		LogLevel:              "info",
		Mode:                  "text",
	}
}

// Map returns the editor options keyed by option name.
func (o Options) Map() map[string]any {
	return map[string]any{
		"behavioursEnabled":      o.BehavioursEnabled,
		"autoIndent":             o.AutoIndent,
		"mergeUndoDeltas":        o.MergeUndoDeltas,
		"overwrite":              o.Overwrite,
		"tabSize":                o.TabSize,
		"useSoftTabs":            o.UseSoftTabs,
		"readOnly":               o.ReadOnly,
		"highlightSelectedWord":  o.HighlightSelectedWord,
		"highlightBrackets":      o.HighlightBrackets,
		"copyWithEmptySelection": o.CopyWithEmptySelection,
		"wrap":                   o.Wrap,
	}
}

// setter stores a decoded value into one field.
type setter func(o *Options, v any) error

var setters = map[string]setter{
	"behavioursEnabled":      boolField(func(o *Options) *bool { return &o.BehavioursEnabled }),
	"autoIndent":             boolField(func(o *Options) *bool { return &o.AutoIndent }),
	"overwrite":              boolField(func(o *Options) *bool { return &o.Overwrite }),
	"useSoftTabs":            boolField(func(o *Options) *bool { return &o.UseSoftTabs }),
	"readOnly":               boolField(func(o *Options) *bool { return &o.ReadOnly }),
	"highlightSelectedWord":  boolField(func(o *Options) *bool { return &o.HighlightSelectedWord }),
	"highlightBrackets":      boolField(func(o *Options) *bool { return &o.HighlightBrackets }),
	"copyWithEmptySelection": boolField(func(o *Options) *bool { return &o.CopyWithEmptySelection }),
	"wrap":                   boolField(func(o *Options) *bool { return &o.Wrap }),
	"tabSize": func(o *Options, v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		o.TabSize = n
		return nil
	},
	"mergeUndoDeltas": func(o *Options, v any) error {
		switch v := v.(type) {
		case bool:
			o.MergeUndoDeltas = "off"
			if v {
				o.MergeUndoDeltas = "on"
			}
			return nil
		case string:
			switch s := strings.ToLower(v); s {
			case "off", "on", "always":
				o.MergeUndoDeltas = s
				return nil
			}
			return fmt.Errorf("%w: %q is not off, on or always", ErrOutOfRange, v)
		}
		return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
	},
	"logLevel": stringField(func(o *Options) *string { return &o.LogLevel }),
	"mode":     stringField(func(o *Options) *string { return &o.Mode }),
	"theme":    stringField(func(o *Options) *string { return &o.Theme }),
}

// Set assigns one option from a decoded value. Key may be camel, kebab
// or snake case.
func (o *Options) Set(key string, v any) error {
	set, ok := setters[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return set(o, v)
}

func boolField(field func(*Options) *bool) setter {
	return func(o *Options, v any) error {
		switch v := v.(type) {
		case bool:
			*field(o) = v
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrTypeMismatch, v)
			}
			*field(o) = b
		default:
			return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
		}
		return nil
	}
}

func stringField(field func(*Options) *string) setter {
	return func(o *Options, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
		}
		*field(o) = s
		return nil
	}
}

// toInt accepts the integer types the TOML and YAML decoders produce.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %v is not whole", ErrTypeMismatch, n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrTypeMismatch, v)
}

// normalizeKey turns tab-size and tab_size into tabSize.
func normalizeKey(key string) string {
	var b strings.Builder
	upper := false
	for _, r := range key {
		if r == '-' || r == '_' {
			upper = b.Len() > 0
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
