package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a config file syntax.
type Format int

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	// FormatYAML is chosen for .yaml and .yml files.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "toml"
	}
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatTOML, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Tables whose keys are read as if they were top level.
var sections = []string{"editor", "app"}

// Load reads the file at path over Default. A missing file yields the
// defaults and the os.ErrNotExist error unwrapped, so callers can treat
// it as optional.
func Load(path string) (Options, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Default(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), err
		}
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data, format)
}

// Parse decodes data over Default. Source names the data in errors.
func Parse(source string, data []byte, format Format) (Options, error) {
	opts := Default()
	raw, err := decode(data, format)
	if err != nil {
		return opts, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	flat := make(map[string]any, len(raw))
	for k, v := range raw {
		if slices.Contains(sections, k) {
			table, ok := v.(map[string]any)
			if !ok {
				return opts, &ParseError{Path: source, Key: k, Message: "expected a table", Err: ErrTypeMismatch}
			}
			for tk, tv := range table {
				flat[tk] = tv
			}
			continue
		}
		flat[k] = v
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := opts.Set(k, flat[k]); err != nil {
			return Default(), &ParseError{Path: source, Key: k, Message: err.Error(), Err: err}
		}
	}
	return opts, nil
}

func decode(data []byte, format Format) (map[string]any, error) {
	raw := make(map[string]any)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}
