// Package highlight maps token types to terminal styles.
package highlight

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownTheme is returned by Lookup for names no theme carries.
var ErrUnknownTheme = errors.New("unknown theme")

// Palette is a theme as written: hex colors keyed by token scope.
type Palette struct {
	Name       string
	Foreground string
	Background string
	Selection  string
	Status     string

	// Scopes maps dotted token scopes such as "comment" or
	// "meta.tag.tag-name" to a foreground color.
	Scopes map[string]string

	// Italic lists scopes drawn in italics.
	Italic []string
}

// Theme is a compiled palette.
type Theme struct {
	Name      string
	Text      tcell.Style
	Selection tcell.Style
	Highlight tcell.Style
	Bracket   tcell.Style
	Status    tcell.Style

	scopes map[string]tcell.Style
}

// Compile parses the palette colors.
func (p Palette) Compile() (*Theme, error) {
	fg, err := parseColor(p.Foreground)
	if err != nil {
		return nil, fmt.Errorf("theme %s foreground: %w", p.Name, err)
	}
	bg, err := parseColor(p.Background)
	if err != nil {
		return nil, fmt.Errorf("theme %s background: %w", p.Name, err)
	}
	sel, err := parseColor(p.Selection)
	if err != nil {
		return nil, fmt.Errorf("theme %s selection: %w", p.Name, err)
	}
	status, err := parseColor(p.Status)
	if err != nil {
		return nil, fmt.Errorf("theme %s status: %w", p.Name, err)
	}

	text := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
	t := &Theme{
		Name:      p.Name,
		Text:      text,
		Selection: text.Background(toTcell(sel)),
		// Word highlights sit halfway between background and selection.
		Highlight: text.Background(toTcell(bg.BlendLab(sel, 0.5))),
		Bracket:   text.Bold(true).Underline(true),
		Status:    text.Background(toTcell(status)),
		scopes:    make(map[string]tcell.Style, len(p.Scopes)),
	}
	for scope, hex := range p.Scopes {
		c, err := parseColor(hex)
		if err != nil {
			return nil, fmt.Errorf("theme %s scope %s: %w", p.Name, scope, err)
		}
		t.scopes[scope] = text.Foreground(toTcell(c))
	}
	for _, scope := range p.Italic {
		t.scopes[scope] = t.StyleFor(scope).Italic(true)
	}
	return t, nil
}

// StyleFor returns the style of a token type. Unknown types fall back to
// their parent scope, so "constant.numeric.hex" uses "constant.numeric",
// then "constant", then plain text.
func (t *Theme) StyleFor(scope string) tcell.Style {
	for scope != "" {
		if s, ok := t.scopes[scope]; ok {
			return s
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return t.Text
}

func parseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%q: %w", hex, err)
	}
	return c, nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

var palettes = map[string]Palette{
	"dark": {
		Name:       "dark",
		Foreground: "#d4d4d4",
		Background: "#1e1e1e",
		Selection:  "#404080",
		Status:     "#333333",
		Scopes: map[string]string{
			"comment":                     "#6a9955",
			"string":                      "#ce9178",
			"constant.numeric":            "#b5cea8",
			"paren":                       "#ffd700",
			"meta.tag":                    "#808080",
			"meta.tag.tag-name":           "#569cd6",
			"entity.other.attribute-name": "#9cdcfe",
			"keyword":                     "#569cd6",
		},
		Italic: []string{"comment"},
	},
	"monokai": {
		Name:       "monokai",
		Foreground: "#f8f8f2",
		Background: "#272822",
		Selection:  "#49483e",
		Status:     "#3e3d32",
		Scopes: map[string]string{
			"comment":                     "#75715e",
			"string":                      "#e6db74",
			"constant.numeric":            "#ae81ff",
			"paren":                       "#f8f8f2",
			"meta.tag":                    "#f8f8f2",
			"meta.tag.tag-name":           "#f92672",
			"entity.other.attribute-name": "#a6e22e",
			"keyword":                     "#f92672",
		},
		Italic: []string{"comment"},
	},
	"light": {
		Name:       "light",
		Foreground: "#333333",
		Background: "#ffffff",
		Selection:  "#add6ff",
		Status:     "#e0e0e0",
		Scopes: map[string]string{
			"comment":                     "#008000",
			"string":                      "#a31515",
			"constant.numeric":            "#098658",
			"meta.tag.tag-name":           "#800000",
			"entity.other.attribute-name": "#ff0000",
			"keyword":                     "#0000ff",
		},
	},
}

// Names lists the built-in themes.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup compiles the built-in theme called name.
func Lookup(name string) (*Theme, error) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return p.Compile()
}
