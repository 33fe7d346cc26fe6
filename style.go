package sprig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tanema/gween/ease"
)

// ErrUnknownEase is returned when a style names an easing curve that does
// not exist.
var ErrUnknownEase = errors.New("sprig: unknown ease")

// MinPressAlpha is the inherited opacity below which a press is ignored.
// Buttons that are still fading in or out do not react.
const MinPressAlpha = 0.9999

// ButtonStyle holds the feedback parameters of a Button.
type ButtonStyle struct {
	Scale        float64 `toml:"scale"`         // press scale relative to the base
	Ratio        float64 `toml:"ratio"`         // aspect compensation divisor for the width
	HoverScale   float64 `toml:"hover_scale"`   // hover scale relative to the base
	Gray         float64 `toml:"gray"`          // press darkening
	DefaultGray  float64 `toml:"default_gray"`  // resting gray level
	GrayDisabled float64 `toml:"gray_disabled"` // gray level of a button shown as disabled

	AllowScale bool `toml:"allow_scale"`
	AllowGray  bool `toml:"allow_gray"`
	AllowHover bool `toml:"allow_hover"`

	In      float32 `toml:"in"`       // press transition seconds
	Out     float32 `toml:"out"`      // release transition seconds
	InEase  string  `toml:"in_ease"`  // gween/ease name for press
	OutEase string  `toml:"out_ease"` // gween/ease name for release

	// ClickThreshold is the squared normalized displacement under which a
	// release counts as a click.
	ClickThreshold float64 `toml:"click_threshold"`

	// Extra color nodes take these full RGBA values at rest and while down.
	ExtraColorNormal  Color `toml:"extra_color_normal"`
	ExtraColorPressed Color `toml:"extra_color_pressed"`
}

// DefaultButtonStyle returns the stock press feedback.
func DefaultButtonStyle() ButtonStyle {
	return ButtonStyle{
		Scale:             0.90,
		Ratio:             1.0,
		HoverScale:        1.05,
		Gray:              0.75,
		DefaultGray:       1.0,
		GrayDisabled:      0.5,
		AllowScale:        true,
		AllowGray:         true,
		AllowHover:        true,
		In:                0.10,
		Out:               0.075,
		InEase:            "OutQuad",
		OutEase:           "InQuad",
		ClickThreshold:    1e-4,
		ExtraColorNormal:  Color{},
		ExtraColorPressed: Color{A: 0.2},
	}
}

// Validate checks that the style's easing names resolve.
func (s ButtonStyle) Validate() error {
	if _, err := EaseByName(s.InEase); err != nil {
		return fmt.Errorf("in_ease: %w", err)
	}
	if _, err := EaseByName(s.OutEase); err != nil {
		return fmt.Errorf("out_ease: %w", err)
	}
	return nil
}

// eases resolves the style's curves, falling back to the widget defaults on
// unknown names.
func (s ButtonStyle) eases() (in, out ease.TweenFunc) {
	in, err := EaseByName(s.InEase)
	if err != nil {
		logger.Warn("falling back to default ease", "name", s.InEase)
		in = DefaultInEase
	}
	out, err = EaseByName(s.OutEase)
	if err != nil {
		logger.Warn("falling back to default ease", "name", s.OutEase)
		out = DefaultOutEase
	}
	return in, out
}

// --- Themes ---

// Theme is a set of named button styles loaded from TOML. Every style starts
// from DefaultButtonStyle and overrides only the keys present.
//
//	[styles.primary]
//	scale = 0.92
//	hover_scale = 1.08
//	in_ease = "OutBack"
type Theme struct {
	Styles map[string]ButtonStyle `toml:"styles"`
}

type themeFile struct {
	Styles map[string]toml.Primitive `toml:"styles"`
}

// LoadTheme parses a TOML theme.
func LoadTheme(data []byte) (*Theme, error) {
	var raw themeFile
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	th := &Theme{Styles: make(map[string]ButtonStyle, len(raw.Styles))}
	for name, prim := range raw.Styles {
		st := DefaultButtonStyle()
		if err := md.PrimitiveDecode(prim, &st); err != nil {
			return nil, fmt.Errorf("parse theme style %q: %w", name, err)
		}
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("theme style %q: %w", name, err)
		}
		th.Styles[name] = st
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return nil, fmt.Errorf("parse theme: unknown keys %s", strings.Join(names, ", "))
	}
	return th, nil
}

// LoadThemeFile reads and parses a TOML theme from disk.
func LoadThemeFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	th, err := LoadTheme(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return th, nil
}

// Style returns the named style, or DefaultButtonStyle when the theme has
// no such entry.
func (t *Theme) Style(name string) ButtonStyle {
	if t != nil {
		if st, ok := t.Styles[name]; ok {
			return st
		}
	}
	return DefaultButtonStyle()
}

// Names returns the style names in sorted order.
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.Styles))
	for n := range t.Styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Encode writes the theme as TOML.
func (t *Theme) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	return nil
}
