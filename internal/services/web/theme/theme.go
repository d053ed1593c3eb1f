// Package theme defines the immutable design tokens consumed by widgets.
//
// A Theme is built once at boot (defaults, optionally overlaid by a TOML token
// file) and passed by pointer to every component that needs it. Components
// read tokens; nothing mutates a Theme after Load returns.
package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Palette holds the color tokens, as #rrggbb strings.
type Palette struct {
	Primary       string `toml:"primary"`
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	Neutral       string `toml:"neutral"`
	Background    string `toml:"background"`
	Surface       string `toml:"surface"`
	Danger        string `toml:"danger"`
}

// Spacing holds layout spacing tokens in pixels.
type Spacing struct {
	Unit   int `toml:"unit"`
	Gutter int `toml:"gutter"`
}

// Theme is a structured design token set.
type Theme struct {
	Name    string  `toml:"name"`
	Palette Palette `toml:"palette"`
	Spacing Spacing `toml:"spacing"`
}

// Default returns the built-in token set.
func Default() *Theme {
	return &Theme{
		Name: "default",
		Palette: Palette{
			Primary:       "#1e88e5",
			TextPrimary:   "#212121",
			TextSecondary: "#757575",
			Neutral:       "#eeeeee",
			Background:    "#fafafa",
			Surface:       "#ffffff",
			Danger:        "#e53935",
		},
		Spacing: Spacing{Unit: 8, Gutter: 4},
	}
}

// Load reads a TOML token file. An empty path returns Default.
func Load(path string) (*Theme, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	theme, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return theme, nil
}

// Parse decodes TOML tokens over the defaults and validates colors.
func Parse(data []byte) (*Theme, error) {
	theme := Default()
	meta, err := toml.Decode(string(data), theme)
	if err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown theme token %q", undecoded[0].String())
	}
	if err := theme.validate(); err != nil {
		return nil, err
	}
	return theme, nil
}

func (t *Theme) validate() error {
	colors := map[string]string{
		"palette.primary":        t.Palette.Primary,
		"palette.text_primary":   t.Palette.TextPrimary,
		"palette.text_secondary": t.Palette.TextSecondary,
		"palette.neutral":        t.Palette.Neutral,
		"palette.background":     t.Palette.Background,
		"palette.surface":        t.Palette.Surface,
		"palette.danger":         t.Palette.Danger,
	}
	for token, value := range colors {
		if _, err := parseHex(value); err != nil {
			return fmt.Errorf("%s: %w", token, err)
		}
	}
	if t.Spacing.Unit <= 0 {
		return fmt.Errorf("spacing.unit must be positive")
	}
	if t.Spacing.Gutter < 0 {
		return fmt.Errorf("spacing.gutter must not be negative")
	}
	return nil
}

// Space returns n spacing units as a CSS pixel length.
func (t *Theme) Space(n int) string {
	return fmt.Sprintf("%dpx", n*t.Spacing.Unit)
}

// CSSVariables renders the palette as CSS custom properties for :root.
func (t *Theme) CSSVariables() string {
	var b strings.Builder
	b.WriteString(":root{")
	fmt.Fprintf(&b, "--titan-primary:%s;", t.Palette.Primary)
	fmt.Fprintf(&b, "--titan-text-primary:%s;", t.Palette.TextPrimary)
	fmt.Fprintf(&b, "--titan-text-secondary:%s;", t.Palette.TextSecondary)
	fmt.Fprintf(&b, "--titan-neutral:%s;", t.Palette.Neutral)
	fmt.Fprintf(&b, "--titan-background:%s;", t.Palette.Background)
	fmt.Fprintf(&b, "--titan-surface:%s;", t.Palette.Surface)
	fmt.Fprintf(&b, "--titan-danger:%s;", t.Palette.Danger)
	fmt.Fprintf(&b, "--titan-space:%dpx;", t.Spacing.Unit)
	b.WriteString("}")
	return b.String()
}
