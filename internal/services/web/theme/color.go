package theme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// parseHex accepts #rgb and #rrggbb tokens, with or without the leading #.
func parseHex(value string) (colorful.Color, error) {
	hex := strings.TrimSpace(value)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q", value)
	}
	return c, nil
}

// Lighten raises the HSL lightness of a hex color by ratio (0.5 = 50% lighter):
// l' = l + l*ratio, capped at 1. Invalid colors are returned unchanged.
func Lighten(value string, ratio float64) string {
	c, err := parseHex(value)
	if err != nil {
		return value
	}
	h, s, l := c.Hsl()
	l = min(1, max(0, l+l*ratio))
	return colorful.Hsl(h, s, l).Clamped().Hex()
}
