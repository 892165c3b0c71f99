package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// NormalizeHex canonicalizes a hex color to #RRGGBB: shorthand #RGB is
// expanded, a trailing alpha channel is dropped, and the result is
// uppercased.
func NormalizeHex(s string) string {
	if !strings.HasPrefix(s, "#") {
		return strings.ToUpper(s)
	}
	if len(s) == 4 || len(s) == 5 { // #RGB or #RGBA
		var b strings.Builder
		b.WriteByte('#')
		for _, c := range s[1:4] {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		s = b.String()
	}
	if len(s) > 7 {
		s = s[:7]
	}
	return strings.ToUpper(s)
}

// ParseHex converts a #RRGGBB (or #RGB) string to an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	norm := NormalizeHex(s)
	if len(norm) != 7 || !strings.HasPrefix(norm, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(norm[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}
