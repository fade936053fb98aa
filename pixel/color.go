package pixel

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color is an RGB triple on the 0..255 scale, independent of any channel
// layout. Resolve lays it out for a concrete buffer.
type Color [3]float32

// ParseColor parses a color spec: "#RRGGBB" hex or "rgb(r,g,b)" with
// decimal components in 0..255.
func ParseColor(spec string) (Color, error) {
	s := strings.TrimSpace(spec)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return Color{}, errors.Errorf("invalid hex color %q", spec)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid hex color %q", spec)
		}
		return Color{float32(v >> 16 & 0xFF), float32(v >> 8 & 0xFF), float32(v & 0xFF)}, nil
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		parts := strings.Split(lower[4:len(lower)-1], ",")
		if len(parts) != 3 {
			return Color{}, errors.Errorf("invalid rgb color %q", spec)
		}
		var c Color
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || v < 0 || v > 255 {
				return Color{}, errors.Errorf("invalid rgb component %q in %q", p, spec)
			}
			c[i] = float32(v)
		}
		return c, nil
	}
	return Color{}, errors.Errorf("unrecognized color spec %q", spec)
}

// ParseColorDefault parses spec, falling back to the given color when the
// spec is empty or malformed. Matches the permissive behavior of the
// engine's background-color handling.
func ParseColorDefault(spec string, fallback Color) Color {
	c, err := ParseColor(spec)
	if err != nil {
		return fallback
	}
	return c
}

// Resolve lays the color out in the channel order of the target format,
// scaled to the element range. Alpha-bearing formats get a fully opaque
// alpha component; grayscale collapses to the average of the three
// components.
func (c Color) Resolve(format Format, elem ElemType) []float32 {
	scale := elem.Max() / 255
	r, g, b := c[0]*scale, c[1]*scale, c[2]*scale
	switch format {
	case Gray:
		return []float32{(r + g + b) / 3}
	case RGB:
		return []float32{r, g, b}
	case BGR:
		return []float32{b, g, r}
	case RGBA:
		return []float32{r, g, b, elem.Max()}
	case BGRA:
		return []float32{b, g, r, elem.Max()}
	}
	return nil
}
