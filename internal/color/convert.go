package color

import (
	"math"
	"strconv"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// HSLToHex converts an HSL color to an uppercase #RRGGBB string.
// The hue may be any real number; saturation and lightness are clamped to
// [0,100] before conversion.
func HSLToHex(h, s, l float64) string {
	return HSLToRGB(h, s, l).Hex()
}

// HSLToRGB converts an HSL color to normalized RGB using the hue-sector
// decomposition.
func HSLToRGB(h, s, l float64) RGB {
	h = WrapHue(h)
	s = clampPercent(s) / 100
	l = clampPercent(l) / 100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: Clamp(r+m, 0, 1),
		G: Clamp(g+m, 0, 1),
		B: Clamp(b+m, 0, 1),
	}
}

// RGBToHSL converts normalized RGB to HSL with every component rounded to the
// nearest integer.
func RGBToHSL(r, g, b float64) HSL {
	return rgbToHSL(r, g, b).Rounded()
}

// rgbToHSL is the unrounded decomposition. Keeping full precision through the
// hex parsers is what makes hex -> HSL -> hex exact.
func rgbToHSL(r, g, b float64) HSL {
	r, g, b = Clamp(r, 0, 1), Clamp(g, 0, 1), Clamp(b, 0, 1)

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSL{H: WrapHue(h * 60), S: s * 100, L: l * 100}
}

// HexToHSL parses a 3- or 6-digit hex color, with or without a leading '#'.
// It returns false when the input is not a hex color.
func HexToHSL(hex string) (HSL, bool) {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return HSL{}, false
	}
	return rgbToHSL(float64(r)/255, float64(g)/255, float64(b)/255), true
}

// NormalizeHex returns the canonical #RRGGBB form of a hex color.
func NormalizeHex(hex string) (string, bool) {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "", false
	}
	return encodeHex(r, g, b), true
}

// IsHex reports whether s is a 3- or 6-digit hex color.
func IsHex(s string) bool {
	_, _, _, ok := parseHex(s)
	return ok
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func encodeHex(r, g, b uint8) string {
	buf := [7]byte{'#'}
	for i, v := range [3]uint8{r, g, b} {
		buf[1+i*2] = hexDigits[v>>4]
		buf[2+i*2] = hexDigits[v&0x0F]
	}
	return string(buf[:])
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 100)
}
