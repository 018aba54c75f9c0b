package color

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	hexPattern = regexp.MustCompile(`(?i)^#?([a-f0-9]{6}|[a-f0-9]{3})$`)
	rgbPattern = regexp.MustCompile(`(?i)^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	hslPattern = regexp.MustCompile(`(?i)^hsl\(\s*(\d{1,3}(?:\.\d+)?)\s*,\s*(\d{1,3}(?:\.\d+)?)%?\s*,\s*(\d{1,3}(?:\.\d+)?)%?\s*\)$`)
)

// Parse reads a color from user text. Accepted forms are hex literals
// ("#3366CC", "36c"), rgb(r, g, b) with 0-255 channels, hsl(h, s%, l%), and
// CSS named colors. Out of range channels are clamped.
func Parse(str string) (HSL, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return HSL{}, false
	}

	if hexPattern.MatchString(str) {
		return HexToHSL(str)
	}

	if m := rgbPattern.FindStringSubmatch(str); m != nil {
		r := channel(m[1], 255) / 255
		g := channel(m[2], 255) / 255
		b := channel(m[3], 255) / 255
		return rgbToHSL(r, g, b), true
	}

	if m := hslPattern.FindStringSubmatch(str); m != nil {
		return HSL{
			H: channel(m[1], 360),
			S: channel(m[2], 100),
			L: channel(m[3], 100),
		}.Normalize(), true
	}

	return named(str)
}

// IsValid reports whether Parse accepts str.
func IsValid(str string) bool {
	_, ok := Parse(str)
	return ok
}

func named(str string) (HSL, bool) {
	c, ok := colornames.Map[strings.ToLower(str)]
	if !ok {
		return HSL{}, false
	}
	return rgbToHSL(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255), true
}

// channel parses a pattern-validated number and clamps it to [0, limit].
func channel(s string, limit float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Clamp(v, 0, limit)
}
