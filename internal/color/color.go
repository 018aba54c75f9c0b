// Package color converts between HEX, RGB, and HSL color representations and
// computes WCAG luminance, contrast, and descriptive names.
//
// Every function in this package is pure. Parsing helpers report failure with
// a boolean instead of an error so callers can feed arbitrary user text
// through them without special handling.
package color

import "math"

// HSL is a color in hue/saturation/lightness space.
// H is in degrees [0,360); S and L are percentages [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// RGB is a color with each channel normalized to [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapHue reduces any real hue into [0,360).
func WrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// -1e-15 mod 360 becomes 360 after the add above.
	if h >= 360 {
		h = 0
	}
	return h
}

// Normalize wraps the hue and clamps saturation and lightness.
func (c HSL) Normalize() HSL {
	return HSL{
		H: WrapHue(c.H),
		S: Clamp(c.S, 0, 100),
		L: Clamp(c.L, 0, 100),
	}
}

// Rounded returns the color with every component rounded to the nearest integer.
func (c HSL) Rounded() HSL {
	return HSL{
		H: WrapHue(math.Round(c.H)),
		S: math.Round(c.S),
		L: math.Round(c.L),
	}
}

// Hex encodes the color as #RRGGBB.
func (c HSL) Hex() string {
	return HSLToHex(c.H, c.S, c.L)
}

// RGB converts the color to normalized RGB.
func (c HSL) RGB() RGB {
	return HSLToRGB(c.H, c.S, c.L)
}

// Bytes returns the channels scaled to [0,255] and rounded.
func (c RGB) Bytes() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

// Hex encodes the color as #RRGGBB.
func (c RGB) Hex() string {
	r, g, b := c.Bytes()
	return encodeHex(r, g, b)
}

func toByte(v float64) uint8 {
	return uint8(Clamp(math.Round(v*255), 0, 255))
}
