package color

import "math"

const (
	// MinContrast is the ratio of two identical colors.
	MinContrast = 1.0
	// MaxContrast is the ratio of black on white.
	MaxContrast = 21.0
)

// Luminance returns the WCAG relative luminance of normalized RGB channels.
func Luminance(r, g, b float64) float64 {
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio of two colors in [1,21].
// The ratio is symmetric. Any non-finite intermediate yields MinContrast.
func ContrastRatio(a, b HSL) float64 {
	ra, rb := a.RGB(), b.RGB()
	l1 := Luminance(ra.R, ra.G, ra.B)
	l2 := Luminance(rb.R, rb.G, rb.B)

	if l2 > l1 {
		l1, l2 = l2, l1
	}

	ratio := (l1 + 0.05) / (l2 + 0.05)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return MinContrast
	}
	return Clamp(ratio, MinContrast, MaxContrast)
}
