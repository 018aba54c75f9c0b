// Package harmony generates palettes whose hues follow a color-wheel rule
// around a base hue.
package harmony

import "strings"

// Scheme names a harmony rule.
type Scheme string

const (
	Analogous          Scheme = "analogous"
	Monochromatic      Scheme = "monochromatic"
	Complementary      Scheme = "complementary"
	SplitComplementary Scheme = "split-complementary"
	Triadic            Scheme = "triadic"
	Tetradic           Scheme = "tetradic"
	Square             Scheme = "square"
	Random             Scheme = "random"
	RandomSoft         Scheme = "random-soft"
)

// DefaultScheme is used when no scheme is requested.
const DefaultScheme = Analogous

var schemes = []Scheme{
	Analogous,
	Monochromatic,
	Complementary,
	SplitComplementary,
	Triadic,
	Tetradic,
	Square,
	Random,
	RandomSoft,
}

var labels = map[Scheme]string{
	Analogous:          "Analogous",
	Monochromatic:      "Monochromatic",
	Complementary:      "Complementary",
	SplitComplementary: "Split Complementary",
	Triadic:            "Triadic",
	Tetradic:           "Tetradic (Rectangle)",
	Square:             "Square",
	Random:             "Random (Vibrant)",
	RandomSoft:         "Random (Soft)",
}

// offsets are the fixed hue rotations of the geometric schemes.
var offsets = map[Scheme][]float64{
	SplitComplementary: {0, 150, 210},
	Triadic:            {0, 120, 240},
	Tetradic:           {0, 60, 180, 240},
	Square:             {0, 90, 180, 270},
}

// Schemes returns every supported scheme in display order.
func Schemes() []Scheme {
	out := make([]Scheme, len(schemes))
	copy(out, schemes)
	return out
}

// ParseScheme resolves a scheme name. Matching ignores case and surrounding
// whitespace, and accepts underscores for hyphens.
func ParseScheme(s string) (Scheme, bool) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, sc := range schemes {
		if string(sc) == s {
			return sc, true
		}
	}
	return "", false
}

// Valid reports whether s is a known scheme.
func (s Scheme) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Label returns a human readable scheme name.
func (s Scheme) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Offsets returns the hue rotations of a geometric scheme, or nil.
func (s Scheme) Offsets() []float64 {
	o := offsets[s]
	if o == nil {
		return nil
	}
	out := make([]float64, len(o))
	copy(out, o)
	return out
}
