package harmony

import (
	"math/rand/v2"
	"slices"

	"github.com/centipy/palette-server/internal/color"
)

const (
	// BaseSaturation centers the randomized saturation bands.
	BaseSaturation = 70.0
	// BaseLightness centers the randomized lightness bands.
	BaseLightness = 60.0

	analogousWindow   = 30.0
	complementSpread  = 15.0
	geometricJitter   = 8.0
	monoLightStart    = 10.0
	monoLightRange    = 80.0
	monoSatJitter     = 5.0
	moderateBandWidth = 20.0
)

// Rand is the randomness source used by a Generator.
type Rand interface {
	Float64() float64
}

type defaultRand struct{}

func (defaultRand) Float64() float64 { return rand.Float64() }

// Generator produces harmony palettes.
type Generator struct {
	rng Rand
}

// New creates a generator. A nil source uses the process-wide generator.
func New(rng Rand) *Generator {
	if rng == nil {
		rng = defaultRand{}
	}
	return &Generator{rng: rng}
}

// Generate returns count colors related to baseHue by scheme. Unknown schemes
// fall back to analogous. count <= 0 yields an empty palette.
func (g *Generator) Generate(baseHue float64, count int, scheme Scheme) []color.HSL {
	if count <= 0 {
		return []color.HSL{}
	}
	baseHue = color.WrapHue(baseHue)

	var out []color.HSL
	switch scheme {
	case Monochromatic:
		out = g.monochromatic(baseHue, count)
	case Complementary:
		out = g.complementary(baseHue, count)
	case SplitComplementary, Triadic, Tetradic, Square:
		out = g.geometric(baseHue, count, offsets[scheme])
	case Random:
		out = g.random(count, 65, 95, 40, 65)
	case RandomSoft:
		out = g.random(count, 20, 50, 65, 85)
	default:
		out = g.analogous(baseHue, count)
	}

	for i := range out {
		out[i] = out[i].Normalize()
	}
	return out
}

func (g *Generator) monochromatic(baseHue float64, count int) []color.HSL {
	step := 0.0
	if count > 1 {
		step = monoLightRange / float64(count-1)
	}

	out := make([]color.HSL, count)
	for i := range out {
		out[i] = color.HSL{
			H: baseHue,
			S: BaseSaturation + g.spread(monoSatJitter),
			L: monoLightStart + float64(i)*step,
		}
	}
	slices.SortStableFunc(out, func(a, b color.HSL) int {
		switch {
		case a.L < b.L:
			return -1
		case a.L > b.L:
			return 1
		}
		return 0
	})
	return out
}

func (g *Generator) analogous(baseHue float64, count int) []color.HSL {
	step := 0.0
	if count > 1 {
		step = 2 * analogousWindow / float64(count-1)
	}
	start := baseHue - analogousWindow
	if count == 1 {
		start = baseHue
	}

	out := make([]color.HSL, count)
	for i := range out {
		out[i] = color.HSL{
			H: start + float64(i)*step,
			S: color.Clamp(BaseSaturation+g.spread(moderateBandWidth/2), 50, 90),
			L: color.Clamp(BaseLightness+g.spread(moderateBandWidth/2), 40, 70),
		}
	}
	return out
}

func (g *Generator) complementary(baseHue float64, count int) []color.HSL {
	first := (count + 1) / 2
	out := make([]color.HSL, 0, count)
	for i := range count {
		center := baseHue
		if i >= first {
			center = baseHue + 180
		}
		out = append(out, color.HSL{
			H: center + g.spread(complementSpread),
			S: color.Clamp(BaseSaturation+g.spread(moderateBandWidth/2), 50, 90),
			L: color.Clamp(BaseLightness+g.spread(moderateBandWidth/2), 40, 70),
		})
	}
	return out
}

// geometric walks the offset set, repeating it when count exceeds its size.
// Repeated passes get a small hue jitter so they stay distinguishable.
func (g *Generator) geometric(baseHue float64, count int, set []float64) []color.HSL {
	out := make([]color.HSL, count)
	for i := range out {
		h := baseHue + set[i%len(set)]
		if i >= len(set) {
			h += g.spread(geometricJitter)
		}
		out[i] = color.HSL{
			H: h,
			S: g.between(55, 85),
			L: g.between(45, 75),
		}
	}
	return out
}

func (g *Generator) random(count int, minS, maxS, minL, maxL float64) []color.HSL {
	out := make([]color.HSL, count)
	for i := range out {
		out[i] = color.HSL{
			H: g.between(0, 360),
			S: g.between(minS, maxS),
			L: g.between(minL, maxL),
		}
	}
	return out
}

// between draws uniformly from [lo, hi).
func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// spread draws uniformly from [-r, r).
func (g *Generator) spread(r float64) float64 {
	return g.between(-r, r)
}

// RandomColor draws a color with saturation and lightness in the given
// percentage bands and a uniform hue.
func (g *Generator) RandomColor(minS, maxS, minL, maxL float64) color.HSL {
	return color.HSL{
		H: g.between(0, 360),
		S: g.between(minS, maxS),
		L: g.between(minL, maxL),
	}.Normalize()
}

// ApplyLocks copies previous[i] into generated[i] for every locked index that
// exists in both palettes. The result always has len(generated) entries.
func ApplyLocks(generated, previous []color.HSL, locked []bool) []color.HSL {
	out := make([]color.HSL, len(generated))
	copy(out, generated)
	for i := range out {
		if i < len(locked) && locked[i] && i < len(previous) {
			out[i] = previous[i]
		}
	}
	return out
}
