package color

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	black = HSL{H: 0, S: 0, L: 0}
	white = HSL{H: 0, S: 0, L: 100}
)

func TestLuminance_Extremes(t *testing.T) {
	assert.InDelta(t, 0, Luminance(0, 0, 0), 1e-12)
	assert.InDelta(t, 1, Luminance(1, 1, 1), 1e-12)
	assert.InDelta(t, 0.2126, Luminance(1, 0, 0), 1e-12)
}

func TestContrastRatio_BlackWhite(t *testing.T) {
	assert.InDelta(t, 21, ContrastRatio(black, white), 1e-9)
	assert.InDelta(t, 21, ContrastRatio(white, black), 1e-9)
}

func TestContrastRatio_Identical(t *testing.T) {
	for _, c := range []HSL{black, white, {H: 200, S: 80, L: 40}, {H: 33, S: 12, L: 77}} {
		assert.Equal(t, 1.0, ContrastRatio(c, c))
	}
}

func TestContrastRatio_Symmetric(t *testing.T) {
	colors := []HSL{
		black, white,
		{H: 0, S: 100, L: 50},
		{H: 120, S: 60, L: 30},
		{H: 240, S: 90, L: 70},
		{H: 55, S: 20, L: 90},
	}
	for _, a := range colors {
		for _, b := range colors {
			r := ContrastRatio(a, b)
			assert.Equal(t, r, ContrastRatio(b, a))
			assert.GreaterOrEqual(t, r, MinContrast)
			assert.LessOrEqual(t, r, MaxContrast)
		}
	}
}

func TestContrastRatio_FailsSafe(t *testing.T) {
	nan := HSL{H: math.NaN(), S: math.NaN(), L: math.NaN()}
	r := ContrastRatio(nan, white)
	assert.False(t, math.IsNaN(r))
	assert.GreaterOrEqual(t, r, MinContrast)
	assert.LessOrEqual(t, r, MaxContrast)
}
