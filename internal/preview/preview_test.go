package preview

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/export"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		ratio float64
		want  Level
	}{
		{21, LevelAAA},
		{7, LevelAAA},
		{6.99, LevelAA},
		{4.5, LevelAA},
		{4.49, LevelFail},
		{1, LevelFail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.ratio), "ratio %v", tt.ratio)
	}
}

func TestPair(t *testing.T) {
	p := Pair(color.HSL{L: 100}, color.HSL{L: 0})
	assert.Equal(t, "#FFFFFF", p.Background)
	assert.Equal(t, "#000000", p.Foreground)
	assert.Equal(t, 21.0, p.Contrast)
	assert.Equal(t, LevelAAA, p.Level)
}

func TestCombination(t *testing.T) {
	p := New(rand.New(rand.NewPCG(3, 4)))
	for range 20 {
		c := p.Combination()
		assert.GreaterOrEqual(t, c.Attempts, 1)
		assert.LessOrEqual(t, c.Attempts, maxAttempts)
		assert.Equal(t, c.Primary.Background, c.Swapped.Foreground)
		assert.Equal(t, c.Primary.Foreground, c.Swapped.Background)
		assert.Equal(t, c.Primary.Contrast, c.Swapped.Contrast)
		if c.Attempts < maxAttempts {
			assert.GreaterOrEqual(t, c.Primary.Contrast, 1.5)
		}
	}
}

// constRand always draws the same value, which forces identical colors.
type constRand struct{}

func (constRand) Float64() float64 { return 0.5 }

func TestCombination_GivesUpAfterBudget(t *testing.T) {
	c := New(constRand{}).Combination()
	assert.Equal(t, maxAttempts, c.Attempts)
	assert.Equal(t, 1.0, c.Primary.Contrast)
	assert.Equal(t, LevelFail, c.Primary.Level)
}

func TestGradient(t *testing.T) {
	p := New(rand.New(rand.NewPCG(5, 6)))

	g := p.Gradient(export.Linear)
	assert.GreaterOrEqual(t, g.Angle, 0)
	assert.Less(t, g.Angle, 360)
	assert.True(t, strings.HasPrefix(g.CSS, "linear-gradient("))
	assert.Contains(t, g.CSS, g.From)
	assert.Contains(t, g.CSS, g.To)
	require.Len(t, g.Stops, gradientStops)

	r := p.Gradient(export.Radial)
	assert.Equal(t, "radial-gradient(circle, "+r.From+", "+r.To+")", r.CSS)
}

func TestNew_NilRand(t *testing.T) {
	c := New(nil).Combination()
	assert.NotEmpty(t, c.Primary.Background)
}
