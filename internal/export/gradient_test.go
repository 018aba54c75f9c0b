package export

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centipy/palette-server/internal/color"
)

func TestGradient(t *testing.T) {
	assert.Equal(t, "linear-gradient(45deg, #FF0000, #0000FF)", Gradient(Linear, 45, "#FF0000", "#0000FF"))
	assert.Equal(t, "linear-gradient(10deg, #FF0000, #0000FF)", Gradient(Linear, 370.5, "#FF0000", "#0000FF"))
	assert.Equal(t, "radial-gradient(circle, #FF0000, #00FF00, #0000FF)", Gradient(Radial, 90, "#FF0000", "#00FF00", "#0000FF"))
}

func TestParseGradientKind(t *testing.T) {
	k, ok := ParseGradientKind("")
	require.True(t, ok)
	assert.Equal(t, Linear, k)

	k, ok = ParseGradientKind("Radial")
	require.True(t, ok)
	assert.Equal(t, Radial, k)

	_, ok = ParseGradientKind("conic")
	assert.False(t, ok)
}

func TestBlend(t *testing.T) {
	out := Blend(5, "#FF0000", "#0000FF")
	require.Len(t, out, 5)
	assert.Equal(t, "#FF0000", out[0])
	assert.Equal(t, "#0000FF", out[4])
	for _, h := range out {
		assert.True(t, color.IsHex(h), h)
	}
}

func TestBlend_MultipleStops(t *testing.T) {
	out := Blend(3, "#000000", "#808080", "#FFFFFF")
	require.Len(t, out, 3)
	assert.Equal(t, "#000000", out[0])
	assert.Equal(t, "#808080", out[1])
	assert.Equal(t, "#FFFFFF", out[2])
}

func TestBlend_Degenerate(t *testing.T) {
	assert.Nil(t, Blend(5, "#FF0000"))
	assert.Nil(t, Blend(5, "#FF0000", "bogus"))
	assert.Nil(t, Blend(1, "#FF0000", "#0000FF"))
}

func TestBlend_LabMidpoint(t *testing.T) {
	red, err := colorful.Hex("#FF0000")
	require.NoError(t, err)
	blue, err := colorful.Hex("#0000FF")
	require.NoError(t, err)

	lab := strings.ToUpper(red.BlendLab(blue, 0.5).Clamped().Hex())
	hcl := strings.ToUpper(red.BlendHcl(blue, 0.5).Clamped().Hex())
	require.NotEqual(t, lab, hcl)

	out := Blend(3, "#FF0000", "#0000FF")
	require.Len(t, out, 3)
	assert.Equal(t, lab, out[1])
}
