package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName_Grays(t *testing.T) {
	tests := []struct {
		l    float64
		want string
	}{
		{0, "Black"},
		{10, "Near Black"},
		{20, "Very Dark Gray"},
		{50, "Medium Gray"},
		{70, "Light Gray"},
		{90, "Very Light Gray"},
		{100, "White"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(HSL{H: 200, S: 5, L: tt.l}))
		})
	}
}

func TestName_HueBands(t *testing.T) {
	tests := []struct {
		h    float64
		want string
	}{
		{0, "Red"},
		{11.9, "Red"},
		{12, "Red Orange"},
		{30, "Orange"},
		{50, "Amber"},
		{60, "Yellow"},
		{70, "Lime"},
		{100, "Green"},
		{150, "Teal"},
		{180, "Cyan"},
		{200, "Sky Blue"},
		{230, "Blue"},
		{260, "Violet"},
		{280, "Purple"},
		{300, "Magenta"},
		{330, "Pink"},
		{350, "Red"},
		{359, "Red"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(HSL{H: tt.h, S: 50, L: 50}))
		})
	}
}

func TestName_Descriptors(t *testing.T) {
	assert.Equal(t, "Dark Vivid Blue", Name(HSL{H: 220, S: 90, L: 30}))
	assert.Equal(t, "Very Dark Green", Name(HSL{H: 100, S: 50, L: 10}))
	assert.Equal(t, "Very Light Pink", Name(HSL{H: 330, S: 50, L: 90}))
	assert.Equal(t, "Light Vivid Orange", Name(HSL{H: 30, S: 85, L: 80}))
	assert.Equal(t, "Muted Green", Name(HSL{H: 100, S: 20, L: 50}))
}

func TestNameIn_Spanish(t *testing.T) {
	assert.Equal(t, "Azul Vívido Oscuro", NameIn(HSL{H: 220, S: 90, L: 30}, Spanish))
	assert.Equal(t, "Rojo", NameIn(HSL{H: 0, S: 50, L: 50}, Spanish))
	assert.Equal(t, "Negro", NameIn(HSL{H: 0, S: 0, L: 0}, Spanish))
	assert.Equal(t, "Verde Apagado", NameIn(HSL{H: 100, S: 20, L: 50}, Spanish))
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		accept string
		want   Language
	}{
		{"es", Spanish},
		{"es-MX", Spanish},
		{"es-ES,es;q=0.9,en;q=0.8", Spanish},
		{"en-US", English},
		{"fr", English},
		{"", English},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLanguage(tt.accept))
		})
	}
	assert.Equal(t, "es", Spanish.String())
	assert.Equal(t, "en", English.String())
}

func TestNearestNamed(t *testing.T) {
	red, ok := HexToHSL("#FF0000")
	require.True(t, ok)
	assert.Equal(t, "red", NearestNamed(red))

	assert.Equal(t, "white", NearestNamed(white))
	assert.Equal(t, "black", NearestNamed(black))
}
