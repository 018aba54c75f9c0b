package service

import (
	"context"

	"github.com/centipy/palette-server/internal/color"
)

// Swatch is one color as presented to clients.
type Swatch struct {
	Hex    string    `json:"hex"`
	HSL    color.HSL `json:"hsl"`
	Name   string    `json:"name"`
	Locked bool      `json:"locked"`
}

func newSwatch(ctx context.Context, c color.HSL, locked bool) Swatch {
	return Swatch{
		Hex:    c.Hex(),
		HSL:    c.Rounded(),
		Name:   color.NameIn(c, LanguageFrom(ctx)),
		Locked: locked,
	}
}

func newSwatches(ctx context.Context, colors []color.HSL, locked []bool) []Swatch {
	out := make([]Swatch, len(colors))
	for i, c := range colors {
		out[i] = newSwatch(ctx, c, i < len(locked) && locked[i])
	}
	return out
}
