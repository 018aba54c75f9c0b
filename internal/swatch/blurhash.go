// Package swatch renders palettes as images.
package swatch

import (
	"fmt"
	"image"
	"image/color"

	"github.com/bbrks/go-blurhash"

	pcolor "github.com/centipy/palette-server/internal/color"
)

const (
	cellWidth  = 8
	cellHeight = 8
	// maxComponents is the blurhash limit per axis.
	maxComponents = 9
)

// Strip renders hex colors as a horizontal strip of equal cells.
// Invalid colors render black.
func Strip(hexes []string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(len(hexes), 1)*cellWidth, cellHeight))
	for i, h := range hexes {
		c := color.RGBA{A: 0xFF}
		if hsl, ok := pcolor.HexToHSL(h); ok {
			c.R, c.G, c.B = hsl.RGB().Bytes()
		}
		for x := i * cellWidth; x < (i+1)*cellWidth; x++ {
			for y := range cellHeight {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// BlurHash encodes a palette strip as a compact placeholder string. One
// horizontal component is used per color, up to the format limit.
func BlurHash(hexes []string) (string, error) {
	if len(hexes) == 0 {
		return "", fmt.Errorf("empty palette")
	}
	x := min(len(hexes), maxComponents)
	hash, err := blurhash.Encode(x, 1, Strip(hexes))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}
