// Package preview produces readability previews: random foreground and
// background pairings graded against WCAG, and random gradients.
package preview

import (
	"math"
	"math/rand/v2"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/export"
	"github.com/centipy/palette-server/internal/harmony"
)

// Level is a WCAG conformance grade for normal-size text.
type Level string

const (
	LevelAAA  Level = "AAA"
	LevelAA   Level = "AA"
	LevelFail Level = "Fail"
)

const (
	minPreviewContrast = 1.5
	maxAttempts        = 10
	gradientStops      = 5
)

// Grade maps a contrast ratio to its WCAG level.
func Grade(ratio float64) Level {
	switch {
	case ratio >= 7:
		return LevelAAA
	case ratio >= 4.5:
		return LevelAA
	}
	return LevelFail
}

// Pairing is a background/foreground combination with its contrast.
type Pairing struct {
	Background string  `json:"background"`
	Foreground string  `json:"foreground"`
	Contrast   float64 `json:"contrast"`
	Level      Level   `json:"level"`
}

// Pair grades fg drawn on bg. The ratio is rounded to two decimals.
func Pair(bg, fg color.HSL) Pairing {
	ratio := color.ContrastRatio(bg, fg)
	return Pairing{
		Background: bg.Hex(),
		Foreground: fg.Hex(),
		Contrast:   math.Round(ratio*100) / 100,
		Level:      Grade(ratio),
	}
}

// Combination is a random pairing and its inverse.
type Combination struct {
	Primary  Pairing `json:"primary"`
	Swapped  Pairing `json:"swapped"`
	Attempts int     `json:"attempts"`
}

// Gradient is a rendered random gradient.
type Gradient struct {
	Kind  export.GradientKind `json:"kind"`
	Angle int                 `json:"angle"`
	From  string              `json:"from"`
	To    string              `json:"to"`
	CSS   string              `json:"css"`
	Stops []string            `json:"stops"`
}

// Previewer draws random previews.
type Previewer struct {
	rng harmony.Rand
	gen *harmony.Generator
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// New creates a previewer. A nil source uses the process-wide generator.
func New(rng harmony.Rand) *Previewer {
	if rng == nil {
		rng = globalRand{}
	}
	return &Previewer{rng: rng, gen: harmony.New(rng)}
}

// Combination draws two colors until their contrast reaches a visible minimum
// or the attempt budget runs out, in which case the last draw is returned.
func (p *Previewer) Combination() Combination {
	var bg, fg color.HSL
	attempts := 0
	for attempts < maxAttempts {
		attempts++
		bg = p.gen.RandomColor(10, 90, 5, 95)
		fg = p.gen.RandomColor(10, 90, 5, 95)
		if color.ContrastRatio(bg, fg) >= minPreviewContrast {
			break
		}
	}
	return Combination{
		Primary:  Pair(bg, fg),
		Swapped:  Pair(fg, bg),
		Attempts: attempts,
	}
}

// Gradient draws two vibrant colors and renders them as a CSS gradient.
func (p *Previewer) Gradient(kind export.GradientKind) Gradient {
	from := p.gen.RandomColor(40, 100, 35, 80).Hex()
	to := p.gen.RandomColor(40, 100, 35, 80).Hex()
	angle := int(math.Floor(p.rng.Float64() * 360))

	return Gradient{
		Kind:  kind,
		Angle: angle,
		From:  from,
		To:    to,
		CSS:   export.Gradient(kind, float64(angle), from, to),
		Stops: export.Blend(gradientStops, from, to),
	}
}
