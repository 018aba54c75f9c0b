package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/centipy/palette-server/internal/color"
)

// GradientKind selects the CSS gradient function.
type GradientKind string

const (
	Linear GradientKind = "linear"
	Radial GradientKind = "radial"
)

// ParseGradientKind resolves a gradient kind. Empty input selects Linear.
func ParseGradientKind(s string) (GradientKind, bool) {
	switch GradientKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", Linear:
		return Linear, true
	case Radial:
		return Radial, true
	}
	return "", false
}

// Gradient renders a CSS gradient through the given colors. Linear gradients
// use angle in degrees, reduced to [0,360); radial gradients ignore it.
func Gradient(kind GradientKind, angle float64, hexes ...string) string {
	stops := strings.Join(hexes, ", ")
	if kind == Radial {
		return fmt.Sprintf("radial-gradient(circle, %s)", stops)
	}
	deg := int(math.Floor(color.WrapHue(angle)))
	return fmt.Sprintf("linear-gradient(%ddeg, %s)", deg, stops)
}

// Blend returns size colors interpolated through the given hex stops in
// CIE-Lab space, starting at the first stop and ending at the last. Invalid stops are
// skipped; fewer than two valid stops yields nil.
func Blend(size int, hexes ...string) []string {
	keys := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		norm, ok := color.NormalizeHex(h)
		if !ok {
			continue
		}
		c, err := colorful.Hex(norm)
		if err != nil {
			continue
		}
		keys = append(keys, c)
	}
	if len(keys) < 2 || size < 2 {
		return nil
	}

	segments := len(keys) - 1
	out := make([]string, size)
	for i := range size {
		// Position along the whole ramp, in segment units.
		pos := float64(i) / float64(size-1) * float64(segments)
		seg := min(int(pos), segments-1)
		t := pos - float64(seg)
		c := keys[seg].BlendLab(keys[seg+1], t).Clamped()
		out[i] = strings.ToUpper(c.Hex())
	}
	return out
}
