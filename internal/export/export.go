// Package export renders palettes into text formats: hex lists, CSS custom
// properties, and CSS gradients.
package export

import (
	"fmt"
	"strings"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/util"
)

// Format names an export format.
type Format string

const (
	FormatHex Format = "hex"
	FormatCSS Format = "css"
)

// ParseFormat resolves a format name. Empty input selects FormatHex.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatHex:
		return FormatHex, true
	case FormatCSS:
		return FormatCSS, true
	}
	return "", false
}

// ContentType returns the MIME type of the rendered format.
func (f Format) ContentType() string {
	if f == FormatCSS {
		return "text/css; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Render formats colors in f.
func Render(f Format, colors []color.HSL, lang color.Language) string {
	if f == FormatCSS {
		return CSSVariables(colors, lang)
	}
	return HexList(colors)
}

// HexList returns one uppercase #RRGGBB code per line.
func HexList(colors []color.HSL) string {
	lines := make([]string, len(colors))
	for i, c := range colors {
		lines[i] = c.Hex()
	}
	return strings.Join(lines, "\n")
}

// CSSVariables returns a :root block declaring one custom property per color,
// named after its descriptive name and 1-based position:
//
//	:root {
//	  --color-dark-vivid-blue-1: #0A3D8F;
//	}
func CSSVariables(colors []color.HSL, lang color.Language) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for i, c := range colors {
		name := util.SlugifyOr(color.NameIn(c, lang), "color")
		fmt.Fprintf(&b, "  --color-%s-%d: %s;\n", name, i+1, c.Hex())
	}
	b.WriteString("}")
	return b.String()
}
