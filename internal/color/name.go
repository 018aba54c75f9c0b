package color

import (
	"math"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/language"
)

// Language selects the vocabulary of descriptive names.
type Language int

const (
	English Language = iota
	Spanish
)

var nameMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Spanish,
})

// MatchLanguage picks the best naming language for an Accept-Language style
// list. Unknown or empty input falls back to English.
func MatchLanguage(accept ...string) Language {
	_, idx := language.MatchStrings(nameMatcher, accept...)
	if idx == 1 {
		return Spanish
	}
	return English
}

// String returns the BCP 47 base tag.
func (l Language) String() string {
	if l == Spanish {
		return "es"
	}
	return "en"
}

type vocabulary struct {
	grays     [7]string
	veryDark  string
	dark      string
	veryLight string
	light     string
	muted     string
	vivid     string
	hues      [16]string
	// hueFirst orders words as noun then adjectives.
	hueFirst bool
}

// hueBounds are the exclusive upper hue limits of the first 15 rows of the
// name table. Row 15 covers [350,360) and shares the red label with row 0.
var hueBounds = [15]float64{12, 25, 45, 55, 65, 80, 140, 160, 190, 210, 250, 270, 290, 320, 350}

var vocabularies = map[Language]vocabulary{
	English: {
		grays:     [7]string{"Black", "Near Black", "Very Dark Gray", "Medium Gray", "Light Gray", "Very Light Gray", "White"},
		veryDark:  "Very Dark",
		dark:      "Dark",
		veryLight: "Very Light",
		light:     "Light",
		muted:     "Muted",
		vivid:     "Vivid",
		hues: [16]string{
			"Red", "Red Orange", "Orange", "Amber", "Yellow", "Lime", "Green", "Teal",
			"Cyan", "Sky Blue", "Blue", "Violet", "Purple", "Magenta", "Pink", "Red",
		},
	},
	Spanish: {
		grays:     [7]string{"Negro", "Casi Negro", "Gris Muy Oscuro", "Gris Medio", "Gris Claro", "Gris Muy Claro", "Blanco"},
		veryDark:  "Muy Oscuro",
		dark:      "Oscuro",
		veryLight: "Muy Claro",
		light:     "Claro",
		muted:     "Apagado",
		vivid:     "Vívido",
		hues: [16]string{
			"Rojo", "Rojo Anaranjado", "Naranja", "Ámbar", "Amarillo", "Lima", "Verde", "Verde Azulado",
			"Cian", "Azul Celeste", "Azul", "Violeta", "Púrpura", "Magenta", "Rosa", "Rojo",
		},
		hueFirst: true,
	},
}

// Name returns an English descriptive name such as "Dark Vivid Blue".
func Name(c HSL) string {
	return NameIn(c, English)
}

// NameIn returns a descriptive name in the given language.
func NameIn(c HSL, lang Language) string {
	v, ok := vocabularies[lang]
	if !ok {
		v = vocabularies[English]
	}
	c = c.Normalize()
	h, s, l := c.H, c.S, c.L

	if s < 10 {
		switch {
		case l < 5:
			return v.grays[0]
		case l < 15:
			return v.grays[1]
		case l < 35:
			return v.grays[2]
		case l < 65:
			return v.grays[3]
		case l < 85:
			return v.grays[4]
		case l < 95:
			return v.grays[5]
		default:
			return v.grays[6]
		}
	}

	var words []string
	switch {
	case l < 20:
		words = append(words, v.veryDark)
	case l < 40:
		words = append(words, v.dark)
	case l > 85:
		words = append(words, v.veryLight)
	case l > 75:
		words = append(words, v.light)
	}

	switch {
	case s < 30 && l >= 40 && l <= 70:
		words = append(words, v.muted)
	case s > 80:
		words = append(words, v.vivid)
	}

	hue := v.hues[hueRow(h)]
	if v.hueFirst {
		// Adjectives follow the noun, saturation first: "Azul Vívido Oscuro".
		for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
			words[i], words[j] = words[j], words[i]
		}
		return strings.Join(append([]string{hue}, words...), " ")
	}
	return strings.Join(append(words, hue), " ")
}

func hueRow(h float64) int {
	for i, bound := range hueBounds {
		if h < bound {
			return i
		}
	}
	return len(hueBounds)
}

// NearestNamed returns the CSS color keyword closest to c in RGB space.
func NearestNamed(c HSL) string {
	r0, g0, b0 := c.RGB().Bytes()

	best, bestDist := "", math.MaxFloat64
	for _, name := range colornames.Names {
		n := colornames.Map[name]
		// Weighted "redmean" distance; plain Euclidean over-weights blue.
		rMean := (float64(r0) + float64(n.R)) / 2
		dr := float64(r0) - float64(n.R)
		dg := float64(g0) - float64(n.G)
		db := float64(b0) - float64(n.B)
		d := (2+rMean/256)*dr*dr + 4*dg*dg + (2+(255-rMean)/256)*db*db
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
