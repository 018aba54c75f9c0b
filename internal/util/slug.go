// Package util provides small string helpers shared by the export and API layers.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches anything that is not a lowercase ASCII letter or digit.
	nonIdentRe = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// Slugify converts a display name into a lowercase dash-separated token that
// is safe inside CSS custom property names and file names.
//
// Accents are decomposed and dropped, so "Azul Vívido" becomes "azul-vivido".
//
//	"Dark Vivid Blue" → "dark-vivid-blue"
//	"Rojo Anaranjado" → "rojo-anaranjado"
//	"  Sunset #2!  "  → "sunset-2"
func Slugify(input string) string {
	s := norm.NFKD.String(strings.TrimSpace(input))

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonIdentRe.ReplaceAllString(s, "-")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugifyOr returns Slugify(input), or fallback when the result is empty.
func SlugifyOr(input, fallback string) string {
	if s := Slugify(input); s != "" {
		return s
	}
	return fallback
}
