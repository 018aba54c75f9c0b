// Package search provides full-text search over saved palettes using Bleve.
// Favorites are indexed by name, by the English and Spanish names of their
// colors, by the nearest CSS color names, and by exact hex value.
package search

import (
	"slices"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/domain"
)

// FavoriteDocument is the Bleve document for one favorite.
type FavoriteDocument struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ColorNames []string `json:"color_names"` // Descriptive names in every language
	CSSNames   []string `json:"css_names"`   // Nearest CSS named colors
	Hexes      []string `json:"hexes"`       // "#RRGGBB"
	ColorCount int      `json:"color_count"`
	CreatedAt  int64    `json:"created_at"` // Unix millis
	UpdatedAt  int64    `json:"updated_at"` // Unix millis
}

// NewFavoriteDocument denormalizes a favorite into a search document.
// Malformed hex values are skipped.
func NewFavoriteDocument(f *domain.Favorite) *FavoriteDocument {
	doc := &FavoriteDocument{
		ID:         f.ID,
		Name:       f.Name,
		ColorCount: len(f.Colors),
		CreatedAt:  f.CreatedAt.UnixMilli(),
		UpdatedAt:  f.UpdatedAt.UnixMilli(),
	}

	for _, hex := range f.Colors {
		c, ok := color.HexToHSL(hex)
		if !ok {
			continue
		}
		norm, _ := color.NormalizeHex(hex)
		doc.Hexes = appendUnique(doc.Hexes, norm)
		doc.ColorNames = appendUnique(doc.ColorNames, color.NameIn(c, color.English))
		doc.ColorNames = appendUnique(doc.ColorNames, color.NameIn(c, color.Spanish))
		doc.CSSNames = appendUnique(doc.CSSNames, color.NearestNamed(c))
	}
	return doc
}

func appendUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

// ToMap converts the document to a map whose keys match the index mapping.
func (d *FavoriteDocument) ToMap() map[string]any {
	return map[string]any{
		"id":          d.ID,
		"name":        d.Name,
		"color_names": d.ColorNames,
		"css_names":   d.CSSNames,
		"hexes":       d.Hexes,
		"color_count": d.ColorCount,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}
}
