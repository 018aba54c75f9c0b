package domain

import (
	"slices"
	"time"
)

// Favorite is a saved, named palette. Colors are normalized "#RRGGBB"
// strings in display order.
type Favorite struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Colors    []string  `json:"colors"`
	BlurHash  string    `json:"blurhash,omitempty"` // Placeholder for list views
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (f *Favorite) InitTimestamps() {
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (f *Favorite) Touch() {
	f.UpdatedAt = time.Now()
}

// HasColor reports whether hex is one of the favorite's colors.
func (f *Favorite) HasColor(hex string) bool {
	return slices.Contains(f.Colors, hex)
}
