// Package id generates identifiers for favorites and palette sessions.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// PrefixFavorite marks saved palette IDs, e.g. "pal-V1StGXR8_Z5jdHi6B-myT".
const PrefixFavorite = "pal"

// Generate creates a prefixed NanoID of the form prefix-nanoid.
// It fails only when the system entropy source fails.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is like Generate but panics on failure.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}

// NewFavoriteID returns a fresh favorite ID.
func NewFavoriteID() (string, error) {
	return Generate(PrefixFavorite)
}

// IsFavoriteID reports whether s looks like a favorite ID.
func IsFavoriteID(s string) bool {
	rest, ok := strings.CutPrefix(s, PrefixFavorite+"-")
	return ok && rest != ""
}

// NewSessionID returns a random v4 UUID for a palette session.
func NewSessionID() string {
	return uuid.NewString()
}

// IsSessionID reports whether s is a canonical UUID string.
func IsSessionID(s string) bool {
	u, err := uuid.Parse(s)
	return err == nil && u.String() == strings.ToLower(s)
}
