package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"color name", "Dark Vivid Blue", "dark-vivid-blue"},
		{"spanish accents", "Azul Vívido", "azul-vivido"},
		{"spanish compound", "Rojo Anaranjado", "rojo-anaranjado"},
		{"umlaut", "Grün", "grun"},
		{"punctuation", "  Sunset #2!  ", "sunset-2"},
		{"underscores", "ocean_breeze", "ocean-breeze"},
		{"multiple dashes", "sea--foam", "sea-foam"},
		{"emoji only", "🎨", ""},
		{"empty string", "", ""},
		{"already slug", "near-black", "near-black"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugifyOr(t *testing.T) {
	if got := SlugifyOr("!!!", "palette"); got != "palette" {
		t.Errorf("SlugifyOr fallback = %q, want %q", got, "palette")
	}
	if got := SlugifyOr("Warm Tones", "palette"); got != "warm-tones" {
		t.Errorf("SlugifyOr = %q, want %q", got, "warm-tones")
	}
}
