package service

import (
	"context"

	"github.com/centipy/palette-server/internal/color"
)

type languageKey struct{}

// WithLanguage returns a context carrying the language used for color names.
func WithLanguage(ctx context.Context, lang color.Language) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// LanguageFrom returns the color naming language of ctx, English by default.
func LanguageFrom(ctx context.Context) color.Language {
	if lang, ok := ctx.Value(languageKey{}).(color.Language); ok {
		return lang
	}
	return color.English
}
