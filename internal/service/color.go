package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/centipy/palette-server/internal/color"
	domainerrors "github.com/centipy/palette-server/internal/errors"
	"github.com/centipy/palette-server/internal/export"
	"github.com/centipy/palette-server/internal/harmony"
	"github.com/centipy/palette-server/internal/metrics"
	"github.com/centipy/palette-server/internal/palette"
	"github.com/centipy/palette-server/internal/preview"
)

// ColorService answers stateless color questions: parsing, naming, contrast,
// harmonies, and random previews.
type ColorService struct {
	gen     *harmony.Generator
	preview *preview.Previewer
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewColorService creates a color service. A nil rng uses the process-wide
// random source; a non-nil one must be safe for concurrent use.
func NewColorService(rng harmony.Rand, rec metrics.Recorder, logger *slog.Logger) *ColorService {
	if rec == nil {
		rec = metrics.NewNoOpExporter()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ColorService{
		gen:     harmony.New(rng),
		preview: preview.New(rng),
		metrics: rec,
		logger:  logger,
	}
}

// RGBBytes is an RGB triple in 0..255.
type RGBBytes struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorInfo describes a parsed color.
type ColorInfo struct {
	Input      string    `json:"input"`
	Hex        string    `json:"hex"`
	HSL        color.HSL `json:"hsl"`
	RGB        RGBBytes  `json:"rgb"`
	Name       string    `json:"name"`
	NearestCSS string    `json:"nearest_css"`
	Luminance  float64   `json:"luminance"`
	// Readable text color: "#000000" or "#FFFFFF", whichever contrasts more.
	TextColor string `json:"text_color"`
}

// Describe parses any supported color notation and describes it.
func (s *ColorService) Describe(ctx context.Context, input string) (*ColorInfo, error) {
	c, ok := color.Parse(input)
	if !ok {
		return nil, domainerrors.InvalidColorf("cannot parse color %q", input)
	}

	rgb := c.RGB()
	r, g, b := rgb.Bytes()

	text := "#000000"
	black, white := color.HSL{}, color.HSL{L: 100}
	if color.ContrastRatio(c, white) > color.ContrastRatio(c, black) {
		text = "#FFFFFF"
	}

	return &ColorInfo{
		Input:      input,
		Hex:        c.Hex(),
		HSL:        c.Rounded(),
		RGB:        RGBBytes{R: r, G: g, B: b},
		Name:       color.NameIn(c, LanguageFrom(ctx)),
		NearestCSS: color.NearestNamed(c),
		Luminance:  math.Round(color.Luminance(rgb.R, rgb.G, rgb.B)*10000) / 10000,
		TextColor:  text,
	}, nil
}

// Contrast grades foreground on background.
func (s *ColorService) Contrast(_ context.Context, background, foreground string) (*preview.Pairing, error) {
	bg, ok := color.Parse(background)
	if !ok {
		return nil, domainerrors.InvalidColorf("cannot parse background color %q", background)
	}
	fg, ok := color.Parse(foreground)
	if !ok {
		return nil, domainerrors.InvalidColorf("cannot parse foreground color %q", foreground)
	}
	p := preview.Pair(bg, fg)
	return &p, nil
}

// SchemeInfo describes one harmony scheme.
type SchemeInfo struct {
	ID      harmony.Scheme `json:"id"`
	Label   string         `json:"label"`
	Offsets []float64      `json:"offsets,omitempty"`
}

// Schemes lists every harmony scheme in display order.
func (s *ColorService) Schemes() []SchemeInfo {
	schemes := harmony.Schemes()
	out := make([]SchemeInfo, len(schemes))
	for i, sc := range schemes {
		out[i] = SchemeInfo{ID: sc, Label: sc.Label(), Offsets: sc.Offsets()}
	}
	return out
}

// HarmonyRequest asks for a stateless harmony. Base, when set, overrides
// BaseHue; with neither a random hue is used.
type HarmonyRequest struct {
	BaseHue *float64
	Base    string
	Count   int
	Scheme  string
}

// HarmonyResult is a generated harmony.
type HarmonyResult struct {
	Scheme  harmony.Scheme `json:"scheme"`
	BaseHue float64        `json:"base_hue"`
	Colors  []Swatch       `json:"colors"`
}

// Harmony generates colors without touching any session.
func (s *ColorService) Harmony(ctx context.Context, req HarmonyRequest) (*HarmonyResult, error) {
	scheme, err := parseScheme(req.Scheme)
	if err != nil {
		return nil, err
	}
	if req.Count < palette.MinColors || req.Count > palette.MaxColors {
		return nil, domainerrors.Validationf("count must be between %d and %d", palette.MinColors, palette.MaxColors)
	}

	var baseHue float64
	switch {
	case req.Base != "":
		c, ok := color.Parse(req.Base)
		if !ok {
			return nil, domainerrors.InvalidColorf("cannot parse base color %q", req.Base)
		}
		baseHue = c.Normalize().H
	case req.BaseHue != nil:
		baseHue = color.WrapHue(*req.BaseHue)
	default:
		baseHue = s.gen.RandomColor(0, 100, 0, 100).H
	}

	colors := s.gen.Generate(baseHue, req.Count, scheme)
	s.metrics.PaletteGenerated(ctx, string(scheme), len(colors), "stateless")

	return &HarmonyResult{
		Scheme:  scheme,
		BaseHue: math.Round(baseHue*100) / 100,
		Colors:  newSwatches(ctx, colors, nil),
	}, nil
}

// PreviewCombination draws a random contrast-checked pairing.
func (s *ColorService) PreviewCombination() preview.Combination {
	return s.preview.Combination()
}

// PreviewGradient draws a random gradient of the named kind.
func (s *ColorService) PreviewGradient(kind string) (*preview.Gradient, error) {
	k, ok := export.ParseGradientKind(kind)
	if !ok {
		return nil, domainerrors.Validationf("unknown gradient kind %q", kind)
	}
	g := s.preview.Gradient(k)
	return &g, nil
}

// parseScheme resolves a scheme name. Empty selects the default.
func parseScheme(name string) (harmony.Scheme, error) {
	if name == "" {
		return harmony.DefaultScheme, nil
	}
	scheme, ok := harmony.ParseScheme(name)
	if !ok {
		return "", domainerrors.Validationf("unknown scheme %q", name).
			WithDetails(map[string]any{"schemes": harmony.Schemes()})
	}
	return scheme, nil
}
