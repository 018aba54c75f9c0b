package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/centipy/palette-server/internal/color"
	domainerrors "github.com/centipy/palette-server/internal/errors"
	"github.com/centipy/palette-server/internal/preview"
	"github.com/centipy/palette-server/internal/service"
)

func (s *Server) registerColorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSchemes",
		Method:      http.MethodGet,
		Path:        "/api/v1/schemes",
		Summary:     "List harmony schemes",
		Description: "Returns every harmony scheme with its label and hue offsets",
		Tags:        []string{"Colors"},
	}, s.handleListSchemes)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateHarmony",
		Method:      http.MethodPost,
		Path:        "/api/v1/harmony",
		Summary:     "Generate harmony",
		Description: "Generates a harmony without creating a session",
		Tags:        []string{"Colors"},
	}, s.handleGenerateHarmony)

	huma.Register(s.api, huma.Operation{
		OperationID: "parseColor",
		Method:      http.MethodPost,
		Path:        "/api/v1/colors/parse",
		Summary:     "Parse color",
		Description: "Parses hex, rgb(), hsl(), or CSS named colors",
		Tags:        []string{"Colors"},
	}, s.handleParseColor)

	huma.Register(s.api, huma.Operation{
		OperationID: "getColor",
		Method:      http.MethodGet,
		Path:        "/api/v1/colors/{hex}",
		Summary:     "Describe hex color",
		Description: "Returns HSL, RGB, luminance, and names for a hex color given without '#'",
		Tags:        []string{"Colors"},
	}, s.handleGetColor)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkContrast",
		Method:      http.MethodPost,
		Path:        "/api/v1/colors/contrast",
		Summary:     "Check contrast",
		Description: "Returns the WCAG contrast ratio and level of a color pairing",
		Tags:        []string{"Colors"},
	}, s.handleCheckContrast)
}

func (s *Server) registerPreviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "previewCombination",
		Method:      http.MethodGet,
		Path:        "/api/v1/preview/combination",
		Summary:     "Random color combination",
		Description: "Draws a random background/foreground pair with its contrast grade",
		Tags:        []string{"Preview"},
	}, s.handlePreviewCombination)

	huma.Register(s.api, huma.Operation{
		OperationID: "previewGradient",
		Method:      http.MethodGet,
		Path:        "/api/v1/preview/gradient",
		Summary:     "Random gradient",
		Description: "Draws a random two-color gradient with CSS and blended stops",
		Tags:        []string{"Preview"},
	}, s.handlePreviewGradient)
}

// === DTOs ===

// SchemesResponse lists harmony schemes.
type SchemesResponse struct {
	Schemes []service.SchemeInfo `json:"schemes" doc:"Harmony schemes in display order"`
}

// SchemesOutput wraps the schemes response for Huma.
type SchemesOutput struct {
	Body SchemesResponse
}

// HarmonyRequest is the request body for a stateless harmony.
type HarmonyRequest struct {
	BaseHue *float64 `json:"base_hue,omitempty" doc:"Base hue in degrees; wrapped into [0,360)"`
	Base    string   `json:"base,omitempty" doc:"Base color in any notation; overrides base_hue"`
	Count   int      `json:"count" doc:"Number of colors, 3 to 8"`
	Scheme  string   `json:"scheme,omitempty" doc:"Harmony scheme (default analogous)"`
}

// HarmonyInput wraps the harmony request for Huma.
type HarmonyInput struct {
	Body HarmonyRequest
}

// HarmonyOutput wraps a generated harmony.
type HarmonyOutput struct {
	Body *service.HarmonyResult
}

// ParseColorRequest is the request body for parsing a color.
type ParseColorRequest struct {
	Color string `json:"color" doc:"Color in hex, rgb(), hsl(), or CSS name notation"`
}

// ParseColorInput wraps the parse request for Huma.
type ParseColorInput struct {
	Body ParseColorRequest
}

// GetColorInput identifies a hex color by path.
type GetColorInput struct {
	Hex string `path:"hex" doc:"3- or 6-digit hex color without '#'"`
}

// ColorOutput wraps a color description.
type ColorOutput struct {
	Body *service.ColorInfo
}

// ContrastRequest is the request body for a contrast check.
type ContrastRequest struct {
	Background string `json:"background" doc:"Background color"`
	Foreground string `json:"foreground" doc:"Foreground color"`
}

// ContrastInput wraps the contrast request for Huma.
type ContrastInput struct {
	Body ContrastRequest
}

// ContrastOutput wraps a graded pairing.
type ContrastOutput struct {
	Body *preview.Pairing
}

// CombinationOutput wraps a random pairing.
type CombinationOutput struct {
	Body preview.Combination
}

// GradientInput selects a gradient kind.
type GradientInput struct {
	Kind string `query:"kind" doc:"linear (default) or radial"`
}

// GradientOutput wraps a random gradient.
type GradientOutput struct {
	Body *preview.Gradient
}

// === Handlers ===

func (s *Server) handleListSchemes(_ context.Context, _ *struct{}) (*SchemesOutput, error) {
	return &SchemesOutput{Body: SchemesResponse{Schemes: s.services.Color.Schemes()}}, nil
}

func (s *Server) handleGenerateHarmony(ctx context.Context, input *HarmonyInput) (*HarmonyOutput, error) {
	res, err := s.services.Color.Harmony(ctx, service.HarmonyRequest{
		BaseHue: input.Body.BaseHue,
		Base:    input.Body.Base,
		Count:   input.Body.Count,
		Scheme:  input.Body.Scheme,
	})
	if err != nil {
		return nil, err
	}
	return &HarmonyOutput{Body: res}, nil
}

func (s *Server) handleParseColor(ctx context.Context, input *ParseColorInput) (*ColorOutput, error) {
	info, err := s.services.Color.Describe(ctx, input.Body.Color)
	if err != nil {
		return nil, err
	}
	return &ColorOutput{Body: info}, nil
}

func (s *Server) handleGetColor(ctx context.Context, input *GetColorInput) (*ColorOutput, error) {
	hex := "#" + strings.TrimPrefix(input.Hex, "#")
	if !color.IsHex(hex) {
		return nil, domainerrors.InvalidColorf("%q is not a hex color", input.Hex)
	}
	info, err := s.services.Color.Describe(ctx, hex)
	if err != nil {
		return nil, err
	}
	return &ColorOutput{Body: info}, nil
}

func (s *Server) handleCheckContrast(ctx context.Context, input *ContrastInput) (*ContrastOutput, error) {
	p, err := s.services.Color.Contrast(ctx, input.Body.Background, input.Body.Foreground)
	if err != nil {
		return nil, err
	}
	return &ContrastOutput{Body: p}, nil
}

func (s *Server) handlePreviewCombination(_ context.Context, _ *struct{}) (*CombinationOutput, error) {
	return &CombinationOutput{Body: s.services.Color.PreviewCombination()}, nil
}

func (s *Server) handlePreviewGradient(_ context.Context, input *GradientInput) (*GradientOutput, error) {
	g, err := s.services.Color.PreviewGradient(input.Kind)
	if err != nil {
		return nil, err
	}
	return &GradientOutput{Body: g}, nil
}
