package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/centipy/palette-server/internal/service"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createSession",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions",
		Summary:       "Create session",
		Description:   "Starts a palette editing session, generating its first palette unless empty is set",
		Tags:          []string{"Sessions"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Get session",
		Description: "Returns the current palette of a session",
		Tags:        []string{"Sessions"},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSession",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Delete session",
		Description: "Discards a session",
		Tags:        []string{"Sessions"},
	}, s.handleDeleteSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "generatePalette",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/generate",
		Summary:     "Generate palette",
		Description: "Replaces every unlocked color with a fresh harmony and resets the sliders",
		Tags:        []string{"Sessions"},
	}, s.handleGeneratePalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "resizePalette",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/resize",
		Summary:     "Resize palette",
		Description: "Changes the number of colors, keeping existing slots and their locks",
		Tags:        []string{"Sessions"},
	}, s.handleResizePalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleLock",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/locks/{index}",
		Summary:     "Toggle lock",
		Description: "Flips the lock of one color",
		Tags:        []string{"Sessions"},
	}, s.handleToggleLock)

	huma.Register(s.api, huma.Operation{
		OperationID: "setLock",
		Method:      http.MethodPut,
		Path:        "/api/v1/sessions/{id}/locks/{index}",
		Summary:     "Set lock",
		Description: "Sets the lock of one color",
		Tags:        []string{"Sessions"},
	}, s.handleSetLock)

	huma.Register(s.api, huma.Operation{
		OperationID: "setColor",
		Method:      http.MethodPut,
		Path:        "/api/v1/sessions/{id}/colors/{index}",
		Summary:     "Set color",
		Description: "Replaces one color; pending slider moves are folded into the palette first",
		Tags:        []string{"Sessions"},
	}, s.handleSetColor)

	huma.Register(s.api, huma.Operation{
		OperationID: "adjustPalette",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/adjust",
		Summary:     "Adjust sliders",
		Description: "Moves the brightness and saturation sliders, each in [-100,100]",
		Tags:        []string{"Sessions"},
	}, s.handleAdjustPalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "undoPalette",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/undo",
		Summary:     "Undo",
		Description: "Restores the previous palette",
		Tags:        []string{"Sessions"},
	}, s.handleUndoPalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "loadFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/load/{favoriteID}",
		Summary:     "Load favorite",
		Description: "Replaces the session palette with a saved favorite",
		Tags:        []string{"Sessions"},
	}, s.handleLoadFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportPalette",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}/export",
		Summary:     "Export palette",
		Description: "Renders the displayed palette as a hex list or CSS custom properties",
		Tags:        []string{"Sessions"},
	}, s.handleExportPalette)
}

// === DTOs ===

// CreateSessionRequest is the request body for creating a session.
type CreateSessionRequest struct {
	Count  int    `json:"count,omitempty" doc:"Number of colors, 3 to 8 (default 5)"`
	Scheme string `json:"scheme,omitempty" doc:"Harmony scheme (default analogous)"`
	Base   string `json:"base,omitempty" doc:"Base color in any notation; random when empty"`
	Empty  bool   `json:"empty,omitempty" doc:"Start without a palette"`
}

// CreateSessionInput wraps the create request for Huma.
type CreateSessionInput struct {
	Body *CreateSessionRequest `required:"false"`
}

// SessionInput identifies a session.
type SessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

// SessionOutput wraps a session view.
type SessionOutput struct {
	Body *service.SessionView
}

// GenerateInput carries optional generation overrides.
type GenerateInput struct {
	ID   string           `path:"id" doc:"Session ID"`
	Body *GenerateRequest `required:"false"`
}

// GenerateRequest overrides size, scheme, or base. Empty fields keep the
// session's current values.
type GenerateRequest struct {
	Count  int    `json:"count,omitempty" doc:"Number of colors, 3 to 8"`
	Scheme string `json:"scheme,omitempty" doc:"Harmony scheme"`
	Base   string `json:"base,omitempty" doc:"Base color in any notation"`
}

// ResizeRequest is the request body for resizing.
type ResizeRequest struct {
	Count int `json:"count" doc:"New number of colors, 3 to 8"`
}

// ResizeInput wraps the resize request for Huma.
type ResizeInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body ResizeRequest
}

// LockInput identifies one color of a session.
type LockInput struct {
	ID    string `path:"id" doc:"Session ID"`
	Index int    `path:"index" doc:"Zero-based color index"`
}

// SetLockRequest is the request body for setting a lock.
type SetLockRequest struct {
	Locked bool `json:"locked" doc:"Whether the color is locked"`
}

// SetLockInput wraps the set lock request for Huma.
type SetLockInput struct {
	ID    string `path:"id" doc:"Session ID"`
	Index int    `path:"index" doc:"Zero-based color index"`
	Body  SetLockRequest
}

// SetColorRequest is the request body for replacing one color.
type SetColorRequest struct {
	Color string `json:"color" doc:"Color in hex, rgb(), hsl(), or CSS name notation"`
}

// SetColorInput wraps the set color request for Huma.
type SetColorInput struct {
	ID    string `path:"id" doc:"Session ID"`
	Index int    `path:"index" doc:"Zero-based color index"`
	Body  SetColorRequest
}

// AdjustRequest is the request body for moving sliders.
type AdjustRequest struct {
	Brightness *float64 `json:"brightness,omitempty" doc:"Brightness slider, -100 to 100"`
	Saturation *float64 `json:"saturation,omitempty" doc:"Saturation slider, -100 to 100"`
}

// AdjustInput wraps the adjust request for Huma.
type AdjustInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body AdjustRequest
}

// LoadFavoriteInput identifies a session and a favorite.
type LoadFavoriteInput struct {
	ID         string `path:"id" doc:"Session ID"`
	FavoriteID string `path:"favoriteID" doc:"Favorite ID"`
}

// ExportInput selects an export format.
type ExportInput struct {
	ID     string `path:"id" doc:"Session ID"`
	Format string `query:"format" doc:"hex (default) or css"`
}

// ExportOutput is a raw export document.
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// === Handlers ===

func (s *Server) handleCreateSession(ctx context.Context, input *CreateSessionInput) (*SessionOutput, error) {
	var req CreateSessionRequest
	if input.Body != nil {
		req = *input.Body
	}
	view, err := s.services.Palette.Create(ctx, service.GenerateRequest{
		Count:  req.Count,
		Scheme: req.Scheme,
		Base:   req.Base,
	}, req.Empty)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleGetSession(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	view, err := s.services.Palette.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleDeleteSession(ctx context.Context, input *SessionInput) (*MessageOutput, error) {
	if err := s.services.Palette.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Session deleted"}}, nil
}

func (s *Server) handleGeneratePalette(ctx context.Context, input *GenerateInput) (*SessionOutput, error) {
	var req GenerateRequest
	if input.Body != nil {
		req = *input.Body
	}
	view, err := s.services.Palette.Generate(ctx, input.ID, service.GenerateRequest{
		Count:  req.Count,
		Scheme: req.Scheme,
		Base:   req.Base,
	})
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleResizePalette(ctx context.Context, input *ResizeInput) (*SessionOutput, error) {
	view, err := s.services.Palette.Resize(ctx, input.ID, input.Body.Count)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleToggleLock(ctx context.Context, input *LockInput) (*SessionOutput, error) {
	view, err := s.services.Palette.ToggleLock(ctx, input.ID, input.Index)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleSetLock(ctx context.Context, input *SetLockInput) (*SessionOutput, error) {
	view, err := s.services.Palette.SetLock(ctx, input.ID, input.Index, input.Body.Locked)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleSetColor(ctx context.Context, input *SetColorInput) (*SessionOutput, error) {
	view, err := s.services.Palette.SetColor(ctx, input.ID, input.Index, input.Body.Color)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleAdjustPalette(ctx context.Context, input *AdjustInput) (*SessionOutput, error) {
	view, err := s.services.Palette.Adjust(ctx, input.ID, service.AdjustRequest{
		Brightness: input.Body.Brightness,
		Saturation: input.Body.Saturation,
	})
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleUndoPalette(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	view, err := s.services.Palette.Undo(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleLoadFavorite(ctx context.Context, input *LoadFavoriteInput) (*SessionOutput, error) {
	view, err := s.services.Palette.LoadFavorite(ctx, input.ID, input.FavoriteID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleExportPalette(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	text, format, err := s.services.Palette.Export(ctx, input.ID, input.Format)
	if err != nil {
		return nil, err
	}
	return &ExportOutput{
		ContentType:        format.ContentType(),
		ContentDisposition: `inline; filename="palette.` + string(format) + `"`,
		Body:               []byte(text),
	}, nil
}
