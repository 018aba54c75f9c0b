package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/centipy/palette-server/internal/domain"
	"github.com/centipy/palette-server/internal/service"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createFavorite",
		Method:        http.MethodPost,
		Path:          "/api/v1/favorites",
		Summary:       "Save favorite",
		Description:   "Saves a named palette from explicit colors or from a session's displayed colors",
		Tags:          []string{"Favorites"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Lists saved palettes newest first, or searches them by name and color names when q is set",
		Tags:        []string{"Favorites"},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFavorite",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Get favorite",
		Description: "Returns a saved palette by ID",
		Tags:        []string{"Favorites"},
	}, s.handleGetFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameFavorite",
		Method:      http.MethodPatch,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Rename favorite",
		Description: "Changes the name of a saved palette",
		Tags:        []string{"Favorites"},
	}, s.handleRenameFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Delete favorite",
		Description: "Deletes a saved palette",
		Tags:        []string{"Favorites"},
	}, s.handleDeleteFavorite)
}

// === DTOs ===

// FavoriteResponse contains favorite data in API responses.
type FavoriteResponse struct {
	ID        string    `json:"id" doc:"Favorite ID"`
	Name      string    `json:"name" doc:"Palette name"`
	Colors    []string  `json:"colors" doc:"Colors as #RRGGBB in display order"`
	BlurHash  string    `json:"blurhash,omitempty" doc:"BlurHash placeholder of the color strip"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

func newFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        f.ID,
		Name:      f.Name,
		Colors:    f.Colors,
		BlurHash:  f.BlurHash,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// CreateFavoriteRequest is the request body for saving a favorite.
// Set either colors or session_id.
type CreateFavoriteRequest struct {
	Name      string   `json:"name" doc:"Palette name"`
	Colors    []string `json:"colors,omitempty" doc:"3 to 8 colors in any notation"`
	SessionID string   `json:"session_id,omitempty" doc:"Save the displayed colors of this session"`
}

// CreateFavoriteInput wraps the create request for Huma.
type CreateFavoriteInput struct {
	Body CreateFavoriteRequest
}

// FavoriteOutput wraps a favorite response for Huma.
type FavoriteOutput struct {
	Body FavoriteResponse
}

// ListFavoritesInput contains parameters for listing favorites.
type ListFavoritesInput struct {
	Query     string `query:"q" doc:"Full-text query; a #RRGGBB query matches that exact color"`
	MinColors int    `query:"min_colors" doc:"Only palettes with at least this many colors"`
	MaxColors int    `query:"max_colors" doc:"Only palettes with at most this many colors"`
	Limit     int    `query:"limit" doc:"Page size (default 20, max 100)"`
	Offset    int    `query:"offset" doc:"Number of favorites to skip"`
}

// ListFavoritesResponse is one page of favorites.
type ListFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites" doc:"Favorites on this page"`
	Total     int                `json:"total" doc:"Total matching favorites"`
	Limit     int                `json:"limit" doc:"Applied page size"`
	Offset    int                `json:"offset" doc:"Applied offset"`
}

// ListFavoritesOutput wraps the list response for Huma.
type ListFavoritesOutput struct {
	Body ListFavoritesResponse
}

// FavoriteInput identifies a favorite.
type FavoriteInput struct {
	ID string `path:"id" doc:"Favorite ID"`
}

// RenameFavoriteRequest is the request body for renaming a favorite.
type RenameFavoriteRequest struct {
	Name string `json:"name" doc:"New palette name"`
}

// RenameFavoriteInput wraps the rename request for Huma.
type RenameFavoriteInput struct {
	ID   string `path:"id" doc:"Favorite ID"`
	Body RenameFavoriteRequest
}

// === Handlers ===

func (s *Server) handleCreateFavorite(ctx context.Context, input *CreateFavoriteInput) (*FavoriteOutput, error) {
	var (
		fav *domain.Favorite
		err error
	)
	if input.Body.SessionID != "" {
		fav, err = s.services.Favorite.SaveSession(ctx, s.services.Palette, input.Body.SessionID, input.Body.Name)
	} else {
		fav, err = s.services.Favorite.Create(ctx, service.CreateFavoriteRequest{
			Name:   input.Body.Name,
			Colors: input.Body.Colors,
		})
	}
	if err != nil {
		return nil, err
	}
	return &FavoriteOutput{Body: newFavoriteResponse(fav)}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*ListFavoritesOutput, error) {
	list, err := s.services.Favorite.List(ctx, service.ListFavoritesRequest{
		Query:     input.Query,
		MinColors: input.MinColors,
		MaxColors: input.MaxColors,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]FavoriteResponse, len(list.Favorites))
	for i, f := range list.Favorites {
		resp[i] = newFavoriteResponse(f)
	}

	return &ListFavoritesOutput{
		Body: ListFavoritesResponse{
			Favorites: resp,
			Total:     list.Total,
			Limit:     list.Limit,
			Offset:    list.Offset,
		},
	}, nil
}

func (s *Server) handleGetFavorite(ctx context.Context, input *FavoriteInput) (*FavoriteOutput, error) {
	fav, err := s.services.Favorite.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &FavoriteOutput{Body: newFavoriteResponse(fav)}, nil
}

func (s *Server) handleRenameFavorite(ctx context.Context, input *RenameFavoriteInput) (*FavoriteOutput, error) {
	fav, err := s.services.Favorite.Rename(ctx, input.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}
	return &FavoriteOutput{Body: newFavoriteResponse(fav)}, nil
}

func (s *Server) handleDeleteFavorite(ctx context.Context, input *FavoriteInput) (*MessageOutput, error) {
	if err := s.services.Favorite.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Favorite deleted"}}, nil
}
