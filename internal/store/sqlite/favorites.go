package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/centipy/palette-server/internal/domain"
	"github.com/centipy/palette-server/internal/store"
)

// favoriteColumns is the ordered list of columns selected in favorite queries.
// Must match the scan order in scanFavorite.
const favoriteColumns = `id, name, colors, blurhash, created_at, updated_at`

func scanFavorite(scanner interface{ Scan(dest ...any) error }) (*domain.Favorite, error) {
	var f domain.Favorite

	var (
		colors    string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&f.ID,
		&f.Name,
		&colors,
		&f.BlurHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(colors), &f.Colors); err != nil {
		return nil, fmt.Errorf("decode colors for %s: %w", f.ID, err)
	}
	f.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	f.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func encodeColors(colors []string) (string, error) {
	if colors == nil {
		colors = []string{}
	}
	data, err := json.Marshal(colors)
	if err != nil {
		return "", fmt.Errorf("encode colors: %w", err)
	}
	return string(data), nil
}

// CreateFavorite inserts a new favorite.
// Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateFavorite(ctx context.Context, f *domain.Favorite) error {
	colors, err := encodeColors(f.Colors)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, name, colors, color_count, blurhash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID,
		f.Name,
		colors,
		len(f.Colors),
		f.BlurHash,
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// GetFavorite retrieves a favorite by ID.
// Returns store.ErrFavoriteNotFound if it does not exist.
func (s *Store) GetFavorite(ctx context.Context, id string) (*domain.Favorite, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE id = ?`, id)

	f, err := scanFavorite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrFavoriteNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// GetFavoritesByIDs returns the favorites with the given IDs in the order the
// IDs were passed. Unknown IDs are skipped.
func (s *Store) GetFavoritesByIDs(ctx context.Context, ids []string) ([]*domain.Favorite, error) {
	if len(ids) == 0 {
		return []*domain.Favorite{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Favorite, len(ids))
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		byID[f.ID] = f
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*domain.Favorite, 0, len(byID))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// ListFavorites returns one page of favorites, newest first, together with
// the total number of favorites.
func (s *Store) ListFavorites(ctx context.Context, limit, offset int) ([]*domain.Favorite, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*domain.Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, 0, err
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if favorites == nil {
		favorites = []*domain.Favorite{}
	}

	return favorites, total, nil
}

// UpdateFavorite replaces the mutable fields of a favorite.
// Returns store.ErrFavoriteNotFound if it does not exist.
func (s *Store) UpdateFavorite(ctx context.Context, f *domain.Favorite) error {
	colors, err := encodeColors(f.Colors)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE favorites
		SET name = ?, colors = ?, color_count = ?, blurhash = ?, updated_at = ?
		WHERE id = ?`,
		f.Name,
		colors,
		len(f.Colors),
		f.BlurHash,
		formatTime(f.UpdatedAt),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("update favorite: %w", err)
	}
	return expectOneRow(res)
}

// DeleteFavorite removes a favorite.
// Returns store.ErrFavoriteNotFound if it does not exist.
func (s *Store) DeleteFavorite(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrFavoriteNotFound
	}
	return nil
}
