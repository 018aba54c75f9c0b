package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/domain"
	domainerrors "github.com/centipy/palette-server/internal/errors"
	"github.com/centipy/palette-server/internal/export"
	"github.com/centipy/palette-server/internal/harmony"
	"github.com/centipy/palette-server/internal/id"
	"github.com/centipy/palette-server/internal/metrics"
	"github.com/centipy/palette-server/internal/palette"
	"github.com/centipy/palette-server/internal/sse"
	"github.com/centipy/palette-server/internal/store"
)

// Session actions reported in session.updated events.
const (
	ActionCreate   = "create"
	ActionGenerate = "generate"
	ActionResize   = "resize"
	ActionLock     = "lock"
	ActionSetColor = "set_color"
	ActionAdjust   = "adjust"
	ActionUndo     = "undo"
	ActionLoad     = "load"
)

// PaletteService runs palette editing sessions. Each session is loaded,
// mutated and saved under a per-session lock.
type PaletteService struct {
	sessions  store.SessionStore
	favorites store.FavoriteStore
	emitter   store.EventEmitter
	metrics   metrics.Recorder
	gen       *harmony.Generator
	locks     *keyedMutex
	logger    *slog.Logger
}

// NewPaletteService creates a palette service. A nil rng uses the
// process-wide random source; a non-nil one must be safe for concurrent use.
func NewPaletteService(
	sessions store.SessionStore,
	favorites store.FavoriteStore,
	emitter store.EventEmitter,
	rec metrics.Recorder,
	rng harmony.Rand,
	logger *slog.Logger,
) *PaletteService {
	if emitter == nil {
		emitter = store.NewNoopEmitter()
	}
	if rec == nil {
		rec = metrics.NewNoOpExporter()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PaletteService{
		sessions:  sessions,
		favorites: favorites,
		emitter:   emitter,
		metrics:   rec,
		gen:       harmony.New(rng),
		locks:     newKeyedMutex(),
		logger:    logger,
	}
}

// SessionView is the client-facing state of a session.
type SessionView struct {
	ID          string         `json:"id"`
	Scheme      harmony.Scheme `json:"scheme"`
	SchemeLabel string         `json:"scheme_label"`
	Colors      []Swatch       `json:"colors"`
	Baseline    []string       `json:"baseline"`
	Brightness  float64        `json:"brightness"`
	Saturation  float64        `json:"saturation"`
	UndoDepth   int            `json:"undo_depth"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func newSessionView(ctx context.Context, rec *domain.SessionRecord, sess *palette.Session) *SessionView {
	brightness, saturation := sess.Sliders()
	baseline := sess.Baseline()
	hexes := make([]string, len(baseline))
	for i, c := range baseline {
		hexes[i] = c.Hex()
	}
	return &SessionView{
		ID:          rec.ID,
		Scheme:      sess.Scheme(),
		SchemeLabel: sess.Scheme().Label(),
		Colors:      newSwatches(ctx, sess.Colors(), sess.Locked()),
		Baseline:    hexes,
		Brightness:  brightness,
		Saturation:  saturation,
		UndoDepth:   sess.UndoDepth(),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// GenerateRequest configures a generation pass. Zero values keep the
// session's current size and scheme.
type GenerateRequest struct {
	Count  int
	Scheme string
	Base   string
}

func (r GenerateRequest) options() (palette.GenerateOptions, error) {
	opts := palette.GenerateOptions{Count: r.Count}
	if r.Count != 0 && (r.Count < palette.MinColors || r.Count > palette.MaxColors) {
		return opts, domainerrors.Validationf("count must be between %d and %d", palette.MinColors, palette.MaxColors)
	}
	if r.Scheme != "" {
		scheme, err := parseScheme(r.Scheme)
		if err != nil {
			return opts, err
		}
		opts.Scheme = scheme
	}
	if r.Base != "" {
		c, ok := color.Parse(r.Base)
		if !ok {
			return opts, domainerrors.InvalidColorf("cannot parse base color %q", r.Base)
		}
		opts.Base = &c
	}
	return opts, nil
}

// Create starts a new session and, unless empty is set, generates its first
// palette.
func (s *PaletteService) Create(ctx context.Context, req GenerateRequest, empty bool) (*SessionView, error) {
	opts, err := req.options()
	if err != nil {
		return nil, err
	}

	sess := palette.New(s.gen)
	if !empty {
		if err := sess.Generate(opts); err != nil {
			return nil, mapPaletteError(err)
		}
		// The first palette is the starting point, not an undo target.
		sess = palette.Restore(palette.State{Snapshot: sess.State().Snapshot}, s.gen)
		s.metrics.PaletteGenerated(ctx, string(sess.Scheme()), len(sess.Baseline()), "session")
	}

	rec := domain.NewSessionRecord(id.NewSessionID(), sess)
	if err := s.sessions.SaveSession(ctx, rec); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save session")
	}

	s.logger.Info("session created", "session_id", rec.ID, "colors", len(sess.Baseline()))
	s.emitUpdate(rec.ID, ActionCreate, sess)
	return newSessionView(ctx, rec, sess), nil
}

// Get returns the current state of a session.
func (s *PaletteService) Get(ctx context.Context, sessionID string) (*SessionView, error) {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newSessionView(ctx, rec, palette.Restore(rec.State, s.gen)), nil
}

// Delete discards a session.
func (s *PaletteService) Delete(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return mapSessionError(err, sessionID)
	}
	s.logger.Info("session deleted", "session_id", sessionID)
	s.emitter.Emit(sse.NewSessionDeletedEvent(sessionID))
	return nil
}

// Generate replaces the unlocked colors of a session with a fresh harmony.
func (s *PaletteService) Generate(ctx context.Context, sessionID string, req GenerateRequest) (*SessionView, error) {
	opts, err := req.options()
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, ActionGenerate, func(sess *palette.Session) error {
		if err := sess.Generate(opts); err != nil {
			return err
		}
		s.metrics.PaletteGenerated(ctx, string(sess.Scheme()), len(sess.Baseline()), "session")
		return nil
	})
}

// Resize changes the number of colors in a session.
func (s *PaletteService) Resize(ctx context.Context, sessionID string, count int) (*SessionView, error) {
	return s.mutate(ctx, sessionID, ActionResize, func(sess *palette.Session) error {
		return sess.Resize(count)
	})
}

// ToggleLock flips the lock of one color.
func (s *PaletteService) ToggleLock(ctx context.Context, sessionID string, index int) (*SessionView, error) {
	return s.mutate(ctx, sessionID, ActionLock, func(sess *palette.Session) error {
		_, err := sess.ToggleLock(index)
		return err
	})
}

// SetLock sets the lock of one color.
func (s *PaletteService) SetLock(ctx context.Context, sessionID string, index int, locked bool) (*SessionView, error) {
	return s.mutate(ctx, sessionID, ActionLock, func(sess *palette.Session) error {
		return sess.SetLock(index, locked)
	})
}

// SetColor replaces one color with any parseable notation.
func (s *PaletteService) SetColor(ctx context.Context, sessionID string, index int, value string) (*SessionView, error) {
	c, ok := color.Parse(value)
	if !ok {
		return nil, domainerrors.InvalidColorf("cannot parse color %q", value)
	}
	return s.mutate(ctx, sessionID, ActionSetColor, func(sess *palette.Session) error {
		return sess.SetColor(index, c)
	})
}

// AdjustRequest moves either slider. Nil leaves a slider where it is.
type AdjustRequest struct {
	Brightness *float64
	Saturation *float64
}

// Adjust moves the brightness and saturation sliders.
func (s *PaletteService) Adjust(ctx context.Context, sessionID string, req AdjustRequest) (*SessionView, error) {
	return s.mutate(ctx, sessionID, ActionAdjust, func(sess *palette.Session) error {
		if len(sess.Baseline()) == 0 {
			return palette.ErrEmptyPalette
		}
		if req.Brightness != nil {
			sess.AdjustBrightness(*req.Brightness)
		}
		if req.Saturation != nil {
			sess.AdjustSaturation(*req.Saturation)
		}
		return nil
	})
}

// Undo restores the previous palette.
func (s *PaletteService) Undo(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, ActionUndo, func(sess *palette.Session) error {
		return sess.Undo()
	})
}

// LoadFavorite replaces the session palette with a saved favorite.
func (s *PaletteService) LoadFavorite(ctx context.Context, sessionID, favoriteID string) (*SessionView, error) {
	fav, err := s.favorites.GetFavorite(ctx, favoriteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("favorite %s not found", favoriteID)
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to load favorite")
	}
	return s.mutate(ctx, sessionID, ActionLoad, func(sess *palette.Session) error {
		return sess.Load(fav.Colors)
	})
}

// Export renders the displayed palette of a session.
func (s *PaletteService) Export(ctx context.Context, sessionID, format string) (string, export.Format, error) {
	f, ok := export.ParseFormat(format)
	if !ok {
		return "", "", domainerrors.Validationf("unknown export format %q", format)
	}
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return "", "", err
	}
	sess := palette.Restore(rec.State, s.gen)
	if len(sess.Baseline()) == 0 {
		return "", "", mapPaletteError(palette.ErrEmptyPalette)
	}
	return export.Render(f, sess.Colors(), LanguageFrom(ctx)), f, nil
}

// Hexes returns the displayed colors of a session, for saving as a favorite.
func (s *PaletteService) Hexes(ctx context.Context, sessionID string) ([]string, error) {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return palette.Restore(rec.State, s.gen).Hexes(), nil
}

// mutate applies fn to a session under its lock and persists the result.
// Nothing is saved when fn fails.
func (s *PaletteService) mutate(ctx context.Context, sessionID, action string, fn func(*palette.Session) error) (*SessionView, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess := palette.Restore(rec.State, s.gen)
	if err := fn(sess); err != nil {
		return nil, mapPaletteError(err)
	}

	rec.Capture(sess)
	if err := s.sessions.SaveSession(ctx, rec); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save session")
	}

	s.logger.Debug("session updated", "session_id", sessionID, "action", action, "undo_depth", sess.UndoDepth())
	s.emitUpdate(sessionID, action, sess)
	return newSessionView(ctx, rec, sess), nil
}

func (s *PaletteService) load(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	if !id.IsSessionID(sessionID) {
		return nil, domainerrors.NotFoundf("session %s not found", sessionID)
	}
	rec, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, mapSessionError(err, sessionID)
	}
	return rec, nil
}

func (s *PaletteService) emitUpdate(sessionID, action string, sess *palette.Session) {
	brightness, saturation := sess.Sliders()
	s.emitter.Emit(sse.NewSessionUpdatedEvent(sse.SessionEventData{
		SessionID:  sessionID,
		Action:     action,
		Scheme:     string(sess.Scheme()),
		Colors:     sess.Hexes(),
		Locked:     sess.Locked(),
		Brightness: brightness,
		Saturation: saturation,
	}))
}

func mapSessionError(err error, sessionID string) error {
	switch {
	case errors.Is(err, store.ErrSessionExpired):
		return domainerrors.NotFoundf("session %s expired", sessionID)
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFoundf("session %s not found", sessionID)
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to load session")
	}
}

func mapPaletteError(err error) error {
	switch {
	case errors.Is(err, palette.ErrInvalidCount):
		return domainerrors.Validation(err.Error())
	case errors.Is(err, palette.ErrIndexOutOfRange):
		return domainerrors.Validation(err.Error())
	case errors.Is(err, palette.ErrInvalidColor):
		return domainerrors.InvalidColor(err.Error())
	case errors.Is(err, palette.ErrNothingToUndo):
		return domainerrors.NothingToUndo(err.Error())
	case errors.Is(err, palette.ErrEmptyPalette):
		return domainerrors.Conflict("session has no palette yet; generate one first")
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, fmt.Sprintf("palette operation failed: %v", err))
	}
}
