package service

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/centipy/palette-server/internal/search"
	"github.com/centipy/palette-server/internal/sse"
	"github.com/centipy/palette-server/internal/store"
	"github.com/centipy/palette-server/internal/store/sqlite"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// recordingEmitter captures emitted events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recordingEmitter) Emit(event any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := event.(sse.Event); ok {
		r.events = append(r.events, e)
	}
}

func (r *recordingEmitter) types() []sse.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sse.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recordingEmitter) last() sse.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type testServices struct {
	palettes  *PaletteService
	favorites *FavoriteService
	sessions  *store.Store
	db        *sqlite.Store
	index     *search.SearchIndex
	events    *recordingEmitter
}

// setupServices wires both services over an in-memory session store, a
// temporary SQLite database, and an in-memory search index.
func setupServices(t *testing.T) *testServices {
	t.Helper()

	sessions, err := store.New("", time.Hour, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "favorites.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	index, err := search.NewSearchIndex(search.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	events := &recordingEmitter{}
	return &testServices{
		palettes:  NewPaletteService(sessions, db, events, nil, fixedRand(0.5), nil),
		favorites: NewFavoriteService(db, index, events, nil, nil),
		sessions:  sessions,
		db:        db,
		index:     index,
		events:    events,
	}
}

func hexesOf(swatches []Swatch) []string {
	out := make([]string, len(swatches))
	for i, s := range swatches {
		out[i] = s.Hex
	}
	return out
}
