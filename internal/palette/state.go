package palette

import (
	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/harmony"
)

// State is the serializable form of a Session.
type State struct {
	Snapshot
	History []Snapshot `json:"history"`
}

// State captures the session for persistence.
func (s *Session) State() State {
	return State{
		Snapshot: s.snapshot().clone(),
		History:  s.history.Entries(),
	}
}

// Restore rebuilds a session from persisted state. Lock flags are re-derived
// when their length disagrees with the palette, and only the newest
// HistoryCapacity history entries are kept.
func Restore(st State, gen *harmony.Generator) *Session {
	s := New(gen)
	if st.Scheme.Valid() {
		s.scheme = st.Scheme
	}
	snap := st.Snapshot.clone()
	if !snap.Scheme.Valid() {
		snap.Scheme = s.scheme
	}
	s.apply(snap)
	s.brightness = color.Clamp(s.brightness, -MaxAdjustment, MaxAdjustment)
	s.saturation = color.Clamp(s.saturation, -MaxAdjustment, MaxAdjustment)

	entries := st.History
	if len(entries) > HistoryCapacity {
		entries = entries[len(entries)-HistoryCapacity:]
	}
	for _, e := range entries {
		s.history.Push(e)
	}
	return s
}

