package domain

import (
	"time"

	"github.com/centipy/palette-server/internal/palette"
)

// SessionRecord is the persisted form of one palette editing session.
type SessionRecord struct {
	ID string `json:"id"`
	palette.State
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSessionRecord wraps the state of s under id.
func NewSessionRecord(id string, s *palette.Session) *SessionRecord {
	now := time.Now()
	return &SessionRecord{
		ID:        id,
		State:     s.State(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Capture replaces the stored state with the current state of s.
func (r *SessionRecord) Capture(s *palette.Session) {
	r.State = s.State()
	r.UpdatedAt = time.Now()
}

// IsExpired reports whether the session has been idle longer than ttl.
func (r *SessionRecord) IsExpired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(r.UpdatedAt) > ttl
}
