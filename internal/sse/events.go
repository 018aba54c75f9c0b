// Package sse implements Server-Sent Events for favorite and palette session
// updates.
package sse

import (
	"time"

	"github.com/centipy/palette-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	EventFavoriteCreated EventType = "favorite.created"
	EventFavoriteUpdated EventType = "favorite.updated"
	EventFavoriteDeleted EventType = "favorite.deleted"

	// EventSessionUpdated is sent after any change to a session's palette.
	EventSessionUpdated EventType = "session.updated"
	EventSessionDeleted EventType = "session.deleted"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
	// SessionID scopes the event to clients watching that session.
	// Empty means broadcast to everyone.
	SessionID string `json:"session_id,omitempty"`
}

// FavoriteEventData is the payload of favorite.created and favorite.updated.
type FavoriteEventData struct {
	Favorite *domain.Favorite `json:"favorite"`
}

// FavoriteDeletedEventData is the payload of favorite.deleted.
type FavoriteDeletedEventData struct {
	FavoriteID string `json:"favorite_id"`
}

// SessionEventData describes the palette of a session after a change.
type SessionEventData struct {
	SessionID  string   `json:"session_id"`
	Action     string   `json:"action"` // generate, resize, lock, set_color, adjust, undo, load
	Scheme     string   `json:"scheme,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	Locked     []bool   `json:"locked,omitempty"`
	Brightness float64  `json:"brightness"`
	Saturation float64  `json:"saturation"`
}

// NewFavoriteCreatedEvent creates a favorite.created event.
func NewFavoriteCreatedEvent(f *domain.Favorite) Event {
	return Event{
		Type:      EventFavoriteCreated,
		Data:      FavoriteEventData{Favorite: f},
		Timestamp: time.Now(),
	}
}

// NewFavoriteUpdatedEvent creates a favorite.updated event.
func NewFavoriteUpdatedEvent(f *domain.Favorite) Event {
	return Event{
		Type:      EventFavoriteUpdated,
		Data:      FavoriteEventData{Favorite: f},
		Timestamp: time.Now(),
	}
}

// NewFavoriteDeletedEvent creates a favorite.deleted event.
func NewFavoriteDeletedEvent(favoriteID string) Event {
	return Event{
		Type:      EventFavoriteDeleted,
		Data:      FavoriteDeletedEventData{FavoriteID: favoriteID},
		Timestamp: time.Now(),
	}
}

// NewSessionUpdatedEvent creates a session.updated event scoped to the session.
func NewSessionUpdatedEvent(data SessionEventData) Event {
	return Event{
		Type:      EventSessionUpdated,
		Data:      data,
		SessionID: data.SessionID,
		Timestamp: time.Now(),
	}
}

// NewSessionDeletedEvent creates a session.deleted event scoped to the session.
func NewSessionDeletedEvent(sessionID string) Event {
	return Event{
		Type:      EventSessionDeleted,
		Data:      map[string]string{"session_id": sessionID},
		SessionID: sessionID,
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Data:      map[string]any{},
		Timestamp: time.Now(),
	}
}
