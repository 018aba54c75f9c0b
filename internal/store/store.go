package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/centipy/palette-server/internal/domain"
)

const sessionPrefix = "session:"

// Store keeps palette sessions in a Badger database. Every write refreshes
// the entry TTL, so idle sessions expire on their own.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
	ttl    time.Duration
}

var _ SessionStore = (*Store)(nil)

// New opens a Badger database at path. An empty path opens an in-memory
// database. A zero ttl keeps sessions forever.
func New(path string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else {
		opts.SyncWrites = true
		opts.CompactL0OnClose = true
	}
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Session database opened", "path", path, "ttl", ttl)
	}

	return &Store{db: db, logger: logger, ttl: ttl}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing session database")
	}
	return s.db.Close()
}

// TTL returns the idle lifetime of a session.
func (s *Store) TTL() time.Duration { return s.ttl }

// SaveSession creates or replaces a session record.
func (s *Store) SaveSession(_ context.Context, rec *domain.SessionRecord) error {
	if rec == nil || rec.ID == "" {
		return ErrInvalidInput.WithMessage("session id is required")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(rec.ID), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(_ context.Context, id string) (*domain.SessionRecord, error) {
	var rec domain.SessionRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Badger drops expired keys lazily; the record carries its own clock.
	if rec.IsExpired(time.Now(), s.ttl) {
		return nil, ErrSessionExpired
	}
	return &rec, nil
}

// DeleteSession removes a session. Missing sessions report ErrSessionNotFound.
func (s *Store) DeleteSession(_ context.Context, id string) error {
	key := sessionKey(id)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

// CountSessions returns the number of live sessions.
func (s *Store) CountSessions(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(sessionPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func sessionKey(id string) []byte {
	return []byte(sessionPrefix + id)
}
