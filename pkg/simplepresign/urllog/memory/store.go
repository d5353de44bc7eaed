// Package memory provides an in-memory urllog.Store, suitable for tests
// and single-process deployments that do not need the log to survive a
// restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-presign/pkg/simplepresign/urllog"
)

// Store implements urllog.Store using in-memory storage
type Store struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*urllog.Entry
	order   []uuid.UUID // insertion order, oldest first
}

// New creates a new in-memory store
func New() urllog.Store {
	return &Store{
		entries: make(map[uuid.UUID]*urllog.Entry),
	}
}

func (s *Store) Create(ctx context.Context, entry *urllog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to avoid external modifications
	entryCopy := *entry
	if _, exists := s.entries[entry.ID]; !exists {
		s.order = append(s.order, entry.ID)
	}
	s.entries[entry.ID] = &entryCopy

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*urllog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[id]
	if !exists {
		return nil, urllog.ErrEntryNotFound
	}

	// Return a copy to prevent external modifications
	entryCopy := *entry
	return &entryCopy, nil
}

func (s *Store) List(ctx context.Context, filter urllog.Filter) ([]*urllog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*urllog.Entry
	// Walk newest first so Limit keeps the most recent entries.
	for i := len(s.order) - 1; i >= 0; i-- {
		entry, exists := s.entries[s.order[i]]
		if !exists {
			continue
		}
		if !matches(entry, filter) {
			continue
		}

		entryCopy := *entry
		results = append(results, &entryCopy)
		if filter.Limit > 0 && len(results) >= filter.Limit {
			break
		}
	}

	return results, nil
}

func (s *Store) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []uuid.UUID
	removed := 0
	for _, id := range s.order {
		entry, exists := s.entries[id]
		if !exists {
			continue
		}
		if !entry.ExpiresAt.After(before) {
			delete(s.entries, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept

	return removed, nil
}

func matches(entry *urllog.Entry, filter urllog.Filter) bool {
	if filter.Bucket != "" && entry.Bucket != filter.Bucket {
		return false
	}
	if filter.ObjectKey != "" && entry.ObjectKey != filter.ObjectKey {
		return false
	}
	if !filter.ActiveAt.IsZero() && !entry.Active(filter.ActiveAt) {
		return false
	}
	return true
}
