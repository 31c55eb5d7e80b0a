package store

import (
	"context"
	"sync"

	"lexdiff/internal/diff"
)

// MemoryStore keeps archived diffs in process memory. Used in tests and as
// the default backend when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	diffs   map[string][]*diff.StatuteDiff
	ordered []*diff.StatuteDiff
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diffs: make(map[string][]*diff.StatuteDiff)}
}

// Save archives a clone of the diff so later caller mutations cannot leak in.
func (s *MemoryStore) Save(ctx context.Context, d *diff.StatuteDiff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := d.Clone()
	s.diffs[d.StatuteID] = append(s.diffs[d.StatuteID], clone)
	s.ordered = append(s.ordered, clone)
	return nil
}

// ListByStatute returns archived diffs for one statute in save order.
func (s *MemoryStore) ListByStatute(ctx context.Context, statuteID string) ([]*diff.StatuteDiff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.diffs[statuteID]
	out := make([]*diff.StatuteDiff, len(stored))
	for i, d := range stored {
		out[i] = d.Clone()
	}
	return out, nil
}

// GetLatest returns the most recently archived diff for one statute, or
// ErrNotFound when none exists.
func (s *MemoryStore) GetLatest(ctx context.Context, statuteID string) (*diff.StatuteDiff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.diffs[statuteID]
	if len(stored) == 0 {
		return nil, ErrNotFound
	}
	return stored[len(stored)-1].Clone(), nil
}

// Count reports the number of archived diffs across all statutes.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}
