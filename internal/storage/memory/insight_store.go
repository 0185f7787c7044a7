// Package memory provides an in-memory persistence collaborator for
// development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/storelens/storefront-insights/internal/insight"
)

// Store keeps insight and competitor rows in memory.
type Store struct {
	mu          sync.RWMutex
	nextID      int64
	insights    []insight.StoredRow
	competitors []insight.StoredRow
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// SaveInsight appends one extraction row for a store.
func (s *Store) SaveInsight(_ context.Context, storeURL string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights = append(s.insights, insight.StoredRow{
		ID:        s.nextID,
		StoreURL:  storeURL,
		Data:      string(payload),
		CreatedAt: time.Now().UTC(),
	})
	s.nextID++
	return nil
}

// SaveCompetitor appends one competitor-analysis row.
func (s *Store) SaveCompetitor(_ context.Context, brandURL, competitorURL string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitors = append(s.competitors, insight.StoredRow{
		ID:            s.nextID,
		BrandURL:      brandURL,
		CompetitorURL: competitorURL,
		Data:          string(payload),
		CreatedAt:     time.Now().UTC(),
	})
	s.nextID++
	return nil
}

// ListRecentInsights returns up to limit insight rows, newest first.
func (s *Store) ListRecentInsights(_ context.Context, limit int) ([]insight.StoredRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return recent(s.insights, limit), nil
}

// ListRecentCompetitors returns up to limit competitor rows, newest first.
func (s *Store) ListRecentCompetitors(_ context.Context, limit int) ([]insight.StoredRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return recent(s.competitors, limit), nil
}

func recent(rows []insight.StoredRow, limit int) []insight.StoredRow {
	if limit <= 0 {
		limit = 20
	}
	n := len(rows)
	if limit > n {
		limit = n
	}
	out := make([]insight.StoredRow, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, rows[i])
	}
	return out
}
