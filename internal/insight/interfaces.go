package insight

import (
	"context"
	"time"
)

// FetchResponse is the outcome of a single HTTP GET. HTTP error statuses
// (4xx/5xx) are valid responses; only connection-level failures surface as
// errors from Fetcher.Fetch.
type FetchResponse struct {
	StatusCode int
	Body       []byte
}

// Fetcher retrieves remote resources with a bounded per-call timeout.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResponse, error)
}

// StoredRow is one persisted extraction as returned by the history
// listings.
type StoredRow struct {
	ID            int64     `json:"id"`
	StoreURL      string    `json:"store_url"`
	BrandURL      string    `json:"brand_url,omitempty"`
	CompetitorURL string    `json:"competitor_url,omitempty"`
	Data          string    `json:"data"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store is the persistence collaborator. Save failures must not fail the
// request that produced the record; callers log and move on.
type Store interface {
	SaveInsight(ctx context.Context, storeURL string, payload []byte) error
	SaveCompetitor(ctx context.Context, brandURL, competitorURL string, payload []byte) error
	ListRecentInsights(ctx context.Context, limit int) ([]StoredRow, error)
	ListRecentCompetitors(ctx context.Context, limit int) ([]StoredRow, error)
}
