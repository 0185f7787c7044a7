// Package postgres provides the Postgres-backed persistence collaborator.
package postgres

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storelens/storefront-insights/internal/insight"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const defaultHistoryLimit = 20

// StoreConfig controls the Postgres connection pool used for insight rows.
type StoreConfig struct {
	DSN              string
	InsightsTable    string
	CompetitorsTable string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
}

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// Store writes insight and competitor rows into Postgres and reads back
// recent history, newest first.
type Store struct {
	pool             pgxPool
	insightsTable    string
	competitorsTable string
}

// NewStore creates a Postgres-backed Store using the provided config.
func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	insightsTable, competitorsTable, err := tableNames(cfg.InsightsTable, cfg.CompetitorsTable)
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{
		pool:             pool,
		insightsTable:    insightsTable,
		competitorsTable: competitorsTable,
	}, nil
}

// NewStoreWithPool constructs a Store from an existing pool (primarily for
// testing).
func NewStoreWithPool(pool pgxPool, insightsTable, competitorsTable string) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	it, ct, err := tableNames(insightsTable, competitorsTable)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, insightsTable: it, competitorsTable: ct}, nil
}

func tableNames(insightsTable, competitorsTable string) (string, string, error) {
	if insightsTable == "" {
		insightsTable = "insights"
	}
	if competitorsTable == "" {
		competitorsTable = "competitors"
	}
	for _, t := range []string{insightsTable, competitorsTable} {
		if !validTableName.MatchString(t) {
			return "", "", fmt.Errorf("invalid table name %q", t)
		}
	}
	return insightsTable, competitorsTable, nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// SaveInsight appends one extraction row for a store.
func (s *Store) SaveInsight(ctx context.Context, storeURL string, payload []byte) error {
	query := fmt.Sprintf(`INSERT INTO %s (store_url, data) VALUES ($1, $2)`, s.insightsTable)
	if _, err := s.pool.Exec(ctx, query, storeURL, payload); err != nil {
		return fmt.Errorf("insert insight: %w", err)
	}
	return nil
}

// SaveCompetitor appends one competitor-analysis row.
func (s *Store) SaveCompetitor(ctx context.Context, brandURL, competitorURL string, payload []byte) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (brand_url, competitor_url, data) VALUES ($1, $2, $3)`,
		s.competitorsTable,
	)
	if _, err := s.pool.Exec(ctx, query, brandURL, competitorURL, payload); err != nil {
		return fmt.Errorf("insert competitor: %w", err)
	}
	return nil
}

// ListRecentInsights returns the most recent insight rows, newest first.
func (s *Store) ListRecentInsights(ctx context.Context, limit int) ([]insight.StoredRow, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := fmt.Sprintf(
		`SELECT id, store_url, data, created_at FROM %s ORDER BY created_at DESC LIMIT $1`,
		s.insightsTable,
	)
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	defer rows.Close()

	var out []insight.StoredRow
	for rows.Next() {
		var row insight.StoredRow
		if err := rows.Scan(&row.ID, &row.StoreURL, &row.Data, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan insight row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate insight rows: %w", err)
	}
	return out, nil
}

// ListRecentCompetitors returns the most recent competitor rows, newest
// first.
func (s *Store) ListRecentCompetitors(ctx context.Context, limit int) ([]insight.StoredRow, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := fmt.Sprintf(
		`SELECT id, brand_url, competitor_url, data, created_at FROM %s ORDER BY created_at DESC LIMIT $1`,
		s.competitorsTable,
	)
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list competitors: %w", err)
	}
	defer rows.Close()

	var out []insight.StoredRow
	for rows.Next() {
		var row insight.StoredRow
		if err := rows.Scan(&row.ID, &row.BrandURL, &row.CompetitorURL, &row.Data, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan competitor row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate competitor rows: %w", err)
	}
	return out, nil
}
