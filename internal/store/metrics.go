// Package store persists metrics and score snapshots. It is a sink, not
// a query layer: the only read is latest-by-symbol, which is what the
// scoring path needs to run downstream of persisted metrics.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/internal/scoring"
)

// MetricsStore persists metrics and score snapshots in PostgreSQL.
type MetricsStore struct {
	pool *pgxpool.Pool
}

// NewMetricsStore creates a new metrics store.
func NewMetricsStore(pool *pgxpool.Pool) *MetricsStore {
	return &MetricsStore{pool: pool}
}

// EnsureSchema creates the snapshot tables if they do not exist.
// Metrics are stored as JSONB: the field set is wide, every field is
// optional, and nothing queries individual columns.
func (s *MetricsStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS metrics_snapshots (
			symbol      TEXT NOT NULL,
			fetched_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			source      TEXT NOT NULL,
			payload     JSONB NOT NULL,
			PRIMARY KEY (symbol, fetched_at)
		);
		CREATE TABLE IF NOT EXISTS score_snapshots (
			symbol      TEXT NOT NULL,
			computed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			payload     JSONB NOT NULL,
			PRIMARY KEY (symbol, computed_at)
		);
	`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveMetrics stores one metrics snapshot.
func (s *MetricsStore) SaveMetrics(ctx context.Context, source string, m *model.Metrics) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	const query = `
		INSERT INTO metrics_snapshots (symbol, fetched_at, source, payload)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.pool.Exec(ctx, query, m.Symbol, time.Now(), source, payload); err != nil {
		return fmt.Errorf("insert metrics snapshot: %w", err)
	}
	return nil
}

// GetLatestMetrics returns the most recent metrics snapshot for symbol,
// or (nil, nil) when none exists.
func (s *MetricsStore) GetLatestMetrics(ctx context.Context, symbol string) (*model.Metrics, error) {
	const query = `
		SELECT payload
		FROM metrics_snapshots
		WHERE symbol = $1
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var payload []byte
	err := s.pool.QueryRow(ctx, query, symbol).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest metrics: %w", err)
	}

	var m model.Metrics
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("unmarshal metrics payload: %w", err)
	}
	return &m, nil
}

// SaveScore stores one score snapshot.
func (s *MetricsStore) SaveScore(ctx context.Context, symbol string, result scoring.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}

	const query = `
		INSERT INTO score_snapshots (symbol, computed_at, payload)
		VALUES ($1, $2, $3)
	`
	if _, err := s.pool.Exec(ctx, query, symbol, time.Now(), payload); err != nil {
		return fmt.Errorf("insert score snapshot: %w", err)
	}
	return nil
}
