package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careernova/portfolio-engine/internal/types"
)

// PostgresStore persists portfolios in a PostgreSQL table with the
// structured portfolio held as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get loads the portfolio record stored under slug.
func (s *PostgresStore) Get(ctx context.Context, slug string) (types.PortfolioRecord, error) {
	var (
		rec     types.PortfolioRecord
		rawData []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT slug, data, resume_text FROM portfolios WHERE slug = $1`,
		slug,
	).Scan(&rec.Slug, &rawData, &rec.ResumeText)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.PortfolioRecord{}, &NotFoundError{Slug: slug}
	}
	if err != nil {
		return types.PortfolioRecord{}, fmt.Errorf("failed to load portfolio %s: %w", slug, err)
	}

	if err := json.Unmarshal(rawData, &rec.Portfolio); err != nil {
		return types.PortfolioRecord{}, fmt.Errorf("failed to decode portfolio %s: %w", slug, err)
	}
	return rec, nil
}

// Put inserts or replaces the record stored under its slug.
func (s *PostgresStore) Put(ctx context.Context, rec types.PortfolioRecord) error {
	data, err := json.Marshal(rec.Portfolio)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio %s: %w", rec.Slug, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO portfolios (slug, data, resume_text)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (slug) DO UPDATE SET data = $2, resume_text = $3, updated_at = NOW()`,
		rec.Slug, data, rec.ResumeText,
	)
	if err != nil {
		return fmt.Errorf("failed to save portfolio %s: %w", rec.Slug, err)
	}
	return nil
}

// Delete removes the record stored under slug, if any.
func (s *PostgresStore) Delete(ctx context.Context, slug string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM portfolios WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio %s: %w", slug, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Slug: slug}
	}
	return nil
}
