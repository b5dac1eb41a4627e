// Package db provides PostgreSQL access for the job catalog: schema creation,
// the transactional dedup/upsert engine, and the read queries behind the API.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the jobs table if it does not exist. The UNIQUE constraint
// on (source, source_job_id) is the actual anti-duplication guarantee for
// concurrent pipeline runs, not the upsert pre-check.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id            UUID PRIMARY KEY,
			source        VARCHAR(50) NOT NULL,
			source_job_id TEXT NOT NULL,
			title         TEXT NOT NULL,
			company       TEXT,
			location      TEXT,
			url           TEXT NOT NULL,
			description   TEXT,
			job_type      VARCHAR(50),
			posted_date   DATE NOT NULL,
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			first_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_seen_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT unique_job_source UNIQUE (source, source_job_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_posted_date ON jobs (posted_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_is_active ON jobs (is_active)`,
	}
	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
