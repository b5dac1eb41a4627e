package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ntokozo078/entry-job-market-pipeline/internal/source"
)

// Job is the durable form of a candidate record: the candidate fields plus a
// surrogate id and the first/last sighting timestamps.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Source      string    `json:"source"`
	SourceJobID string    `json:"source_job_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	JobType     string    `json:"job_type"`
	PostedDate  time.Time `json:"posted_date"`
	IsActive    bool      `json:"is_active"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}

// UpsertBatch stages all candidates inside a single transaction and commits at
// the end. A candidate whose (source, source_job_id) already exists only gets
// its last_seen_at refreshed; display fields are never overwritten after first
// sighting. Returns the number of newly inserted rows. If the commit fails the
// whole batch rolls back and no partial state is visible.
func (db *DB) UpsertBatch(ctx context.Context, records []source.CandidateRecord) (int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	newCount := 0
	for _, rec := range records {
		tag, err := tx.Exec(ctx,
			`UPDATE jobs SET last_seen_at = NOW()
			 WHERE source = $1 AND source_job_id = $2`,
			rec.Source, rec.SourceJobID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to refresh %s/%s: %w", rec.Source, rec.SourceJobID, err)
		}
		if tag.RowsAffected() > 0 {
			continue
		}

		// ON CONFLICT covers the race with a concurrent run that inserted the
		// same key after our update probe: the row is refreshed, never duplicated.
		_, err = tx.Exec(ctx,
			`INSERT INTO jobs (id, source, source_job_id, title, company, location,
			                   url, description, job_type, posted_date, is_active,
			                   first_seen_at, last_seen_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			 ON CONFLICT (source, source_job_id) DO UPDATE SET last_seen_at = NOW()`,
			uuid.New(), rec.Source, rec.SourceJobID, rec.Title, rec.Company,
			rec.Location, rec.URL, rec.Description, rec.JobType, rec.PostedDate, rec.IsActive,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert %s/%s: %w", rec.Source, rec.SourceJobID, err)
		}
		newCount++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}
	return newCount, nil
}

// JobFilters holds the optional filters for listing jobs.
type JobFilters struct {
	Title    string // case-insensitive substring match on title
	Location string // case-insensitive substring match on location
	Limit    int    // defaults to 50
}

// jobsQuery builds the filtered listing query. Split out for testability.
func jobsQuery(filters JobFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	query := `SELECT id, source, source_job_id, title,
	                 COALESCE(company, ''), COALESCE(location, ''), url,
	                 COALESCE(description, ''), COALESCE(job_type, ''),
	                 posted_date, is_active, first_seen_at, last_seen_at
	          FROM jobs WHERE is_active = TRUE`
	args := []any{}

	if filters.Title != "" {
		args = append(args, "%"+filters.Title+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filters.Location != "" {
		args = append(args, "%"+filters.Location+"%")
		query += fmt.Sprintf(" AND location ILIKE $%d", len(args))
	}

	args = append(args, filters.Limit)
	query += fmt.Sprintf(" ORDER BY posted_date DESC LIMIT $%d", len(args))
	return query, args
}

// ListJobs returns active jobs newest-first, optionally filtered.
func (db *DB) ListJobs(ctx context.Context, filters JobFilters) ([]Job, error) {
	query, args := jobsQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Source, &j.SourceJobID, &j.Title, &j.Company,
			&j.Location, &j.URL, &j.Description, &j.JobType, &j.PostedDate,
			&j.IsActive, &j.FirstSeenAt, &j.LastSeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// SourceCount is one slice of the per-source breakdown.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// LocationCount is one slice of the top-locations breakdown.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// Stats summarizes the catalog for the stats endpoint.
type Stats struct {
	TotalJobs    int             `json:"total_jobs_scraped"`
	ActiveJobs   int             `json:"active_jobs_now"`
	BySource     []SourceCount   `json:"by_source"`
	TopLocations []LocationCount `json:"top_locations"`
}

// GetStats computes catalog-level counts and breakdowns.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats

	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM jobs`,
	).Scan(&s.TotalJobs, &s.ActiveJobs)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT source, COUNT(*) FROM jobs GROUP BY source ORDER BY COUNT(*) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count by source: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		s.BySource = append(s.BySource, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	locRows, err := db.pool.Query(ctx,
		`SELECT COALESCE(location, ''), COUNT(*) FROM jobs
		 GROUP BY location ORDER BY COUNT(*) DESC LIMIT 8`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count by location: %w", err)
	}
	defer locRows.Close()
	for locRows.Next() {
		var lc LocationCount
		if err := locRows.Scan(&lc.Location, &lc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan location count: %w", err)
		}
		s.TopLocations = append(s.TopLocations, lc)
	}
	return &s, locRows.Err()
}
