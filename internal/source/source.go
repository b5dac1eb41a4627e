// Package source implements the upstream source adapters that feed the job
// pipeline. Each adapter fetches raw listings from one upstream, applies
// classification and freshness filtering, and emits normalized candidate
// records already deduplicated by upstream identifier within the run.
package source

import (
	"context"
	"time"
)

// JobTypeEntryLevel tags every record produced by this pipeline.
const JobTypeEntryLevel = "entry_level"

// CandidateRecord is a normalized, not-yet-persisted listing produced by an
// adapter. Identity is the (Source, SourceJobID) pair; it is never derived
// from title or URL similarity.
type CandidateRecord struct {
	Source      string    `json:"source" validate:"required"`
	SourceJobID string    `json:"source_job_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	URL         string    `json:"url" validate:"required,url"`
	Description string    `json:"description"`
	JobType     string    `json:"job_type"`
	PostedDate  time.Time `json:"posted_date"`
	IsActive    bool      `json:"is_active"`
}

// Adapter fetches candidate records from one upstream. A nil error with an
// empty slice is a legitimate outcome (missing credentials, zero matches);
// a non-nil error means the adapter could not complete its sweep and the
// orchestrator treats its contribution as empty.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]CandidateRecord, error)
}

// seenSet tracks (source, source_job_id) pairs emitted within a single run.
type seenSet map[[2]string]struct{}

func (s seenSet) add(source, id string) bool {
	key := [2]string{source, id}
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

// sleep pauses for the politeness delay between upstream requests, returning
// early if the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
