package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntokozo078/entry-job-market-pipeline/internal/db"
)

type fakeCatalog struct {
	jobs        []db.Job
	stats       *db.Stats
	err         error
	lastFilters db.JobFilters
}

func (c *fakeCatalog) ListJobs(_ context.Context, filters db.JobFilters) ([]db.Job, error) {
	c.lastFilters = filters
	return c.jobs, c.err
}

func (c *fakeCatalog) GetStats(_ context.Context) (*db.Stats, error) {
	return c.stats, c.err
}

type fakeRunner struct {
	newCount int
	err      error
	calls    int
}

func (r *fakeRunner) RunETL(_ context.Context) (int, error) {
	r.calls++
	return r.newCount, r.err
}

func testJob(title string) db.Job {
	return db.Job{
		ID:          uuid.New(),
		Source:      "adzuna_sa",
		SourceJobID: "42",
		Title:       title,
		Company:     "Acme",
		Location:    "South Africa",
		URL:         "https://example.com/jobs/42",
		JobType:     "entry_level",
		PostedDate:  time.Now(),
		IsActive:    true,
		FirstSeenAt: time.Now(),
		LastSeenAt:  time.Now(),
	}
}

func TestHandleListJobs(t *testing.T) {
	catalog := &fakeCatalog{jobs: []db.Job{testJob("Junior Developer"), testJob("Data Intern")}}
	srv := New(0, catalog, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?type=intern&location=durban&limit=10", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp JobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Jobs, 2)

	assert.Equal(t, db.JobFilters{Title: "intern", Location: "durban", Limit: 10}, catalog.lastFilters)
}

func TestHandleListJobs_EmptyCatalog(t *testing.T) {
	srv := New(0, &fakeCatalog{}, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"jobs":[]}`, rec.Body.String())
}

func TestHandleListJobs_BadLimit(t *testing.T) {
	srv := New(0, &fakeCatalog{}, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?limit=banana", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStats(t *testing.T) {
	catalog := &fakeCatalog{stats: &db.Stats{
		TotalJobs:  12,
		ActiveJobs: 10,
		BySource:   []db.SourceCount{{Source: "adzuna_sa", Count: 8}, {Source: "careers24", Count: 4}},
	}}
	srv := New(0, catalog, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats db.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 12, stats.TotalJobs)
	assert.Equal(t, 10, stats.ActiveJobs)
	assert.Len(t, stats.BySource, 2)
}

func TestHandleRefresh(t *testing.T) {
	runner := &fakeRunner{newCount: 7}
	srv := New(0, &fakeCatalog{}, runner)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"new_jobs":7}`, rec.Body.String())
	assert.Equal(t, 1, runner.calls)
}

func TestHandleRefresh_PipelineFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("commit failed")}
	srv := New(0, &fakeCatalog{}, runner)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "commit failed")
}

func TestHandleRefresh_GetNotAllowed(t *testing.T) {
	srv := New(0, &fakeCatalog{}, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := New(0, &fakeCatalog{}, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
