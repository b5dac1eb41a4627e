package server

import (
	"net/http"
	"strconv"

	"github.com/ntokozo078/entry-job-market-pipeline/internal/db"
)

// JobsResponse is the payload for GET /api/jobs.
type JobsResponse struct {
	Count int      `json:"count"`
	Jobs  []db.Job `json:"jobs"`
}

// RefreshResponse is the payload for POST /api/refresh.
type RefreshResponse struct {
	NewJobs int `json:"new_jobs"`
}

// handleListJobs serves GET /api/jobs?type=intern&location=durban&limit=50.
// The type parameter matches against titles, so "intern" also finds
// "Internship".
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	filters := db.JobFilters{
		Title:    r.URL.Query().Get("type"),
		Location: r.URL.Query().Get("location"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filters.Limit = limit
	}

	jobs, err := s.catalog.ListJobs(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs: "+err.Error())
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, JobsResponse{Count: len(jobs), Jobs: jobs})
}

// handleStats serves GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.GetStats(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to compute stats: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleRefresh serves POST /api/refresh: one synchronous pipeline run. Safe
// to invoke repeatedly; a failed run leaves the catalog untouched.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	newCount, err := s.runner.RunETL(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "pipeline run failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, RefreshResponse{NewJobs: newCount})
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
