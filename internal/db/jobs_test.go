package db

import (
	"strings"
	"testing"
)

func TestJobsQuery_Defaults(t *testing.T) {
	query, args := jobsQuery(JobFilters{})

	if !strings.Contains(query, "is_active = TRUE") {
		t.Error("listing must only return active jobs")
	}
	if !strings.Contains(query, "ORDER BY posted_date DESC") {
		t.Error("listing must be newest-first")
	}
	if len(args) != 1 {
		t.Fatalf("expected only the limit arg, got %v", args)
	}
	if args[0] != 50 {
		t.Errorf("default limit = %v, want 50", args[0])
	}
}

func TestJobsQuery_Filters(t *testing.T) {
	query, args := jobsQuery(JobFilters{Title: "intern", Location: "durban", Limit: 10})

	if !strings.Contains(query, "title ILIKE $1") {
		t.Errorf("missing title filter in %q", query)
	}
	if !strings.Contains(query, "location ILIKE $2") {
		t.Errorf("missing location filter in %q", query)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	if args[0] != "%intern%" || args[1] != "%durban%" || args[2] != 10 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestJobsQuery_LocationOnly(t *testing.T) {
	query, args := jobsQuery(JobFilters{Location: "cape town"})

	if !strings.Contains(query, "location ILIKE $1") {
		t.Errorf("location filter should take the first placeholder, got %q", query)
	}
	if args[0] != "%cape town%" {
		t.Errorf("unexpected args: %v", args)
	}
}
