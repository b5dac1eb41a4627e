package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ntokozo078/entry-job-market-pipeline/internal/ingestion"
)

const (
	adzunaBaseURL     = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize    = 50
	adzunaMaxDaysOld  = 30
	adzunaHTTPTimeout = 15 * time.Second
)

// saSearchTerms covers the broad local technology scope for South Africa.
var saSearchTerms = []string{
	// Development
	"software developer", "software engineer", "web developer",
	"frontend developer", "backend developer", "full stack developer",
	"mobile developer", "java developer", "python developer",

	// Data
	"data analyst", "data engineer", "business intelligence",
	"data scientist", "database administrator", "sql developer",

	// Infrastructure & cloud
	"cloud engineer", "devops engineer", "system administrator",
	"network engineer", "it support", "technical support",

	// Security
	"cyber security", "security analyst", "information security",

	// Business & QA
	"business analyst", "it project manager", "quality assurance",
	"software tester", "scrum master",

	// General entry level
	"graduate program", "internship", "it graduate", "ict graduate",
}

// globalCountries are searched with the narrow data-engineering catalog.
var globalCountries = []string{"gb", "us", "au", "de", "nl", "ca"}

// globalSearchTerms scope the global sweep to 0-2 year data-engineering roles.
var globalSearchTerms = []string{
	"data engineer intern", "data engineer entry level",
	"junior data engineer", "associate data engineer",

	"sql developer intern", "junior sql developer",
	"etl developer intern", "junior etl developer",

	"analytics engineer intern", "data warehouse intern",

	"data internship", "data trainee",
}

// AdzunaConfig configures the Adzuna search adapter.
type AdzunaConfig struct {
	AppID  string
	AppKey string

	// BaseURL overrides the Adzuna API root, used by tests.
	BaseURL string
	// RequestDelay is the politeness pause between successive queries.
	RequestDelay time.Duration
}

// AdzunaAdapter fetches entry-level listings from the Adzuna search API across
// a fixed catalog of (region, search-term) pairs. Missing credentials degrade
// it to a no-op; a failed query contributes zero results without aborting the
// remaining queries.
type AdzunaAdapter struct {
	cfg    AdzunaConfig
	client *http.Client
}

// NewAdzunaAdapter constructs the adapter with a shared HTTP client.
func NewAdzunaAdapter(cfg AdzunaConfig) *AdzunaAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = adzunaBaseURL
	}
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = time.Second
	}
	return &AdzunaAdapter{
		cfg:    cfg,
		client: &http.Client{Timeout: adzunaHTTPTimeout},
	}
}

// Name implements Adapter.
func (a *AdzunaAdapter) Name() string { return "adzuna" }

// adzunaResponse mirrors the top-level Adzuna JSON response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

// adzunaResult mirrors a single Adzuna listing.
type adzunaResult struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Company     adzunaCompany  `json:"company"`
	Location    adzunaLocation `json:"location"`
	RedirectURL string         `json:"redirect_url"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

// Fetch runs the full catalog sweep: the broad South African search followed by
// the global data-engineering search. It returns an error only when the
// context is cancelled mid-sweep.
func (a *AdzunaAdapter) Fetch(ctx context.Context) ([]CandidateRecord, error) {
	if a.cfg.AppID == "" || a.cfg.AppKey == "" {
		log.Println("[adzuna] credentials not set, skipping")
		return nil, nil
	}

	now := time.Now().UTC()
	seen := make(seenSet)
	var records []CandidateRecord

	log.Println("[adzuna] fetching South African technology listings")
	for _, term := range saSearchTerms {
		for _, item := range a.query(ctx, "za", term) {
			rec, ok := a.normalize(item, "adzuna_sa", "South Africa", now)
			if ok && seen.add(rec.Source, rec.SourceJobID) {
				records = append(records, rec)
			}
		}
		if err := sleep(ctx, a.cfg.RequestDelay); err != nil {
			return nil, err
		}
	}

	log.Println("[adzuna] fetching global entry-level data engineering listings")
	for _, country := range globalCountries {
		for _, term := range globalSearchTerms {
			for _, item := range a.query(ctx, country, term) {
				locationTag := strings.ToUpper(country)
				if ingestion.IsRemote(item.Title, item.Description, item.Location.DisplayName) {
					locationTag = fmt.Sprintf("Remote (%s)", locationTag)
				}
				rec, ok := a.normalize(item, "adzuna_"+country, locationTag, now)
				if ok && seen.add(rec.Source, rec.SourceJobID) {
					records = append(records, rec)
				}
			}
			if err := sleep(ctx, a.cfg.RequestDelay); err != nil {
				return nil, err
			}
		}
	}

	log.Printf("[adzuna] total listings found: %d", len(records))
	return records, nil
}

// query issues one bounded, recency-sorted search. Any transport or parse
// failure is logged and yields zero results for that query.
func (a *AdzunaAdapter) query(ctx context.Context, country, what string) []adzunaResult {
	endpoint := fmt.Sprintf("%s/%s/search/1", a.cfg.BaseURL, country)

	params := url.Values{}
	params.Set("app_id", a.cfg.AppID)
	params.Set("app_key", a.cfg.AppKey)
	params.Set("results_per_page", strconv.Itoa(adzunaPageSize))
	params.Set("what", what)
	params.Set("content-type", "application/json")
	params.Set("max_days_old", strconv.Itoa(adzunaMaxDaysOld))
	params.Set("sort_by", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("[adzuna] query %s/%q: %v", country, what, err)
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		log.Printf("[adzuna] query %s/%q: %v", country, what, err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[adzuna] query %s/%q: read body: %v", country, what, err)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[adzuna] query %s/%q: HTTP %d", country, what, resp.StatusCode)
		return nil
	}

	var parsed adzunaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Printf("[adzuna] query %s/%q: decode: %v", country, what, err)
		return nil
	}
	return parsed.Results
}

// normalize applies the outdated-year and entry-level gates and maps a raw
// item into a CandidateRecord. ok is false when the item is filtered out.
func (a *AdzunaAdapter) normalize(item adzunaResult, src, locationTag string, now time.Time) (CandidateRecord, bool) {
	if ingestion.IsTitleOutdated(item.Title, now.Year()) {
		return CandidateRecord{}, false
	}
	if !ingestion.IsEntryLevel(item.Title, item.Description) {
		return CandidateRecord{}, false
	}

	company := item.Company.DisplayName
	if company == "" {
		company = "Unknown"
	}

	return CandidateRecord{
		Source:      src,
		SourceJobID: item.ID,
		Title:       item.Title,
		Company:     company,
		Location:    locationTag,
		URL:         item.RedirectURL,
		Description: item.Description,
		JobType:     JobTypeEntryLevel,
		PostedDate:  ingestion.Day(now),
		IsActive:    true,
	}, true
}
