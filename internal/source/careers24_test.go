package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const careers24FixturePage = `
<html><body>
<div class="job-card">
  <h3>  Junior   Software Developer </h3>
  <span class="job-card-company"> Init Labs </span>
  <span class="job-card-location">Cape Town,
    Western Cape</span>
  <span class="job-card-date">2 days ago</span>
  <a href="/jobs/adverts/junior-software-developer-cape-town-1234567/">View</a>
</div>
<div class="job-card">
  <h3>Graduate Data Analyst</h3>
  <p>Closing Date: 30 June 2017</p>
  <a href="/jobs/adverts/graduate-data-analyst-7654321/">View</a>
</div>
<div class="job-card">
  <h3>Senior Software Engineer</h3>
  <span class="job-card-date">Today</span>
  <a href="/jobs/adverts/senior-software-engineer-1111111/">View</a>
</div>
<div class="job-card">
  <h3>Junior Software Developer</h3>
  <span class="job-card-date">Yesterday</span>
  <a href="/jobs/adverts/junior-software-developer-cape-town-1234567/">View</a>
</div>
<div class="job-card">
  <h3>Trainee Tester Without Link</h3>
  <span class="job-card-date">Today</span>
</div>
<div class="job-card">
  <h3>IT Support Intern</h3>
  <span>Closing Date: 30 June 2099</span>
  <a href="/jobs/adverts/it-support-intern-2468013/">View</a>
</div>
<div class="job-card">
  <h3>Graduate Developer</h3>
  <span class="job-card-date">90+ days ago</span>
  <a href="/jobs/adverts/graduate-developer-3579111/">View</a>
</div>
</body></html>`

func newCareers24Adapter(srvURL string) *Careers24Adapter {
	return NewCareers24Adapter(Careers24Config{
		SearchURLs:   []string{srvURL + "/jobs/lc-south-africa/kw-test/"},
		RequestDelay: time.Millisecond,
	})
}

func TestCareers24Adapter_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, careers24FixturePage)
	}))
	defer srv.Close()

	records, err := newCareers24Adapter(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	byID := map[string]CandidateRecord{}
	for _, rec := range records {
		byID[rec.SourceJobID] = rec
	}

	junior, ok := byID["1234567"]
	require.True(t, ok, "fresh junior card should survive")
	assert.Equal(t, Careers24Source, junior.Source)
	assert.Equal(t, "Junior Software Developer", junior.Title, "title is whitespace-cleaned")
	assert.Equal(t, "Init Labs", junior.Company)
	assert.Equal(t, "Cape Town, Western Cape", junior.Location)
	assert.Equal(t, srv.URL+"/jobs/adverts/junior-software-developer-cape-town-1234567/", junior.URL)
	assert.Equal(t, "Apply on Careers24", junior.Description)
	assert.Equal(t, JobTypeEntryLevel, junior.JobType)
	assert.True(t, junior.IsActive)

	intern, ok := byID["2468013"]
	require.True(t, ok, "future closing date means the posting is still open")
	assert.Equal(t, "IT Support Intern", intern.Title)

	_, lapsed := byID["7654321"]
	assert.False(t, lapsed, "past closing date must be dropped")
	_, senior := byID["1111111"]
	assert.False(t, senior, "senior title must be dropped")
	_, stale := byID["3579111"]
	assert.False(t, stale, "posting older than 60 days must be dropped")
}

func TestCareers24Adapter_FallbackCardSelector(t *testing.T) {
	page := `<html><body>
<div class="c24-job-card">
  <h3>Junior Analyst</h3>
  <span class="job-card-date">Today</span>
  <a href="/jobs/adverts/junior-analyst-9990001/">View</a>
</div>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	records, err := newCareers24Adapter(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "9990001", records[0].SourceJobID)
}

func TestCareers24Adapter_PageErrorContributesZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	records, err := newCareers24Adapter(srv.URL).Fetch(context.Background())
	assert.NoError(t, err, "page-level failures must not abort the run")
	assert.Empty(t, records)
}

func TestCareers24Adapter_FailedPageDoesNotAbortRemaining(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><div class="job-card">
<h3>Graduate Engineer</h3><span class="job-card-date">Today</span>
<a href="/jobs/adverts/graduate-engineer-5550001/">View</a>
</div></body></html>`)
	}))
	defer good.Close()

	adapter := NewCareers24Adapter(Careers24Config{
		SearchURLs: []string{
			"http://127.0.0.1:1/unreachable", // refused
			good.URL + "/jobs/",
		},
		RequestDelay: time.Millisecond,
	})

	records, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "5550001", records[0].SourceJobID)
}
