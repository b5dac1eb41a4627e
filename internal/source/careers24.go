package source

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ntokozo078/entry-job-market-pipeline/internal/fetch"
	"github.com/ntokozo078/entry-job-market-pipeline/internal/ingestion"
)

// Careers24Source identifies the scraped board in persisted records.
const Careers24Source = "careers24"

const careers24MaxAgeDays = 60

// careers24SearchURLs is the fixed catalog of recency-sorted search pages.
var careers24SearchURLs = []string{
	"https://www.careers24.com/jobs/lc-south-africa/kw-software-developer/?sort=dateposted",
	"https://www.careers24.com/jobs/lc-south-africa/kw-data/?sort=dateposted",
	"https://www.careers24.com/jobs/lc-south-africa/kw-graduate/?sort=dateposted",
	"https://www.careers24.com/jobs/lc-south-africa/kw-intern/?sort=dateposted",
}

// Careers24Config configures the board scraper.
type Careers24Config struct {
	// SearchURLs overrides the default search-page catalog, used by tests.
	SearchURLs []string
	// RequestDelay is the politeness pause between page fetches.
	RequestDelay time.Duration
	// UseBrowser enables headless-browser rendering when a page comes back as
	// a JavaScript shell with no listing cards in the static HTML.
	UseBrowser bool
}

// Careers24Adapter scrapes listing cards from Careers24 search pages. The
// card-level markup contract (class-tagged containers for title, company,
// location, date and link) is fragile and entirely outside our control, so
// every selector lives here and nowhere else.
type Careers24Adapter struct {
	cfg Careers24Config
}

// NewCareers24Adapter constructs the adapter.
func NewCareers24Adapter(cfg Careers24Config) *Careers24Adapter {
	if len(cfg.SearchURLs) == 0 {
		cfg.SearchURLs = careers24SearchURLs
	}
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = time.Second
	}
	return &Careers24Adapter{cfg: cfg}
}

// Name implements Adapter.
func (a *Careers24Adapter) Name() string { return Careers24Source }

// Fetch scrapes every search page in the catalog. A page-level transport error
// contributes zero listings; a malformed card is skipped without aborting its
// page. It returns an error only when the context is cancelled.
func (a *Careers24Adapter) Fetch(ctx context.Context) ([]CandidateRecord, error) {
	log.Println("[careers24] scraping search pages")
	today := ingestion.Day(time.Now())
	seen := make(seenSet)
	var records []CandidateRecord

	for _, pageURL := range a.cfg.SearchURLs {
		cards, err := a.fetchCards(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[careers24] page %s: %v", pageURL, err)
			continue
		}

		for _, card := range cards {
			rec, err := a.extractCard(card, pageURL, today)
			if err != nil {
				log.Printf("[careers24] card skipped: %v", err)
				continue
			}
			if rec == nil {
				continue // filtered: lapsed, stale, or senior
			}
			if seen.add(rec.Source, rec.SourceJobID) {
				records = append(records, *rec)
			}
		}

		if err := sleep(ctx, a.cfg.RequestDelay); err != nil {
			return nil, err
		}
	}

	log.Printf("[careers24] total valid listings: %d", len(records))
	return records, nil
}

// fetchCards retrieves one search page and returns its card selections.
func (a *Careers24Adapter) fetchCards(ctx context.Context, pageURL string) ([]*goquery.Selection, error) {
	result, err := fetch.URL(ctx, pageURL, nil)
	if err != nil {
		return nil, err
	}

	body := result.Body
	if a.cfg.UseBrowser && fetch.ShouldUseBrowser(body) {
		rendered, berr := fetch.BrowserSimple(ctx, pageURL)
		if berr != nil {
			log.Printf("[careers24] browser fallback failed for %s: %v", pageURL, berr)
		} else {
			body = rendered
		}
	}

	doc, err := fetch.Document(body)
	if err != nil {
		return nil, err
	}

	sel := doc.Find("div.job-card")
	if sel.Length() == 0 {
		sel = doc.Find(".c24-job-card")
	}

	var cards []*goquery.Selection
	sel.Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, s)
	})
	return cards, nil
}

// extractCard maps one card into a CandidateRecord. A nil record with nil
// error means the card was filtered (lapsed closing date, stale posted date,
// senior title, or already seen elsewhere); an error means the markup was
// malformed and the card is skipped.
func (a *Careers24Adapter) extractCard(card *goquery.Selection, pageURL string, today time.Time) (*CandidateRecord, error) {
	// The governing date: an explicit closing date wins over the posted date.
	var postedDate time.Time
	if closingText, ok := findClosingDate(card); ok {
		closingDate := ingestion.ResolveDate(closingText, today)
		if closingDate.Before(today) {
			return nil, nil // posting has lapsed
		}
		postedDate = closingDate
	} else {
		dateText := ingestion.CleanText(card.Find("span.job-card-date").First().Text())
		if dateText == "" {
			dateText = "Today"
		}
		postedDate = ingestion.ResolveDate(dateText, today)
		if !ingestion.IsDateValid(postedDate, today, careers24MaxAgeDays) {
			return nil, nil // too old
		}
	}

	title := ingestion.CleanText(card.Find("h3").First().Text())
	if title == "" {
		title = ingestion.CleanText(card.Find("span.job-card-title").First().Text())
	}
	if title == "" {
		title = "Unknown"
	}

	titleLower := strings.ToLower(title)
	if strings.Contains(titleLower, "senior") || strings.Contains(titleLower, "lead") {
		return nil, nil
	}

	href, ok := card.Find("a[href]").First().Attr("href")
	if !ok || href == "" {
		return nil, fmt.Errorf("card %q has no link", title)
	}

	// The board encodes the listing id as the trailing dash-segment of the
	// link path, e.g. /jobs/adverts/junior-developer-cape-town-1234567/.
	parts := strings.Split(href, "-")
	sourceID := strings.ReplaceAll(parts[len(parts)-1], "/", "")
	if sourceID == "" {
		return nil, fmt.Errorf("card %q has no listing id in link %q", title, href)
	}

	absURL, err := resolveURL(pageURL, href)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", title, err)
	}

	company := ingestion.CleanText(card.Find("span.job-card-company").First().Text())
	if company == "" {
		company = "Unknown"
	}
	location := ingestion.CleanText(card.Find("span.job-card-location").First().Text())
	if location == "" {
		location = "SA"
	}

	return &CandidateRecord{
		Source:      Careers24Source,
		SourceJobID: sourceID,
		Title:       title,
		Company:     company,
		Location:    location,
		URL:         absURL,
		Description: "Apply on Careers24",
		JobType:     JobTypeEntryLevel,
		PostedDate:  postedDate,
		IsActive:    true,
	}, nil
}

// findClosingDate scans the card's leaf elements for a "Closing Date: ..."
// fragment and returns the date portion.
func findClosingDate(card *goquery.Selection) (string, bool) {
	var text string
	card.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		lower := strings.ToLower(s.Text())
		if strings.Contains(lower, "closing date") {
			text = s.Text()
			return false
		}
		return true
	})
	if text == "" {
		return "", false
	}

	cleaned := ingestion.CleanText(text)
	lower := strings.ToLower(cleaned)
	if idx := strings.Index(lower, "closing date"); idx >= 0 {
		cleaned = cleaned[idx+len("closing date"):]
	}
	cleaned = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cleaned), ":"))
	return cleaned, true
}

// resolveURL makes a card link absolute against the page it came from.
func resolveURL(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid link: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}
