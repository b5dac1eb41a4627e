package ingestion

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// absoluteDateLayouts are tried in order when the text is not a relative expression.
var absoluteDateLayouts = []string{
	"2 January 2006", // "30 June 2017"
	"2006-01-02",     // ISO
}

var digitsRe = regexp.MustCompile(`\d+`)

// Day truncates t to midnight UTC, the granularity all date logic operates on.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ResolveDate parses free-form date text ("2 days ago", "Today", "30 June 2017",
// "2025-11-09") into a calendar date relative to today. It never fails: text that
// matches nothing resolves to today, trading precision for availability.
func ResolveDate(text string, today time.Time) time.Time {
	today = Day(today)
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return today
	}

	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "today") || strings.Contains(lower, "hours") || strings.Contains(lower, "minutes") {
		return today
	}
	if strings.Contains(lower, "yesterday") {
		return today.AddDate(0, 0, -1)
	}

	for _, layout := range absoluteDateLayouts {
		if d, err := time.Parse(layout, trimmed); err == nil {
			return Day(d)
		}
	}

	// "30+ days ago", "2 weeks ago" style: take the first number as a day count.
	if strings.Contains(lower, "ago") {
		if match := digitsRe.FindString(lower); match != "" {
			days, err := strconv.Atoi(match)
			if err == nil {
				return today.AddDate(0, 0, -days)
			}
		}
	}

	return today
}

// IsDateValid reports whether date is usable under the freshness window.
// A future or present date is always valid (closing-date semantics: not yet
// closed). A past date is valid only while it is at most maxAgeDays old.
func IsDateValid(date, today time.Time, maxAgeDays int) bool {
	date, today = Day(date), Day(today)
	if !date.Before(today) {
		return true
	}
	age := int(today.Sub(date).Hours() / 24)
	return age <= maxAgeDays
}
