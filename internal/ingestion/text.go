// Package ingestion provides the classification and normalization layer of the
// job pipeline: date resolution, freshness rules, entry-level/remote keyword
// classification, and text cleanup for extracted fragments.
package ingestion

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace (including newlines and tabs left over
// from scraped markup) into single spaces and trims the result.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
