package ingestion

import (
	"regexp"
	"strconv"
	"strings"
)

// EntryLevelKeywords accept a listing as a 0-2 years role.
var EntryLevelKeywords = []string{
	"intern", "graduate", "junior", "entry", "trainee",
	"apprentice", "associate", "0-2 years", "no experience",
}

// SeniorKeywords reject a listing outright. Rejection always wins over any
// entry-level signal.
var SeniorKeywords = []string{
	"senior", "lead", "manager", "principal", "head of",
	"mid-level", "mid level", "intermediate", "experienced",
	"3 years", "4 years", "5 years", "5+", "sr.",
}

var remoteKeywords = []string{"remote", "work from home", "wfh", "anywhere"}

var yearRe = regexp.MustCompile(`20\d{2}`)

// IsTitleOutdated reports whether the title embeds a program year older than
// last year, e.g. "Graduate Programme 2017" seen in 2025. Boards resurface
// these zombie postings with fresh posted dates, so this check runs on the
// title alone, before any date-based freshness rule.
func IsTitleOutdated(title string, currentYear int) bool {
	if title == "" {
		return false
	}
	cutoff := currentYear - 1
	for _, match := range yearRe.FindAllString(title, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if year < cutoff {
			return true
		}
	}
	return false
}

// IsEntryLevel decides whether a listing is an entry-level role. Any senior
// keyword anywhere in title or description rejects immediately. Otherwise an
// entry-level keyword in the title accepts; a keyword in the description is a
// weaker fallback used only when the title is neutral.
func IsEntryLevel(title, description string) bool {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)
	combined := titleLower + " " + descLower

	if containsAny(combined, SeniorKeywords) {
		return false
	}
	if containsAny(titleLower, EntryLevelKeywords) {
		return true
	}
	return containsAny(descLower, EntryLevelKeywords)
}

// IsRemote reports whether any remote signal appears in the listing's title,
// description, or location text.
func IsRemote(title, description, location string) bool {
	combined := strings.ToLower(title + " " + description + " " + location)
	return containsAny(combined, remoteKeywords)
}

func containsAny(haystack string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}
