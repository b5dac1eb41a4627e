package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var refDay = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

func TestResolveDate_Today(t *testing.T) {
	for _, text := range []string{"Today", "Posted today", "3 hours ago", "45 minutes ago"} {
		assert.Equal(t, refDay, ResolveDate(text, refDay), "text: %q", text)
	}
}

func TestResolveDate_Yesterday(t *testing.T) {
	want := refDay.AddDate(0, 0, -1)
	assert.Equal(t, want, ResolveDate("Yesterday", refDay))
	assert.Equal(t, want, ResolveDate("posted yesterday", refDay))
}

func TestResolveDate_AbsoluteFormats(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"30 June 2017", time.Date(2017, time.June, 30, 0, 0, 0, 0, time.UTC)},
		{"1 January 2025", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-11-09", time.Date(2025, time.November, 9, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveDate(tt.text, refDay), "text: %q", tt.text)
	}
}

func TestResolveDate_DaysAgo(t *testing.T) {
	assert.Equal(t, refDay.AddDate(0, 0, -2), ResolveDate("2 days ago", refDay))
	assert.Equal(t, refDay.AddDate(0, 0, -30), ResolveDate("30+ days ago", refDay))
}

func TestResolveDate_UnparseableFallsBackToToday(t *testing.T) {
	for _, text := range []string{"", "   ", "soonish", "last Tuesday-ish", "??"} {
		assert.Equal(t, refDay, ResolveDate(text, refDay), "text: %q", text)
	}
}

func TestResolveDate_TruncatesTimeOfDay(t *testing.T) {
	noon := time.Date(2025, time.March, 15, 12, 34, 56, 0, time.UTC)
	assert.Equal(t, refDay, ResolveDate("today", noon))
}

func TestIsDateValid_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"future date always valid", refDay.AddDate(0, 0, 14), true},
		{"today valid", refDay, true},
		{"exactly maxAgeDays old valid", refDay.AddDate(0, 0, -60), true},
		{"maxAgeDays+1 old invalid", refDay.AddDate(0, 0, -61), false},
		{"ancient invalid", time.Date(2017, time.June, 30, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateValid(tt.date, refDay, 60))
		})
	}
}
