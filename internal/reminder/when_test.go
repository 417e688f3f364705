package reminder

import (
	"testing"
	"time"
)

func TestResolveDue(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		when string
		want time.Time
	}{
		{"empty defaults an hour out", "", now.Add(time.Hour)},
		{"tomorrow morning", "tomorrow", time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)},
		{"tonight", "tonight", time.Date(2026, 8, 29, 20, 0, 0, 0, time.UTC)},
		{"next week", "next week", time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)},
		{"in minutes", "in 10 minutes", now.Add(10 * time.Minute)},
		{"in hours", "in 2 hours", now.Add(2 * time.Hour)},
		{"in days", "in 3 days", now.Add(72 * time.Hour)},
		{"gibberish falls back", "whenever feels right", now.Add(time.Hour)},
		{"bad relative falls back", "in eleventy flurbs", now.Add(time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveDue(tc.when, now)
			if !got.Equal(tc.want) {
				t.Fatalf("ResolveDue(%q) = %v, want %v", tc.when, got, tc.want)
			}
		})
	}
}

func TestResolveDueTonightAlreadyPassed(t *testing.T) {
	now := time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC)
	got := ResolveDue("tonight", now)
	if !got.After(now) {
		t.Fatalf("ResolveDue(tonight) = %v, want a time after now %v", got, now)
	}
}
