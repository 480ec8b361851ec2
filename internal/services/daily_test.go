package services

import (
	"testing"
	"time"

	"github.com/soulcompass/soulcoach-backend/internal/types"
)

func TestHasLoggedToday_MatchesNewestEntryDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 21, 30, 0, 0, time.UTC)
	entries := []*types.DailyEntry{
		{EntryDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{EntryDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
	}
	if !hasLoggedToday(entries, now) {
		t.Fatalf("expected logged today")
	}
}

func TestHasLoggedToday_MatchesScannedDateColumn(t *testing.T) {
	// DATE columns scan back as midnight timestamps; a late-evening "now"
	// must still match the stored day.
	now := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	entries := []*types.DailyEntry{
		{EntryDate: entryDay(time.Date(2025, 3, 10, 8, 15, 0, 0, time.UTC))},
	}
	if !hasLoggedToday(entries, now) {
		t.Fatalf("expected logged today for a date scanned at midnight")
	}
}

func TestHasLoggedToday_FalseForOlderEntry(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)
	entries := []*types.DailyEntry{
		{EntryDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
	}
	if hasLoggedToday(entries, now) {
		t.Fatalf("expected not logged today")
	}
}

func TestEntryDay_TruncatesToMidnight(t *testing.T) {
	day := entryDay(time.Date(2025, 3, 10, 17, 42, 9, 0, time.UTC))
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Fatalf("got %v, want %v", day, want)
	}
}

func TestHasLoggedToday_FalseWithNoEntries(t *testing.T) {
	if hasLoggedToday(nil, time.Now()) {
		t.Fatalf("expected false with no entries")
	}
}

func TestValidRating_BoundsAreInclusive(t *testing.T) {
	for _, r := range []int{1, 5, 10} {
		if !validRating(r) {
			t.Fatalf("expected %d to be valid", r)
		}
	}
	for _, r := range []int{0, 11, -3} {
		if validRating(r) {
			t.Fatalf("expected %d to be invalid", r)
		}
	}
}
