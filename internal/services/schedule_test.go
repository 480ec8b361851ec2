package services

import (
	"testing"
	"time"

	"github.com/soulcompass/soulcoach-backend/internal/types"
)

func TestNextOccurrence_DailyKeepsTimeOfDay(t *testing.T) {
	scheduledAt := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 1, 20, 30, 0, 0, time.UTC)

	next := nextOccurrence(scheduledAt, types.RecurrenceDaily, now)
	want := time.Date(2025, 3, 2, 20, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_RollsPastMissedSlots(t *testing.T) {
	scheduledAt := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)

	next := nextOccurrence(scheduledAt, types.RecurrenceDaily, now)
	want := time.Date(2025, 3, 5, 20, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_WeeklyStepsSevenDays(t *testing.T) {
	scheduledAt := time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 2, 19, 0, 0, 0, time.UTC)

	next := nextOccurrence(scheduledAt, types.RecurrenceWeekly, now)
	want := time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_NoRecurrenceReturnsOriginal(t *testing.T) {
	scheduledAt := time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC)
	next := nextOccurrence(scheduledAt, types.RecurrenceNone, time.Now())
	if !next.Equal(scheduledAt) {
		t.Fatalf("expected unchanged schedule, got %v", next)
	}
}

func TestTranscriptText_CollectsUserTurnsOnly(t *testing.T) {
	turns := []types.ChatTurn{
		{Role: types.TurnRoleAssistant, Content: "שלום"},
		{Role: types.TurnRoleUser, Content: "למדתי על סבלנות"},
		{Role: types.TurnRoleAssistant, Content: "יפה"},
		{Role: types.TurnRoleUser, Content: "וזה עזר לי"},
	}
	got := userSummary(turns)
	want := "למדתי על סבלנות וזה עזר לי"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
