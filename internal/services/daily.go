package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

const entryDateLayout = "2006-01-02"

// DailyService logs one reflection entry per user per calendar day.
type DailyService interface {
	Submit(ctx context.Context, userID uuid.UUID, stageNumber int, taskRatings map[string]int, dailyRating int, notes string) (*types.DailyEntry, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DailyEntry, error)
	HasLoggedToday(ctx context.Context, userID uuid.UUID) (bool, error)
}

type dailyService struct {
	log     *logger.Logger
	entries repos.DailyEntryRepo
	now     func() time.Time
}

func NewDailyService(baseLog *logger.Logger, entryRepo repos.DailyEntryRepo) DailyService {
	return &dailyService{
		log:     baseLog.With("service", "DailyService"),
		entries: entryRepo,
		now:     time.Now,
	}
}

func validRating(r int) bool { return r >= 1 && r <= 10 }

func (s *dailyService) Submit(ctx context.Context, userID uuid.UUID, stageNumber int, taskRatings map[string]int, dailyRating int, notes string) (*types.DailyEntry, error) {
	if stageNumber < 1 {
		return nil, fmt.Errorf("%w: stage number must be positive", ErrValidation)
	}
	if !validRating(dailyRating) {
		return nil, fmt.Errorf("%w: daily rating must be between 1 and 10", ErrValidation)
	}
	for task, rating := range taskRatings {
		if !validRating(rating) {
			return nil, fmt.Errorf("%w: rating for %q must be between 1 and 10", ErrValidation, task)
		}
	}

	now := s.now()
	exists, err := s.entries.ExistsForDate(ctx, nil, userID, now.Format(entryDateLayout))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: an entry was already logged today", ErrConflict)
	}

	entry := &types.DailyEntry{
		UserID:      userID,
		StageNumber: stageNumber,
		EntryDate:   entryDay(now),
		TaskRatings: datatypes.NewJSONType(taskRatings),
		DailyRating: dailyRating,
		Notes:       notes,
	}
	return s.entries.Create(ctx, nil, entry)
}

func (s *dailyService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DailyEntry, error) {
	return s.entries.ListByUser(ctx, nil, userID, limit)
}

func (s *dailyService) HasLoggedToday(ctx context.Context, userID uuid.UUID) (bool, error) {
	entries, err := s.entries.ListByUser(ctx, nil, userID, 1)
	if err != nil {
		return false, err
	}
	return hasLoggedToday(entries, s.now()), nil
}

// entryDay truncates t to its calendar day. DATE columns come back from
// the driver as midnight timestamps, so entries are stored and compared
// at day granularity only.
func entryDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// hasLoggedToday reports whether the most recent entry falls on the same
// calendar day as now. Entries are expected newest first.
func hasLoggedToday(entries []*types.DailyEntry, now time.Time) bool {
	if len(entries) == 0 {
		return false
	}
	return entries[0].EntryDate.Format(entryDateLayout) == now.Format(entryDateLayout)
}
