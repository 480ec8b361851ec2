package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/normalization"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// ScheduleService manages beit-midrash learning slots and the chavruta study
// sessions attached to them.
type ScheduleService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.LearningSchedule, error)
	Upcoming(ctx context.Context, userID uuid.UUID, limit int) ([]*types.LearningSchedule, error)
	Create(ctx context.Context, userID uuid.UUID, title string, sourceBookID *uuid.UUID, scheduledAt time.Time, recurrence string, aiLevel int) (*types.LearningSchedule, error)
	Delete(ctx context.Context, userID, scheduleID uuid.UUID) error
	StartStudySession(ctx context.Context, userID, scheduleID uuid.UUID) (*types.ChatSession, error)
	FinishStudySession(ctx context.Context, userID, scheduleID, sessionID uuid.UUID) (*types.LearningSession, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]*types.LearningSession, error)
}

type scheduleService struct {
	db        *gorm.DB
	log       *logger.Logger
	schedules repos.LearningScheduleRepo
	sessions  repos.LearningSessionRepo
	books     repos.UserBookRepo
	chat      ChatService
	chatRepo  repos.ChatSessionRepo
	now       func() time.Time
}

func NewScheduleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	scheduleRepo repos.LearningScheduleRepo,
	sessionRepo repos.LearningSessionRepo,
	bookRepo repos.UserBookRepo,
	chat ChatService,
	chatSessionRepo repos.ChatSessionRepo,
) ScheduleService {
	return &scheduleService{
		db:        db,
		log:       baseLog.With("service", "ScheduleService"),
		schedules: scheduleRepo,
		sessions:  sessionRepo,
		books:     bookRepo,
		chat:      chat,
		chatRepo:  chatSessionRepo,
		now:       time.Now,
	}
}

func validRecurrence(r string) bool {
	switch r {
	case types.RecurrenceNone, types.RecurrenceDaily, types.RecurrenceWeekly:
		return true
	}
	return false
}

func (s *scheduleService) List(ctx context.Context, userID uuid.UUID) ([]*types.LearningSchedule, error) {
	return s.schedules.ListByUser(ctx, nil, userID)
}

func (s *scheduleService) Upcoming(ctx context.Context, userID uuid.UUID, limit int) ([]*types.LearningSchedule, error) {
	return s.schedules.Upcoming(ctx, nil, userID, s.now(), limit)
}

func (s *scheduleService) Create(ctx context.Context, userID uuid.UUID, title string, sourceBookID *uuid.UUID, scheduledAt time.Time, recurrence string, aiLevel int) (*types.LearningSchedule, error) {
	title = normalization.ParseInputString(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if !validRecurrence(recurrence) {
		return nil, fmt.Errorf("%w: unknown recurrence %q", ErrValidation, recurrence)
	}
	if aiLevel != 1 && aiLevel != 2 {
		return nil, fmt.Errorf("%w: ai interaction level must be 1 or 2", ErrValidation)
	}

	schedule := &types.LearningSchedule{
		UserID:             userID,
		Title:              title,
		ScheduledAt:        scheduledAt,
		Recurrence:         recurrence,
		AIInteractionLevel: aiLevel,
	}
	if sourceBookID != nil {
		book, err := s.books.GetByID(ctx, nil, *sourceBookID)
		if err != nil {
			return nil, fmt.Errorf("%w: book %s", ErrNotFound, *sourceBookID)
		}
		if book.UserID != userID {
			return nil, fmt.Errorf("%w: book %s", ErrForbidden, *sourceBookID)
		}
		schedule.SourceBookID = sourceBookID
		schedule.SourceBookTitle = book.BookTitle
	}
	return s.schedules.Create(ctx, nil, schedule)
}

func (s *scheduleService) ownedSchedule(ctx context.Context, tx *gorm.DB, userID, scheduleID uuid.UUID) (*types.LearningSchedule, error) {
	schedule, err := s.schedules.GetByID(ctx, tx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule %s", ErrNotFound, scheduleID)
	}
	if schedule.UserID != userID {
		return nil, fmt.Errorf("%w: schedule %s", ErrForbidden, scheduleID)
	}
	return schedule, nil
}

// Delete is idempotent.
func (s *scheduleService) Delete(ctx context.Context, userID, scheduleID uuid.UUID) error {
	schedule, err := s.ownedSchedule(ctx, nil, userID, scheduleID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.schedules.Delete(ctx, nil, schedule.ID)
}

// StartStudySession opens the chavruta conversation for a schedule slot. The
// persona depends on the slot's AI interaction level.
func (s *scheduleService) StartStudySession(ctx context.Context, userID, scheduleID uuid.UUID) (*types.ChatSession, error) {
	schedule, err := s.ownedSchedule(ctx, nil, userID, scheduleID)
	if err != nil {
		return nil, err
	}
	persona := types.PersonaChavrutaSupport
	if schedule.AIInteractionLevel == 2 {
		persona = types.PersonaChavrutaScholar
	}
	return s.chat.StartSession(ctx, userID, persona, PersonaContext{
		ScheduleTitle:   schedule.Title,
		SourceBookTitle: schedule.SourceBookTitle,
	})
}

// FinishStudySession stores the learning record and completes the slot; a
// recurring slot rolls forward to its next occurrence instead.
func (s *scheduleService) FinishStudySession(ctx context.Context, userID, scheduleID, sessionID uuid.UUID) (*types.LearningSession, error) {
	chatSession, err := s.chat.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	var record *types.LearningSession
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		schedule, err := s.ownedSchedule(ctx, tx, userID, scheduleID)
		if err != nil {
			return err
		}

		turns := []types.ChatTurn(chatSession.Transcript)
		record = &types.LearningSession{
			ScheduleID:         schedule.ID,
			UserID:             userID,
			ChatTranscript:     transcriptText(turns),
			UserSummary:        userSummary(turns),
			AIInteractionLevel: schedule.AIInteractionLevel,
		}
		if _, err := s.sessions.Create(ctx, tx, record); err != nil {
			return err
		}

		if schedule.Recurrence == types.RecurrenceNone {
			schedule.IsCompleted = true
		} else {
			schedule.ScheduledAt = nextOccurrence(schedule.ScheduledAt, schedule.Recurrence, s.now())
		}
		if err := s.schedules.Save(ctx, tx, schedule); err != nil {
			return err
		}

		chatSession.State = types.ChatStateFinalized
		return s.chatRepo.Save(ctx, tx, chatSession)
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

func (s *scheduleService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*types.LearningSession, error) {
	return s.sessions.ListByUser(ctx, nil, userID)
}

// userSummary concatenates the user's own words; it is the self-summary
// stored with the learning record.
func userSummary(turns []types.ChatTurn) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		if t.Role == types.TurnRoleUser {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, " ")
}

// nextOccurrence rolls a recurring slot forward past now, keeping the
// original time of day.
func nextOccurrence(scheduledAt time.Time, recurrence string, now time.Time) time.Time {
	var step time.Duration
	switch recurrence {
	case types.RecurrenceDaily:
		step = 24 * time.Hour
	case types.RecurrenceWeekly:
		step = 7 * 24 * time.Hour
	default:
		return scheduledAt
	}
	next := scheduledAt.Add(step)
	for !next.After(now) {
		next = next.Add(step)
	}
	return next
}
