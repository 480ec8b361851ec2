package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/clients/onesignal"
	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

const defaultReminderMessage = "הגיע הזמן לתרגול היומי שלך."

// ReminderService schedules one-shot practice reminders. Delivery is
// delegated to the push provider's send_after; the local row records
// the schedule so it survives restarts and delivery failures.
type ReminderService interface {
	Schedule(ctx context.Context, userID uuid.UUID, remindAt time.Time, message string) (*types.Reminder, error)
	DispatchDue(ctx context.Context, limit int) (int, error)
}

type reminderService struct {
	log       *logger.Logger
	reminders repos.ReminderRepo
	subs      repos.PushSubscriptionRepo
	push      onesignal.Client
	now       func() time.Time
}

func NewReminderService(
	log *logger.Logger,
	reminders repos.ReminderRepo,
	subs repos.PushSubscriptionRepo,
	push onesignal.Client,
) ReminderService {
	return &reminderService{
		log:       log.With("service", "ReminderService"),
		reminders: reminders,
		subs:      subs,
		push:      push,
		now:       time.Now,
	}
}

// Schedule stores the reminder and, when a push client is configured,
// hands delivery to the provider via send_after. RemindAt must be in
// the future; it is compared and stored in UTC.
func (s *reminderService) Schedule(ctx context.Context, userID uuid.UUID, remindAt time.Time, message string) (*types.Reminder, error) {
	remindAt = remindAt.UTC()
	if !remindAt.After(s.now().UTC()) {
		return nil, ErrValidation
	}
	message = strings.TrimSpace(message)
	if message == "" {
		message = defaultReminderMessage
	}

	reminder := &types.Reminder{
		UserID:   userID,
		RemindAt: remindAt,
		Message:  message,
	}
	if _, err := s.reminders.Create(ctx, nil, reminder); err != nil {
		s.log.Error("failed to create reminder", "error", err, "user_id", userID)
		return nil, err
	}

	if s.push != nil {
		sub, err := s.subs.GetByUserID(ctx, nil, userID)
		if err == nil && sub != nil && sub.OptedIn {
			sendErr := s.push.Send(ctx, onesignal.Notification{
				PlayerID:  sub.PlayerID,
				Message:   message,
				SendAfter: &remindAt,
			})
			if sendErr != nil {
				s.log.Warn("failed to schedule push delivery", "error", sendErr, "reminder_id", reminder.ID)
			} else if markErr := s.reminders.MarkSent(ctx, nil, reminder.ID); markErr != nil {
				s.log.Warn("failed to mark reminder sent", "error", markErr, "reminder_id", reminder.ID)
			} else {
				reminder.Sent = true
			}
		}
	}

	return reminder, nil
}

// DispatchDue sends reminders whose provider hand-off failed at schedule
// time. Called from a periodic worker.
func (s *reminderService) DispatchDue(ctx context.Context, limit int) (int, error) {
	due, err := s.reminders.ListDue(ctx, nil, s.now().UTC(), limit)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range due {
		if s.push == nil {
			break
		}
		sub, err := s.subs.GetByUserID(ctx, nil, r.UserID)
		if err != nil || sub == nil || !sub.OptedIn {
			// No deliverable target; mark sent so the row stops cycling.
			if markErr := s.reminders.MarkSent(ctx, nil, r.ID); markErr != nil {
				s.log.Warn("failed to retire undeliverable reminder", "error", markErr, "reminder_id", r.ID)
			}
			continue
		}
		if err := s.push.Send(ctx, onesignal.Notification{PlayerID: sub.PlayerID, Message: r.Message}); err != nil {
			s.log.Warn("failed to send due reminder", "error", err, "reminder_id", r.ID)
			continue
		}
		if err := s.reminders.MarkSent(ctx, nil, r.ID); err != nil {
			s.log.Warn("failed to mark reminder sent", "error", err, "reminder_id", r.ID)
			continue
		}
		sent++
	}
	return sent, nil
}
