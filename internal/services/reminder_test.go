package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/clients/onesignal"
	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type fakeReminderRepo struct {
	created []*types.Reminder
	sentIDs []uuid.UUID
	due     []*types.Reminder
}

func (f *fakeReminderRepo) Create(ctx context.Context, tx *gorm.DB, reminder *types.Reminder) (*types.Reminder, error) {
	reminder.ID = uuid.New()
	f.created = append(f.created, reminder)
	return reminder, nil
}

func (f *fakeReminderRepo) ListDue(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]*types.Reminder, error) {
	return f.due, nil
}

func (f *fakeReminderRepo) MarkSent(ctx context.Context, tx *gorm.DB, reminderID uuid.UUID) error {
	f.sentIDs = append(f.sentIDs, reminderID)
	return nil
}

func (f *fakeReminderRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return nil
}

type fakePushSubRepo struct {
	sub *types.PushSubscription
}

func (f *fakePushSubRepo) Upsert(ctx context.Context, tx *gorm.DB, sub *types.PushSubscription) error {
	f.sub = sub
	return nil
}

func (f *fakePushSubRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PushSubscription, error) {
	return f.sub, nil
}

func (f *fakePushSubRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	f.sub = nil
	return nil
}

type fakePushClient struct {
	sent []onesignal.Notification
	err  error
}

func (f *fakePushClient) Ready(ctx context.Context) error { return f.err }

func (f *fakePushClient) Send(ctx context.Context, n onesignal.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func testReminderService(t *testing.T, reminders *fakeReminderRepo, subs *fakePushSubRepo, push onesignal.Client) *reminderService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return &reminderService{
		log:       log,
		reminders: reminders,
		subs:      subs,
		push:      push,
		now:       time.Now,
	}
}

func TestSchedule_PersistsAndHandsOffToProvider(t *testing.T) {
	reminders := &fakeReminderRepo{}
	subs := &fakePushSubRepo{sub: &types.PushSubscription{PlayerID: "player-1", OptedIn: true}}
	push := &fakePushClient{}
	s := testReminderService(t, reminders, subs, push)

	remindAt := time.Now().Add(time.Hour)
	reminder, err := s.Schedule(context.Background(), uuid.New(), remindAt, "")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(reminders.created) != 1 {
		t.Fatalf("expected one persisted reminder, got %d", len(reminders.created))
	}
	if reminder.Message != defaultReminderMessage {
		t.Fatalf("expected default message, got %q", reminder.Message)
	}
	if len(push.sent) != 1 || push.sent[0].SendAfter == nil {
		t.Fatalf("expected one scheduled push with send_after")
	}
	if !reminder.Sent {
		t.Fatalf("expected reminder marked sent after provider hand-off")
	}
}

func TestSchedule_RejectsPastRemindAt(t *testing.T) {
	s := testReminderService(t, &fakeReminderRepo{}, &fakePushSubRepo{}, nil)

	_, err := s.Schedule(context.Background(), uuid.New(), time.Now().Add(-time.Minute), "תזכורת")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for a past time, got %v", err)
	}
}

func TestDispatchDue_RetiresUndeliverableRows(t *testing.T) {
	dueID := uuid.New()
	reminders := &fakeReminderRepo{due: []*types.Reminder{{ID: dueID, UserID: uuid.New(), Message: "תזכורת"}}}
	s := testReminderService(t, reminders, &fakePushSubRepo{}, &fakePushClient{})

	sent, err := s.DispatchDue(context.Background(), 10)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected nothing deliverable, got %d", sent)
	}
	if len(reminders.sentIDs) != 1 || reminders.sentIDs[0] != dueID {
		t.Fatalf("expected the undeliverable row to be retired")
	}
}
