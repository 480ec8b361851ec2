package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type ReminderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reminder *types.Reminder) (*types.Reminder, error)
	ListDue(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]*types.Reminder, error)
	MarkSent(ctx context.Context, tx *gorm.DB, reminderID uuid.UUID) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type reminderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReminderRepo(db *gorm.DB, baseLog *logger.Logger) ReminderRepo {
	return &reminderRepo{db: db, log: baseLog.With("repo", "ReminderRepo")}
}

func (r *reminderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *reminderRepo) Create(ctx context.Context, tx *gorm.DB, reminder *types.Reminder) (*types.Reminder, error) {
	if err := r.conn(tx).WithContext(ctx).Create(reminder).Error; err != nil {
		return nil, err
	}
	return reminder, nil
}

func (r *reminderRepo) ListDue(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]*types.Reminder, error) {
	var reminders []*types.Reminder
	q := r.conn(tx).WithContext(ctx).
		Where("sent = ? AND remind_at <= ?", false, now).
		Order("remind_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepo) MarkSent(ctx context.Context, tx *gorm.DB, reminderID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Reminder{}).
		Where("id = ?", reminderID).
		Update("sent", true).Error
}

func (r *reminderRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Reminder{}).Error
}
