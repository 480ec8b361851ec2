package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type LearningScheduleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, schedule *types.LearningSchedule) (*types.LearningSchedule, error)
	GetByID(ctx context.Context, tx *gorm.DB, scheduleID uuid.UUID) (*types.LearningSchedule, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningSchedule, error)
	Upcoming(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from time.Time, limit int) ([]*types.LearningSchedule, error)
	Save(ctx context.Context, tx *gorm.DB, schedule *types.LearningSchedule) error
	Delete(ctx context.Context, tx *gorm.DB, scheduleID uuid.UUID) error
}

type learningScheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningScheduleRepo(db *gorm.DB, baseLog *logger.Logger) LearningScheduleRepo {
	return &learningScheduleRepo{db: db, log: baseLog.With("repo", "LearningScheduleRepo")}
}

func (r *learningScheduleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *learningScheduleRepo) Create(ctx context.Context, tx *gorm.DB, schedule *types.LearningSchedule) (*types.LearningSchedule, error) {
	if err := r.conn(tx).WithContext(ctx).Create(schedule).Error; err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *learningScheduleRepo) GetByID(ctx context.Context, tx *gorm.DB, scheduleID uuid.UUID) (*types.LearningSchedule, error) {
	var schedule types.LearningSchedule
	if err := r.conn(tx).WithContext(ctx).Where("id = ?", scheduleID).First(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *learningScheduleRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LearningSchedule, error) {
	var schedules []*types.LearningSchedule
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// Upcoming returns the user's next incomplete schedule slots at or after the
// given instant, soonest first.
func (r *learningScheduleRepo) Upcoming(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from time.Time, limit int) ([]*types.LearningSchedule, error) {
	q := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND is_completed = ? AND scheduled_at >= ?", userID, false, from).
		Order("scheduled_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var schedules []*types.LearningSchedule
	if err := q.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *learningScheduleRepo) Save(ctx context.Context, tx *gorm.DB, schedule *types.LearningSchedule) error {
	return r.conn(tx).WithContext(ctx).Save(schedule).Error
}

func (r *learningScheduleRepo) Delete(ctx context.Context, tx *gorm.DB, scheduleID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", scheduleID).
		Delete(&types.LearningSchedule{}).Error
}
