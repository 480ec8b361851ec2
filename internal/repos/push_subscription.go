package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type PushSubscriptionRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, sub *types.PushSubscription) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PushSubscription, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type pushSubscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPushSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) PushSubscriptionRepo {
	return &pushSubscriptionRepo{db: db, log: baseLog.With("repo", "PushSubscriptionRepo")}
}

func (r *pushSubscriptionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *pushSubscriptionRepo) Upsert(ctx context.Context, tx *gorm.DB, sub *types.PushSubscription) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"player_id", "updated_at"}),
		}).
		Create(sub).Error
}

func (r *pushSubscriptionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PushSubscription, error) {
	var sub types.PushSubscription
	err := r.conn(tx).WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *pushSubscriptionRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.PushSubscription{}).Error
}
