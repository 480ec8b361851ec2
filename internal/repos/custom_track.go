package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type CustomTrackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, track *types.CustomTrack) (*types.CustomTrack, error)
	GetByID(ctx context.Context, tx *gorm.DB, trackID uuid.UUID) (*types.CustomTrack, error)
	GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CustomTrack, error)
	Save(ctx context.Context, tx *gorm.DB, track *types.CustomTrack) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, trackID uuid.UUID) error
}

type customTrackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomTrackRepo(db *gorm.DB, baseLog *logger.Logger) CustomTrackRepo {
	return &customTrackRepo{db: db, log: baseLog.With("repo", "CustomTrackRepo")}
}

func (r *customTrackRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *customTrackRepo) Create(ctx context.Context, tx *gorm.DB, track *types.CustomTrack) (*types.CustomTrack, error) {
	if err := r.conn(tx).WithContext(ctx).Create(track).Error; err != nil {
		return nil, err
	}
	return track, nil
}

func (r *customTrackRepo) GetByID(ctx context.Context, tx *gorm.DB, trackID uuid.UUID) (*types.CustomTrack, error) {
	var track types.CustomTrack
	if err := r.conn(tx).WithContext(ctx).Where("id = ?", trackID).First(&track).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *customTrackRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CustomTrack, error) {
	var track types.CustomTrack
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&track).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &track, nil
}

func (r *customTrackRepo) Save(ctx context.Context, tx *gorm.DB, track *types.CustomTrack) error {
	return r.conn(tx).WithContext(ctx).Save(track).Error
}

func (r *customTrackRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.CustomTrack{}).Count(&count).Error
	return count, err
}

func (r *customTrackRepo) Delete(ctx context.Context, tx *gorm.DB, trackID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", trackID).
		Delete(&types.CustomTrack{}).Error
}
