package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type TrainingPathRepo interface {
	Create(ctx context.Context, tx *gorm.DB, path *types.UserTrainingPath) (*types.UserTrainingPath, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserTrainingPath, error)
	Save(ctx context.Context, tx *gorm.DB, path *types.UserTrainingPath) error
}

type trainingPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingPathRepo(db *gorm.DB, baseLog *logger.Logger) TrainingPathRepo {
	return &trainingPathRepo{db: db, log: baseLog.With("repo", "TrainingPathRepo")}
}

func (r *trainingPathRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *trainingPathRepo) Create(ctx context.Context, tx *gorm.DB, path *types.UserTrainingPath) (*types.UserTrainingPath, error) {
	if err := r.conn(tx).WithContext(ctx).Create(path).Error; err != nil {
		return nil, err
	}
	return path, nil
}

func (r *trainingPathRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserTrainingPath, error) {
	var path types.UserTrainingPath
	err := r.conn(tx).WithContext(ctx).Where("user_id = ?", userID).First(&path).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &path, nil
}

func (r *trainingPathRepo) Save(ctx context.Context, tx *gorm.DB, path *types.UserTrainingPath) error {
	return r.conn(tx).WithContext(ctx).Save(path).Error
}
