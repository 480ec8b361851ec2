package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type CompletedMeditationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, completed *types.CompletedMeditation) (*types.CompletedMeditation, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CompletedMeditation, error)
}

type completedMeditationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompletedMeditationRepo(db *gorm.DB, baseLog *logger.Logger) CompletedMeditationRepo {
	return &completedMeditationRepo{db: db, log: baseLog.With("repo", "CompletedMeditationRepo")}
}

func (r *completedMeditationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *completedMeditationRepo) Create(ctx context.Context, tx *gorm.DB, completed *types.CompletedMeditation) (*types.CompletedMeditation, error) {
	if err := r.conn(tx).WithContext(ctx).Create(completed).Error; err != nil {
		return nil, err
	}
	return completed, nil
}

func (r *completedMeditationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CompletedMeditation, error) {
	var completions []*types.CompletedMeditation
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}
