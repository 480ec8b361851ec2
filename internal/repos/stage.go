package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type StageRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Stage, error)
}

type stageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStageRepo(db *gorm.DB, baseLog *logger.Logger) StageRepo {
	return &stageRepo{db: db, log: baseLog.With("repo", "StageRepo")}
}

func (r *stageRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Stage, error) {
	conn := tx
	if conn == nil {
		conn = r.db
	}
	var stages []*types.Stage
	if err := conn.WithContext(ctx).Order("stage_number ASC").Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}
