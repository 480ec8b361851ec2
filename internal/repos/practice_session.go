package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type PracticeSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.PracticeSession) (*types.PracticeSession, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PracticeSession, error)
}

type practiceSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeSessionRepo(db *gorm.DB, baseLog *logger.Logger) PracticeSessionRepo {
	return &practiceSessionRepo{db: db, log: baseLog.With("repo", "PracticeSessionRepo")}
}

func (r *practiceSessionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *practiceSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.PracticeSession) (*types.PracticeSession, error) {
	if err := r.conn(tx).WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *practiceSessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PracticeSession, error) {
	var sessions []*types.PracticeSession
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("session_date DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
