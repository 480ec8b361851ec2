package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type MeditationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, meditation *types.Meditation) (*types.Meditation, error)
	GetByID(ctx context.Context, tx *gorm.DB, meditationID uuid.UUID) (*types.Meditation, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Meditation, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type meditationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeditationRepo(db *gorm.DB, baseLog *logger.Logger) MeditationRepo {
	return &meditationRepo{db: db, log: baseLog.With("repo", "MeditationRepo")}
}

func (r *meditationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *meditationRepo) Create(ctx context.Context, tx *gorm.DB, meditation *types.Meditation) (*types.Meditation, error) {
	if err := r.conn(tx).WithContext(ctx).Create(meditation).Error; err != nil {
		return nil, err
	}
	return meditation, nil
}

func (r *meditationRepo) GetByID(ctx context.Context, tx *gorm.DB, meditationID uuid.UUID) (*types.Meditation, error) {
	var meditation types.Meditation
	if err := r.conn(tx).WithContext(ctx).Where("id = ?", meditationID).First(&meditation).Error; err != nil {
		return nil, err
	}
	return &meditation, nil
}

func (r *meditationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Meditation, error) {
	var meditations []*types.Meditation
	err := r.conn(tx).WithContext(ctx).
		Order("created_at DESC").
		Find(&meditations).Error
	if err != nil {
		return nil, err
	}
	return meditations, nil
}

func (r *meditationRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Meditation{}).Count(&count).Error
	return count, err
}
