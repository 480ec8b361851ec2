package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type DailyEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.DailyEntry) (*types.DailyEntry, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyEntry, error)
	ExistsForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (bool, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type dailyEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyEntryRepo(db *gorm.DB, baseLog *logger.Logger) DailyEntryRepo {
	return &dailyEntryRepo{db: db, log: baseLog.With("repo", "DailyEntryRepo")}
}

func (r *dailyEntryRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *dailyEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.DailyEntry) (*types.DailyEntry, error) {
	if err := r.conn(tx).WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByUser returns entries newest-first. limit <= 0 means no limit.
func (r *dailyEntryRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyEntry, error) {
	q := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var entries []*types.DailyEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *dailyEntryRepo) ExistsForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.DailyEntry{}).
		Where("user_id = ? AND entry_date = ?", userID, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *dailyEntryRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.DailyEntry{}).Count(&count).Error
	return count, err
}
