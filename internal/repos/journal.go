package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type JournalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.JournalEntry, error)
	GetByID(ctx context.Context, tx *gorm.DB, entryID uuid.UUID) (*types.JournalEntry, error)
	ListByUserAndKind(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind string) ([]*types.JournalEntry, error)
	Save(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) error
	Delete(ctx context.Context, tx *gorm.DB, entryID uuid.UUID) error
}

type journalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalRepo(db *gorm.DB, baseLog *logger.Logger) JournalRepo {
	return &journalRepo{db: db, log: baseLog.With("repo", "JournalRepo")}
}

func (r *journalRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *journalRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.JournalEntry, error) {
	if err := r.conn(tx).WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *journalRepo) GetByID(ctx context.Context, tx *gorm.DB, entryID uuid.UUID) (*types.JournalEntry, error) {
	var entry types.JournalEntry
	if err := r.conn(tx).WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepo) ListByUserAndKind(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind string) ([]*types.JournalEntry, error) {
	var entries []*types.JournalEntry
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *journalRepo) Save(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) error {
	return r.conn(tx).WithContext(ctx).Save(entry).Error
}

func (r *journalRepo) Delete(ctx context.Context, tx *gorm.DB, entryID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", entryID).
		Delete(&types.JournalEntry{}).Error
}
