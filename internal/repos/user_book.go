package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type UserBookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, book *types.UserBook) (*types.UserBook, error)
	GetByID(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (*types.UserBook, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserBook, error)
	Save(ctx context.Context, tx *gorm.DB, book *types.UserBook) error
	Delete(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) error
}

type userBookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserBookRepo(db *gorm.DB, baseLog *logger.Logger) UserBookRepo {
	return &userBookRepo{db: db, log: baseLog.With("repo", "UserBookRepo")}
}

func (r *userBookRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userBookRepo) Create(ctx context.Context, tx *gorm.DB, book *types.UserBook) (*types.UserBook, error) {
	if err := r.conn(tx).WithContext(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (r *userBookRepo) GetByID(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (*types.UserBook, error) {
	var book types.UserBook
	if err := r.conn(tx).WithContext(ctx).Where("id = ?", bookID).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *userBookRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserBook, error) {
	var books []*types.UserBook
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *userBookRepo) Save(ctx context.Context, tx *gorm.DB, book *types.UserBook) error {
	return r.conn(tx).WithContext(ctx).Save(book).Error
}

func (r *userBookRepo) Delete(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", bookID).
		Delete(&types.UserBook{}).Error
}
