package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/normalization"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// LibraryService is the beit-midrash bookshelf.
type LibraryService interface {
	ListBooks(ctx context.Context, userID uuid.UUID) ([]*types.UserBook, error)
	AddBook(ctx context.Context, userID uuid.UUID, title, author string) (*types.UserBook, error)
	UpdateStatus(ctx context.Context, userID, bookID uuid.UUID, status string) (*types.UserBook, error)
	RemoveBook(ctx context.Context, userID, bookID uuid.UUID) error
}

type libraryService struct {
	log   *logger.Logger
	books repos.UserBookRepo
}

func NewLibraryService(baseLog *logger.Logger, bookRepo repos.UserBookRepo) LibraryService {
	return &libraryService{
		log:   baseLog.With("service", "LibraryService"),
		books: bookRepo,
	}
}

func validBookStatus(status string) bool {
	switch status {
	case types.BookStatusPlanning, types.BookStatusStudying, types.BookStatusDone:
		return true
	}
	return false
}

func (s *libraryService) ListBooks(ctx context.Context, userID uuid.UUID) ([]*types.UserBook, error) {
	return s.books.ListByUser(ctx, nil, userID)
}

func (s *libraryService) AddBook(ctx context.Context, userID uuid.UUID, title, author string) (*types.UserBook, error) {
	title = normalization.ParseInputString(title)
	if title == "" {
		return nil, fmt.Errorf("%w: book title required", ErrValidation)
	}
	book := &types.UserBook{
		UserID:    userID,
		BookTitle: title,
		Author:    normalization.ParseInputString(author),
		Status:    types.BookStatusPlanning,
	}
	return s.books.Create(ctx, nil, book)
}

func (s *libraryService) ownedBook(ctx context.Context, userID, bookID uuid.UUID) (*types.UserBook, error) {
	book, err := s.books.GetByID(ctx, nil, bookID)
	if err != nil {
		return nil, fmt.Errorf("%w: book %s", ErrNotFound, bookID)
	}
	if book.UserID != userID {
		return nil, fmt.Errorf("%w: book %s", ErrForbidden, bookID)
	}
	return book, nil
}

func (s *libraryService) UpdateStatus(ctx context.Context, userID, bookID uuid.UUID, status string) (*types.UserBook, error) {
	if !validBookStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	book, err := s.ownedBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	book.Status = status
	if err := s.books.Save(ctx, nil, book); err != nil {
		return nil, err
	}
	return book, nil
}

// RemoveBook is idempotent; deleting a book that is already gone succeeds.
func (s *libraryService) RemoveBook(ctx context.Context, userID, bookID uuid.UUID) error {
	book, err := s.ownedBook(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.books.Delete(ctx, nil, book.ID)
}
