package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// TrainingPathService manages the ordered meditation plan and its unlock
// cursor. Completions are always logged; the cursor only advances when the
// completed meditation is exactly the next one on the path.
type TrainingPathService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.UserTrainingPath, error)
	AddMeditation(ctx context.Context, userID, meditationID uuid.UUID) (*types.UserTrainingPath, error)
	CompleteMeditation(ctx context.Context, userID, meditationID uuid.UUID) (*types.UserTrainingPath, error)
	ListCompleted(ctx context.Context, userID uuid.UUID) ([]*types.CompletedMeditation, error)
}

type trainingPathService struct {
	db          *gorm.DB
	log         *logger.Logger
	paths       repos.TrainingPathRepo
	meditations repos.MeditationRepo
	completed   repos.CompletedMeditationRepo
	now         func() time.Time
}

func NewTrainingPathService(
	db *gorm.DB,
	baseLog *logger.Logger,
	pathRepo repos.TrainingPathRepo,
	meditationRepo repos.MeditationRepo,
	completedRepo repos.CompletedMeditationRepo,
) TrainingPathService {
	return &trainingPathService{
		db:          db,
		log:         baseLog.With("service", "TrainingPathService"),
		paths:       pathRepo,
		meditations: meditationRepo,
		completed:   completedRepo,
		now:         time.Now,
	}
}

// Get returns the user's path, creating an empty one on first access.
func (s *trainingPathService) Get(ctx context.Context, userID uuid.UUID) (*types.UserTrainingPath, error) {
	path, err := s.paths.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if path != nil {
		return path, nil
	}
	path = &types.UserTrainingPath{
		UserID:             userID,
		MeditationIDs:      datatypes.NewJSONSlice([]uuid.UUID{}),
		LastCompletedIndex: -1,
	}
	return s.paths.Create(ctx, nil, path)
}

// AddMeditation appends to the path; the path is a set, duplicates are a
// no-op.
func (s *trainingPathService) AddMeditation(ctx context.Context, userID, meditationID uuid.UUID) (*types.UserTrainingPath, error) {
	if _, err := s.meditations.GetByID(ctx, nil, meditationID); err != nil {
		return nil, fmt.Errorf("%w: meditation %s", ErrNotFound, meditationID)
	}
	path, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := []uuid.UUID(path.MeditationIDs)
	if indexOf(ids, meditationID) >= 0 {
		return path, nil
	}
	path.MeditationIDs = datatypes.NewJSONSlice(append(ids, meditationID))
	if err := s.paths.Save(ctx, nil, path); err != nil {
		return nil, err
	}
	return path, nil
}

// CompleteMeditation logs the completion unconditionally, and advances the
// cursor only for the next-in-order meditation.
func (s *trainingPathService) CompleteMeditation(ctx context.Context, userID, meditationID uuid.UUID) (*types.UserTrainingPath, error) {
	meditation, err := s.meditations.GetByID(ctx, nil, meditationID)
	if err != nil {
		return nil, fmt.Errorf("%w: meditation %s", ErrNotFound, meditationID)
	}

	var path *types.UserTrainingPath
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &types.CompletedMeditation{
			UserID:          userID,
			MeditationID:    meditationID,
			MeditationTitle: meditation.Title,
			CompletedAt:     s.now(),
		}
		if _, err := s.completed.Create(ctx, tx, record); err != nil {
			return err
		}

		path, err = s.paths.GetByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if path == nil {
			return nil
		}
		if advanceCursor(path, meditationID) {
			return s.paths.Save(ctx, tx, path)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return path, nil
}

func (s *trainingPathService) ListCompleted(ctx context.Context, userID uuid.UUID) ([]*types.CompletedMeditation, error) {
	return s.completed.ListByUser(ctx, nil, userID)
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// advanceCursor mutates the path when the completed meditation sits exactly
// at last_completed_index+1. Out-of-order and off-path completions leave the
// cursor untouched.
func advanceCursor(path *types.UserTrainingPath, meditationID uuid.UUID) bool {
	idx := indexOf([]uuid.UUID(path.MeditationIDs), meditationID)
	if idx < 0 || idx != path.LastCompletedIndex+1 {
		return false
	}
	path.LastCompletedIndex = idx
	return true
}
