package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/normalization"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// MeditationService serves the guided meditation catalog, including the
// custom meditations users author themselves.
type MeditationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Meditation, error)
	Get(ctx context.Context, meditationID uuid.UUID) (*types.Meditation, error)
	CreateCustom(ctx context.Context, userID uuid.UUID, title, description, instructions, level, duration string) (*types.Meditation, error)
}

type meditationService struct {
	log         *logger.Logger
	meditations repos.MeditationRepo
}

func NewMeditationService(baseLog *logger.Logger, meditationRepo repos.MeditationRepo) MeditationService {
	return &meditationService{
		log:         baseLog.With("service", "MeditationService"),
		meditations: meditationRepo,
	}
}

func (s *meditationService) List(ctx context.Context, userID uuid.UUID) ([]*types.Meditation, error) {
	all, err := s.meditations.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	// the catalog plus the caller's own custom meditations
	out := make([]*types.Meditation, 0, len(all))
	for _, m := range all {
		if m.IsCustom && (m.CreatedBy == nil || *m.CreatedBy != userID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *meditationService) Get(ctx context.Context, meditationID uuid.UUID) (*types.Meditation, error) {
	meditation, err := s.meditations.GetByID(ctx, nil, meditationID)
	if err != nil {
		return nil, fmt.Errorf("%w: meditation %s", ErrNotFound, meditationID)
	}
	return meditation, nil
}

func validMeditationLevel(level string) bool {
	switch level {
	case types.MeditationLevelBeginner, types.MeditationLevelIntermediate, types.MeditationLevelAdvanced, "":
		return true
	}
	return false
}

func (s *meditationService) CreateCustom(ctx context.Context, userID uuid.UUID, title, description, instructions, level, duration string) (*types.Meditation, error) {
	title = normalization.ParseInputString(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if strings.TrimSpace(instructions) == "" {
		return nil, fmt.Errorf("%w: instructions required", ErrValidation)
	}
	if !validMeditationLevel(level) {
		return nil, fmt.Errorf("%w: unknown level %q", ErrValidation, level)
	}

	meditation := &types.Meditation{
		Title:        title,
		Description:  description,
		Instructions: instructions,
		Level:        level,
		Duration:     duration,
		IsCustom:     true,
		CreatedBy:    &userID,
	}
	return s.meditations.Create(ctx, nil, meditation)
}
