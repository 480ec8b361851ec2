package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// UserUpdate carries the self-service profile fields. Nil means leave
// the field as is.
type UserUpdate struct {
	FullName            *string `json:"full_name"`
	Track               *string `json:"track"`
	CurrentStage        *int    `json:"current_stage"`
	OnboardingCompleted *bool   `json:"onboarding_completed"`
}

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, update UserUpdate) (*types.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	log    *logger.Logger
	db     *gorm.DB
	users  repos.UserRepo
	tokens repos.UserTokenRepo
	tracks TrackService
}

func NewUserService(log *logger.Logger, db *gorm.DB, users repos.UserRepo, tokens repos.UserTokenRepo, tracks TrackService) UserService {
	return &userService{
		log:    log.With("service", "UserService"),
		db:     db,
		users:  users,
		tokens: tokens,
		tracks: tracks,
	}
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) UpdateMe(ctx context.Context, userID uuid.UUID, update UserUpdate) (*types.User, error) {
	fields := map[string]any{}
	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if name == "" {
			return nil, ErrValidation
		}
		fields["full_name"] = name
	}
	if update.Track != nil {
		fields["track"] = strings.TrimSpace(*update.Track)
	}
	if update.CurrentStage != nil {
		stage := *update.CurrentStage
		if stage < 1 {
			return nil, ErrValidation
		}
		stages, err := s.tracks.ActiveStages(ctx, userID)
		if err != nil {
			return nil, err
		}
		if stage > len(stages) {
			return nil, fmt.Errorf("%w: stage %d is beyond the active track", ErrValidation, stage)
		}
		fields["current_stage"] = stage
	}
	if update.OnboardingCompleted != nil {
		fields["onboarding_completed"] = *update.OnboardingCompleted
	}
	if len(fields) == 0 {
		return s.GetMe(ctx, userID)
	}

	if err := s.users.UpdateFields(ctx, nil, userID, fields); err != nil {
		s.log.Error("failed to update user", "error", err, "user_id", userID)
		return nil, err
	}
	return s.GetMe(ctx, userID)
}

// DeleteAccount removes the user and every row they own. Owned tables
// declare ON DELETE CASCADE on user_id, so the hard delete of the user
// row is sufficient; tokens are cleared explicitly so live sessions die
// even if the cascade is ever relaxed.
func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tokens.DeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		return s.users.HardDelete(ctx, tx, userID)
	})
	if err != nil {
		s.log.Error("failed to delete account", "error", err, "user_id", userID)
		return err
	}
	return nil
}
