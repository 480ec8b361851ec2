package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// TrackService owns the stage model: the fixed curriculum, AI-generated
// custom tracks, and the user's position on whichever is active.
type TrackService interface {
	ActiveStages(ctx context.Context, userID uuid.UUID) ([]types.StageSpec, error)
	CurrentStage(ctx context.Context, userID uuid.UUID) (types.StageSpec, error)
	AdvanceStage(ctx context.Context, userID uuid.UUID) (*types.User, error)
	SelectTrack(ctx context.Context, userID uuid.UUID, trackName string) (*types.User, error)
	ActiveCustomTrack(ctx context.Context, userID uuid.UUID) (*types.CustomTrack, error)
	FinalizeTrackSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.CustomTrack, error)
}

type trackService struct {
	db           *gorm.DB
	log          *logger.Logger
	users        repos.UserRepo
	stages       repos.StageRepo
	customTracks repos.CustomTrackRepo
	sessions     repos.ChatSessionRepo
}

func NewTrackService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	stageRepo repos.StageRepo,
	customTrackRepo repos.CustomTrackRepo,
	sessionRepo repos.ChatSessionRepo,
) TrackService {
	return &trackService{
		db:           db,
		log:          baseLog.With("service", "TrackService"),
		users:        userRepo,
		stages:       stageRepo,
		customTracks: customTrackRepo,
		sessions:     sessionRepo,
	}
}

func (s *trackService) ActiveStages(ctx context.Context, userID uuid.UUID) ([]types.StageSpec, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	if user.Track == types.TrackCustom {
		track, err := s.customTracks.GetActiveByUserID(ctx, nil, userID)
		if err != nil {
			return nil, err
		}
		if track != nil {
			specs := append([]types.StageSpec(nil), []types.StageSpec(track.GeneratedStages)...)
			sort.Slice(specs, func(i, j int) bool { return specs[i].StageNumber < specs[j].StageNumber })
			return specs, nil
		}
	}

	stages, err := s.stages.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	specs := make([]types.StageSpec, 0, len(stages))
	for _, st := range stages {
		specs = append(specs, st.Spec())
	}
	return specs, nil
}

func (s *trackService) CurrentStage(ctx context.Context, userID uuid.UUID) (types.StageSpec, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return types.StageSpec{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	specs, err := s.ActiveStages(ctx, userID)
	if err != nil {
		return types.StageSpec{}, err
	}
	for _, spec := range specs {
		if spec.StageNumber == user.CurrentStage {
			return spec, nil
		}
	}
	return types.StageSpec{}, fmt.Errorf("%w: stage %d not found on active track", ErrNotFound, user.CurrentStage)
}

func (s *trackService) AdvanceStage(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	specs, err := s.ActiveStages(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CurrentStage >= len(specs) {
		return nil, fmt.Errorf("%w: already at the final stage", ErrConflict)
	}
	next := user.CurrentStage + 1
	if err := s.users.UpdateFields(ctx, nil, userID, map[string]any{"current_stage": next}); err != nil {
		return nil, err
	}
	user.CurrentStage = next
	return user, nil
}

// SelectTrack is the onboarding track choice. Picking the custom track keeps
// onboarding open until the builder interview finalizes; a fixed track starts
// at stage 1 and completes onboarding immediately.
func (s *trackService) SelectTrack(ctx context.Context, userID uuid.UUID, trackName string) (*types.User, error) {
	if trackName == "" {
		return nil, fmt.Errorf("%w: track name required", ErrValidation)
	}
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	fields := map[string]any{"track": trackName}
	if trackName != types.TrackCustom {
		fields["current_stage"] = 1
		fields["onboarding_completed"] = true
	}
	if err := s.users.UpdateFields(ctx, nil, userID, fields); err != nil {
		return nil, err
	}
	user.Track = trackName
	if trackName != types.TrackCustom {
		user.CurrentStage = 1
		user.OnboardingCompleted = true
	}
	return user, nil
}

func (s *trackService) ActiveCustomTrack(ctx context.Context, userID uuid.UUID) (*types.CustomTrack, error) {
	track, err := s.customTracks.GetActiveByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, fmt.Errorf("%w: no active custom track", ErrNotFound)
	}
	return track, nil
}

// FinalizeTrackSession applies a generated interview payload: a builder
// session creates the custom track and completes onboarding, an update
// session splices new stages after the immutable prefix. The session is
// marked finalized in the same transaction.
func (s *trackService) FinalizeTrackSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.CustomTrack, error) {
	session, err := s.sessions.GetByID(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: chat session %s", ErrNotFound, sessionID)
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("%w: chat session %s", ErrForbidden, sessionID)
	}
	if session.State != types.ChatStateGenerated {
		return nil, fmt.Errorf("%w: session has no generated payload", ErrConflict)
	}

	var result *types.CustomTrack
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch session.Persona {
		case types.PersonaTrackBuilder:
			var payload GeneratedTrack
			if err := json.Unmarshal(session.Generated, &payload); err != nil {
				return fmt.Errorf("decode generated track: %w", err)
			}

			// a replaced track is deactivated, not deleted
			if prev, err := s.customTracks.GetActiveByUserID(ctx, tx, userID); err != nil {
				return err
			} else if prev != nil {
				prev.IsActive = false
				if err := s.customTracks.Save(ctx, tx, prev); err != nil {
					return err
				}
			}

			track := &types.CustomTrack{
				UserID:          userID,
				TrackName:       payload.TrackName,
				Summary:         payload.Summary,
				GeneratedStages: datatypes.NewJSONSlice(payload.Stages),
				IsActive:        true,
			}
			if _, err := s.customTracks.Create(ctx, tx, track); err != nil {
				return err
			}
			if err := s.users.UpdateFields(ctx, tx, userID, map[string]any{
				"track":                types.TrackCustom,
				"custom_track_id":      track.ID,
				"current_stage":        1,
				"onboarding_completed": true,
			}); err != nil {
				return err
			}
			result = track

		case types.PersonaTrackUpdate:
			var payload GeneratedTrackUpdate
			if err := json.Unmarshal(session.Generated, &payload); err != nil {
				return fmt.Errorf("decode generated track update: %w", err)
			}
			user, err := s.users.GetByID(ctx, tx, userID)
			if err != nil {
				return err
			}
			track, err := s.customTracks.GetActiveByUserID(ctx, tx, userID)
			if err != nil {
				return err
			}
			if track == nil {
				return fmt.Errorf("%w: no active custom track to update", ErrNotFound)
			}
			track.TrackName = payload.TrackName
			track.GeneratedStages = datatypes.NewJSONSlice(
				spliceStages([]types.StageSpec(track.GeneratedStages), user.CurrentStage, payload.UpdatedStages))
			if err := s.customTracks.Save(ctx, tx, track); err != nil {
				return err
			}
			result = track

		default:
			return fmt.Errorf("%w: persona %q does not produce a track", ErrConflict, session.Persona)
		}

		session.State = types.ChatStateFinalized
		return s.sessions.Save(ctx, tx, session)
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// spliceStages keeps the stages the user has already passed and replaces
// everything after them. The prefix [0:currentStage] is never modified.
func spliceStages(existing []types.StageSpec, currentStage int, updated []types.StageSpec) []types.StageSpec {
	if currentStage < 0 {
		currentStage = 0
	}
	if currentStage > len(existing) {
		currentStage = len(existing)
	}
	out := make([]types.StageSpec, 0, currentStage+len(updated))
	out = append(out, existing[:currentStage]...)
	out = append(out, updated...)
	return out
}
