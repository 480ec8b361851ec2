package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

const reflectionContextEntries = 5

// ReflectionService produces the on-demand coaching insight from the user's
// current stage and recent daily entries.
type ReflectionService interface {
	Generate(ctx context.Context, userID uuid.UUID, customPrompt string) (string, error)
}

type reflectionService struct {
	log     *logger.Logger
	users   repos.UserRepo
	entries repos.DailyEntryRepo
	track   TrackService
	prompts PromptService
	ai      AIClient
}

func NewReflectionService(
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	entryRepo repos.DailyEntryRepo,
	track TrackService,
	prompts PromptService,
	ai AIClient,
) ReflectionService {
	return &reflectionService{
		log:     baseLog.With("service", "ReflectionService"),
		users:   userRepo,
		entries: entryRepo,
		track:   track,
		prompts: prompts,
		ai:      ai,
	}
}

func (s *reflectionService) Generate(ctx context.Context, userID uuid.UUID, customPrompt string) (string, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return "", err
	}
	stage, err := s.track.CurrentStage(ctx, userID)
	if err != nil {
		return "", err
	}
	entries, err := s.entries.ListByUser(ctx, nil, userID, reflectionContextEntries)
	if err != nil {
		return "", err
	}

	prompt := s.prompts.Reflection(stage, user.Track, entries, customPrompt)
	return s.ai.Invoke(ctx, "", []types.ChatTurn{{Role: types.TurnRoleUser, Content: prompt}})
}
