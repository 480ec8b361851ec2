package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type fakeTrackService struct {
	TrackService
	stages []types.StageSpec
}

func (f *fakeTrackService) ActiveStages(ctx context.Context, userID uuid.UUID) ([]types.StageSpec, error) {
	return f.stages, nil
}

func testUserService(t *testing.T, tracks TrackService) UserService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewUserService(log, nil, nil, nil, tracks)
}

func TestUpdateMe_RejectsStageBeyondActiveTrack(t *testing.T) {
	tracks := &fakeTrackService{stages: make([]types.StageSpec, 6)}
	svc := testUserService(t, tracks)

	stage := 7
	_, err := svc.UpdateMe(context.Background(), uuid.New(), UserUpdate{CurrentStage: &stage})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for stage past the track end, got %v", err)
	}
}

func TestUpdateMe_RejectsNonPositiveStage(t *testing.T) {
	svc := testUserService(t, &fakeTrackService{})

	stage := 0
	_, err := svc.UpdateMe(context.Background(), uuid.New(), UserUpdate{CurrentStage: &stage})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for stage 0, got %v", err)
	}
}

func TestUpdateMe_RejectsEmptyFullName(t *testing.T) {
	svc := testUserService(t, &fakeTrackService{})

	name := "   "
	_, err := svc.UpdateMe(context.Background(), uuid.New(), UserUpdate{FullName: &name})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}
