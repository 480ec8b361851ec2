package services

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/soulcompass/soulcoach-backend/internal/types"
)

func pathWith(ids []uuid.UUID, lastCompleted int) *types.UserTrainingPath {
	return &types.UserTrainingPath{
		MeditationIDs:      datatypes.NewJSONSlice(ids),
		LastCompletedIndex: lastCompleted,
	}
}

func TestAdvanceCursor_AdvancesOnNextInOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	path := pathWith(ids, -1)

	if !advanceCursor(path, ids[0]) {
		t.Fatalf("expected cursor to advance for first meditation")
	}
	if path.LastCompletedIndex != 0 {
		t.Fatalf("expected last_completed_index=0, got %d", path.LastCompletedIndex)
	}
	if !advanceCursor(path, ids[1]) {
		t.Fatalf("expected cursor to advance for second meditation")
	}
	if path.LastCompletedIndex != 1 {
		t.Fatalf("expected last_completed_index=1, got %d", path.LastCompletedIndex)
	}
}

func TestAdvanceCursor_IgnoresOutOfOrderCompletion(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	path := pathWith(ids, -1)

	if advanceCursor(path, ids[2]) {
		t.Fatalf("expected no advance when skipping ahead")
	}
	if path.LastCompletedIndex != -1 {
		t.Fatalf("expected cursor untouched, got %d", path.LastCompletedIndex)
	}
}

func TestAdvanceCursor_IgnoresRepeatedCompletion(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	path := pathWith(ids, 0)

	if advanceCursor(path, ids[0]) {
		t.Fatalf("expected no advance when re-completing an earlier meditation")
	}
	if path.LastCompletedIndex != 0 {
		t.Fatalf("expected cursor untouched, got %d", path.LastCompletedIndex)
	}
}

func TestAdvanceCursor_IgnoresMeditationOffPath(t *testing.T) {
	ids := []uuid.UUID{uuid.New()}
	path := pathWith(ids, -1)

	if advanceCursor(path, uuid.New()) {
		t.Fatalf("expected no advance for meditation not on the path")
	}
}
