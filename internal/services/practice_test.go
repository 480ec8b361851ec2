package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

type fakeAIClient struct {
	reply   string
	jsonObj map[string]any
	err     error
	invoked bool
}

func (f *fakeAIClient) Invoke(ctx context.Context, system string, turns []types.ChatTurn) (string, error) {
	f.invoked = true
	return f.reply, f.err
}

func (f *fakeAIClient) InvokeJSON(ctx context.Context, system string, turns []types.ChatTurn, schemaName string, schema map[string]any) (map[string]any, error) {
	f.invoked = true
	return f.jsonObj, f.err
}

type fakeMeditationRepo struct {
	meditation *types.Meditation
}

func (f *fakeMeditationRepo) Create(ctx context.Context, tx *gorm.DB, m *types.Meditation) (*types.Meditation, error) {
	return m, nil
}

func (f *fakeMeditationRepo) GetByID(ctx context.Context, tx *gorm.DB, meditationID uuid.UUID) (*types.Meditation, error) {
	return f.meditation, nil
}

func (f *fakeMeditationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Meditation, error) {
	return []*types.Meditation{f.meditation}, nil
}

func (f *fakeMeditationRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return 1, nil
}

func testPracticeService(t *testing.T, ai AIClient) *practiceService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return &practiceService{
		log:         log,
		meditations: &fakeMeditationRepo{meditation: &types.Meditation{Title: "נשימה", Instructions: "שב ונשום"}},
		prompts:     NewPromptService(log),
		ai:          ai,
		now:         time.Now,
		runs:        make(map[uuid.UUID]*practiceRun),
	}
}

func TestStart_SecondStartConflictsWhileRunIsLive(t *testing.T) {
	s := testPracticeService(t, &fakeAIClient{})
	userID := uuid.New()

	if _, err := s.Start(context.Background(), userID, uuid.New(), 5); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := s.Start(context.Background(), userID, uuid.New(), 5); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict while a run is live, got %v", err)
	}
}

func TestStart_EvictsFinishedUndebriefedRun(t *testing.T) {
	s := testPracticeService(t, &fakeAIClient{})
	userID := uuid.New()

	if _, err := s.Start(context.Background(), userID, uuid.New(), 1); err != nil {
		t.Fatalf("first start: %v", err)
	}
	run := s.runs[userID]
	if err := run.countdown.Start(); err != nil {
		t.Fatalf("start countdown: %v", err)
	}
	for i := 0; i < 60; i++ {
		run.countdown.Tick()
	}

	state, err := s.Start(context.Background(), userID, uuid.New(), 2)
	if err != nil {
		t.Fatalf("expected a finished run to be evicted, got %v", err)
	}
	if state.DurationSeconds != 120 {
		t.Fatalf("expected a fresh run, got duration %d", state.DurationSeconds)
	}
}

func TestStart_EvictsRunPastTTL(t *testing.T) {
	s := testPracticeService(t, &fakeAIClient{})
	userID := uuid.New()

	if _, err := s.Start(context.Background(), userID, uuid.New(), 5); err != nil {
		t.Fatalf("first start: %v", err)
	}
	s.runs[userID].startedAt = time.Now().Add(-practiceRunTTL - time.Hour)

	if _, err := s.Start(context.Background(), userID, uuid.New(), 5); err != nil {
		t.Fatalf("expected a stale run to be evicted, got %v", err)
	}
}

func TestSummarize_NoUserMessagesSkipsAI(t *testing.T) {
	ai := &fakeAIClient{}
	s := testPracticeService(t, ai)
	meditation := &types.Meditation{Title: "נשימה", Instructions: "שב ונשום"}
	turns := []types.ChatTurn{{Role: types.TurnRoleAssistant, Content: "איך היה?"}}

	summary, score := s.summarize(context.Background(), meditation, turns, "")
	if summary != debriefNoChatSummary {
		t.Fatalf("expected no-chat summary, got %q", summary)
	}
	if score != 0 {
		t.Fatalf("expected score 0, got %v", score)
	}
	if ai.invoked {
		t.Fatalf("AI should not be called without user messages")
	}
}

func TestSummarize_AIFailureYieldsErrorSummary(t *testing.T) {
	ai := &fakeAIClient{err: errors.New("upstream down")}
	s := testPracticeService(t, ai)
	meditation := &types.Meditation{Title: "נשימה", Instructions: "שב ונשום"}
	turns := []types.ChatTurn{
		{Role: types.TurnRoleAssistant, Content: "איך היה?"},
		{Role: types.TurnRoleUser, Content: "היה מרגיע מאוד"},
	}

	summary, score := s.summarize(context.Background(), meditation, turns, transcriptText(turns))
	if summary != debriefErrorSummary {
		t.Fatalf("expected error summary, got %q", summary)
	}
	if score != 0 {
		t.Fatalf("expected score 0, got %v", score)
	}
}

func TestSummarize_ReturnsModelSummaryAndScore(t *testing.T) {
	ai := &fakeAIClient{jsonObj: map[string]any{"summary": "תרגול עמוק ומחבר", "score": 8.5}}
	s := testPracticeService(t, ai)
	meditation := &types.Meditation{Title: "נשימה", Instructions: "שב ונשום"}
	turns := []types.ChatTurn{
		{Role: types.TurnRoleUser, Content: "הרגשתי שקט"},
	}

	summary, score := s.summarize(context.Background(), meditation, turns, transcriptText(turns))
	if summary != "תרגול עמוק ומחבר" {
		t.Fatalf("unexpected summary %q", summary)
	}
	if score != 8.5 {
		t.Fatalf("unexpected score %v", score)
	}
}

func TestSummarize_EmptyModelSummaryFallsBack(t *testing.T) {
	ai := &fakeAIClient{jsonObj: map[string]any{"summary": "", "score": 3.0}}
	s := testPracticeService(t, ai)
	meditation := &types.Meditation{Title: "נשימה", Instructions: "שב ונשום"}
	turns := []types.ChatTurn{{Role: types.TurnRoleUser, Content: "קצר"}}

	summary, score := s.summarize(context.Background(), meditation, turns, "")
	if summary != debriefErrorSummary || score != 0 {
		t.Fatalf("expected error summary and score 0, got %q/%v", summary, score)
	}
}

func TestTranscriptText_FormatsRolePrefixedLines(t *testing.T) {
	turns := []types.ChatTurn{
		{Role: types.TurnRoleAssistant, Content: "שלום"},
		{Role: types.TurnRoleUser, Content: "היי"},
	}
	got := transcriptText(turns)
	want := "assistant: שלום\nuser: היי"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
