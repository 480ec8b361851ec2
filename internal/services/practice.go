package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/timer"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

const (
	debriefNoChatSummary  = "התרגול הסתיים. לא נוצר סיכום חוויה אוטומטי מכיוון שלא שותפה שיחה עם המאמן."
	debriefErrorSummary   = "התרגול הסתיים. אירעה שגיאה ביצירת סיכום AI."
	debriefSummarySchema  = "practice_debrief_summary"
	practiceTickerPeriod  = time.Second
	debriefOpeningTimeout = 30 * time.Second

	// A run abandoned this long ago no longer blocks a new practice.
	practiceRunTTL = 24 * time.Hour
)

// PracticeNotifier receives best-effort completion signals. Failures must
// never surface into the practice flow.
type PracticeNotifier interface {
	PracticeFinished(ctx context.Context, userID uuid.UUID, meditationTitle string)
}

// PracticeState is the wire view of an active practice run.
type PracticeState struct {
	MeditationID     uuid.UUID  `json:"meditation_id"`
	TimerState       string     `json:"timer_state"`
	RemainingSeconds int        `json:"remaining_seconds"`
	DurationSeconds  int        `json:"duration_seconds"`
	DebriefSessionID *uuid.UUID `json:"debrief_session_id,omitempty"`
}

// PracticeService runs the meditation practice flow: a server-side countdown
// per user, the debrief conversation once the timer ends (or the user ends
// early), and the saved session with its AI summary and score.
type PracticeService interface {
	Start(ctx context.Context, userID, meditationID uuid.UUID, minutes int) (*PracticeState, error)
	StartTimer(ctx context.Context, userID uuid.UUID) (*PracticeState, error)
	PauseTimer(ctx context.Context, userID uuid.UUID) (*PracticeState, error)
	ResetTimer(ctx context.Context, userID uuid.UUID) (*PracticeState, error)
	SetDuration(ctx context.Context, userID uuid.UUID, minutes int) (*PracticeState, error)
	State(ctx context.Context, userID uuid.UUID) (*PracticeState, error)
	EndEarly(ctx context.Context, userID uuid.UUID) (*types.ChatSession, error)
	SendDebriefMessage(ctx context.Context, userID uuid.UUID, text string) (*types.ChatSession, error)
	CompleteDebrief(ctx context.Context, userID uuid.UUID) (*types.PracticeSession, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]*types.PracticeSession, error)
}

type practiceRun struct {
	mu           sync.Mutex
	meditationID uuid.UUID
	countdown    *timer.Countdown
	sessionID    *uuid.UUID
	startedAt    time.Time
}

type practiceService struct {
	log          *logger.Logger
	meditations  repos.MeditationRepo
	sessions     repos.PracticeSessionRepo
	chat         ChatService
	chatSessions repos.ChatSessionRepo
	prompts      PromptService
	ai           AIClient
	trainingPath TrainingPathService
	notifier     PracticeNotifier
	now          func() time.Time

	mu   sync.Mutex
	runs map[uuid.UUID]*practiceRun
}

func NewPracticeService(
	baseLog *logger.Logger,
	meditationRepo repos.MeditationRepo,
	sessionRepo repos.PracticeSessionRepo,
	chat ChatService,
	chatSessionRepo repos.ChatSessionRepo,
	prompts PromptService,
	ai AIClient,
	trainingPath TrainingPathService,
	notifier PracticeNotifier,
) PracticeService {
	return &practiceService{
		log:          baseLog.With("service", "PracticeService"),
		meditations:  meditationRepo,
		sessions:     sessionRepo,
		chat:         chat,
		chatSessions: chatSessionRepo,
		prompts:      prompts,
		ai:           ai,
		trainingPath: trainingPath,
		notifier:     notifier,
		now:          time.Now,
		runs:         make(map[uuid.UUID]*practiceRun),
	}
}

func (s *practiceService) Start(ctx context.Context, userID, meditationID uuid.UUID, minutes int) (*PracticeState, error) {
	if _, err := s.meditations.GetByID(ctx, nil, meditationID); err != nil {
		return nil, fmt.Errorf("%w: meditation %s", ErrNotFound, meditationID)
	}
	countdown, err := timer.New(minutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.runs[userID]; ok {
		if !s.abandoned(existing) {
			return nil, fmt.Errorf("%w: a practice session is already active", ErrConflict)
		}
		s.log.Info("evicting abandoned practice run", "user_id", userID)
		delete(s.runs, userID)
	}
	run := &practiceRun{meditationID: meditationID, countdown: countdown, startedAt: s.now()}
	s.runs[userID] = run
	return snapshot(run), nil
}

// abandoned reports whether a run may be evicted to make room for a new
// one: its timer finished but the debrief was never completed, or it has
// sat idle past the TTL.
func (s *practiceService) abandoned(run *practiceRun) bool {
	run.mu.Lock()
	defer run.mu.Unlock()
	if run.countdown.State() == timer.StateFinished {
		return true
	}
	return s.now().Sub(run.startedAt) > practiceRunTTL
}

func (s *practiceService) run(userID uuid.UUID) (*practiceRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[userID]
	if !ok {
		return nil, fmt.Errorf("%w: no active practice session", ErrNotFound)
	}
	return run, nil
}

func snapshot(run *practiceRun) *PracticeState {
	return &PracticeState{
		MeditationID:     run.meditationID,
		TimerState:       string(run.countdown.State()),
		RemainingSeconds: run.countdown.Remaining(),
		DurationSeconds:  run.countdown.Duration(),
		DebriefSessionID: run.sessionID,
	}
}

func (s *practiceService) StartTimer(ctx context.Context, userID uuid.UUID) (*PracticeState, error) {
	run, err := s.run(userID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	if err := run.countdown.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	go s.tickUntilDone(userID, run)
	return snapshot(run), nil
}

// tickUntilDone drives the countdown one second at a time and exits as soon
// as the timer leaves the running state. The finish path runs with its own
// context; the originating request is long gone by then.
func (s *practiceService) tickUntilDone(userID uuid.UUID, run *practiceRun) {
	t := time.NewTicker(practiceTickerPeriod)
	defer t.Stop()
	for range t.C {
		run.mu.Lock()
		if run.countdown.State() != timer.StateRunning {
			run.mu.Unlock()
			return
		}
		finished := run.countdown.Tick()
		run.mu.Unlock()
		if finished {
			s.onTimerFinished(userID, run)
			return
		}
	}
}

func (s *practiceService) onTimerFinished(userID uuid.UUID, run *practiceRun) {
	ctx, cancel := context.WithTimeout(context.Background(), debriefOpeningTimeout)
	defer cancel()

	if _, err := s.openDebrief(ctx, userID, run, true); err != nil {
		s.log.Error("failed to open debrief after timer finish", "user_id", userID, "error", err.Error())
	}

	meditation, err := s.meditations.GetByID(ctx, nil, run.meditationID)
	if err != nil {
		s.log.Warn("meditation lookup failed for finish notification", "error", err.Error())
		return
	}
	s.notifier.PracticeFinished(ctx, userID, meditation.Title)
}

func (s *practiceService) openDebrief(ctx context.Context, userID uuid.UUID, run *practiceRun, naturalFinish bool) (*types.ChatSession, error) {
	run.mu.Lock()
	if run.sessionID != nil {
		id := *run.sessionID
		run.mu.Unlock()
		return s.chat.GetSession(ctx, userID, id)
	}
	run.mu.Unlock()

	meditation, err := s.meditations.GetByID(ctx, nil, run.meditationID)
	if err != nil {
		return nil, fmt.Errorf("%w: meditation %s", ErrNotFound, run.meditationID)
	}
	session, err := s.chat.StartSession(ctx, userID, types.PersonaPracticeDebrief, PersonaContext{
		MeditationTitle:        meditation.Title,
		MeditationInstructions: meditation.Instructions,
		NaturalFinish:          naturalFinish,
	})
	if err != nil {
		return nil, err
	}

	run.mu.Lock()
	run.sessionID = &session.ID
	run.mu.Unlock()
	return session, nil
}

func (s *practiceService) PauseTimer(ctx context.Context, userID uuid.UUID) (*PracticeState, error) {
	run, err := s.run(userID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	if err := run.countdown.Pause(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return snapshot(run), nil
}

func (s *practiceService) ResetTimer(ctx context.Context, userID uuid.UUID) (*PracticeState, error) {
	run, err := s.run(userID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	run.countdown.Reset()
	return snapshot(run), nil
}

func (s *practiceService) SetDuration(ctx context.Context, userID uuid.UUID, minutes int) (*PracticeState, error) {
	run, err := s.run(userID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	if err := run.countdown.SetDuration(minutes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return snapshot(run), nil
}

func (s *practiceService) State(ctx context.Context, userID uuid.UUID) (*PracticeState, error) {
	run, err := s.run(userID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return snapshot(run), nil
}

// EndEarly abandons the countdown and moves straight to the debrief with the
// early-finish greeting.
func (s *practiceService) EndEarly(ctx context.Context, userID uuid.UUID) (*types.ChatSession, error) {
	run, err := s.run(userID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	if run.countdown.State() == timer.StateRunning {
		_ = run.countdown.Pause()
	}
	run.mu.Unlock()
	return s.openDebrief(ctx, userID, run, false)
}

func (s *practiceService) SendDebriefMessage(ctx context.Context, userID uuid.UUID, text string) (*types.ChatSession, error) {
	run, err := s.run(userID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	sessionID := run.sessionID
	run.mu.Unlock()
	if sessionID == nil {
		return nil, fmt.Errorf("%w: the debrief has not started", ErrConflict)
	}
	return s.chat.SendMessage(ctx, userID, *sessionID, text)
}

// CompleteDebrief closes the practice: summary and score from the model when
// the user actually talked, canned fallbacks otherwise, then the session
// record, the completion log, and the cursor.
func (s *practiceService) CompleteDebrief(ctx context.Context, userID uuid.UUID) (*types.PracticeSession, error) {
	run, err := s.run(userID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	sessionID := run.sessionID
	meditationID := run.meditationID
	run.mu.Unlock()
	if sessionID == nil {
		return nil, fmt.Errorf("%w: the debrief has not started", ErrConflict)
	}

	chatSession, err := s.chat.GetSession(ctx, userID, *sessionID)
	if err != nil {
		return nil, err
	}
	meditation, err := s.meditations.GetByID(ctx, nil, meditationID)
	if err != nil {
		return nil, fmt.Errorf("%w: meditation %s", ErrNotFound, meditationID)
	}

	transcript := transcriptText([]types.ChatTurn(chatSession.Transcript))
	summary, score := s.summarize(ctx, meditation, []types.ChatTurn(chatSession.Transcript), transcript)

	record := &types.PracticeSession{
		UserID:         userID,
		MeditationID:   meditationID,
		SessionDate:    s.now(),
		ChatTranscript: transcript,
		AISummary:      summary,
		AIScore:        score,
	}
	if _, err := s.sessions.Create(ctx, nil, record); err != nil {
		return nil, err
	}

	if _, err := s.trainingPath.CompleteMeditation(ctx, userID, meditationID); err != nil {
		return nil, err
	}

	chatSession.State = types.ChatStateFinalized
	if err := s.chatSessions.Save(ctx, nil, chatSession); err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.runs, userID)
	s.mu.Unlock()
	return record, nil
}

func (s *practiceService) summarize(ctx context.Context, meditation *types.Meditation, turns []types.ChatTurn, transcript string) (string, float64) {
	userMessages := 0
	for _, t := range turns {
		if t.Role == types.TurnRoleUser {
			userMessages++
		}
	}
	if userMessages == 0 {
		return debriefNoChatSummary, 0
	}

	prompt := s.prompts.DebriefSummary(meditation.Title, meditation.Instructions, transcript)
	obj, err := s.ai.InvokeJSON(ctx, "", []types.ChatTurn{{Role: types.TurnRoleUser, Content: prompt}},
		debriefSummarySchema, map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{"type": "string"},
				"score":   map[string]any{"type": "number"},
			},
			"required":             []string{"summary", "score"},
			"additionalProperties": false,
		})
	if err != nil {
		s.log.Warn("debrief summary generation failed", "error", err.Error())
		return debriefErrorSummary, 0
	}

	summary, _ := obj["summary"].(string)
	score, _ := obj["score"].(float64)
	if summary == "" {
		return debriefErrorSummary, 0
	}
	return summary, score
}

func (s *practiceService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*types.PracticeSession, error) {
	return s.sessions.ListByUser(ctx, nil, userID)
}

func transcriptText(turns []types.ChatTurn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role, t.Content))
	}
	return strings.Join(lines, "\n")
}
