package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// generatorTurnThreshold is the number of non-opening transcript turns
// (user + assistant) an interview must reach before the driver asks the
// model for the JSON payload. Three full exchanges.
const generatorTurnThreshold = 6

// GeneratedTrack is the payload shape a track-builder interview produces.
type GeneratedTrack struct {
	TrackName string            `json:"track_name"`
	Summary   string            `json:"summary"`
	Stages    []types.StageSpec `json:"stages"`
}

// GeneratedTrackUpdate is the payload shape a track-update interview produces.
type GeneratedTrackUpdate struct {
	TrackName     string            `json:"track_name"`
	UpdatedStages []types.StageSpec `json:"updated_stages"`
	UpdateSummary string            `json:"update_summary"`
}

// ChatService drives every persona conversation: it owns the transcript, the
// single-request-in-flight rule, and the interview state machine for the
// generator personas. An LLM transport failure never fails a turn; the
// assistant answers with a static apology and the session continues.
type ChatService interface {
	StartSession(ctx context.Context, userID uuid.UUID, persona string, pc PersonaContext) (*types.ChatSession, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.ChatSession, error)
	SendMessage(ctx context.Context, userID, sessionID uuid.UUID, text string) (*types.ChatSession, error)
	RequestChanges(ctx context.Context, userID, sessionID uuid.UUID) (*types.ChatSession, error)
}

type chatService struct {
	log      *logger.Logger
	sessions repos.ChatSessionRepo
	prompts  PromptService
	ai       AIClient

	mu       sync.Mutex
	inflight map[uuid.UUID]bool
}

func NewChatService(baseLog *logger.Logger, sessions repos.ChatSessionRepo, prompts PromptService, ai AIClient) ChatService {
	return &chatService{
		log:      baseLog.With("service", "ChatService"),
		sessions: sessions,
		prompts:  prompts,
		ai:       ai,
		inflight: make(map[uuid.UUID]bool),
	}
}

func validPersona(persona string) bool {
	switch persona {
	case types.PersonaReflection, types.PersonaDream,
		types.PersonaChavrutaSupport, types.PersonaChavrutaScholar,
		types.PersonaTrackBuilder, types.PersonaTrackUpdate,
		types.PersonaPracticeDebrief:
		return true
	}
	return false
}

func isGeneratorPersona(persona string) bool {
	return persona == types.PersonaTrackBuilder || persona == types.PersonaTrackUpdate
}

func (s *chatService) StartSession(ctx context.Context, userID uuid.UUID, persona string, pc PersonaContext) (*types.ChatSession, error) {
	if !validPersona(persona) {
		return nil, fmt.Errorf("%w: unknown persona %q", ErrValidation, persona)
	}

	opening, static := s.prompts.OpeningTurn(persona, pc)
	if !static {
		system := s.prompts.SystemPrompt(persona, pc)
		reply, err := s.ai.Invoke(ctx, system, []types.ChatTurn{{Role: types.TurnRoleUser, Content: opening}})
		if err != nil {
			s.log.Warn("opening turn generation failed", "persona", persona, "error", err.Error())
			reply = s.prompts.ApologyMessage(persona)
		}
		opening = reply
	}

	ctxJSON, err := json.Marshal(pc)
	if err != nil {
		return nil, fmt.Errorf("marshal persona context: %w", err)
	}

	session := &types.ChatSession{
		UserID:     userID,
		Persona:    persona,
		State:      types.ChatStateCollecting,
		Context:    datatypes.JSON(ctxJSON),
		Transcript: datatypes.NewJSONSlice([]types.ChatTurn{{Role: types.TurnRoleAssistant, Content: opening}}),
	}
	return s.sessions.Create(ctx, nil, session)
}

func (s *chatService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.ChatSession, error) {
	return s.ownedSession(ctx, userID, sessionID)
}

func (s *chatService) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.ChatSession, error) {
	session, err := s.sessions.GetByID(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: chat session %s", ErrNotFound, sessionID)
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("%w: chat session %s", ErrForbidden, sessionID)
	}
	return session, nil
}

func (s *chatService) acquire(sessionID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[sessionID] {
		return false
	}
	s.inflight[sessionID] = true
	return true
}

func (s *chatService) release(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

func (s *chatService) SendMessage(ctx context.Context, userID, sessionID uuid.UUID, text string) (*types.ChatSession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty message", ErrValidation)
	}

	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == types.ChatStateFinalized {
		return nil, fmt.Errorf("%w: session already finalized", ErrConflict)
	}

	if !s.acquire(sessionID) {
		return nil, ErrBusy
	}
	defer s.release(sessionID)

	var pc PersonaContext
	if len(session.Context) > 0 {
		if err := json.Unmarshal(session.Context, &pc); err != nil {
			return nil, fmt.Errorf("decode persona context: %w", err)
		}
	}

	transcript := append([]types.ChatTurn(session.Transcript), types.ChatTurn{Role: types.TurnRoleUser, Content: text})
	system := s.prompts.SystemPrompt(session.Persona, pc)

	generating := isGeneratorPersona(session.Persona) && len(transcript)-1 >= generatorTurnThreshold
	if generating {
		system = system + "\n\n" + s.prompts.GeneratorInstruction(session.Persona, pc)
	}

	reply, err := s.ai.Invoke(ctx, system, transcript)
	if err != nil {
		s.log.Warn("llm call failed, answering with apology",
			"session_id", sessionID, "persona", session.Persona, "error", err.Error())
		transcript = append(transcript, types.ChatTurn{Role: types.TurnRoleAssistant, Content: s.prompts.ApologyMessage(session.Persona)})
		session.Transcript = datatypes.NewJSONSlice(transcript)
		if saveErr := s.sessions.Save(ctx, nil, session); saveErr != nil {
			return nil, saveErr
		}
		return session, nil
	}

	if generating {
		payload, ok := s.tryParseGenerated(session.Persona, reply)
		if !ok {
			// one corrective re-prompt before giving up on this turn
			corrective := append(transcript,
				types.ChatTurn{Role: types.TurnRoleAssistant, Content: reply},
				types.ChatTurn{Role: types.TurnRoleUser, Content: s.prompts.CorrectiveInstruction()})
			if retry, retryErr := s.ai.Invoke(ctx, system, corrective); retryErr == nil {
				payload, ok = s.tryParseGenerated(session.Persona, retry)
			}
		}
		if ok {
			transcript = append(transcript, types.ChatTurn{Role: types.TurnRoleAssistant, Content: generatedConfirmation(session.Persona, payload)})
			session.Transcript = datatypes.NewJSONSlice(transcript)
			session.State = types.ChatStateGenerated
			session.Generated = datatypes.JSON(payload)
			if err := s.sessions.Save(ctx, nil, session); err != nil {
				return nil, err
			}
			return session, nil
		}
		transcript = append(transcript, types.ChatTurn{Role: types.TurnRoleAssistant, Content: s.prompts.FallbackMessage(session.Persona)})
		session.Transcript = datatypes.NewJSONSlice(transcript)
		if err := s.sessions.Save(ctx, nil, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	transcript = append(transcript, types.ChatTurn{Role: types.TurnRoleAssistant, Content: reply})
	session.Transcript = datatypes.NewJSONSlice(transcript)
	if err := s.sessions.Save(ctx, nil, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RequestChanges reopens a generated interview: the user rejected the
// proposed payload and wants to keep talking.
func (s *chatService) RequestChanges(ctx context.Context, userID, sessionID uuid.UUID) (*types.ChatSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != types.ChatStateGenerated {
		return nil, fmt.Errorf("%w: session is not in generated state", ErrConflict)
	}
	session.State = types.ChatStateCollecting
	session.Generated = nil
	if err := s.sessions.Save(ctx, nil, session); err != nil {
		return nil, err
	}
	return session, nil
}

// tryParseGenerated brace-scans the reply for a JSON object and validates it
// against the persona's payload contract. Returns the raw JSON on success.
func (s *chatService) tryParseGenerated(persona, reply string) ([]byte, bool) {
	raw, ok := extractJSONObject(reply)
	if !ok {
		return nil, false
	}
	switch persona {
	case types.PersonaTrackUpdate:
		var upd GeneratedTrackUpdate
		if err := json.Unmarshal([]byte(raw), &upd); err != nil {
			return nil, false
		}
		if upd.TrackName == "" || len(upd.UpdatedStages) == 0 {
			return nil, false
		}
	default:
		var track GeneratedTrack
		if err := json.Unmarshal([]byte(raw), &track); err != nil {
			return nil, false
		}
		if track.TrackName == "" || track.Summary == "" || len(track.Stages) == 0 {
			return nil, false
		}
	}
	return []byte(raw), true
}

// extractJSONObject scans for the first '{' and the last '}' and returns the
// slice between them. The model often wraps the object in prose.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func generatedConfirmation(persona string, payload []byte) string {
	switch persona {
	case types.PersonaTrackUpdate:
		var upd GeneratedTrackUpdate
		_ = json.Unmarshal(payload, &upd)
		return fmt.Sprintf("מצוין! 🎉\n\n%s\n\nאני מעדכן את המסלול שלך עכשיו...", upd.UpdateSummary)
	default:
		var track GeneratedTrack
		_ = json.Unmarshal(payload, &track)
		return fmt.Sprintf("מצוין! 🎉\n\n%s\n\nבניתי עבורך מסלול מותאם אישית בשם **%s**.\n\nאני אציג לך את השלבים בהמשך לאישור שלך.", track.Summary, track.TrackName)
	}
}
