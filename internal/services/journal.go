package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// JournalService covers the personal journal and the dream journal. Dream
// entries can be sent for a one-shot symbolic interpretation which is cached
// on the entry.
type JournalService interface {
	List(ctx context.Context, userID uuid.UUID, kind string) ([]*types.JournalEntry, error)
	Create(ctx context.Context, userID uuid.UUID, kind, title, content string) (*types.JournalEntry, error)
	Update(ctx context.Context, userID, entryID uuid.UUID, title, content string) (*types.JournalEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	AnalyzeEntry(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error)
}

type journalService struct {
	log     *logger.Logger
	entries repos.JournalRepo
	prompts PromptService
	ai      AIClient
}

func NewJournalService(baseLog *logger.Logger, journalRepo repos.JournalRepo, prompts PromptService, ai AIClient) JournalService {
	return &journalService{
		log:     baseLog.With("service", "JournalService"),
		entries: journalRepo,
		prompts: prompts,
		ai:      ai,
	}
}

func validJournalKind(kind string) bool {
	return kind == types.JournalKindPersonal || kind == types.JournalKindDream
}

func (s *journalService) List(ctx context.Context, userID uuid.UUID, kind string) ([]*types.JournalEntry, error) {
	if !validJournalKind(kind) {
		return nil, fmt.Errorf("%w: unknown journal kind %q", ErrValidation, kind)
	}
	return s.entries.ListByUserAndKind(ctx, nil, userID, kind)
}

func (s *journalService) Create(ctx context.Context, userID uuid.UUID, kind, title, content string) (*types.JournalEntry, error) {
	if !validJournalKind(kind) {
		return nil, fmt.Errorf("%w: unknown journal kind %q", ErrValidation, kind)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content required", ErrValidation)
	}
	entry := &types.JournalEntry{
		UserID:  userID,
		Kind:    kind,
		Title:   title,
		Content: content,
	}
	return s.entries.Create(ctx, nil, entry)
}

func (s *journalService) ownedEntry(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error) {
	entry, err := s.entries.GetByID(ctx, nil, entryID)
	if err != nil {
		return nil, fmt.Errorf("%w: journal entry %s", ErrNotFound, entryID)
	}
	if entry.UserID != userID {
		return nil, fmt.Errorf("%w: journal entry %s", ErrForbidden, entryID)
	}
	return entry, nil
}

func (s *journalService) Update(ctx context.Context, userID, entryID uuid.UUID, title, content string) (*types.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content required", ErrValidation)
	}
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	entry.Title = title
	entry.Content = content
	// edited text invalidates the cached analysis
	entry.AIAnalysis = ""
	if err := s.entries.Save(ctx, nil, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete is idempotent.
func (s *journalService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.entries.Delete(ctx, nil, entry.ID)
}

// AnalyzeEntry runs the kind-appropriate single LLM call: symbolic dream
// interpretation for dream entries, reflective summary for personal ones.
func (s *journalService) AnalyzeEntry(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error) {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.AIAnalysis != "" {
		return entry, nil
	}

	var prompt string
	if entry.Kind == types.JournalKindDream {
		prompt = s.prompts.DreamInterpretation(entry.Title, entry.Content)
	} else {
		prompt = s.prompts.JournalAnalysis(entry.Content)
	}

	analysis, err := s.ai.Invoke(ctx, "", []types.ChatTurn{{Role: types.TurnRoleUser, Content: prompt}})
	if err != nil {
		return nil, fmt.Errorf("journal analysis: %w", err)
	}
	entry.AIAnalysis = analysis
	if err := s.entries.Save(ctx, nil, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
