package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "blinkchat/backend/internal/errors"
	"blinkchat/backend/internal/gateway"
	"blinkchat/backend/internal/genai"
	"blinkchat/backend/internal/model"
)

// ConversationService owns the lifecycle of conversation records:
// create/list/archive/delete plus the title summarization side effect.
type ConversationService struct {
	gw           gateway.Gateway
	summarizer   genai.Summarizer
	defaultTitle string
}

func NewConversationService(gw gateway.Gateway, summarizer genai.Summarizer, defaultTitle string) *ConversationService {
	if defaultTitle == "" {
		defaultTitle = "New Chat"
	}
	return &ConversationService{gw: gw, summarizer: summarizer, defaultTitle: defaultTitle}
}

// List returns one archival bucket for an owner, most recently updated first.
func (s *ConversationService) List(ctx context.Context, ownerID string, archived bool) ([]*model.Conversation, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", app_errors.ErrValidation)
	}
	convs, err := s.gw.ListConversations(ctx, ownerID, archived)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
	}
	return convs, nil
}

// Create starts a new conversation with the default title and returns it
// synchronously so the caller can navigate to it immediately.
func (s *ConversationService) Create(ctx context.Context, ownerID string) (*model.Conversation, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", app_errors.ErrValidation)
	}
	conv := &model.Conversation{
		ID:          uuid.NewString(),
		Title:       s.defaultTitle,
		OwnerID:     ownerID,
		Archived:    false,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.gw.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
	}
	return conv, nil
}

// Get returns a single conversation record.
func (s *ConversationService) Get(ctx context.Context, id string) (*model.Conversation, error) {
	conv, err := s.gw.GetConversation(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return conv, nil
}

// Messages returns the full ordered message sequence of a conversation, for
// the initial load before the push channel takes over.
func (s *ConversationService) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	msgs, err := s.gw.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
	}
	return msgs, nil
}

// SetArchived flips the archive flag and bumps LastUpdated, moving the
// conversation between the active and archived buckets.
func (s *ConversationService) SetArchived(ctx context.Context, id string, archived bool) error {
	err := s.gw.UpdateConversation(ctx, id, gateway.ConversationFields{Archived: &archived, Touch: true})
	if err != nil {
		return s.translate(err)
	}
	return nil
}

// Delete removes a conversation and every message under it as one atomic
// batch; no observer ever sees the conversation gone while messages remain.
func (s *ConversationService) Delete(ctx context.Context, id string) error {
	slog.Info("Deleting conversation", "conversation_id", id)
	if err := s.gw.DeleteConversation(ctx, id); err != nil {
		return s.translate(err)
	}
	return nil
}

// DeleteAll removes every conversation an owner has, archived or not. It is
// best-effort rather than transactional across the set: a partial failure
// leaves the remaining conversations untouched and the call can simply be
// re-issued.
func (s *ConversationService) DeleteAll(ctx context.Context, ownerID string) error {
	ids, err := s.gw.ListOwnerConversationIDs(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
	}
	var errs []error
	for _, id := range ids {
		if err := s.gw.DeleteConversation(ctx, id); err != nil && !errors.Is(err, gateway.ErrNotFound) {
			errs = append(errs, fmt.Errorf("conversation %s: %v", id, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: deleted %d of %d conversations: %v",
			app_errors.ErrPersistence, len(ids)-len(errs), len(ids), errors.Join(errs...))
	}
	return nil
}

// RestoreAll moves every archived conversation of an owner back to the
// active bucket. Best-effort, same contract as DeleteAll.
func (s *ConversationService) RestoreAll(ctx context.Context, ownerID string) error {
	convs, err := s.gw.ListConversations(ctx, ownerID, true)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
	}
	var errs []error
	for _, conv := range convs {
		if err := s.SetArchived(ctx, conv.ID, false); err != nil && !errors.Is(err, app_errors.ErrNotFound) {
			errs = append(errs, fmt.Errorf("conversation %s: %v", conv.ID, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: restored %d of %d conversations: %v",
			app_errors.ErrPersistence, len(convs)-len(errs), len(convs), errors.Join(errs...))
	}
	return nil
}

// SummarizeTitle asks the summarization service for a title seeded with the
// first user input and rewrites the conversation title on success. Any
// failure is logged and swallowed; the previous title stays. Callers run
// this in the background so it never delays or fails a message send.
func (s *ConversationService) SummarizeTitle(ctx context.Context, conversationID, seedText string) {
	title, err := s.summarizer.Summarize(ctx, seedText)
	if err != nil {
		slog.Warn("Failed to summarize conversation title, keeping previous title",
			"conversation_id", conversationID, "error", err)
		return
	}
	if err := s.gw.UpdateConversation(ctx, conversationID, gateway.ConversationFields{Title: &title}); err != nil {
		slog.Warn("Failed to save summarized title", "conversation_id", conversationID, "error", err)
		return
	}
	slog.Info("Updated conversation title", "conversation_id", conversationID, "title", title)
}

func (s *ConversationService) translate(err error) error {
	if errors.Is(err, gateway.ErrNotFound) {
		return fmt.Errorf("%w: conversation", app_errors.ErrNotFound)
	}
	return fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
}
