package interfaces

import (
	"context"

	"blinkchat/backend/internal/model"
)

// This file defines the contracts the API layer consumes. Handlers depend on
// these interfaces instead of concrete services, which keeps the layers
// decoupled and lets tests substitute mocks.

// ConversationService defines the conversation lifecycle operations.
type ConversationService interface {
	List(ctx context.Context, ownerID string, archived bool) ([]*model.Conversation, error)
	Get(ctx context.Context, id string) (*model.Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]model.Message, error)
	Create(ctx context.Context, ownerID string) (*model.Conversation, error)
	SetArchived(ctx context.Context, id string, archived bool) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, ownerID string) error
	RestoreAll(ctx context.Context, ownerID string) error
	SummarizeTitle(ctx context.Context, conversationID, seedText string)
}

// ReactionService defines the per-message reaction toggle.
type ReactionService interface {
	Toggle(ctx context.Context, conversationID, messageID, kind, userID string) error
}
