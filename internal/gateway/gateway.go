package gateway

import (
	"context"
	"errors"
	"sync"

	"blinkchat/backend/internal/model"
)

// ErrNotFound is a gateway-specific sentinel error returned when a query for
// a single record finds nothing. The service layer translates it into a
// domain-level error, keeping business logic free of storage details.
var ErrNotFound = errors.New("gateway: not found")

// ConversationFields describes a targeted field update on a conversation
// record. Nil pointers leave the field untouched; whole-record replacement is
// deliberately not offered.
type ConversationFields struct {
	Title    *string
	Archived *bool
	// Touch bumps LastUpdated together with the field change.
	Touch bool
}

// MessageSubscription is a live push channel for one conversation. Every send
// on C is a full, freshly-ordered snapshot of the conversation's messages
// (created_at ascending, id as tiebreak), not a diff. C is closed when the
// subscription ends; a close without a prior Unsubscribe means the stream
// dropped.
type MessageSubscription struct {
	C <-chan []model.Message

	stop func()
	once sync.Once
}

// NewMessageSubscription wraps a snapshot channel and its teardown function.
// Exposed so alternative Gateway implementations can build subscriptions.
func NewMessageSubscription(c <-chan []model.Message, stop func()) *MessageSubscription {
	return &MessageSubscription{C: c, stop: stop}
}

// Unsubscribe tears down the push channel. Safe to call once per consumer;
// repeated calls are no-ops.
func (s *MessageSubscription) Unsubscribe() {
	s.once.Do(s.stop)
}

// ConversationSubscription is the owner-scoped counterpart: each push is the
// full list of the owner's conversations, most recently updated first.
type ConversationSubscription struct {
	C <-chan []*model.Conversation

	stop func()
	once sync.Once
}

func NewConversationSubscription(c <-chan []*model.Conversation, stop func()) *ConversationSubscription {
	return &ConversationSubscription{C: c, stop: stop}
}

func (s *ConversationSubscription) Unsubscribe() {
	s.once.Do(s.stop)
}

// Gateway is the document-store abstraction the engine runs on. Two record
// kinds exist: conversations, and messages scoped per conversation. Mutations
// are targeted field updates; the reaction set is maintained with atomic
// set-add/set-remove so concurrent toggles by different users never lose one
// another's update.
type Gateway interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)
	// ListConversations returns one archival bucket for an owner, most
	// recently updated first.
	ListConversations(ctx context.Context, ownerID string, archived bool) ([]*model.Conversation, error)
	// ListOwnerConversationIDs returns ids across both buckets, for bulk
	// operations.
	ListOwnerConversationIDs(ctx context.Context, ownerID string) ([]string, error)
	UpdateConversation(ctx context.Context, id string, fields ConversationFields) error
	// DeleteConversation removes the conversation, its messages, and their
	// reactions as one atomic batch.
	DeleteConversation(ctx context.Context, id string) error

	// AddMessage persists a message under its ConversationID, honoring the
	// client-assigned id and timestamp, and bumps the conversation's
	// LastUpdated in the same batch.
	AddMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	// ToggleReaction adds userID to the reaction set for kind if absent,
	// removes it otherwise.
	ToggleReaction(ctx context.Context, conversationID, messageID, kind, userID string) error

	SubscribeMessages(ctx context.Context, conversationID string) (*MessageSubscription, error)
	SubscribeConversations(ctx context.Context, ownerID string) (*ConversationSubscription, error)
}
