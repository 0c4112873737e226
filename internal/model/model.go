package model

import "time"

// Message roles. The engine only ever produces these two; the persistence
// layer enforces the same constraint.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation stores metadata about a persisted conversation.
// LastUpdated strictly increases on every message append or archive change.
type Conversation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	OwnerID     string    `json:"owner_id"`
	Archived    bool      `json:"archived"`
	LastUpdated time.Time `json:"last_updated"`
}

// Reactions maps a reaction kind to the set of user ids that applied it.
type Reactions map[string][]string

// Message stores a single message in a conversation. IDs are client-assigned
// for optimistic instances and stay stable once persisted, so the same id
// matches an optimistic entry to its pushed counterpart.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	Reactions      Reactions `json:"reactions,omitempty"`
	ReplyTo        *string   `json:"reply_to,omitempty"` // Weak reference; dangling ids simply fail to resolve.
}

// UserContext carries the identity and persona of the user driving a session.
// It is passed explicitly so the engine stays testable without any ambient
// auth context.
type UserContext struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Persona     string `json:"persona,omitempty"`
}
