package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "blinkchat/backend/internal/errors"
	"blinkchat/backend/internal/gateway"
	"blinkchat/backend/internal/genai"
	"blinkchat/backend/internal/model"
	"blinkchat/backend/internal/service"
)

// Config wires a Session to its collaborators. ConversationID may be empty,
// which starts an ephemeral session: no durable record exists until the
// first exchange promotes it into a persisted conversation.
type Config struct {
	Gateway        gateway.Gateway
	Completer      genai.Completer
	Conversations  *service.ConversationService
	Owner          model.UserContext
	ConversationID string

	// OnMessagesChanged receives the visible message sequence after every
	// change: optimistic appends, rollbacks, and authoritative pushes.
	OnMessagesChanged func([]model.Message)
	// OnSubscriptionDrop is invoked with ErrSubscription when the live push
	// channel ends unexpectedly.
	OnSubscriptionDrop func(error)
}

// SendResult reports the outcome of one completed exchange. Promoted is set
// when this send turned an ephemeral session into a persisted conversation;
// the caller updates navigation and identity, the session does not.
type SendResult struct {
	UserMessage      model.Message `json:"user_message"`
	AssistantMessage model.Message `json:"assistant_message"`
	ConversationID   string        `json:"conversation_id"`
	Promoted         bool          `json:"promoted"`
}

// Session binds one active conversation (or an ephemeral, unsaved session)
// to user input and drives the optimistic-update/reconciliation cycle.
//
// The visible message sequence is the last pushed snapshot plus an
// optimistic buffer of entries not yet confirmed. Reconciliation matches
// buffer entries to pushed ones by correlation id only; content equality is
// never consulted, since two messages may share identical text.
//
// At most one exchange is in flight at a time. A push may arrive at any
// moment, including mid-exchange; both paths serialize on the same mutex.
type Session struct {
	gw            gateway.Gateway
	completer     genai.Completer
	conversations *service.ConversationService
	owner         model.UserContext
	channel       *MessageChannel
	onChange      func([]model.Message)
	onDrop        func(error)

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	conversationID string // empty while ephemeral
	sending        bool
	replyTo        string
	snapshot       []model.Message // authoritative pushed view
	pending        []model.Message // optimistic buffer, provisional
}

// New creates a session. With a ConversationID it opens the live push
// channel immediately; without one the session is ephemeral and the channel
// opens on promotion. Starting a fresh ephemeral session is a new Session
// value, so any reply selection or unconfirmed state of a previous session
// is discarded.
func New(ctx context.Context, cfg Config) (*Session, error) {
	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		gw:             cfg.Gateway,
		completer:      cfg.Completer,
		conversations:  cfg.Conversations,
		owner:          cfg.Owner,
		channel:        NewMessageChannel(cfg.Gateway),
		onChange:       cfg.OnMessagesChanged,
		onDrop:         cfg.OnSubscriptionDrop,
		ctx:            sctx,
		cancel:         cancel,
		conversationID: cfg.ConversationID,
	}
	if cfg.ConversationID != "" {
		if err := s.channel.Switch(sctx, cfg.ConversationID, s.applySnapshot, s.onDrop); err != nil {
			cancel()
			return nil, err
		}
	}
	return s, nil
}

// SendMessage runs one exchange: the user's message is appended to the
// visible sequence before any network round trip, the completion service is
// called, and for persisted sessions both messages are written user-first.
// Any failure unwinds the optimistic entries so the visible sequence is
// exactly what it was before the call, with one documented exception: a user
// write that became durable before a later failure is not deleted.
func (s *Session) SendMessage(ctx context.Context, input string) (*SendResult, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, app_errors.ErrEmptyInput
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return nil, app_errors.ErrExchangeInFlight
	}
	s.sending = true
	replyTo := s.replyTo
	s.replyTo = ""
	wasEphemeral := s.conversationID == ""

	userMsg := model.Message{
		ID:             uuid.NewString(),
		ConversationID: s.conversationID,
		Role:           model.RoleUser,
		Content:        trimmed,
		CreatedAt:      time.Now().UTC(),
	}
	if replyTo != "" {
		userMsg.ReplyTo = &replyTo
	}
	s.pending = append(s.pending, userMsg)
	s.mu.Unlock()
	s.notifyChange()

	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	// First message of an ephemeral session promotes it into a persisted
	// conversation. One-way: the session is bound to this id from here on.
	promoted := false
	if wasEphemeral {
		conv, err := s.conversations.Create(ctx, s.owner.ID)
		if err != nil {
			s.rollback(userMsg.ID)
			return nil, err
		}
		promoted = true
		userMsg.ConversationID = conv.ID

		s.mu.Lock()
		s.conversationID = conv.ID
		if n := len(s.pending); n > 0 && s.pending[n-1].ID == userMsg.ID {
			s.pending[n-1].ConversationID = conv.ID
		}
		s.mu.Unlock()

		if err := s.channel.Switch(s.ctx, conv.ID, s.applySnapshot, s.onDrop); err != nil {
			// The writes below still land; only live pushes are missing.
			slog.Warn("Could not open push channel after promotion", "conversation_id", conv.ID, "error", err)
		}
	}

	resp, err := s.completer.Complete(ctx, &genai.CompletionRequest{
		UserInput:      trimmed,
		PersonaContext: s.personaContext(),
	})
	if err != nil {
		s.rollback(userMsg.ID)
		if !errors.Is(err, app_errors.ErrCompletion) {
			err = fmt.Errorf("%w: %v", app_errors.ErrCompletion, err)
		}
		return nil, err
	}

	convID := s.ConversationID()
	assistantMsg := model.Message{
		ID:             uuid.NewString(),
		ConversationID: convID,
		Role:           model.RoleAssistant,
		Content:        resp.Text,
		CreatedAt:      time.Now().UTC(),
	}
	s.mu.Lock()
	s.pending = append(s.pending, assistantMsg)
	s.mu.Unlock()
	s.notifyChange()

	// User message first, assistant second, as two separate writes.
	if err := s.gw.AddMessage(ctx, &userMsg); err != nil {
		s.rollback(userMsg.ID, assistantMsg.ID)
		return nil, fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
	}
	if err := s.gw.AddMessage(ctx, &assistantMsg); err != nil {
		// The user write above is already durable and is not deleted here;
		// the visible sequence still unwinds both optimistic entries.
		s.rollback(userMsg.ID, assistantMsg.ID)
		return nil, fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
	}

	if promoted {
		go s.conversations.SummarizeTitle(context.Background(), convID, trimmed)
	}

	return &SendResult{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		ConversationID:   convID,
		Promoted:         promoted,
	}, nil
}

// SetReplyTarget selects the message the next submission replies to. The
// reference is weak: a target deleted before sending simply dangles.
func (s *Session) SetReplyTarget(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replyTo = messageID
}

func (s *Session) ClearReplyTarget() {
	s.SetReplyTarget("")
}

// Messages returns a copy of the visible message sequence: the last
// authoritative snapshot followed by unconfirmed optimistic entries.
func (s *Session) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

// ConversationID returns the bound conversation id, or "" while ephemeral.
func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// Ephemeral reports whether the session still has no durable record.
func (s *Session) Ephemeral() bool {
	return s.ConversationID() == ""
}

// Close cancels any in-flight work and tears down the push channel. The
// session must not be used afterwards.
func (s *Session) Close() {
	s.cancel()
	s.channel.Close()
}

// applySnapshot installs an authoritative pushed view and reconciles the
// optimistic buffer against it: entries whose correlation id now appears in
// the snapshot are confirmed and dropped from the buffer.
func (s *Session) applySnapshot(snapshot []model.Message) {
	s.mu.Lock()
	s.snapshot = snapshot
	confirmed := make(map[string]struct{}, len(snapshot))
	for _, msg := range snapshot {
		confirmed[msg.ID] = struct{}{}
	}
	kept := s.pending[:0]
	for _, msg := range s.pending {
		if _, ok := confirmed[msg.ID]; !ok {
			kept = append(kept, msg)
		}
	}
	s.pending = kept
	visible := s.visibleLocked()
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(visible)
	}
}

func (s *Session) rollback(ids ...string) {
	s.mu.Lock()
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.pending[:0]
	for _, msg := range s.pending {
		if _, ok := drop[msg.ID]; !ok {
			kept = append(kept, msg)
		}
	}
	s.pending = kept
	s.mu.Unlock()
	s.notifyChange()
}

func (s *Session) notifyChange() {
	s.mu.Lock()
	visible := s.visibleLocked()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(visible)
	}
}

func (s *Session) visibleLocked() []model.Message {
	out := make([]model.Message, 0, len(s.snapshot)+len(s.pending))
	out = append(out, s.snapshot...)
	out = append(out, s.pending...)
	return out
}

func (s *Session) personaContext() string {
	pc := fmt.Sprintf("The user's name is %s.", s.owner.DisplayName)
	if s.owner.Persona != "" {
		pc += "\nCustom Persona Instructions:\n" + s.owner.Persona
	}
	return pc
}
