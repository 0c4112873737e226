package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"blinkchat/backend/internal/gateway"
	"blinkchat/backend/internal/genai"
	"blinkchat/backend/internal/model"
	"blinkchat/backend/internal/service"
	"blinkchat/backend/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SessionHandler upgrades a connection into a live chat session: one
// ChatSession per socket. Commands come in as JSON messages; the visible
// message sequence is pushed out after every change.
type SessionHandler struct {
	gw            gateway.Gateway
	completer     genai.Completer
	conversations *service.ConversationService
}

func NewSessionHandler(gw gateway.Gateway, completer genai.Completer, conversations *service.ConversationService) *SessionHandler {
	return &SessionHandler{gw: gw, completer: completer, conversations: conversations}
}

type conversationFeedEvent struct {
	Type          string                `json:"type"` // "conversations", "error"
	Conversations []*model.Conversation `json:"conversations,omitempty"`
	Error         string                `json:"error,omitempty"`
}

type sessionCommand struct {
	Type      string `json:"type"` // "send", "set_reply", "clear_reply"
	Content   string `json:"content,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

type sessionEvent struct {
	Type     string              `json:"type"` // "messages", "sent", "error"
	Messages []model.Message     `json:"messages,omitempty"`
	Result   *session.SendResult `json:"result,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// HandleConversationFeed godoc
// @Summary Stream an owner's conversation list over a websocket
// @Param owner_id query string true "Owner id"
// @Router /conversations/ws [get]
func (h *SessionHandler) HandleConversationFeed(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		http.Error(w, "owner_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub, err := h.gw.SubscribeConversations(r.Context(), ownerID)
	if err != nil {
		_ = conn.WriteJSON(conversationFeedEvent{Type: "error", Error: err.Error()})
		return
	}
	defer sub.Unsubscribe()

	// The reader exists only to notice the client going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Unsubscribe()
				return
			}
		}
	}()

	// Every push is the full active conversation list, most recent first.
	for convs := range sub.C {
		if err := conn.WriteJSON(conversationFeedEvent{Type: "conversations", Conversations: convs}); err != nil {
			return
		}
	}
}

// HandleSession godoc
// @Summary Open a websocket chat session
// @Param owner_id query string true "Owner id"
// @Param display_name query string false "Display name for persona context"
// @Param persona query string false "Custom persona instructions"
// @Param conversation_id query string false "Existing conversation to bind; omit for an ephemeral session"
// @Router /chat/ws [get]
func (h *SessionHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	ownerID := query.Get("owner_id")
	if ownerID == "" {
		http.Error(w, "owner_id is required", http.StatusBadRequest)
		return
	}
	owner := model.UserContext{
		ID:          ownerID,
		DisplayName: query.Get("display_name"),
		Persona:     query.Get("persona"),
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// gorilla/websocket allows a single concurrent writer.
	var writeMu sync.Mutex
	writeEvent := func(ev sessionEvent) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(ev); err != nil {
			slog.Debug("Failed to write session event, client likely gone", "error", err)
		}
	}

	sess, err := session.New(r.Context(), session.Config{
		Gateway:        h.gw,
		Completer:      h.completer,
		Conversations:  h.conversations,
		Owner:          owner,
		ConversationID: query.Get("conversation_id"),
		OnMessagesChanged: func(msgs []model.Message) {
			writeEvent(sessionEvent{Type: "messages", Messages: msgs})
		},
		OnSubscriptionDrop: func(err error) {
			writeEvent(sessionEvent{Type: "error", Error: err.Error()})
		},
	})
	if err != nil {
		writeEvent(sessionEvent{Type: "error", Error: err.Error()})
		return
	}
	defer sess.Close()

	// Push the initial view so a rebinding client renders history at once.
	writeEvent(sessionEvent{Type: "messages", Messages: sess.Messages()})

	for {
		var cmd sessionCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		switch cmd.Type {
		case "send":
			// The session rejects re-entrant sends itself, so a second
			// command while one is in flight just yields an error event.
			go func(content string) {
				result, err := sess.SendMessage(r.Context(), content)
				if err != nil {
					writeEvent(sessionEvent{Type: "error", Error: err.Error()})
					return
				}
				writeEvent(sessionEvent{Type: "sent", Result: result})
			}(cmd.Content)
		case "set_reply":
			sess.SetReplyTarget(cmd.MessageID)
		case "clear_reply":
			sess.ClearReplyTarget()
		default:
			writeEvent(sessionEvent{Type: "error", Error: "unknown command type"})
		}
	}
}
