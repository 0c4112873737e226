package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "blinkchat/backend/internal/errors"
	"blinkchat/backend/internal/interfaces"
)

// ConversationHandler exposes the conversation lifecycle and reaction
// operations consumed by the view layer.
type ConversationHandler struct {
	conversations interfaces.ConversationService
	reactions     interfaces.ReactionService
}

func NewConversationHandler(conversations interfaces.ConversationService, reactions interfaces.ReactionService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, reactions: reactions}
}

// CreateConversationRequest is the DTO for starting a new conversation.
type CreateConversationRequest struct {
	OwnerID string `json:"owner_id" validate:"required" example:"user-42"`
}

// OwnerRequest is the DTO for owner-scoped bulk operations.
type OwnerRequest struct {
	OwnerID string `json:"owner_id" validate:"required" example:"user-42"`
}

// ArchiveRequest is the DTO for flipping the archive flag.
type ArchiveRequest struct {
	Archived bool `json:"archived"`
}

// ToggleReactionRequest is the DTO for reacting to a message.
type ToggleReactionRequest struct {
	Kind   string `json:"kind" validate:"required,max=32" example:"heart"`
	UserID string `json:"user_id" validate:"required" example:"user-42"`
}

// ListConversations godoc
// @Summary List conversations for an owner
// @Param owner_id query string true "Owner id"
// @Param archived query bool false "Archived bucket"
// @Success 200 {array} model.Conversation
// @Router /conversations [get]
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	archived := false
	if raw := r.URL.Query().Get("archived"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, fmt.Errorf("%w: archived must be a boolean", app_errors.ErrValidation))
			return
		}
		archived = parsed
	}

	convs, err := h.conversations.List(r.Context(), ownerID, archived)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, convs)
}

// CreateConversation godoc
// @Summary Start a new conversation with the default title
// @Param request body CreateConversationRequest true "Owner"
// @Success 201 {object} model.Conversation
// @Router /conversations [post]
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	conv, err := h.conversations.Create(r.Context(), req.OwnerID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conv)
}

// GetConversation godoc
// @Summary Get a conversation record
// @Param conversationID path string true "Conversation id"
// @Success 200 {object} model.Conversation
// @Router /conversations/{conversationID} [get]
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.conversations.Get(r.Context(), chi.URLParam(r, "conversationID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// ListMessages godoc
// @Summary List a conversation's messages in order
// @Param conversationID path string true "Conversation id"
// @Success 200 {array} model.Message
// @Router /conversations/{conversationID}/messages [get]
func (h *ConversationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.conversations.Messages(r.Context(), chi.URLParam(r, "conversationID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, msgs)
}

// SetArchived godoc
// @Summary Archive or restore a conversation
// @Param conversationID path string true "Conversation id"
// @Param request body ArchiveRequest true "Target state"
// @Success 200 {object} StatusResponse
// @Router /conversations/{conversationID}/archive [post]
func (h *ConversationHandler) SetArchived(w http.ResponseWriter, r *http.Request) {
	var req ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}

	if err := h.conversations.SetArchived(r.Context(), chi.URLParam(r, "conversationID"), req.Archived); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// DeleteConversation godoc
// @Summary Delete a conversation and all its messages
// @Param conversationID path string true "Conversation id"
// @Success 200 {object} StatusResponse
// @Router /conversations/{conversationID} [delete]
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.conversations.Delete(r.Context(), chi.URLParam(r, "conversationID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// DeleteAllConversations godoc
// @Summary Delete every conversation an owner has (best-effort)
// @Param request body OwnerRequest true "Owner"
// @Success 200 {object} StatusResponse
// @Router /conversations/delete-all [post]
func (h *ConversationHandler) DeleteAllConversations(w http.ResponseWriter, r *http.Request) {
	var req OwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.conversations.DeleteAll(r.Context(), req.OwnerID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// RestoreAllConversations godoc
// @Summary Restore every archived conversation of an owner (best-effort)
// @Param request body OwnerRequest true "Owner"
// @Success 200 {object} StatusResponse
// @Router /conversations/restore-all [post]
func (h *ConversationHandler) RestoreAllConversations(w http.ResponseWriter, r *http.Request) {
	var req OwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.conversations.RestoreAll(r.Context(), req.OwnerID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ToggleReaction godoc
// @Summary Toggle a user's reaction on a message
// @Param conversationID path string true "Conversation id"
// @Param messageID path string true "Message id"
// @Param request body ToggleReactionRequest true "Reaction"
// @Success 200 {object} StatusResponse
// @Router /conversations/{conversationID}/messages/{messageID}/reactions [post]
func (h *ConversationHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	var req ToggleReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	err := h.reactions.Toggle(
		r.Context(),
		chi.URLParam(r, "conversationID"),
		chi.URLParam(r, "messageID"),
		req.Kind,
		req.UserID,
	)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
