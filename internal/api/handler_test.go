package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blinkchat/backend/internal/api"
	app_errors "blinkchat/backend/internal/errors"
	"blinkchat/backend/internal/interfaces/mocks"
	"blinkchat/backend/internal/model"
)

func setupConversationHandler(t *testing.T) (*api.ConversationHandler, *mocks.MockConversationService, *mocks.MockReactionService) {
	mockConvSvc := mocks.NewMockConversationService(t)
	mockReactionSvc := mocks.NewMockReactionService(t)
	handler := api.NewConversationHandler(mockConvSvc, mockReactionSvc)
	return handler, mockConvSvc, mockReactionSvc
}

// addChiURLParams simulates how the chi router injects URL parameters into
// the request context; the handlers read them with chi.URLParam.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestConversationHandler_ListConversations(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockConvSvc, _ := setupConversationHandler(t)
		expected := []*model.Conversation{{ID: "conv1", Title: "New Chat"}}
		mockConvSvc.On("List", mock.Anything, "user1", false).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?owner_id=user1", nil)
		rr := httptest.NewRecorder()
		handler.ListConversations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got []*model.Conversation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, expected, got)
	})

	t.Run("Success - archived bucket", func(t *testing.T) {
		handler, mockConvSvc, _ := setupConversationHandler(t)
		mockConvSvc.On("List", mock.Anything, "user1", true).Return([]*model.Conversation{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?owner_id=user1&archived=true", nil)
		rr := httptest.NewRecorder()
		handler.ListConversations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - bad archived flag", func(t *testing.T) {
		handler, _, _ := setupConversationHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?owner_id=user1&archived=banana", nil)
		rr := httptest.NewRecorder()
		handler.ListConversations(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - missing owner", func(t *testing.T) {
		handler, mockConvSvc, _ := setupConversationHandler(t)
		mockConvSvc.On("List", mock.Anything, "", false).
			Return(nil, app_errors.ErrValidation).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)
		rr := httptest.NewRecorder()
		handler.ListConversations(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestConversationHandler_CreateConversation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockConvSvc, _ := setupConversationHandler(t)
		conv := &model.Conversation{ID: "conv1", Title: "New Chat", OwnerID: "user1"}
		mockConvSvc.On("Create", mock.Anything, "user1").Return(conv, nil).Once()

		body := strings.NewReader(`{"owner_id":"user1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", body)
		rr := httptest.NewRecorder()
		handler.CreateConversation(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got model.Conversation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "conv1", got.ID)
		assert.Equal(t, "New Chat", got.Title)
	})

	t.Run("Failure - validation", func(t *testing.T) {
		handler, _, _ := setupConversationHandler(t)

		body := strings.NewReader(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", body)
		rr := httptest.NewRecorder()
		handler.CreateConversation(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - malformed JSON", func(t *testing.T) {
		handler, _, _ := setupConversationHandler(t)

		body := strings.NewReader(`{"owner_id":`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", body)
		rr := httptest.NewRecorder()
		handler.CreateConversation(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestConversationHandler_GetConversation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockConvSvc, _ := setupConversationHandler(t)
		conv := &model.Conversation{ID: "conv1"}
		mockConvSvc.On("Get", mock.Anything, "conv1").Return(conv, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/conv1", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": "conv1"})
		rr := httptest.NewRecorder()
		handler.GetConversation(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - not found maps to 404", func(t *testing.T) {
		handler, mockConvSvc, _ := setupConversationHandler(t)
		mockConvSvc.On("Get", mock.Anything, "missing").
			Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/missing", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": "missing"})
		rr := httptest.NewRecorder()
		handler.GetConversation(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestConversationHandler_SetArchived(t *testing.T) {
	handler, mockConvSvc, _ := setupConversationHandler(t)
	mockConvSvc.On("SetArchived", mock.Anything, "conv1", true).Return(nil).Once()

	body := strings.NewReader(`{"archived":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv1/archive", body)
	req = addChiURLParams(req, map[string]string{"conversationID": "conv1"})
	rr := httptest.NewRecorder()
	handler.SetArchived(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestConversationHandler_DeleteConversation(t *testing.T) {
	handler, mockConvSvc, _ := setupConversationHandler(t)
	mockConvSvc.On("Delete", mock.Anything, "conv1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/conversations/conv1", nil)
	req = addChiURLParams(req, map[string]string{"conversationID": "conv1"})
	rr := httptest.NewRecorder()
	handler.DeleteConversation(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestConversationHandler_DeleteAllConversations(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockConvSvc, _ := setupConversationHandler(t)
		mockConvSvc.On("DeleteAll", mock.Anything, "user1").Return(nil).Once()

		body := strings.NewReader(`{"owner_id":"user1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/delete-all", body)
		rr := httptest.NewRecorder()
		handler.DeleteAllConversations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - partial failure maps to 500", func(t *testing.T) {
		handler, mockConvSvc, _ := setupConversationHandler(t)
		mockConvSvc.On("DeleteAll", mock.Anything, "user1").
			Return(errors.New("deleted 2 of 3 conversations")).Once()

		body := strings.NewReader(`{"owner_id":"user1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/delete-all", body)
		rr := httptest.NewRecorder()
		handler.DeleteAllConversations(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestConversationHandler_RestoreAllConversations(t *testing.T) {
	handler, mockConvSvc, _ := setupConversationHandler(t)
	mockConvSvc.On("RestoreAll", mock.Anything, "user1").Return(nil).Once()

	body := strings.NewReader(`{"owner_id":"user1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/restore-all", body)
	rr := httptest.NewRecorder()
	handler.RestoreAllConversations(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestConversationHandler_ToggleReaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockReactionSvc := setupConversationHandler(t)
		mockReactionSvc.On("Toggle", mock.Anything, "conv1", "msg1", "heart", "user1").Return(nil).Once()

		body := strings.NewReader(`{"kind":"heart","user_id":"user1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv1/messages/msg1/reactions", body)
		req = addChiURLParams(req, map[string]string{"conversationID": "conv1", "messageID": "msg1"})
		rr := httptest.NewRecorder()
		handler.ToggleReaction(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - missing kind", func(t *testing.T) {
		handler, _, _ := setupConversationHandler(t)

		body := strings.NewReader(`{"user_id":"user1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv1/messages/msg1/reactions", body)
		req = addChiURLParams(req, map[string]string{"conversationID": "conv1", "messageID": "msg1"})
		rr := httptest.NewRecorder()
		handler.ToggleReaction(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - unknown message maps to 404", func(t *testing.T) {
		handler, _, mockReactionSvc := setupConversationHandler(t)
		mockReactionSvc.On("Toggle", mock.Anything, "conv1", "missing", "heart", "user1").
			Return(app_errors.ErrNotFound).Once()

		body := strings.NewReader(`{"kind":"heart","user_id":"user1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv1/messages/missing/reactions", body)
		req = addChiURLParams(req, map[string]string{"conversationID": "conv1", "messageID": "missing"})
		rr := httptest.NewRecorder()
		handler.ToggleReaction(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
