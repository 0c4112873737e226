package genai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "blinkchat/backend/internal/errors"
	"blinkchat/backend/internal/genai"
)

type recordedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Stream bool `json:"stream"`
}

func newOllamaStub(t *testing.T, handler func(w http.ResponseWriter, req recordedRequest)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req recordedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
	t.Cleanup(server.Close)
	return server
}

func chatReply(w http.ResponseWriter, content string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":   "test",
		"message": map[string]string{"role": "assistant", "content": content},
		"done":    true,
	})
}

func TestOllamaClient_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - persona context is appended to the system prompt", func(t *testing.T) {
		var got recordedRequest
		server := newOllamaStub(t, func(w http.ResponseWriter, req recordedRequest) {
			got = req
			chatReply(w, "  hi there  ")
		})
		completer, _ := genai.NewOllamaClient(server.URL, "main-model", "support-model")

		resp, err := completer.Complete(ctx, &genai.CompletionRequest{
			UserInput:      "hello",
			PersonaContext: "The user's name is Ada.",
		})
		require.NoError(t, err)
		assert.Equal(t, "hi there", resp.Text)

		assert.Equal(t, "main-model", got.Model)
		assert.False(t, got.Stream)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Contains(t, got.Messages[0].Content, "The user's name is Ada.")
		assert.Equal(t, "user", got.Messages[1].Role)
		assert.Equal(t, "hello", got.Messages[1].Content)
	})

	t.Run("Failure - empty model response", func(t *testing.T) {
		server := newOllamaStub(t, func(w http.ResponseWriter, req recordedRequest) {
			chatReply(w, "   ")
		})
		completer, _ := genai.NewOllamaClient(server.URL, "main-model", "support-model")

		_, err := completer.Complete(ctx, &genai.CompletionRequest{UserInput: "hello"})
		assert.ErrorIs(t, err, app_errors.ErrCompletion)
	})

	t.Run("Failure - non-200 status", func(t *testing.T) {
		server := newOllamaStub(t, func(w http.ResponseWriter, req recordedRequest) {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		})
		completer, _ := genai.NewOllamaClient(server.URL, "main-model", "support-model")

		_, err := completer.Complete(ctx, &genai.CompletionRequest{UserInput: "hello"})
		assert.ErrorIs(t, err, app_errors.ErrCompletion)
	})

	t.Run("Failure - server unreachable", func(t *testing.T) {
		completer, _ := genai.NewOllamaClient("http://127.0.0.1:1", "main-model", "support-model")

		_, err := completer.Complete(ctx, &genai.CompletionRequest{UserInput: "hello"})
		assert.ErrorIs(t, err, app_errors.ErrCompletion)
	})
}

func TestOllamaClient_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - uses the support model and cleans the title", func(t *testing.T) {
		var got recordedRequest
		server := newOllamaStub(t, func(w http.ResponseWriter, req recordedRequest) {
			got = req
			chatReply(w, `"A Very Long Generated Title Indeed"`)
		})
		_, summarizer := genai.NewOllamaClient(server.URL, "main-model", "support-model")

		title, err := summarizer.Summarize(ctx, "how do tides work?")
		require.NoError(t, err)
		assert.Equal(t, "A Very Long Generated", title)

		assert.Equal(t, "support-model", got.Model)
		require.Len(t, got.Messages, 1)
		assert.Contains(t, got.Messages[0].Content, "how do tides work?")
	})

	t.Run("Failure - title empty after cleaning", func(t *testing.T) {
		server := newOllamaStub(t, func(w http.ResponseWriter, req recordedRequest) {
			chatReply(w, `""`)
		})
		_, summarizer := genai.NewOllamaClient(server.URL, "main-model", "support-model")

		_, err := summarizer.Summarize(ctx, "hello")
		assert.ErrorIs(t, err, app_errors.ErrSummarization)
	})

	t.Run("Failure - request error", func(t *testing.T) {
		server := newOllamaStub(t, func(w http.ResponseWriter, req recordedRequest) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		})
		_, summarizer := genai.NewOllamaClient(server.URL, "main-model", "support-model")

		_, err := summarizer.Summarize(ctx, "hello")
		assert.ErrorIs(t, err, app_errors.ErrSummarization)
	})
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Tides Explained", "Tides Explained"},
		{"surrounding whitespace", "  Tides Explained \n", "Tides Explained"},
		{"straight quotes stripped", `"Tides Explained"`, "Tides Explained"},
		{"curly quotes stripped", "“Tides Explained”", "Tides Explained"},
		{"backticks and apostrophes stripped", "`Ocean's Tides`", "Oceans Tides"},
		{"clamped to four words", "One Two Three Four Five Six", "One Two Three Four"},
		{"only quotes", `"" '' `, ""},
		{"collapses internal runs of spaces", "A   B    C", "A B C"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, genai.CleanTitle(tc.raw))
		})
	}
}
