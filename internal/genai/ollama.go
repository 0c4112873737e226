package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	app_errors "blinkchat/backend/internal/errors"
)

const systemPrompt = "You are BlinkAi, a friendly and helpful AI assistant. " +
	"Your personality is witty and approachable. Explain things clearly and simply, " +
	"like you're talking to a friend. Avoid complex jargon. Be conversational and light-hearted. " +
	"When you generate code blocks, always include the language identifier like ```js."

const summarizePrompt = "Create a short, concise title (4 words maximum) for the following conversation. " +
	"The title should capture the main topic of the conversation. Do not use quotes in the title.\n\nConversation:\n%s\n"

type ollamaClient struct {
	client       *http.Client
	url          string
	mainModel    string
	supportModel string
}

// NewOllamaClient returns an Ollama-backed Completer and Summarizer.
// mainModel serves completions; supportModel serves title summarization.
func NewOllamaClient(url, mainModel, supportModel string) (Completer, Summarizer) {
	c := &ollamaClient{
		client:       &http.Client{},
		url:          url,
		mainModel:    mainModel,
		supportModel: supportModel,
	}
	return c, c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

func (c *ollamaClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	system := systemPrompt
	if req.PersonaContext != "" {
		system += "\n\nHere's some context about the user and custom instructions for your persona. Follow them closely:\n" + req.PersonaContext
	}
	messages := []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: req.UserInput},
	}

	resp, err := c.chat(ctx, c.mainModel, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrCompletion, err)
	}
	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		return nil, fmt.Errorf("%w: model returned an empty response", app_errors.ErrCompletion)
	}
	return &CompletionResponse{Text: text}, nil
}

func (c *ollamaClient) Summarize(ctx context.Context, conversationText string) (string, error) {
	messages := []chatMessage{
		{Role: "user", Content: fmt.Sprintf(summarizePrompt, conversationText)},
	}
	resp, err := c.chat(ctx, c.supportModel, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", app_errors.ErrSummarization, err)
	}
	title := CleanTitle(resp.Message.Content)
	if title == "" {
		return "", fmt.Errorf("%w: generated title was empty after cleaning", app_errors.ErrSummarization)
	}
	return title, nil
}

func (c *ollamaClient) chat(ctx context.Context, model string, messages []chatMessage) (*chatResponse, error) {
	body, err := json.Marshal(&chatRequest{Model: model, Messages: messages, Stream: false})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return &chatResp, nil
}

// CleanTitle normalizes raw model output into a valid conversation title:
// quote characters are stripped and anything past the fourth word is cut.
// Models do not always honor the prompt contract, so this is enforced here.
func CleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '`', '“', '”', '‘', '’':
			return -1
		}
		return r
	}, title)

	words := strings.Fields(title)
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, " ")
}
