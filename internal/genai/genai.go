package genai

import "context"

// CompletionRequest carries one user turn and the optional persona context
// that frames the assistant's reply.
type CompletionRequest struct {
	UserInput      string
	PersonaContext string
}

// CompletionResponse is the assistant's reply text.
type CompletionResponse struct {
	Text string
}

// Completer is the text-generation service behind the send path. A single
// request/response exchange: no streaming, no built-in retry, first error
// wins.
type Completer interface {
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// Summarizer produces a short conversation title from seed text. The
// contract is at most four words with no quote characters; failures are
// non-fatal to callers.
type Summarizer interface {
	Summarize(ctx context.Context, conversationText string) (string, error)
}
