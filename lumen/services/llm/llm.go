package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Completer runs a single, non-streaming chat completion.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Image is an inline image attached to the user turn.
type Image struct {
	Data     []byte
	MimeType string
}

type CompletionRequest struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	Images      []Image
}

// ProviderError wraps any failure talking to a model provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

var defaultBaseURLs = map[string]string{
	"openrouter": "https://openrouter.ai/api/v1",
	"openai":     "https://api.openai.com/v1",
	"groq":       "https://api.groq.com/openai/v1",
	"ollama":     "http://localhost:11434/api",
}

// New builds the client for provider. An empty baseURL selects the provider default.
func New(provider, baseURL, apiKey string, timeout time.Duration) (Completer, error) {
	def, ok := defaultBaseURLs[provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
	if baseURL == "" {
		baseURL = def
	}
	client := &http.Client{Timeout: timeout}
	if provider == "ollama" {
		return NewOllamaClient(baseURL, client), nil
	}
	return NewOpenAIClient(provider, baseURL, apiKey, client), nil
}
