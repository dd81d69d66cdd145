package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	httputils "lumen/lumen/utils/http"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"

	"go.uber.org/zap"
)

// OpenAIClient talks to any OpenAI-compatible /chat/completions endpoint
// (OpenRouter, OpenAI, Groq).
type OpenAIClient struct {
	provider string
	baseURL  string
	apiKey   string
	client   *http.Client
}

func NewOpenAIClient(provider, baseURL, apiKey string, client *http.Client) *OpenAIClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAIClient{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		client:   client,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

var errNoChoices = errors.New("no choices returned")

func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (out string, err error) {
	defer logging.LogDuration(ctx, c.provider+"_complete")()
	defer func() { metrics.LLMCalls.WithLabelValues(c.provider, metrics.Outcome(err)).Inc() }()

	body := chatRequest{
		Model:     req.Model,
		Messages:  buildMessages(req),
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature != 0 {
		t := req.Temperature
		body.Temperature = &t
	}

	var resp chatResponse
	if err := httputils.PostJSONWithAuth(ctx, c.client, c.baseURL+"/chat/completions", c.apiKey, body, &resp); err != nil {
		logging.ErrorLogger.Error("llm completion failed",
			zap.String("provider", c.provider), zap.String("model", req.Model), zap.Error(err))
		return "", &ProviderError{Provider: c.provider, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: c.provider, Err: errNoChoices}
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(req CompletionRequest) []chatMessage {
	var msgs []chatMessage
	if req.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.System})
	}
	if len(req.Images) == 0 {
		return append(msgs, chatMessage{Role: "user", Content: req.User})
	}

	parts := []contentPart{{Type: "text", Text: req.User}}
	for _, img := range req.Images {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: DataURL(img)},
		})
	}
	return append(msgs, chatMessage{Role: "user", Content: parts})
}

// DataURL renders img as a base64 data: URL.
func DataURL(img Image) string {
	return fmt.Sprintf("data:%s;base64,%s", img.MimeType, base64.StdEncoding.EncodeToString(img.Data))
}
