package llm

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	httputils "lumen/lumen/utils/http"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"

	"go.uber.org/zap"
)

type OllamaClient struct {
	baseURL string
	client  *http.Client
}

func NewOllamaClient(baseURL string, client *http.Client) *OllamaClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

func (c *OllamaClient) Complete(ctx context.Context, req CompletionRequest) (out string, err error) {
	defer logging.LogDuration(ctx, "ollama_complete")()
	defer func() { metrics.LLMCalls.WithLabelValues("ollama", metrics.Outcome(err)).Inc() }()

	var msgs []ollamaMessage
	if req.System != "" {
		msgs = append(msgs, ollamaMessage{Role: "system", Content: req.System})
	}
	user := ollamaMessage{Role: "user", Content: req.User}
	for _, img := range req.Images {
		user.Images = append(user.Images, base64.StdEncoding.EncodeToString(img.Data))
	}
	msgs = append(msgs, user)

	options := map[string]any{}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}
	if req.Temperature != 0 {
		options["temperature"] = req.Temperature
	}

	var resp ollamaResponse
	body := ollamaRequest{Model: req.Model, Messages: msgs, Stream: false, Options: options}
	if err := httputils.PostJSON(ctx, c.client, c.baseURL+"/chat", body, &resp); err != nil {
		logging.ErrorLogger.Error("ollama completion failed", zap.String("model", req.Model), zap.Error(err))
		return "", &ProviderError{Provider: "ollama", Err: err}
	}
	return resp.Message.Content, nil
}
