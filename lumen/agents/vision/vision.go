package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lumen/lumen/services/llm"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"

	"go.uber.org/zap"
)

const analysisMaxTokens = 800

var (
	ErrAnalysisFailed = errors.New("image analysis failed")
	ErrEmptyImage     = errors.New("empty image")
)

// Analyzer answers a question about an image with a vision-capable model.
type Analyzer struct {
	llm             llm.Completer
	model           string
	defaultQuestion string
}

func NewAnalyzer(c llm.Completer, model, defaultQuestion string) *Analyzer {
	return &Analyzer{llm: c, model: model, defaultQuestion: defaultQuestion}
}

// DefaultQuestion is asked when the caller leaves the question empty.
func (a *Analyzer) DefaultQuestion() string {
	return a.defaultQuestion
}

func (a *Analyzer) Analyze(ctx context.Context, image []byte, mimeType, question string) (analysis string, err error) {
	defer logging.LogDuration(ctx, "analyze_image")()
	defer func() { metrics.ImageAnalyses.WithLabelValues(metrics.Outcome(err)).Inc() }()

	if len(image) == 0 {
		return "", ErrEmptyImage
	}
	if strings.TrimSpace(question) == "" {
		question = a.defaultQuestion
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	out, err := a.llm.Complete(ctx, llm.CompletionRequest{
		Model:     a.model,
		User:      question,
		MaxTokens: analysisMaxTokens,
		Images:    []llm.Image{{Data: image, MimeType: mimeType}},
	})
	if err != nil {
		logging.ErrorLogger.Error("image analysis failed", zap.String("model", a.model), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	return out, nil
}
