package core

import (
	"context"
	"fmt"

	"lumen/lumen/services/llm"
	"lumen/lumen/utils/logging"
)

const synthesisMaxTokens = 800

type Synthesizer struct {
	llm    llm.Completer
	model  string
	prompt string
}

func NewSynthesizer(c llm.Completer, model, prompt string) *Synthesizer {
	return &Synthesizer{llm: c, model: model, prompt: prompt}
}

// Synthesize returns the model's answer verbatim.
func (s *Synthesizer) Synthesize(ctx context.Context, synthesisContext string) (string, error) {
	defer logging.LogDuration(ctx, "synthesize")()

	answer, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Model:     s.model,
		System:    s.prompt,
		User:      synthesisContext,
		MaxTokens: synthesisMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	return answer, nil
}
