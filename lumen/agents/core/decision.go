package core

import (
	"context"
	"fmt"
	"strings"

	"lumen/lumen/services/llm"
	"lumen/lumen/utils/jsonutils"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"

	"go.uber.org/zap"
)

const (
	decisionMaxTokens   = 200
	decisionTemperature = 0.3
)

// DecisionMaker asks a model whether a question needs the web.
type DecisionMaker struct {
	llm    llm.Completer
	model  string
	prompt string
}

func NewDecisionMaker(c llm.Completer, model, prompt string) *DecisionMaker {
	return &DecisionMaker{llm: c, model: model, prompt: prompt}
}

// Decide never fails: any call or parse problem falls back to searching query.
func (d *DecisionMaker) Decide(ctx context.Context, query string) Decision {
	defer logging.LogDuration(ctx, "decide")()

	raw, err := d.llm.Complete(ctx, llm.CompletionRequest{
		Model:       d.model,
		System:      d.prompt,
		User:        "User question: " + query,
		MaxTokens:   decisionMaxTokens,
		Temperature: decisionTemperature,
	})
	if err != nil {
		metrics.DecisionFallbacks.Inc()
		logging.AppLogger.Warn("decision call failed, searching raw query", zap.Error(err))
		return FallbackDecision(query)
	}

	decision, err := ParseDecision(raw, query)
	if err != nil {
		metrics.DecisionFallbacks.Inc()
		logging.AppLogger.Warn("decision output unusable, searching raw query",
			zap.Error(err), zap.String("raw", raw))
		return decision
	}
	logging.AppLogger.Info("decision", zap.Stringer("kind", decision.Kind), zap.String("query", decision.Query))
	return decision
}

// ParseDecision reads the model output. On error the returned decision is
// already the fallback for original.
func ParseDecision(raw, original string) (Decision, error) {
	obj, err := jsonutils.DecodeObject(raw)
	if err != nil {
		return FallbackDecision(original), fmt.Errorf("decode decision: %w", err)
	}

	// a search_web key wins whatever its value; unusable values search the original
	if v, present := obj["search_web"]; present {
		if q, ok := v.(string); ok && strings.TrimSpace(q) != "" {
			return SearchDecision(q), nil
		}
		return FallbackDecision(original), nil
	}
	if answer, ok := obj["direct_response"].(string); ok {
		return DirectDecision(answer), nil
	}
	return FallbackDecision(original), ErrAmbiguousDecision
}
