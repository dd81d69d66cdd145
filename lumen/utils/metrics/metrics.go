package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_pipeline_runs_total",
		Help: "Pipeline runs by route taken (direct, search) and outcome (ok, error).",
	}, []string{"route", "outcome"})

	DecisionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lumen_decision_fallbacks_total",
		Help: "Decisions that failed to parse or call and fell back to searching the raw query.",
	})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lumen_stage_duration_seconds",
		Help:    "Duration of pipeline stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	PageFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_page_fetches_total",
		Help: "Page fetches by outcome (ok, error).",
	}, []string{"outcome"})

	LLMCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_llm_calls_total",
		Help: "Language model calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	SearchCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_search_calls_total",
		Help: "Search provider calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	ImageAnalyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_image_analyses_total",
		Help: "Image analysis requests by outcome.",
	}, []string{"outcome"})
)

// Outcome maps an error to the "ok"/"error" label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
