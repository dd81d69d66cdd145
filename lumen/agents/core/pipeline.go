package core

import (
	"context"
	"strings"
	"time"

	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"

	"go.uber.org/zap"
)

// Pipeline routes a question either to a direct answer or through
// search, fetch, assembly and synthesis. It holds no per-query state, so
// one instance serves concurrent runs.
type Pipeline struct {
	decider     *DecisionMaker
	retriever   *Retriever
	synthesizer *Synthesizer
	now         func() time.Time
}

func NewPipeline(d *DecisionMaker, r *Retriever, s *Synthesizer) *Pipeline {
	return &Pipeline{decider: d, retriever: r, synthesizer: s, now: time.Now}
}

// WithClock replaces the clock used for the context date.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	cp := *p
	cp.now = now
	return &cp
}

func (p *Pipeline) Run(ctx context.Context, query string) (*PipelineResult, error) {
	return p.RunWithProgress(ctx, query, nil)
}

// RunWithProgress is Run plus step events for streaming transports.
func (p *Pipeline) RunWithProgress(ctx context.Context, query string, progress ProgressFunc) (res *PipelineResult, err error) {
	defer logging.LogDuration(ctx, "pipeline_run")()
	if progress == nil {
		progress = func(Step, string) {}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	route := "direct"
	defer func() {
		metrics.PipelineRuns.WithLabelValues(route, metrics.Outcome(err)).Inc()
	}()

	progress(StepDeciding, "")
	start := time.Now()
	decision := p.decider.Decide(ctx, query)
	observe("decide", start)

	if decision.Kind == DecisionDirect {
		progress(StepDone, "")
		return &PipelineResult{
			Answer:             decision.Answer,
			Sources:            []Source{},
			SearchQueryUsed:    nil,
			WebSearchPerformed: false,
		}, nil
	}

	route = "search"
	searchQuery := decision.Query
	progress(StepSearching, searchQuery)
	start = time.Now()
	entries, err := p.retriever.Retrieve(ctx, searchQuery, 0)
	observe("retrieve", start)
	if err != nil {
		logging.ErrorLogger.Error("retrieval failed", zap.String("query", searchQuery), zap.Error(err))
		return nil, err
	}

	synthesisContext := Assemble(searchQuery, entries, query, p.now())

	progress(StepSynthesizing, "")
	start = time.Now()
	answer, err := p.synthesizer.Synthesize(ctx, synthesisContext)
	observe("synthesize", start)
	if err != nil {
		logging.ErrorLogger.Error("synthesis failed", zap.String("query", searchQuery), zap.Error(err))
		return nil, err
	}

	progress(StepDone, "")
	return &PipelineResult{
		Answer:             answer,
		Sources:            entries.Sources(),
		SearchQueryUsed:    &searchQuery,
		WebSearchPerformed: true,
	}, nil
}

func observe(stage string, start time.Time) {
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
