package setup

import (
	"fmt"
	"net/http"

	"lumen/lumen/agents/configs"
	"lumen/lumen/agents/core"
	"lumen/lumen/agents/vision"
	"lumen/lumen/config"
	"lumen/lumen/services/llm"
	"lumen/lumen/services/scraper"
	"lumen/lumen/services/search"
	"lumen/lumen/utils/logging"

	"go.uber.org/zap"
)

// Agents bundles the pipeline and the image analyzer built from one config.
type Agents struct {
	Pipeline *core.Pipeline
	Analyzer *vision.Analyzer
	closers  []func()
}

// Close releases the browser fetcher, if one was started.
func (a *Agents) Close() {
	for _, c := range a.closers {
		c()
	}
}

func Build(cfg config.Config) (*Agents, error) {
	prompts, err := configs.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}

	completer, err := llm.New(cfg.LLMProvider, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
	if err != nil {
		return nil, err
	}

	provider, err := search.New(cfg.SearchProvider, cfg.BraveAPIKey, cfg.TavilyAPIKey, cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}

	agents := &Agents{}
	fetcher, err := newFetcher(cfg, agents)
	if err != nil {
		return nil, err
	}

	retriever := core.NewRetriever(provider, fetcher, core.RetrieverOptions{
		MaxResults:   cfg.SearchMaxResults,
		MaxChars:     cfg.FetchMaxChars,
		Concurrency:  cfg.FetchConcurrency,
		FetchTimeout: cfg.FetchTimeout,
	})
	agents.Pipeline = core.NewPipeline(
		core.NewDecisionMaker(completer, cfg.DecisionModel, prompts.Decision),
		retriever,
		core.NewSynthesizer(completer, cfg.SynthesisModel, prompts.Synthesis),
	)
	agents.Analyzer = vision.NewAnalyzer(completer, cfg.VisionModel, prompts.VisionQuestion)

	logging.AppLogger.Info("agents ready",
		zap.String("llm_provider", cfg.LLMProvider),
		zap.String("search_provider", cfg.SearchProvider),
		zap.String("fetch_mode", cfg.FetchMode),
	)
	return agents, nil
}

func newFetcher(cfg config.Config, agents *Agents) (scraper.Fetcher, error) {
	switch cfg.FetchMode {
	case "http":
		return scraper.NewHTTPFetcher(&http.Client{Timeout: cfg.FetchTimeout}), nil
	case "browser":
		bf, err := scraper.NewBrowserFetcher(cfg.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("start browser fetcher: %w", err)
		}
		agents.closers = append(agents.closers, bf.Close)
		return bf, nil
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", cfg.FetchMode)
	}
}
