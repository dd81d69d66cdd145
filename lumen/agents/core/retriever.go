package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lumen/lumen/services/scraper"
	"lumen/lumen/services/search"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxResults   = 12
	DefaultMaxChars     = 9500
	DefaultFetchTimeout = 15 * time.Second
)

type RetrieverOptions struct {
	MaxResults   int
	MaxChars     int
	Concurrency  int
	FetchTimeout time.Duration
}

// Retriever turns a search query into entries with page text.
type Retriever struct {
	provider search.Provider
	fetcher  scraper.Fetcher
	opts     RetrieverOptions
}

func NewRetriever(p search.Provider, f scraper.Fetcher, opts RetrieverOptions) *Retriever {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &Retriever{provider: p, fetcher: f, opts: opts}
}

type fetchOutcome struct {
	content string
	failed  bool
}

// Retrieve searches, then fetches every result concurrently. Entries keep
// the provider order; a failed fetch becomes a marker, never an error.
func (r *Retriever) Retrieve(ctx context.Context, searchQuery string, maxResults int) (RetrievalSet, error) {
	defer logging.LogDuration(ctx, "retrieve")()

	if maxResults <= 0 {
		maxResults = r.opts.MaxResults
	}
	results, err := r.provider.Search(ctx, searchQuery, maxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	entries := make(RetrievalSet, len(results))
	limit := r.opts.Concurrency
	if limit <= 0 {
		limit = maxResults
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, res := range results {
		i, res := i, res
		g.Go(func() error {
			out := r.fetch(ctx, res.URL)
			metrics.PageFetches.WithLabelValues(outcomeLabel(out.failed)).Inc()
			entries[i] = SearchResultEntry{
				Title:   res.Title,
				URL:     res.URL,
				Summary: res.Summary,
				Content: out.content,
			}
			return nil
		})
	}
	_ = g.Wait()

	logging.AppLogger.Info("retrieved", zap.String("query", searchQuery), zap.Int("entries", len(entries)))
	return entries, nil
}

func (r *Retriever) fetch(ctx context.Context, url string) fetchOutcome {
	fctx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	text, err := r.fetcher.FetchText(fctx, url)
	if err != nil {
		logging.AppLogger.Warn("page fetch failed", zap.String("url", url), zap.Error(err))
		return fetchOutcome{content: LoadingErrorMarker(err), failed: true}
	}
	return fetchOutcome{content: scraper.Truncate(text, r.opts.MaxChars)}
}

// LoadingErrorMarker renders a fetch failure as entry content.
func LoadingErrorMarker(err error) string {
	reason := err.Error()
	var fe *scraper.FetchError
	if errors.As(err, &fe) {
		reason = fe.Reason()
	}
	return fmt.Sprintf("[Loading error: %s]", reason)
}

func outcomeLabel(failed bool) string {
	if failed {
		return "error"
	}
	return "ok"
}
