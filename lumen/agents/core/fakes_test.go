package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"lumen/lumen/services/llm"
	"lumen/lumen/services/scraper"
	"lumen/lumen/services/search"
)

type fakeCompleter struct {
	mu    sync.Mutex
	out   string
	err   error
	calls []llm.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.out, f.err
}

func (f *fakeCompleter) last() llm.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeProvider struct {
	results   []search.Result
	err       error
	calls     int
	lastQuery string
	lastLimit int
}

func (f *fakeProvider) Search(_ context.Context, query string, limit int) ([]search.Result, error) {
	f.calls++
	f.lastQuery = query
	f.lastLimit = limit
	return f.results, f.err
}

// fakeFetcher serves pages by URL. URLs in hang block until the context ends.
type fakeFetcher struct {
	pages    map[string]string
	delays   map[string]time.Duration
	hang     map[string]bool
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	if f.hang[url] {
		<-ctx.Done()
		return "", &scraper.FetchError{URL: url, Err: ctx.Err()}
	}
	if d := f.delays[url]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", &scraper.FetchError{URL: url, Err: ctx.Err()}
		}
	}
	page, ok := f.pages[url]
	if !ok {
		return "", &scraper.FetchError{URL: url, Err: errNotFound}
	}
	return page, nil
}

var errNotFound = errors.New("404 Not Found")
