package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Result is one hit as returned by the provider, in provider order.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// ProviderError wraps any failure of a search backend.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("search provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

var ErrMissingAPIKey = errors.New("API key is missing")

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// New returns the provider registered under name.
func New(name, braveKey, tavilyKey string, timeout time.Duration) (Provider, error) {
	client := &http.Client{Timeout: timeout}
	switch name {
	case "duckduckgo":
		return NewDuckDuckGo(client), nil
	case "brave":
		return NewBrave(braveKey, client), nil
	case "tavily":
		return NewTavily(tavilyKey, client), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", name)
	}
}

func limitResults(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
