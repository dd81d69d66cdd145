package search

import (
	"context"
	"net/http"
	"strings"

	httputils "lumen/lumen/utils/http"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"
)

const tavilyURL = "https://api.tavily.com/search"

type Tavily struct {
	apiKey   string
	endpoint string
	depth    string
	client   *http.Client
}

func NewTavily(apiKey string, client *http.Client) *Tavily {
	if client == nil {
		client = http.DefaultClient
	}
	return &Tavily{apiKey: apiKey, endpoint: tavilyURL, depth: "basic", client: client}
}

type tavilyRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (t *Tavily) Search(ctx context.Context, query string, limit int) (results []Result, err error) {
	defer logging.LogDuration(ctx, "tavily_search")()
	defer func() { metrics.SearchCalls.WithLabelValues("tavily", metrics.Outcome(err)).Inc() }()

	if strings.TrimSpace(t.apiKey) == "" {
		return nil, &ProviderError{Provider: "tavily", Err: ErrMissingAPIKey}
	}

	var payload tavilyResponse
	body := tavilyRequest{Query: query, SearchDepth: t.depth, MaxResults: limit}
	if err := httputils.PostJSONWithAuth(ctx, t.client, t.endpoint, t.apiKey, body, &payload); err != nil {
		return nil, &ProviderError{Provider: "tavily", Err: err}
	}

	results = make([]Result, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL, Summary: r.Content})
	}
	return limitResults(results, limit), nil
}
