package search

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	httputils "lumen/lumen/utils/http"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"
)

const braveURL = "https://api.search.brave.com/res/v1/web/search"

// Brave uses the Brave Search API, authenticated with X-Subscription-Token.
type Brave struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewBrave(apiKey string, client *http.Client) *Brave {
	if client == nil {
		client = http.DefaultClient
	}
	return &Brave{apiKey: apiKey, endpoint: braveURL, client: client}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (b *Brave) Search(ctx context.Context, query string, limit int) (results []Result, err error) {
	defer logging.LogDuration(ctx, "brave_search")()
	defer func() { metrics.SearchCalls.WithLabelValues("brave", metrics.Outcome(err)).Inc() }()

	if strings.TrimSpace(b.apiKey) == "" {
		return nil, &ProviderError{Provider: "brave", Err: ErrMissingAPIKey}
	}

	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		// brave caps count at 20
		params.Set("count", strconv.Itoa(min(limit, 20)))
	}

	var payload braveResponse
	headers := map[string]string{"X-Subscription-Token": b.apiKey}
	if err := httputils.GetJSON(ctx, b.client, b.endpoint+"?"+params.Encode(), headers, &payload); err != nil {
		return nil, &ProviderError{Provider: "brave", Err: err}
	}

	results = make([]Result, 0, len(payload.Web.Results))
	for _, r := range payload.Web.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL, Summary: r.Description})
	}
	return limitResults(results, limit), nil
}
