package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/metrics"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const duckDuckGoURL = "https://html.duckduckgo.com/html/"

var reHTTP = regexp.MustCompile(`^https?://`)

// DuckDuckGo scrapes the keyless HTML endpoint.
type DuckDuckGo struct {
	endpoint string
	client   *http.Client
}

func NewDuckDuckGo(client *http.Client) *DuckDuckGo {
	return NewDuckDuckGoWithEndpoint(duckDuckGoURL, client)
}

func NewDuckDuckGoWithEndpoint(endpoint string, client *http.Client) *DuckDuckGo {
	if client == nil {
		client = http.DefaultClient
	}
	return &DuckDuckGo{endpoint: endpoint, client: client}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) (results []Result, err error) {
	defer logging.LogDuration(ctx, "duckduckgo_search")()
	defer func() { metrics.SearchCalls.WithLabelValues("duckduckgo", metrics.Outcome(err)).Inc() }()

	params := url.Values{}
	params.Add("q", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &ProviderError{Provider: "duckduckgo", Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: "duckduckgo", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: "duckduckgo", Err: fmt.Errorf("http %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: "duckduckgo", Err: err}
	}

	results = parseResults(doc, limit)
	logging.AppLogger.Info("duckduckgo search", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}

func parseResults(doc *goquery.Document, limit int) []Result {
	var results []Result
	doc.Find(".result__body").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if limit > 0 && len(results) >= limit {
			return false
		}
		// sponsored rows share the markup
		if s.ParentsFiltered(".result--ad").Length() > 0 {
			return true
		}
		titleSel := s.Find(".result__title a").First()
		href, exists := titleSel.Attr("href")
		if !exists {
			return true
		}
		target := resolveHref(href)
		if target == "" {
			return true
		}
		results = append(results, Result{
			Title:   strings.TrimSpace(titleSel.Text()),
			URL:     target,
			Summary: strings.TrimSpace(s.Find(".result__snippet").Text()),
		})
		return true
	})
	return results
}

// resolveHref unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveHref(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if actual := parsed.Query().Get("uddg"); actual != "" {
		href = actual
	}
	if !reHTTP.MatchString(href) {
		return ""
	}
	return href
}
