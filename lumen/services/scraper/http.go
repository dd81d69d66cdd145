package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lumen/lumen/utils/logging"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxBodyBytes = 8 << 20
)

// HTTPFetcher fetches pages with a plain GET, no JavaScript.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) FetchText(ctx context.Context, url string) (string, error) {
	defer logging.LogDuration(ctx, "http_fetch")()

	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return "", &FetchError{URL: url, Err: fmt.Errorf("empty url")}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: url, Err: fmt.Errorf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	return ExtractNodeText(doc.Nodes...), nil
}
