package scraper

import (
	"context"
	"time"

	"lumen/lumen/utils/logging"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// BrowserFetcher renders pages in headless Chromium, for sites that need JavaScript.
type BrowserFetcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	timeout time.Duration
}

func NewBrowserFetcher(timeout time.Duration) (*BrowserFetcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, err
	}
	return &BrowserFetcher{pw: pw, browser: browser, timeout: timeout}, nil
}

// Close shuts the browser and the playwright driver down.
func (b *BrowserFetcher) Close() {
	if b.browser != nil {
		b.browser.Close()
	}
	if b.pw != nil {
		b.pw.Stop()
	}
}

func (b *BrowserFetcher) FetchText(ctx context.Context, url string) (string, error) {
	defer logging.LogDuration(ctx, "browser_fetch")()

	bctx, err := b.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:         playwright.String(userAgent),
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer page.Close()

	if err := page.Route("**/*.{png,jpg,jpeg,gif,svg,woff,woff2}", func(route playwright.Route) {
		route.Abort()
	}); err != nil {
		logging.AppLogger.Warn("could not block assets", zap.String("url", url), zap.Error(err))
	}

	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	content, err := page.Content()
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	return ExtractText(content), nil
}
