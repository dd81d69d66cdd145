package scraper

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Fetcher downloads a page and returns its readable text.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// FetchError is any failure to fetch or read a page.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Reason is the short cause used in content markers.
func (e *FetchError) Reason() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

var skipTags = map[string]bool{
	"script": true,
	"style":  true,
}

// ExtractText returns the visible text of an HTML document with script and
// style content dropped. Every text node ends its own line, so inline siblings
// such as links never run together.
func ExtractText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}
	return ExtractNodeText(doc)
}

// ExtractNodeText is ExtractText over an already parsed tree.
func ExtractNodeText(nodes ...*html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		if n.Type == html.CommentNode {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte('\n')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return CleanLines(sb.String())
}

// CleanLines trims every line and drops the empty ones.
func CleanLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}

// Truncate keeps at most maxChars runes of text.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	n := 0
	for i := range text {
		if n == maxChars {
			return text[:i]
		}
		n++
	}
	return text
}
