package core

import (
	"fmt"
	"strings"
	"time"
)

const contextDateLayout = "January 02, 2006"

// Assemble renders the retrieved entries into the synthesis prompt. It is
// pure: the same inputs always give the same text, and nothing is cut.
func Assemble(searchQuery string, entries RetrievalSet, originalQuery string, now time.Time) string {
	parts := make([]string, 0, len(entries))
	for i, e := range entries {
		parts = append(parts, fmt.Sprintf("%d. %s\nURL: %s\nSummary: %s\nContent: %s",
			i+1, e.Title, e.URL, e.Summary, e.Content))
	}
	webSources := fmt.Sprintf("Web sources (query: '%s'):\n\n", searchQuery) + strings.Join(parts, "\n\n")

	var sb strings.Builder
	fmt.Fprintf(&sb, "SEARCH CONTEXT: Current date: %s\n", now.Format(contextDateLayout))
	fmt.Fprintf(&sb, "Search query used: '%s'\n", searchQuery)
	fmt.Fprintf(&sb, "User question: \"%s\"\n", originalQuery)
	fmt.Fprintf(&sb, "Number of sources analyzed: %d\n\n", len(entries))
	sb.WriteString("TASK: Answer the user's question using the web data below.\n")
	sb.WriteString("WEB SOURCES:\n")
	sb.WriteString(webSources)
	return sb.String()
}
