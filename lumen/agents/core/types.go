package core

type DecisionKind int

const (
	DecisionDirect DecisionKind = iota + 1
	DecisionSearch
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionDirect:
		return "direct"
	case DecisionSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Decision is either a direct answer or a web search with Query.
type Decision struct {
	Kind   DecisionKind
	Answer string
	Query  string
}

func DirectDecision(answer string) Decision {
	return Decision{Kind: DecisionDirect, Answer: answer}
}

func SearchDecision(query string) Decision {
	return Decision{Kind: DecisionSearch, Query: query}
}

// FallbackDecision is used whenever the model's routing cannot be trusted:
// search the web with the user's own words.
func FallbackDecision(original string) Decision {
	return SearchDecision(original)
}

// SearchResultEntry is one provider hit plus the text fetched from its page.
// Content is either page text or a "[Loading error: ...]" marker.
type SearchResultEntry struct {
	Title   string
	URL     string
	Summary string
	Content string
}

// RetrievalSet keeps the provider's order.
type RetrievalSet []SearchResultEntry

type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Sources lists title and URL of every entry, in order.
func (rs RetrievalSet) Sources() []Source {
	out := make([]Source, 0, len(rs))
	for _, e := range rs {
		out = append(out, Source{Title: e.Title, URL: e.URL})
	}
	return out
}

type PipelineResult struct {
	Answer             string
	Sources            []Source
	SearchQueryUsed    *string
	WebSearchPerformed bool
}

type Step string

const (
	StepDeciding     Step = "deciding"
	StepSearching    Step = "searching"
	StepSynthesizing Step = "synthesizing"
	StepDone         Step = "done"
)

// ProgressFunc receives step events while a run is in flight.
type ProgressFunc func(step Step, detail string)
