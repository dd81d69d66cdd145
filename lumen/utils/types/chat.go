package types

type ChatRequest struct {
	Message string `json:"message"`
	// Token is only read by the websocket endpoint, where headers are awkward for browsers.
	Token string `json:"token,omitempty"`
}

type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type ChatResponse struct {
	Response           string   `json:"response"`
	Sources            []Source `json:"sources"`
	SearchQueryUsed    *string  `json:"search_query_used"`
	WebSearchPerformed bool     `json:"web_search_performed"`
}

// StreamEvent is one websocket frame: "step", "result" or "error".
type StreamEvent struct {
	Type      string        `json:"type"`
	SessionID string        `json:"session_id,omitempty"`
	Step      string        `json:"step,omitempty"`
	Detail    string        `json:"detail,omitempty"`
	Payload   *ChatResponse `json:"payload,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
