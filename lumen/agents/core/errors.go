package core

import "errors"

var (
	ErrEmptyQuery        = errors.New("empty query")
	ErrSearchFailed      = errors.New("web search failed")
	ErrSynthesisFailed   = errors.New("answer synthesis failed")
	ErrAmbiguousDecision = errors.New("decision output has neither search_web nor direct_response")
)
