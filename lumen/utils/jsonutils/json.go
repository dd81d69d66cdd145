package jsonutils

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	reFence         = regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	reObj           = regexp.MustCompile(`(?s)\{.*\}`)
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// ExtractJSON tries to pull a JSON object out of LLM output.
//
// Priority:
// 1. Triple-backtick fenced ```json ... ``` (or a bare ``` fence)
// 2. Any {...} JSON object, greedy from the first { to the last }
//
// Invisible Unicode characters and trailing commas before closing brackets are removed.
// String contents are left alone, escaped quotes included.
func ExtractJSON(input string) string {
	input = strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\uFEFF' || r == '\u200B' || r == '\u200C' || r == '\u200D' {
			return -1
		}
		return r
	}, input))

	if match := reFence.FindStringSubmatch(input); len(match) > 1 {
		input = strings.TrimSpace(match[1])
	} else if match := reObj.FindString(input); match != "" {
		input = strings.TrimSpace(match)
	}

	input = reTrailingComma.ReplaceAllString(input, "$1")
	return strings.TrimSpace(input)
}

// ErrNotObject is returned when the text holds no JSON object.
var ErrNotObject = errors.New("no JSON object found")

// DecodeObject parses raw as a JSON object, first strictly and then after ExtractJSON.
func DecodeObject(raw string) (map[string]any, error) {
	if obj, err := decodeStrict(strings.TrimSpace(raw)); err == nil {
		return obj, nil
	}
	return decodeStrict(ExtractJSON(raw))
}

func decodeStrict(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrNotObject
	}
	return obj, nil
}

// ToJSON serializes a Go value to a JSON string with indentation.
// Returns an empty string if serialization fails.
func ToJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}
