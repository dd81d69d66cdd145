package jsonutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"fenced":         {"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		"bare fence":     {"```\n{\"a\": 1}\n```", `{"a": 1}`},
		"prose around":   {"Sure! {\"a\": 1} hope it helps", `{"a": 1}`},
		"trailing comma": {`{"a": 1,}`, `{"a": 1}`},
		"zero width":     {"\u200b{\"a\": 1}", `{"a": 1}`},
		"no object":      {"just text", "just text"},
		"escaped quotes": {`{"a": "say \"hi\""}`, `{"a": "say \"hi\""}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSON(tc.in))
		})
	}
}

func TestDecodeObject(t *testing.T) {
	obj, err := DecodeObject(`  {"search_web": "go 1.25 release"} `)
	require.NoError(t, err)
	assert.Equal(t, "go 1.25 release", obj["search_web"])

	obj, err = DecodeObject("```json\n{\"direct_response\": \"hi\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "hi", obj["direct_response"])

	_, err = DecodeObject("not json at all")
	assert.Error(t, err)

	_, err = DecodeObject("null")
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = DecodeObject(`["a", "b"]`)
	assert.Error(t, err)
}

func TestToJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", ToJSON(map[string]int{"a": 1}))
	assert.Equal(t, "", ToJSON(make(chan int)))
}
