package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"lumen/lumen/services/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func results(n int) []search.Result {
	out := make([]search.Result, n)
	for i := range out {
		out[i] = search.Result{
			Title:   fmt.Sprintf("title %d", i),
			URL:     fmt.Sprintf("https://site%d.example/", i),
			Summary: fmt.Sprintf("summary %d", i),
		}
	}
	return out
}

func TestRetrieve_PreservesProviderOrder(t *testing.T) {
	res := results(6)
	f := &fakeFetcher{pages: map[string]string{}, delays: map[string]time.Duration{}}
	for i, r := range res {
		f.pages[r.URL] = fmt.Sprintf("page %d", i)
		// earlier results finish last
		f.delays[r.URL] = time.Duration(len(res)-i) * 10 * time.Millisecond
	}

	r := NewRetriever(&fakeProvider{results: res}, f, RetrieverOptions{})
	entries, err := r.Retrieve(context.Background(), "q", 12)
	require.NoError(t, err)
	require.Len(t, entries, len(res))
	for i, e := range entries {
		assert.Equal(t, res[i].Title, e.Title)
		assert.Equal(t, res[i].URL, e.URL)
		assert.Equal(t, res[i].Summary, e.Summary)
		assert.Equal(t, fmt.Sprintf("page %d", i), e.Content)
	}
}

func TestRetrieve_CapsAtMaxResults(t *testing.T) {
	p := &fakeProvider{results: results(15)}
	r := NewRetriever(p, &fakeFetcher{}, RetrieverOptions{})

	entries, err := r.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultMaxResults)
	assert.Equal(t, DefaultMaxResults, p.lastLimit)
	assert.Equal(t, "title 11", entries[11].Title)

	entries, err = r.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRetrieve_TruncatesTo9500Runes(t *testing.T) {
	res := results(2)
	f := &fakeFetcher{pages: map[string]string{
		res[0].URL: strings.Repeat("a", 20000),
		res[1].URL: strings.Repeat("ü", 9600),
	}}
	r := NewRetriever(&fakeProvider{results: res}, f, RetrieverOptions{})

	entries, err := r.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Len(t, []rune(entries[0].Content), 9500)
	assert.Len(t, []rune(entries[1].Content), 9500)
}

func TestRetrieve_FailedFetchBecomesMarker(t *testing.T) {
	res := results(3)
	f := &fakeFetcher{
		pages: map[string]string{res[0].URL: "ok page"},
		hang:  map[string]bool{res[2].URL: true},
	}
	r := NewRetriever(&fakeProvider{results: res}, f, RetrieverOptions{FetchTimeout: 20 * time.Millisecond})

	entries, err := r.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "ok page", entries[0].Content)
	assert.Equal(t, "[Loading error: 404 Not Found]", entries[1].Content)
	assert.Equal(t, "[Loading error: context deadline exceeded]", entries[2].Content)
}

func TestRetrieve_BoundedConcurrency(t *testing.T) {
	res := results(10)
	f := &fakeFetcher{pages: map[string]string{}, delays: map[string]time.Duration{}}
	for _, r := range res {
		f.pages[r.URL] = "x"
		f.delays[r.URL] = 15 * time.Millisecond
	}
	r := NewRetriever(&fakeProvider{results: res}, f, RetrieverOptions{Concurrency: 3})

	_, err := r.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, f.maxSeen.Load(), int32(3))
	assert.Greater(t, f.maxSeen.Load(), int32(0))
}

func TestRetrieve_SearchFailure(t *testing.T) {
	perr := &search.ProviderError{Provider: "duckduckgo", Err: errors.New("http 403")}
	r := NewRetriever(&fakeProvider{err: perr}, &fakeFetcher{}, RetrieverOptions{})

	entries, err := r.Retrieve(context.Background(), "q", 0)
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, ErrSearchFailed)
	var pe *search.ProviderError
	assert.True(t, errors.As(err, &pe))
}

func TestRetrieve_NoResults(t *testing.T) {
	r := NewRetriever(&fakeProvider{}, &fakeFetcher{}, RetrieverOptions{})
	entries, err := r.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadingErrorMarker_PlainError(t *testing.T) {
	assert.Equal(t, "[Loading error: boom]", LoadingErrorMarker(errors.New("boom")))
}
