package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"github.com/zhouqcn/legalinfocollector/internal/ui"
)

func newTestCache(t *testing.T, ttl time.Duration) *PageCache {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, ttl)
}

func TestKey(t *testing.T) {
	testCases := []struct {
		raw    string
		expect string
	}{
		{raw: "https://www.law.cornell.edu/uscode/text", expect: "https://www.law.cornell.edu/uscode/text"},
		{raw: "HTTPS://WWW.LAW.CORNELL.EDU/uscode/text#top", expect: "https://www.law.cornell.edu/uscode/text"},
		{raw: "https://example.org/index.html", expect: "https://example.org/"},
		{raw: "https://example.org/search?b=2&a=1", expect: "https://example.org/search?a=1&b=2"},
	}

	for _, test := range testCases {
		res, err := Key(test.raw)
		require.NoError(t, err)
		require.Equal(t, test.expect, res)
	}
}

func TestPageCacheRoundTrip(t *testing.T) {
	c := newTestCache(t, time.Hour)

	_, err := c.Get("https://example.org/a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set("https://example.org/a", "<p>a</p>"))

	got, err := c.Get("https://example.org/a#frag")
	require.NoError(t, err)
	require.Equal(t, "<p>a</p>", got)
}

func TestPageCacheExpiry(t *testing.T) {
	c := newTestCache(t, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set("https://example.org/a", "old"))

	now = now.Add(2 * time.Minute)
	_, err := c.Get("https://example.org/a")
	require.ErrorIs(t, err, ErrNotFound)

	now = now.Add(-2 * time.Minute)
	_, err = c.Get("https://example.org/a")
	require.ErrorIs(t, err, ErrNotFound, "expired entries are deleted on read")
}

type countingFetcher struct {
	calls int
	body  string
	err   error
}

func (f *countingFetcher) Fetch(context.Context, string) (string, error) {
	f.calls++
	return f.body, f.err
}

func TestFetcherServesFromCache(t *testing.T) {
	next := &countingFetcher{body: "<html>index</html>"}
	stats := &ui.Stats{}
	f := NewFetcher(next, newTestCache(t, time.Hour), nil, stats)

	for range 3 {
		body, err := f.Fetch(context.Background(), "https://example.org/")
		require.NoError(t, err)
		require.Equal(t, "<html>index</html>", body)
	}

	require.Equal(t, 1, next.calls)
	require.EqualValues(t, 2, stats.CacheHits.Load())
}

func TestFetcherDoesNotCacheFailures(t *testing.T) {
	next := &countingFetcher{err: errors.New("HTTP 503")}
	f := NewFetcher(next, newTestCache(t, time.Hour), nil, nil)

	_, err := f.Fetch(context.Background(), "https://example.org/")
	require.Error(t, err)
	_, err = f.Fetch(context.Background(), "https://example.org/")
	require.Error(t, err)

	require.Equal(t, 2, next.calls)
}
