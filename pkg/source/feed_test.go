package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Politics</title>
    <item><title>Senate passes spending bill</title><link>https://example.com/1</link></item>
    <item><title>New tariff announced</title><link>https://example.com/2</link></item>
    <item><title></title><link>https://example.com/3</link></item>
  </channel>
</rss>`

func TestFeedFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testRSS))
	}))
	defer srv.Close()

	f := NewFeedFetcher([]string{srv.URL})
	assert.Equal(t, SourceFeed, f.Name())

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2) // empty title skipped
	assert.Equal(t, "Senate passes spending bill", items[0].Title)
	assert.Equal(t, "https://example.com/1", items[0].URL)
	assert.Equal(t, SourceFeed, items[0].Source)
}

func TestFeedFetcher_FallsBackToNextFeed(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testRSS))
	}))
	defer good.Close()

	f := NewFeedFetcher([]string{bad.URL, good.URL})
	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFeedFetcher_AllFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	f := NewFeedFetcher([]string{bad.URL})
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFeedFetcher_NoURLs(t *testing.T) {
	f := NewFeedFetcher(nil)
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFeedFetcher_LimitsItems(t *testing.T) {
	var sb []byte
	sb = append(sb, []byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>`)...)
	for i := 0; i < 25; i++ {
		sb = append(sb, []byte(`<item><title>headline</title><link>https://example.com</link></item>`)...)
	}
	sb = append(sb, []byte(`</channel></rss>`)...)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(sb)
	}))
	defer srv.Close()

	f := NewFeedFetcher([]string{srv.URL})
	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, feedItemLimit)
}
