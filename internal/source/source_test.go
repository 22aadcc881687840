package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := newFetcher(5*time.Second, 2, nil)
	b, err := f.get(context.Background(), "test", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(b))
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetcherGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := newFetcher(5*time.Second, 1, nil)
	_, err := f.get(context.Background(), "test", srv.URL)
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 502")
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetcherSetsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	f := newFetcher(5*time.Second, 0, nil)
	_, err := f.get(context.Background(), "test", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "contentsmith/1.0", ua)
}

func TestHNSearchFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search_by_date", r.URL.Path)
		assert.Equal(t, "flowctl", r.URL.Query().Get("query"))
		assert.Equal(t, "story", r.URL.Query().Get("tags"))
		w.Write([]byte(`{"hits":[
			{"objectID":"1","title":"Flowctl 1.8 released","url":"https://flowctl.dev/blog/1-8","created_at":"2026-08-28T10:00:00Z"},
			{"objectID":"2","title":"Ask HN: sync tools?","url":"","story_text":"Looking for a data sync tool","created_at":"2026-08-28T09:00:00Z"},
			{"objectID":"3","title":"","url":"https://example.com/skip"}
		]}`))
	}))
	defer srv.Close()

	s := NewHNSearch("hn", srv.URL, "flowctl", []string{"release-notes"}, 5*time.Second, 0, nil)
	items, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "titleless hits are skipped")

	assert.Equal(t, "Flowctl 1.8 released", items[0].Title)
	assert.Equal(t, "https://flowctl.dev/blog/1-8", items[0].URL)
	assert.Equal(t, "discussion", items[0].ContentType)
	assert.Equal(t, []string{"release-notes"}, items[0].Topics)
	assert.False(t, items[0].PublishedAt.IsZero())

	// self posts link back to the HN item page
	assert.Equal(t, "https://news.ycombinator.com/item?id=2", items[1].URL)
	assert.Equal(t, "Looking for a data sync tool", items[1].Summary)
}

func TestDevToFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/articles", r.URL.Path)
		assert.Equal(t, "datasync", r.URL.Query().Get("tag"))
		w.Write([]byte(`[
			{"id":10,"title":"Postgres to S3 pipelines","description":"A walkthrough","url":"https://dev.to/p/10","published_at":"2026-08-27T08:00:00Z","tag_list":["postgres","s3"]}
		]`))
	}))
	defer srv.Close()

	s := NewDevTo("devto", srv.URL, "datasync", []string{"postgres-to-s3"}, 5*time.Second, 0, nil)
	items, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "article", items[0].ContentType)
	assert.Equal(t, []string{"postgres-to-s3", "postgres", "s3"}, items[0].Topics)
	assert.Equal(t, "A walkthrough", items[0].Summary)
}

func TestRedditFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/dataengineering/new.json", r.URL.Path)
		w.Write([]byte(`{"data":{"children":[
			{"data":{"id":"abc","title":"Schema drift pain","selftext":"Our nightly sync broke","url":"https://example.com/post","created_utc":1782000000}}
		]}}`))
	}))
	defer srv.Close()

	s := NewReddit("reddit", srv.URL, "dataengineering", []string{"schema-drift"}, 5*time.Second, 0, nil)
	items, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Schema drift pain", items[0].Title)
	assert.Equal(t, "forum", items[0].ContentType)
	assert.Equal(t, "Our nightly sync broke", items[0].Summary)
	assert.Equal(t, time.Unix(1782000000, 0).UTC(), items[0].PublishedAt)
}

func TestBlogIndexFetch(t *testing.T) {
	page := `<html><body>
		<article><a href="/blog/incremental-syncs">Incremental syncs explained</a>
			<time datetime="2026-08-20">Aug 20</time></article>
		<li><a href="/blog/incremental-syncs">Incremental syncs explained</a></li>
		<li><a href="/blog/short"><span>x</span></a></li>
		<li><a href="mailto:team@flowctl.dev">Contact the flowctl team</a></li>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewBlogIndex("blog", srv.URL, []string{"incremental-sync"}, 5*time.Second, 0, nil)
	items, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1, "duplicates, short titles, and non-http links are skipped")

	assert.Equal(t, "Incremental syncs explained", items[0].Title)
	assert.Equal(t, srv.URL+"/blog/incremental-syncs", items[0].URL)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), items[0].PublishedAt)
	assert.Equal(t, []string{"incremental-sync"}, items[0].Topics)
}
