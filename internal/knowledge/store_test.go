package knowledge

import (
	"path/filepath"
	"testing"
	"time"

	"contentsmith/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"https://Example.com/Post/?utm_source=x&utm_medium=y": "https://example.com/Post",
		"https://example.com/a#section":                       "https://example.com/a",
		"https://example.com/a?id=7&fbclid=abc":               "https://example.com/a?id=7",
		"not a url":                                           "not a url",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeURL(in), "input %q", in)
	}
}

func TestStableIDIgnoresTracking(t *testing.T) {
	pub := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	a := StableID("", "A Title", "https://example.com/a?utm_source=x", pub)
	b := StableID("", "a title", "https://example.com/a", pub)
	assert.Equal(t, a, b)

	c := StableID("", "Another Title", "https://example.com/a", pub)
	assert.NotEqual(t, a, c)
}

func TestMergeDedup(t *testing.T) {
	pub := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	existing := []model.CollectedItem{
		{ID: "id1", Title: "One", URL: "https://example.com/one"},
	}
	incoming := []model.CollectedItem{
		{ID: "id2", Title: "One again", URL: "https://example.com/one?utm_source=tw"}, // same normalized URL
		{ID: "id1", Title: "One dup id", URL: "https://example.com/elsewhere"},        // same id
		{ID: "id3", Title: "Two", URL: "https://example.com/two", PublishedAt: pub},
	}
	merged := Merge(existing, incoming)
	require.Len(t, merged, 2)

	// no two items share a normalized URL or id
	seenURL := map[string]struct{}{}
	seenID := map[string]struct{}{}
	for _, it := range merged {
		nu := NormalizeURL(it.URL)
		_, dupURL := seenURL[nu]
		_, dupID := seenID[it.ID]
		assert.False(t, dupURL, "duplicate url %s", nu)
		assert.False(t, dupID, "duplicate id %s", it.ID)
		seenURL[nu] = struct{}{}
		seenID[it.ID] = struct{}{}
	}
}

func TestPruneWindowAndCap(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	var items []model.CollectedItem
	// 10 fresh items with ascending relevance, 3 stale ones
	for i := 0; i < 10; i++ {
		items = append(items, model.CollectedItem{
			ID:             string(rune('a' + i)),
			CollectedAt:    now.Add(-time.Duration(i) * 24 * time.Hour),
			PublishedAt:    now.Add(-time.Duration(i) * time.Hour),
			RelevanceScore: i * 10,
		})
	}
	for i := 0; i < 3; i++ {
		items = append(items, model.CollectedItem{
			ID:          string(rune('x' + i)),
			CollectedAt: now.Add(-40 * 24 * time.Hour),
		})
	}

	out := Prune(items, now, 30*24*time.Hour, 5)
	require.Len(t, out, 5)
	for _, it := range out {
		assert.True(t, now.Sub(it.CollectedAt) <= 30*24*time.Hour, "stale item %s retained", it.ID)
	}
	// sorted by relevance desc
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].RelevanceScore, out[i].RelevanceScore)
	}
}

func TestStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.json")
	s := NewStore(path)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded, "missing file should be an empty store")

	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	items := []model.CollectedItem{
		{ID: "id1", Title: "One", URL: "https://example.com/one", CollectedAt: now, RelevanceScore: 42, Topics: []string{"getting-started"}},
	}
	require.NoError(t, s.Save(items, now))

	loaded, err = s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, items[0], loaded[0])
}
