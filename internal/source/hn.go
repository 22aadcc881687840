package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"contentsmith/internal/cache"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/model"
)

// HNSearch queries the Algolia Hacker News search API for recent stories
// matching the product query.
// Docs: https://hn.algolia.com/api
type HNSearch struct {
	name    string
	baseURL string
	query   string
	tags    []string
	f       fetcher
}

func NewHNSearch(name, baseURL, query string, tags []string, timeout time.Duration, retries int, fc *cache.FetchCache) *HNSearch {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://hn.algolia.com/api/v1"
	}
	return &HNSearch{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		query:   query,
		tags:    tags,
		f:       newFetcher(timeout, retries, fc),
	}
}

func (s *HNSearch) Name() string { return s.name }

type hnHit struct {
	ObjectID  string `json:"objectID"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	StoryText string `json:"story_text"`
	CreatedAt string `json:"created_at"`
	Points    int    `json:"points"`
}

type hnResponse struct {
	Hits []hnHit `json:"hits"`
}

// Fetch returns matching stories sorted by date, newest first.
// API: GET /search_by_date?query=...&tags=story
func (s *HNSearch) Fetch(ctx context.Context) ([]model.CollectedItem, error) {
	q := url.Values{
		"query":       {s.query},
		"tags":        {"story"},
		"hitsPerPage": {"50"},
	}
	endpoint := s.baseURL + "/search_by_date?" + q.Encode()
	b, err := s.f.get(ctx, s.name, endpoint)
	if err != nil {
		return nil, err
	}
	var raw hnResponse
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", s.name, err)
	}
	items := make([]model.CollectedItem, 0, len(raw.Hits))
	for _, h := range raw.Hits {
		if strings.TrimSpace(h.Title) == "" {
			continue
		}
		link := h.URL
		if link == "" {
			link = "https://news.ycombinator.com/item?id=" + h.ObjectID
		}
		published, _ := time.Parse(time.RFC3339, h.CreatedAt)
		items = append(items, model.CollectedItem{
			ID:          knowledge.StableID(h.ObjectID, h.Title, link, published),
			Title:       h.Title,
			URL:         link,
			Source:      s.name,
			ContentType: "discussion",
			Summary:     strings.TrimSpace(h.StoryText),
			PublishedAt: published,
			Topics:      s.tags,
		})
	}
	return items, nil
}
