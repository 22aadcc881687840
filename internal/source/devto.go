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

// DevTo fetches recent articles for a tag from the dev.to public API.
type DevTo struct {
	name    string
	baseURL string
	tag     string
	topics  []string
	f       fetcher
}

func NewDevTo(name, baseURL, tag string, topics []string, timeout time.Duration, retries int, fc *cache.FetchCache) *DevTo {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://dev.to/api"
	}
	return &DevTo{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		tag:     tag,
		topics:  topics,
		f:       newFetcher(timeout, retries, fc),
	}
}

func (s *DevTo) Name() string { return s.name }

type devtoArticle struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	PublishedAt string   `json:"published_at"`
	TagList     []string `json:"tag_list"`
}

// Fetch returns recent tagged articles.
// API: GET /articles?tag={tag}&per_page=50
func (s *DevTo) Fetch(ctx context.Context) ([]model.CollectedItem, error) {
	q := url.Values{"per_page": {"50"}}
	if s.tag != "" {
		q.Set("tag", s.tag)
	}
	endpoint := s.baseURL + "/articles?" + q.Encode()
	b, err := s.f.get(ctx, s.name, endpoint)
	if err != nil {
		return nil, err
	}
	var raw []devtoArticle
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", s.name, err)
	}
	items := make([]model.CollectedItem, 0, len(raw))
	for _, a := range raw {
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		topics := s.topics
		if len(a.TagList) > 0 {
			topics = append(append([]string{}, topics...), a.TagList...)
		}
		items = append(items, model.CollectedItem{
			ID:          knowledge.StableID(fmt.Sprintf("devto-%d", a.ID), a.Title, a.URL, published),
			Title:       a.Title,
			URL:         a.URL,
			Source:      s.name,
			ContentType: "article",
			Summary:     strings.TrimSpace(a.Description),
			PublishedAt: published,
			Topics:      topics,
		})
	}
	return items, nil
}
