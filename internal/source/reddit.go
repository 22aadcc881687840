package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"contentsmith/internal/cache"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/model"
)

// Reddit fetches new posts from a subreddit's public JSON listing.
type Reddit struct {
	name    string
	baseURL string
	sub     string
	topics  []string
	f       fetcher
}

func NewReddit(name, baseURL, sub string, topics []string, timeout time.Duration, retries int, fc *cache.FetchCache) *Reddit {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://www.reddit.com"
	}
	return &Reddit{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		sub:     strings.Trim(sub, "/"),
		topics:  topics,
		f:       newFetcher(timeout, retries, fc),
	}
}

func (s *Reddit) Name() string { return s.name }

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID        string  `json:"id"`
				Title     string  `json:"title"`
				SelfText  string  `json:"selftext"`
				URL       string  `json:"url"`
				Permalink string  `json:"permalink"`
				CreatedAt float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Fetch returns the newest posts of the subreddit.
// API: GET /r/{sub}/new.json?limit=50
func (s *Reddit) Fetch(ctx context.Context) ([]model.CollectedItem, error) {
	endpoint := fmt.Sprintf("%s/r/%s/new.json?limit=50", s.baseURL, s.sub)
	b, err := s.f.get(ctx, s.name, endpoint)
	if err != nil {
		return nil, err
	}
	var raw redditListing
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", s.name, err)
	}
	items := make([]model.CollectedItem, 0, len(raw.Data.Children))
	for _, c := range raw.Data.Children {
		p := c.Data
		if strings.TrimSpace(p.Title) == "" {
			continue
		}
		link := p.URL
		if link == "" && p.Permalink != "" {
			link = s.baseURL + p.Permalink
		}
		published := time.Unix(int64(p.CreatedAt), 0).UTC()
		summary := p.SelfText
		if len([]rune(summary)) > 500 {
			summary = string([]rune(summary)[:500])
		}
		items = append(items, model.CollectedItem{
			ID:          knowledge.StableID("reddit-"+p.ID, p.Title, link, published),
			Title:       p.Title,
			URL:         link,
			Source:      s.name,
			ContentType: "forum",
			Summary:     strings.TrimSpace(summary),
			PublishedAt: published,
			Topics:      s.topics,
		})
	}
	return items, nil
}
