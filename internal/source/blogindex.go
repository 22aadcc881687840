package source

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"time"

	"contentsmith/internal/cache"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// BlogIndex scrapes a blog index page for article links. It expects the
// common list shape: anchors inside <article> or <li> elements, with an
// optional <time datetime="..."> sibling.
type BlogIndex struct {
	name    string
	pageURL string
	topics  []string
	f       fetcher
}

func NewBlogIndex(name, pageURL string, topics []string, timeout time.Duration, retries int, fc *cache.FetchCache) *BlogIndex {
	return &BlogIndex{
		name:    name,
		pageURL: pageURL,
		topics:  topics,
		f:       newFetcher(timeout, retries, fc),
	}
}

func (s *BlogIndex) Name() string { return s.name }

// Fetch downloads the index page and extracts linked entries.
func (s *BlogIndex) Fetch(ctx context.Context) ([]model.CollectedItem, error) {
	b, err := s.f.get(ctx, s.name, s.pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	base, _ := url.Parse(s.pageURL)

	seen := map[string]struct{}{}
	var items []model.CollectedItem
	doc.Find("article a, li a, h2 a, h3 a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		title := strings.TrimSpace(a.Text())
		if title == "" || len(title) < 8 {
			return
		}
		link := resolveHref(base, href)
		if link == "" {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}

		published := time.Time{}
		if dt, ok := a.Closest("article, li").Find("time").Attr("datetime"); ok {
			for _, layout := range []string{time.RFC3339, "2006-01-02"} {
				if t, err := time.Parse(layout, dt); err == nil {
					published = t
					break
				}
			}
		}
		items = append(items, model.CollectedItem{
			ID:          knowledge.StableID("", title, link, published),
			Title:       title,
			URL:         link,
			Source:      s.name,
			ContentType: "blog",
			PublishedAt: published,
			Topics:      s.topics,
		})
	})
	return items, nil
}

func resolveHref(base *url.URL, href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
