package rank

import (
	"sort"
	"strings"
	"time"

	"contentsmith/internal/article"
	"contentsmith/internal/kb"
	"contentsmith/internal/model"
)

// anglePhrases maps title patterns to a suggested editorial angle.
// Checked in order; first category with a match wins.
var anglePhrases = []struct {
	angle   string
	phrases []string
}{
	{"step-by-step-tutorial", []string{"how to", "tutorial", "getting started", "setup", "set up", "install"}},
	{"comparison", []string{" vs ", "versus", "compared", "alternative", "better than"}},
	{"best-practices", []string{"best practice", "tips", "mistakes", "pitfall", "checklist", "production"}},
	{"news-analysis", []string{"release", "announce", "launch", "changelog", "what's new", "version "}},
	{"deep-dive", []string{"internals", "deep dive", "under the hood", "advanced", "architecture", "performance"}},
}

const defaultAngle = "comprehensive-guide"

// TrendingTopics aggregates the item set by topic tag: occurrence count, up
// to five most recent items, and an angle suggested from recent titles.
// Output is sorted by descending count, ties broken alphabetically so the
// ranking is stable across runs.
func TrendingTopics(items []model.CollectedItem) []model.TrendingTopic {
	byTopic := map[string][]model.CollectedItem{}
	for _, it := range items {
		for _, t := range it.Topics {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			byTopic[t] = append(byTopic[t], it)
		}
	}
	out := make([]model.TrendingTopic, 0, len(byTopic))
	for topic, list := range byTopic {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].PublishedAt.After(list[j].PublishedAt)
		})
		recent := list
		if len(recent) > 5 {
			recent = recent[:5]
		}
		out = append(out, model.TrendingTopic{
			Topic:          topic,
			Count:          len(list),
			RecentItems:    recent,
			SuggestedAngle: suggestAngle(recent),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}

func suggestAngle(recent []model.CollectedItem) string {
	for _, ap := range anglePhrases {
		for _, it := range recent {
			title := strings.ToLower(it.Title)
			for _, p := range ap.phrases {
				if strings.Contains(title, p) {
					return ap.angle
				}
			}
		}
	}
	return defaultAngle
}

// Ideas maps the highest-ranked topics through the static topic templates,
// skipping topics with no mapping and slugs already generated or published.
// At most maxIdeas ideas are returned per run, which caps how many articles
// a single invocation can write.
func Ideas(topics []model.TrendingTopic, base kb.Base, existingSlugs map[string]struct{}, maxIdeas int, now time.Time) []model.ArticleIdea {
	if maxIdeas <= 0 {
		maxIdeas = 3
	}
	var ideas []model.ArticleIdea
	for _, tt := range topics {
		if len(ideas) >= maxIdeas {
			break
		}
		tpl, ok := base.Topics[tt.Topic]
		if !ok {
			continue
		}
		title := kb.ExpandVars(tpl.Title, now)
		slug := article.Slugify(title)
		if _, done := existingSlugs[slug]; done {
			continue
		}
		ideas = append(ideas, model.ArticleIdea{
			Slug:        slug,
			Title:       title,
			Category:    tpl.Category,
			Keywords:    append([]string{}, tpl.Keywords...),
			Angle:       tt.SuggestedAngle,
			SourceItems: tt.RecentItems,
		})
	}
	return ideas
}
