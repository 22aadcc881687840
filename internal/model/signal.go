package model

import "time"

// CollectedItem is a single externally published signal (feed entry, forum
// post, search hit) kept in the knowledge store. Items are immutable once
// written; they only leave the store through pruning.
type CollectedItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	ContentType    string    `json:"content_type"`
	Summary        string    `json:"summary"`
	PublishedAt    time.Time `json:"published_at"`
	CollectedAt    time.Time `json:"collected_at"`
	RelevanceScore int       `json:"relevance_score"`
	Topics         []string  `json:"topics"`
}

// TrendingTopic is a per-run aggregate over the knowledge store. It is
// computed fresh each run and never persisted.
type TrendingTopic struct {
	Topic          string
	Count          int
	RecentItems    []CollectedItem // at most 5, newest first
	SuggestedAngle string
}
