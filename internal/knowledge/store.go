package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"contentsmith/internal/model"
)

// Store is the on-disk knowledge base of collected signals: a flat JSON
// file holding a bounded, time-windowed item list. Single writer, no
// locking; the pipeline runs one process at a time.
type Store struct {
	path string
}

type storeFile struct {
	LastUpdated time.Time             `json:"lastUpdated"`
	Items       []model.CollectedItem `json:"items"`
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the current item list. A missing file is an empty store.
func (s *Store) Load() ([]model.CollectedItem, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("knowledge: read %s: %w", s.path, err)
	}
	var f storeFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("knowledge: parse %s: %w", s.path, err)
	}
	return f.Items, nil
}

// Save writes the item list back with a refreshed lastUpdated stamp.
func (s *Store) Save(items []model.CollectedItem, now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(storeFile{LastUpdated: now.UTC(), Items: items}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

// Merge folds new items into existing ones, deduplicating by normalized URL
// and by stable id. Existing entries win: items are immutable once stored.
func Merge(existing, incoming []model.CollectedItem) []model.CollectedItem {
	byURL := make(map[string]struct{}, len(existing))
	byID := make(map[string]struct{}, len(existing))
	out := make([]model.CollectedItem, 0, len(existing)+len(incoming))
	for _, it := range existing {
		byURL[NormalizeURL(it.URL)] = struct{}{}
		byID[it.ID] = struct{}{}
		out = append(out, it)
	}
	for _, it := range incoming {
		nu := NormalizeURL(it.URL)
		if _, dup := byURL[nu]; dup {
			continue
		}
		if _, dup := byID[it.ID]; dup {
			continue
		}
		byURL[nu] = struct{}{}
		byID[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Prune drops items collected more than window ago, then caps the list at
// maxItems keeping the most relevant, and sorts the survivors by
// (relevance desc, publishedAt desc).
func Prune(items []model.CollectedItem, now time.Time, window time.Duration, maxItems int) []model.CollectedItem {
	cutoff := now.Add(-window)
	kept := make([]model.CollectedItem, 0, len(items))
	for _, it := range items {
		if it.CollectedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, it)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].RelevanceScore != kept[j].RelevanceScore {
			return kept[i].RelevanceScore > kept[j].RelevanceScore
		}
		return kept[i].PublishedAt.After(kept[j].PublishedAt)
	})
	if maxItems > 0 && len(kept) > maxItems {
		kept = kept[:maxItems]
	}
	return kept
}
