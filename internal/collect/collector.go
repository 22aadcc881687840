package collect

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"contentsmith/internal/kb"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/model"
	"contentsmith/internal/source"
)

// Collector fetches all configured sources, scores candidates, and merges
// survivors into the knowledge store.
type Collector struct {
	Sources   []source.Source
	Store     *knowledge.Store
	Base      kb.Base
	Threshold int           // minimum relevance score to keep an item
	Window    time.Duration // retention window
	MaxItems  int           // store cap
	Now       func() time.Time
}

// Result summarizes one collection run.
type Result struct {
	Fetched    int
	Kept       int
	Merged     int // new unique items added to the store
	StoreSize  int
	FailedSrcs []string
}

// Run fans out one fetch per source, joins them all, then merges the
// combined result into the store. A failing source is logged and skipped;
// only a store I/O failure aborts the run.
func (c *Collector) Run(ctx context.Context) (Result, error) {
	now := c.now()

	type fetchOut struct {
		name  string
		items []model.CollectedItem
		err   error
	}
	outs := make([]fetchOut, len(c.Sources))
	var wg sync.WaitGroup
	for i, src := range c.Sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			items, err := src.Fetch(ctx)
			outs[i] = fetchOut{name: src.Name(), items: items, err: err}
		}(i, src)
	}
	wg.Wait()

	var res Result
	var candidates []model.CollectedItem
	for _, o := range outs {
		if o.err != nil {
			slog.Warn("collector: source fetch failed", "source", o.name, "err", o.err)
			res.FailedSrcs = append(res.FailedSrcs, o.name)
			continue
		}
		res.Fetched += len(o.items)
		for _, it := range o.items {
			it.CollectedAt = now
			it.RelevanceScore = Score(it, c.Base)
			if it.RelevanceScore < c.Threshold {
				continue
			}
			if it.PublishedAt.IsZero() {
				it.PublishedAt = now
			}
			candidates = append(candidates, it)
		}
	}
	res.Kept = len(candidates)

	existing, err := c.Store.Load()
	if err != nil {
		return res, err
	}
	merged := knowledge.Merge(existing, candidates)
	res.Merged = len(merged) - len(existing)
	pruned := knowledge.Prune(merged, now, c.Window, c.MaxItems)
	if err := c.Store.Save(pruned, now); err != nil {
		return res, err
	}
	res.StoreSize = len(pruned)

	slog.Info("collector: run complete",
		"fetched", res.Fetched, "kept", res.Kept, "added", res.Merged,
		"store_size", res.StoreSize, "failed_sources", len(res.FailedSrcs))
	return res, nil
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}
