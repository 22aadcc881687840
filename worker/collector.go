package worker

import (
	"context"
	"log/slog"
	"time"

	"contentsmith/internal/collect"
)

// CollectorWorker runs the signal collector on a fixed interval.
type CollectorWorker struct {
	Collector *collect.Collector
	Interval  time.Duration
}

func (w *CollectorWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = time.Hour
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *CollectorWorker) runOnce(ctx context.Context) {
	res, err := w.Collector.Run(ctx)
	if err != nil {
		slog.Error("collector-worker: run failed", "err", err)
		return
	}
	slog.Info("collector-worker: run ok", "fetched", res.Fetched, "store_size", res.StoreSize)
}
