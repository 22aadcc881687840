package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"contentsmith/internal/pipeline"
)

// PipelineWorker runs the full pipeline on a fixed interval. Validation
// failures are logged but do not stop the worker; the next tick retries
// with fresh signals.
type PipelineWorker struct {
	Pipeline *pipeline.Pipeline
	Interval time.Duration
}

func (w *PipelineWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 24 * time.Hour
	}

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

func (w *PipelineWorker) runOnce(ctx context.Context) {
	rep, err := w.Pipeline.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrValidationFailed):
		slog.Warn("pipeline-worker: run rejected documents", "run_id", rep.RunID, "rejected", len(rep.Rejected))
	case err != nil:
		slog.Error("pipeline-worker: run failed", "err", err)
	default:
		slog.Info("pipeline-worker: run ok", "run_id", rep.RunID, "published", len(rep.Published))
	}
}
