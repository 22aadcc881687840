package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contentsmith/internal/cache"
	"contentsmith/internal/pipeline"
	"contentsmith/worker"

	"github.com/spf13/cobra"
)

// serveCmd runs the pipeline continuously: a collector worker on a short
// interval and a full pipeline worker on a long one. Intended for hosts
// without an external cron.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run collector and pipeline workers continuously",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		fc := cache.New(cfg.Redis)
		defer fc.Close()

		p, err := pipeline.FromConfig(cfg, fc)
		if err != nil {
			return err
		}
		fetchInterval, err := time.ParseDuration(cfg.Collector.FetchInterval)
		if err != nil {
			return fmt.Errorf("invalid collector.fetch_interval: %w", err)
		}
		runInterval, err := time.ParseDuration(cfg.Synth.RunInterval)
		if err != nil {
			return fmt.Errorf("invalid synth.run_interval: %w", err)
		}

		mgr := worker.NewManager(
			&worker.CollectorWorker{Collector: p.Collector, Interval: fetchInterval},
			&worker.PipelineWorker{Pipeline: p, Interval: runInterval},
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("serve: workers starting",
			"fetch_interval", fetchInterval.String(), "run_interval", runInterval.String())
		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
