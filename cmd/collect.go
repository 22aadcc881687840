package cmd

import (
	"context"
	"fmt"
	"time"

	"contentsmith/internal/cache"
	"contentsmith/internal/kb"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/pipeline"

	"github.com/spf13/cobra"
)

// collectCmd runs only the signal-collector stage.
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch sources and update the knowledge store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		base, err := kb.Load()
		if err != nil {
			return err
		}
		fc := cache.New(cfg.Redis)
		defer fc.Close()

		srcs, err := pipeline.BuildSources(cfg, fc)
		if err != nil {
			return err
		}
		if len(srcs) == 0 {
			return fmt.Errorf("no sources enabled in config")
		}
		store := knowledge.NewStore(cfg.Store.KnowledgeFile)
		collector := pipeline.BuildCollector(cfg, base, srcs, store)

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()
		res, err := collector.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Collected %d items (%d above threshold, %d new); store holds %d.\n",
			res.Fetched, res.Kept, res.Merged, res.StoreSize)
		if len(res.FailedSrcs) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Failed sources (skipped): %v\n", res.FailedSrcs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
