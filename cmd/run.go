package cmd

import (
	"context"
	"fmt"
	"time"

	"contentsmith/internal/cache"
	"contentsmith/internal/pipeline"

	"github.com/spf13/cobra"
)

// runCmd executes the full pipeline once: collect, rank, synthesize,
// validate, publish. Exit code 1 when any document is rejected with a
// critical issue or on unrecoverable I/O.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full content pipeline once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		fc := cache.New(cfg.Redis)
		defer fc.Close()

		p, err := pipeline.FromConfig(cfg, fc)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
		defer cancel()

		rep, err := p.Run(ctx)
		printReport(cmd, rep)
		return err
	},
}

func printReport(cmd *cobra.Command, rep pipeline.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: collected=%d ideas=%d published=%d rejected=%d\n",
		rep.RunID, rep.Collected.Fetched, len(rep.Ideas), len(rep.Published), len(rep.Rejected))
	for _, s := range rep.Published {
		fmt.Fprintf(out, "  published: %s\n", s)
	}
	for _, r := range rep.Rejected {
		kind := "score below threshold"
		if r.Critical {
			kind = "critical issues"
		}
		fmt.Fprintf(out, "  rejected (%s): %s overall=%.2f\n", kind, r.Slug, r.Result.Overall)
		for _, is := range r.Result.Issues {
			fmt.Fprintf(out, "      [%s/%s] %s\n", is.Severity, is.Dimension, is.Message)
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
