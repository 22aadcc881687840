package cmd

import (
	"fmt"
	"time"

	"contentsmith/internal/kb"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/publish"
	"contentsmith/internal/rank"

	"github.com/spf13/cobra"
)

// ideasCmd prints trending topics and the article ideas the next run would
// pick, without generating anything.
var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Show trending topics and proposed article ideas",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		base, err := kb.Load()
		if err != nil {
			return err
		}
		items, err := knowledge.NewStore(cfg.Store.KnowledgeFile).Load()
		if err != nil {
			return err
		}
		topics := rank.TrendingTopics(items)
		if len(topics) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Knowledge store is empty; run `contentsmith collect` first.")
			return nil
		}

		pub := &publish.Publisher{
			OutputDir:   cfg.Store.OutputDir,
			SlugLogFile: cfg.Store.SlugLogFile,
		}
		slugs, err := pub.LoadSlugLog()
		if err != nil {
			return err
		}
		existing := map[string]struct{}{}
		for _, s := range slugs {
			existing[s] = struct{}{}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Trending topics:")
		for i, t := range topics {
			if i >= 10 {
				break
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %2d. %-24s count=%-3d angle=%s\n", i+1, t.Topic, t.Count, t.SuggestedAngle)
		}

		ideas := rank.Ideas(topics, base, existing, cfg.Ranker.MaxIdeas, time.Now().UTC())
		if len(ideas) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No new article ideas (all mapped topics already generated).")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Proposed ideas:")
		for _, id := range ideas {
			fmt.Fprintf(cmd.OutOrStdout(), "  - [%s] %s (slug=%s)\n", id.Category, id.Title, id.Slug)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ideasCmd)
}
