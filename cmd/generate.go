package cmd

import (
	"fmt"
	"strings"
	"time"

	"contentsmith/internal/article"
	"contentsmith/internal/imagepick"
	"contentsmith/internal/kb"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/model"
	"contentsmith/internal/pipeline"
	"contentsmith/internal/publish"
	"contentsmith/internal/rank"
	"contentsmith/internal/synth"
	"contentsmith/internal/validate"

	"github.com/spf13/cobra"
)

var genDryRun bool

// generateCmd force-generates one article for a mapped topic, ignoring the
// slug log. Useful for regenerating a stale article or testing templates.
var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Force-generate an article for a mapped topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.ToLower(strings.TrimSpace(args[0]))
		cfg := GetConfig()
		base, err := kb.Load()
		if err != nil {
			return err
		}
		tpl, ok := base.Topics[topic]
		if !ok {
			keys := make([]string, 0, len(base.Topics))
			for k := range base.Topics {
				keys = append(keys, k)
			}
			return fmt.Errorf("topic %q has no template; known topics: %s", topic, strings.Join(keys, ", "))
		}

		now := time.Now().UTC()
		title := kb.ExpandVars(tpl.Title, now)

		// Pull recent store items for the topic as context, best-effort.
		var sourceItems []model.CollectedItem
		if items, err := knowledge.NewStore(cfg.Store.KnowledgeFile).Load(); err == nil {
			for _, t := range rank.TrendingTopics(items) {
				if t.Topic == topic {
					sourceItems = t.RecentItems
					break
				}
			}
		}

		idea := model.ArticleIdea{
			Slug:        article.Slugify(title),
			Title:       title,
			Category:    tpl.Category,
			Keywords:    tpl.Keywords,
			Angle:       "comprehensive-guide",
			SourceItems: sourceItems,
		}

		delay, err := time.ParseDuration(cfg.Synth.RequestDelay)
		if err != nil {
			return fmt.Errorf("invalid synth.request_delay: %w", err)
		}
		syn := synth.New(pipeline.BuildProviders(cfg.Synth), base, cfg.Synth.MinWords, delay, nil)
		doc, err := syn.Synthesize(cmd.Context(), idea)
		if err != nil {
			return err
		}

		res := validate.New(base).Validate(doc.Body, doc.Frontmatter.Category)
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %s via %s: overall=%.2f passed=%v\n",
			doc.Slug, doc.Provider, res.Overall, res.Passed)
		for _, is := range res.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%s/%s] %s\n", is.Severity, is.Dimension, is.Message)
		}
		if res.CriticalCount() > 0 {
			return fmt.Errorf("document rejected: %d critical issue(s)", res.CriticalCount())
		}
		if genDryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "Dry run; nothing written.")
			return nil
		}

		pub := &publish.Publisher{
			OutputDir:       cfg.Store.OutputDir,
			SlugLogFile:     cfg.Store.SlugLogFile,
			AttributionFile: cfg.Store.AttributionFile,
		}
		path, err := pub.Publish(doc)
		if err != nil {
			return err
		}
		if err := pub.AppendSlug(doc.Slug); err != nil {
			return err
		}
		if err := pub.RecordAttribution(doc.Slug, imagepick.Pick(doc.Slug, now)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "generate and validate without writing files")
}
