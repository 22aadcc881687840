package cmd

import (
	"fmt"

	"contentsmith/internal/article"
	"contentsmith/internal/kb"
	"contentsmith/internal/validate"

	"github.com/spf13/cobra"
)

// validateCmd scores existing article files against the quality rubric.
// Exit code 1 when any file has a critical issue.
var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Score article files against the quality rubric",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := kb.Load()
		if err != nil {
			return err
		}
		v := validate.New(base)
		criticals := 0
		for _, path := range args {
			doc, err := article.ParseFile(path)
			if err != nil {
				return err
			}
			res := v.Validate(doc.Body, doc.Frontmatter.Category)
			status := "PASS"
			if !res.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s overall=%.2f (acc=%.1f comp=%.1f clar=%.1f val=%.1f safe=%.1f)\n",
				status, path, res.Overall,
				res.Scores.Accuracy, res.Scores.Completeness, res.Scores.Clarity,
				res.Scores.Value, res.Scores.Safety)
			for _, is := range res.Issues {
				fmt.Fprintf(cmd.OutOrStdout(), "  [%s/%s] %s\n", is.Severity, is.Dimension, is.Message)
			}
			criticals += res.CriticalCount()
		}
		if criticals > 0 {
			return fmt.Errorf("%d critical issue(s) found", criticals)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
