package synth

import (
	"fmt"
	"strings"

	"contentsmith/internal/kb"
	"contentsmith/internal/model"
)

// BuildPrompt assembles the generation prompt for one idea: verified
// product facts, source-item context, the category's required sections,
// and the exact frontmatter block the model must emit.
func BuildPrompt(idea model.ArticleIdea, base kb.Base, fmTemplate string, minWords int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a %s article titled %q about %s.\n", idea.Category, idea.Title, base.Product.Name)
	fmt.Fprintf(&b, "Editorial angle: %s. Target length: at least %d words.\n\n", idea.Angle, minWords)

	b.WriteString("Verified product facts (the only facts you may state):\n")
	for _, f := range base.Product.Facts {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	b.WriteString("\n")

	if len(idea.SourceItems) > 0 {
		b.WriteString("Recent community discussion for context (do not cite as fact):\n")
		for i, it := range idea.SourceItems {
			if i >= 5 {
				break
			}
			line := it.Title
			if s := strings.TrimSpace(it.Summary); s != "" {
				line += " — " + s
			}
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	b.WriteString("Required section headings (## level), in order:\n")
	for _, s := range base.SectionsFor(idea.Category) {
		fmt.Fprintf(&b, "- ## %s\n", strings.TrimSpace(s))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Only use these %s sub-commands in code blocks:\n", strings.ToLower(base.Product.Name))
	for _, c := range base.AllowedCommands {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("\n")

	b.WriteString("Begin the document with exactly this frontmatter block:\n")
	b.WriteString(fmTemplate)
	b.WriteString("\nThen write the body in markdown. Do not wrap the document in a code fence.\n")

	if len(idea.Keywords) > 0 {
		fmt.Fprintf(&b, "Work these keywords in naturally: %s.\n", strings.Join(idea.Keywords, ", "))
	}
	return b.String()
}
