package synth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contentsmith/internal/article"
	"contentsmith/internal/kb"
	"contentsmith/internal/model"
)

// OfflineTemplate is the deterministic fallback provider: pure string
// assembly from the idea and the static knowledge base. Same idea, same
// base, same clock value => byte-identical output.
type OfflineTemplate struct {
	idea     model.ArticleIdea
	base     kb.Base
	minWords int
	now      time.Time
}

func NewOfflineTemplate(idea model.ArticleIdea, base kb.Base, minWords int, now time.Time) *OfflineTemplate {
	if minWords <= 0 {
		minWords = 1500
	}
	return &OfflineTemplate{idea: idea, base: base, minWords: minWords, now: now.UTC()}
}

func (t *OfflineTemplate) Name() string { return "offline-template" }

// Generate ignores the prompt; the template path has everything it needs
// from the idea and knowledge base. It cannot fail for content reasons.
func (t *OfflineTemplate) Generate(_ context.Context, _ string) (string, error) {
	return article.Render(t.Document())
}

// Document builds the full typed document.
func (t *OfflineTemplate) Document() model.ArticleDocument {
	body := t.body()
	return model.ArticleDocument{
		Slug:        t.idea.Slug,
		Frontmatter: t.Frontmatter(body),
		Body:        body,
		Provider:    t.Name(),
	}
}

// Frontmatter derives the metadata block from idea fields plus computed
// defaults. bodyForTiming is only used for the reading-time estimate.
func (t *OfflineTemplate) Frontmatter(bodyForTiming string) model.Frontmatter {
	brand := t.base.Product.Name
	title := fitTitle(t.idea.Title, brand)
	sources := make([]string, 0, 3)
	for i, it := range t.idea.SourceItems {
		if i >= 3 {
			break
		}
		if strings.TrimSpace(it.URL) != "" {
			sources = append(sources, it.URL)
		}
	}
	day := time.Date(t.now.Year(), t.now.Month(), t.now.Day(), 0, 0, 0, 0, time.UTC)
	return model.Frontmatter{
		Title:        title,
		Description:  fitDescription(t.idea, t.base),
		PubDate:      day,
		ModifiedDate: day,
		Category:     t.idea.Category,
		Tags:         []string{strings.ToLower(brand), article.Slugify(string(t.idea.Category))},
		Keywords:     dedupKeywords(t.idea.Keywords, 10),
		ReadingTime:  article.ReadingTime(bodyForTiming),
		Author:       brand + " Team",
		Image:        "/images/articles/" + t.idea.Slug + ".jpg",
		ImageAlt:     title,
		ArticleType:  articleType(t.idea.Category),
		Difficulty:   difficulty(t.idea.Category),
		Sources:      sources,
	}
}

// fitTitle guarantees the brand token appears and the result stays within
// the display limit, truncating at a word boundary when needed.
func fitTitle(title, brand string) string {
	title = strings.TrimSpace(title)
	if !strings.Contains(strings.ToLower(title), strings.ToLower(brand)) {
		title = title + " with " + brand
	}
	r := []rune(title)
	if len(r) <= article.MaxTitleLen {
		return title
	}
	cut := string(r[:article.MaxTitleLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " :,-")
}

// descriptionPad tops descriptions up to the minimum display length.
var descriptionPad = []string{
	"Includes worked examples and verified commands.",
	"Written for engineers running production data syncs.",
	"Covers setup, configuration, and verification end to end.",
}

// fitDescription builds a meta description fitted to the 120-160 char
// window: pad with fixed sentences to reach the floor, truncate at a word
// boundary under the ceiling.
func fitDescription(idea model.ArticleIdea, base kb.Base) string {
	desc := fmt.Sprintf("%s: a practical %s on %s, %s.",
		base.Product.Name,
		strings.ToLower(string(idea.Category)),
		strings.TrimSpace(idea.Title),
		base.Product.Tagline)
	for _, pad := range descriptionPad {
		if len([]rune(desc)) >= article.MinDescriptionLen {
			break
		}
		desc = desc + " " + pad
	}
	r := []rune(desc)
	if len(r) > article.MaxDescriptionLen {
		cut := string(r[:article.MaxDescriptionLen-3])
		if i := strings.LastIndex(cut, " "); i > article.MinDescriptionLen {
			cut = cut[:i]
		}
		desc = strings.TrimRight(cut, " .,:") + "..."
	}
	return desc
}

func dedupKeywords(kws []string, limit int) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(kws))
	for _, k := range kws {
		k = strings.TrimSpace(k)
		key := strings.ToLower(k)
		if k == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, k)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func articleType(c model.Category) string {
	switch c {
	case model.CategoryTutorial:
		return "HowTo"
	case model.CategoryNews:
		return "NewsArticle"
	default:
		return "TechArticle"
	}
}

func difficulty(c model.Category) string {
	switch c {
	case model.CategoryTutorial:
		return "beginner"
	case model.CategoryAdvanced:
		return "advanced"
	default:
		return "intermediate"
	}
}

// body assembles the category's section skeleton from the knowledge base,
// then pads with the extended-notes block until the minimum word count is
// met. The repeat-until-threshold loop is fixed-content, so the padding is
// idempotent for a given input.
func (t *OfflineTemplate) body() string {
	var b strings.Builder
	p := t.base.Product

	fmt.Fprintf(&b, "%s is %s. This %s walks through %s, using only behavior shipped in the current release.\n\n",
		p.Name, p.Tagline, strings.ToLower(string(t.idea.Category)), strings.ToLower(strings.TrimSpace(t.idea.Title)))

	switch t.idea.Category {
	case model.CategoryTutorial:
		t.tutorialSections(&b)
	case model.CategoryComparison:
		t.comparisonSections(&b)
	case model.CategoryBestPractices:
		t.bestPracticeSections(&b)
	case model.CategoryNews:
		t.newsSections(&b)
	case model.CategoryAdvanced:
		t.advancedSections(&b)
	default:
		t.guideSections(&b)
	}

	body := b.String()
	if article.WordCount(body) < t.minWords {
		var pad strings.Builder
		pad.WriteString(body)
		pad.WriteString("## Extended Notes\n\n")
		for article.WordCount(pad.String()) < t.minWords {
			pad.WriteString(t.base.ExtendedNotes)
			pad.WriteString("\n\n")
		}
		body = pad.String()
	}
	return body
}

func (t *OfflineTemplate) factList(b *strings.Builder) {
	for _, f := range t.base.Product.Facts {
		fmt.Fprintf(b, "- %s\n", f)
	}
	b.WriteString("\n")
}

func (t *OfflineTemplate) codeBlock(b *strings.Builder, lines ...string) {
	b.WriteString("```bash\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("```\n\n")
}

func (t *OfflineTemplate) tutorialSections(b *strings.Builder) {
	name := t.base.Product.Name
	lower := strings.ToLower(name)

	b.WriteString("## Prerequisites\n\n")
	b.WriteString("Before you start, make sure you have:\n\n")
	fmt.Fprintf(b, "- The %s binary on your PATH (a single static binary per platform)\n", name)
	b.WriteString("- Read access to your source database and write access to the target\n")
	b.WriteString("- A working directory where the state file can live\n\n")

	fmt.Fprintf(b, "## Step 1: Check Your %s Installation\n\n", name)
	b.WriteString("Confirm the binary runs and note the version you are on:\n\n")
	t.codeBlock(b, lower+" version")

	b.WriteString("## Step 2: Initialize a Manifest\n\n")
	b.WriteString("Create the sync manifest in your working directory:\n\n")
	t.codeBlock(b, lower+" init")
	b.WriteString("Edit the generated YAML and declare one table per sync block. Key facts to keep in mind:\n\n")
	t.factList(b)

	b.WriteString("## Step 3: Plan the Sync\n\n")
	b.WriteString("Always look at the plan before anything writes:\n\n")
	t.codeBlock(b, lower+" plan")
	b.WriteString("> **Tip:** The plan output includes a schema diff. Review it line by line the first time you sync a new table.\n\n")

	b.WriteString("## Step 4: Run the Sync\n\n")
	t.codeBlock(b, lower+" sync")
	b.WriteString("Batched writes retry automatically with exponential backoff, so transient failures usually resolve themselves.\n\n")

	b.WriteString("## Step 5: Verify the Results\n\n")
	t.codeBlock(b, lower+" verify")
	b.WriteString("> **Warning:** Do not edit the state file by hand while a sync is running; let the tool own it.\n\n")

	b.WriteString("## Conclusion\n\n")
	fmt.Fprintf(b, "You now have a repeatable %s setup: initialize once, plan every time, sync, and verify. Add the manifest to version control and run the same four commands from CI.\n\n", name)
}

func (t *OfflineTemplate) guideSections(b *strings.Builder) {
	name := t.base.Product.Name
	lower := strings.ToLower(name)

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(b, "This guide covers %s in practical terms. The essentials:\n\n", strings.ToLower(strings.TrimSpace(t.idea.Title)))
	t.factList(b)

	b.WriteString("## How It Works\n\n")
	b.WriteString("Start from the manifest, inspect the plan, and only then move data:\n\n")
	t.codeBlock(b, lower+" plan", lower+" sync")
	b.WriteString("> **Tip:** Keep incremental syncs keyed on an indexed cursor column; full refreshes belong behind an explicit opt-in.\n\n")

	b.WriteString("## Checking Your Work\n\n")
	b.WriteString("Use the built-in verifier to row-count both sides:\n\n")
	t.codeBlock(b, lower+" verify")

	b.WriteString("## Conclusion\n\n")
	fmt.Fprintf(b, "Treat the manifest as code, read every plan, and let %s carry the mechanical work of moving rows safely.\n\n", name)
}

func (t *OfflineTemplate) comparisonSections(b *strings.Builder) {
	name := t.base.Product.Name

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(b, "How does %s stack up against heavier ETL platforms? The short answer: it trades breadth of connectors for a plan-first workflow and a single-binary install.\n\n", name)

	b.WriteString("## Feature Comparison\n\n")
	b.WriteString("| Capability | " + name + " | Typical ETL platform |\n")
	b.WriteString("|---|---|---|\n")
	b.WriteString("| Install | Single static binary | Cluster or SaaS account |\n")
	b.WriteString("| Change preview | `" + strings.ToLower(name) + " plan` diff before writes | Varies, often none |\n")
	b.WriteString("| State | Local JSON state file | Hosted metadata store |\n")
	b.WriteString("| Incremental sync | Cursor column or timestamps | Connector-dependent |\n")
	b.WriteString("| Integrity check | Built-in row-count verify | External tooling |\n\n")

	fmt.Fprintf(b, "## When to Choose %s\n\n", name)
	b.WriteString("Choose it when you want syncs reviewable in a pull request and runnable from cron. Facts that matter for the decision:\n\n")
	t.factList(b)
	b.WriteString("> **Tip:** If you need hundreds of SaaS connectors, a hosted platform still wins; for database-to-warehouse plumbing the lighter tool is easier to operate.\n\n")

	b.WriteString("## Conclusion\n\n")
	b.WriteString("Pick the tool whose failure modes you can reason about. A plan you can read beats a dashboard you have to trust.\n\n")
}

func (t *OfflineTemplate) bestPracticeSections(b *strings.Builder) {
	name := t.base.Product.Name
	lower := strings.ToLower(name)

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(b, "These practices come from running %s against production databases. Ground rules first:\n\n", name)
	t.factList(b)

	b.WriteString("## Plan Before Every Run\n\n")
	b.WriteString("Make the plan step non-optional in your automation:\n\n")
	t.codeBlock(b, lower+" plan", lower+" sync")
	b.WriteString("> **Tip:** Fail the CI job when the plan reports schema drift; treat drift as a migration to review, not noise.\n\n")

	b.WriteString("## Protect the State File\n\n")
	b.WriteString("Back up the state file alongside your manifests. Losing it does not lose data, but it forces a full re-scan on the next run.\n\n")
	b.WriteString("> **Warning:** Never run two syncs against the same state file concurrently; the tool assumes a single writer.\n\n")

	b.WriteString("## Verify on a Schedule\n\n")
	b.WriteString("Row-count verification is cheap enough to run nightly:\n\n")
	t.codeBlock(b, lower+" verify")

	b.WriteString("## Conclusion\n\n")
	b.WriteString("Version the manifest, gate on the plan, guard the state file, and verify continuously. Each habit is small; together they make syncs boring, which is the goal.\n\n")
}

func (t *OfflineTemplate) newsSections(b *strings.Builder) {
	name := t.base.Product.Name
	lower := strings.ToLower(name)

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(b, "Here is what changed recently in %s and why it matters for existing pipelines.\n\n", name)

	b.WriteString("## Highlights\n\n")
	t.factList(b)
	b.WriteString("Try the newest verification command against an existing sync:\n\n")
	t.codeBlock(b, lower+" verify")

	b.WriteString("## What This Means for Your Pipelines\n\n")
	b.WriteString("Upgrade the binary, re-run your plans, and check the diff output. No manifest changes are required for existing syncs.\n\n")
	b.WriteString("> **Tip:** Pin the version in your CI image so every environment upgrades together.\n\n")
}

func (t *OfflineTemplate) advancedSections(b *strings.Builder) {
	name := t.base.Product.Name
	lower := strings.ToLower(name)

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(b, "This article goes below the manifest surface of %s: how plans are computed, how state drives incremental syncs, and where the sharp edges are.\n\n", name)

	b.WriteString("## Prerequisites\n\n")
	b.WriteString("You should already be comfortable with:\n\n")
	b.WriteString("- Writing and planning a basic sync manifest\n")
	b.WriteString("- Reading a schema diff from the plan output\n")
	b.WriteString("- The layout of the local state file\n\n")

	b.WriteString("## Plan Computation\n\n")
	b.WriteString("The plan compares source and target schemas before any row moves, so drift surfaces as an explicit diff:\n\n")
	t.codeBlock(b, lower+" plan")
	b.WriteString("Relevant behavior, verified against the current release:\n\n")
	t.factList(b)

	b.WriteString("## Cursor Strategy\n\n")
	b.WriteString("An incremental sync is only as good as its cursor. Prefer a monotonic indexed column; change timestamps work but are vulnerable to clock skew on writers.\n\n")
	b.WriteString("> **Warning:** Changing a table's cursor column resets its incremental position; the next run re-scans from the beginning.\n\n")

	b.WriteString("## Conclusion\n\n")
	b.WriteString("Understand the plan, own the cursor choice, and the rest of the machinery stays predictable under load.\n\n")
}
