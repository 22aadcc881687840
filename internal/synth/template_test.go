package synth

import (
	"context"
	"strings"
	"testing"
	"time"

	"contentsmith/internal/article"
	"contentsmith/internal/kb"
	"contentsmith/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdea(cat model.Category) model.ArticleIdea {
	title := map[model.Category]string{
		model.CategoryTutorial:      "Getting Started with Flowctl: Your First Sync in 2026",
		model.CategoryGuide:         "Incremental Syncs with Flowctl: Cursors and State",
		model.CategoryComparison:    "Flowctl vs Traditional ETL Tools: An Honest Comparison",
		model.CategoryBestPractices: "Flowctl Best Practices for Production Data Syncs",
		model.CategoryNews:          "What's New in Flowctl 2026",
		model.CategoryAdvanced:      "Handling Schema Drift in Flowctl Pipelines",
	}[cat]
	return model.ArticleIdea{
		Slug:     article.Slugify(title),
		Title:    title,
		Category: cat,
		Keywords: []string{"flowctl", "data sync", "Flowctl", "flowctl"},
		Angle:    "comprehensive-guide",
		SourceItems: []model.CollectedItem{
			{URL: "https://example.com/one"},
			{URL: "https://example.com/two"},
		},
	}
}

func TestOfflineTemplateIdempotent(t *testing.T) {
	base := kb.MustLoad()
	now := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
	idea := testIdea(model.CategoryTutorial)

	a, err := NewOfflineTemplate(idea, base, 1500, now).Generate(context.Background(), "")
	require.NoError(t, err)
	b, err := NewOfflineTemplate(idea, base, 1500, now).Generate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, a, b, "same inputs must render byte-identical documents")
}

func TestOfflineTemplateDocument(t *testing.T) {
	base := kb.MustLoad()
	now := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)

	for _, cat := range model.Categories() {
		doc := NewOfflineTemplate(testIdea(cat), base, 1500, now).Document()

		require.NoError(t, article.Validate(doc.Frontmatter), "category %s", cat)
		assert.Equal(t, cat, doc.Frontmatter.Category)
		assert.GreaterOrEqual(t, article.WordCount(doc.Body), 1500, "category %s", cat)

		// pubDate is normalized to UTC midnight of the run day
		assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), doc.Frontmatter.PubDate)

		// keywords deduplicate case-insensitively
		assert.Equal(t, []string{"flowctl", "data sync"}, doc.Frontmatter.Keywords)
		assert.LessOrEqual(t, len(doc.Frontmatter.Sources), 3)

		for _, sec := range base.SectionsFor(cat) {
			assert.Contains(t, doc.Body, sec, "category %s missing section %q", cat)
		}
	}
}

func TestOfflineTemplateRenderParses(t *testing.T) {
	base := kb.MustLoad()
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	raw, err := NewOfflineTemplate(testIdea(model.CategoryGuide), base, 1500, now).Generate(context.Background(), "ignored")
	require.NoError(t, err)

	fmRaw, body := article.Split(raw)
	require.NotEmpty(t, fmRaw)
	fm, err := article.Parse(fmRaw)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGuide, fm.Category)
	assert.Contains(t, body, "```bash")
}

func TestFitTitle(t *testing.T) {
	assert.Equal(t, "Schema Drift with Flowctl", fitTitle("Schema Drift", "Flowctl"))

	long := fitTitle(strings.Repeat("Flowctl sync patterns ", 5), "Flowctl")
	assert.LessOrEqual(t, len([]rune(long)), article.MaxTitleLen)
	assert.False(t, strings.HasSuffix(long, " "))
}

func TestFitDescriptionBounds(t *testing.T) {
	base := kb.MustLoad()
	for _, cat := range model.Categories() {
		desc := fitDescription(testIdea(cat), base)
		n := len([]rune(desc))
		assert.GreaterOrEqual(t, n, article.MinDescriptionLen, "category %s: %q", cat, desc)
		assert.LessOrEqual(t, n, article.MaxDescriptionLen, "category %s: %q", cat, desc)
	}
}

func TestDedupKeywords(t *testing.T) {
	out := dedupKeywords([]string{"a", "A", " b ", "", "c", "d"}, 3)
	assert.Equal(t, []string{"a", "b", "c"}, out)
}
