package publish

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"contentsmith/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(slug string) model.ArticleDocument {
	return model.ArticleDocument{
		Slug: slug,
		Frontmatter: model.Frontmatter{
			Title:       "Syncing PostgreSQL to S3 with Flowctl",
			Description: strings.Repeat("Learn how to move data reliably. ", 4) + "Covers setup and checks.",
			PubDate:     time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			Category:    model.CategoryTutorial,
			ReadingTime: 8,
			Author:      "Flowctl Team",
		},
		Body:     "# Heading\n\nBody text.\n",
		Provider: "offline-template",
	}
}

func newPublisher(t *testing.T) *Publisher {
	dir := t.TempDir()
	return &Publisher{
		OutputDir:       filepath.Join(dir, "articles"),
		SlugLogFile:     filepath.Join(dir, "generated-log.json"),
		AttributionFile: filepath.Join(dir, "attributions.json"),
	}
}

func TestPublishWritesFile(t *testing.T) {
	p := newPublisher(t)
	path, err := p.Publish(testDoc("postgres-to-s3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.OutputDir, "postgres-to-s3.md"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "---\n"))
	assert.Contains(t, string(b), "# Heading")
}

func TestPublishBacksUpExisting(t *testing.T) {
	p := newPublisher(t)
	doc := testDoc("postgres-to-s3")

	first, err := p.Publish(doc)
	require.NoError(t, err)
	original, err := os.ReadFile(first)
	require.NoError(t, err)

	doc.Body = "# Heading\n\nRevised body.\n"
	_, err = p.Publish(doc)
	require.NoError(t, err)

	bak, err := os.ReadFile(first + ".bak")
	require.NoError(t, err)
	assert.Equal(t, original, bak, "backup must hold the pre-rewrite content")

	current, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(current), "Revised body")
}

func TestSlugLog(t *testing.T) {
	p := newPublisher(t)

	slugs, err := p.LoadSlugLog()
	require.NoError(t, err)
	assert.Empty(t, slugs)

	require.NoError(t, p.AppendSlug("zeta"))
	require.NoError(t, p.AppendSlug("alpha"))
	require.NoError(t, p.AppendSlug("zeta")) // duplicate is a no-op

	slugs, err = p.LoadSlugLog()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, slugs)

	// the file is a plain JSON array
	b, err := os.ReadFile(p.SlugLogFile)
	require.NoError(t, err)
	var raw []string
	require.NoError(t, json.Unmarshal(b, &raw))
}

func TestRecordAttributionOverwrites(t *testing.T) {
	p := newPublisher(t)

	require.NoError(t, p.RecordAttribution("postgres-to-s3", model.Attribution{Source: "picsum-seed", Seed: "a"}))
	require.NoError(t, p.RecordAttribution("postgres-to-s3", model.Attribution{Source: "picsum-seed", Seed: "b"}))
	require.NoError(t, p.RecordAttribution("other", model.Attribution{Source: "picsum-seed", Seed: "c"}))

	b, err := os.ReadFile(p.AttributionFile)
	require.NoError(t, err)
	var m map[string]model.Attribution
	require.NoError(t, json.Unmarshal(b, &m))
	require.Len(t, m, 2)
	assert.Equal(t, "b", m["postgres-to-s3"].Seed)
}
