package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"contentsmith/internal/collect"
	"contentsmith/internal/config"
	"contentsmith/internal/kb"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/model"
	"contentsmith/internal/publish"
	"contentsmith/internal/source"
	"contentsmith/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSource struct {
	items []model.CollectedItem
}

func (s memSource) Name() string { return "mem" }

func (s memSource) Fetch(ctx context.Context) ([]model.CollectedItem, error) {
	return s.items, nil
}

func newTestPipeline(t *testing.T, maxIdeas int) (*Pipeline, string) {
	t.Helper()
	dir := t.TempDir()
	base := kb.MustLoad()
	now := func() time.Time { return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC) }

	store := knowledge.NewStore(filepath.Join(dir, "knowledge.json"))
	src := memSource{items: []model.CollectedItem{
		{ID: "a", Title: "Handling schema drift in flowctl data sync setups", URL: "https://example.com/a", Topics: []string{"schema-drift"}},
		{ID: "b", Title: "flowctl incremental data sync deep dive", URL: "https://example.com/b", Topics: []string{"incremental-sync"}},
	}}
	pub := &publish.Publisher{
		OutputDir:       filepath.Join(dir, "articles"),
		SlugLogFile:     filepath.Join(dir, "generated-log.json"),
		AttributionFile: filepath.Join(dir, "attributions.json"),
	}
	p := &Pipeline{
		Collector: &collect.Collector{
			Sources:   []source.Source{src},
			Store:     store,
			Base:      base,
			Threshold: 20,
			Window:    30 * 24 * time.Hour,
			MaxItems:  500,
			Now:       now,
		},
		Store:     store,
		Base:      base,
		Publisher: pub,
		Validator: validate.New(base),
		Providers: nil, // offline only
		MaxIdeas:  maxIdeas,
		MinWords:  1500,
		Strict:    true,
		Now:       now,
	}
	return p, dir
}

func TestPipelineOfflineRun(t *testing.T) {
	p, dir := newTestPipeline(t, 1)

	rep, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Published, 1)
	assert.Empty(t, rep.Rejected)
	assert.NotEmpty(t, rep.RunID)

	// exactly one article file on disk
	entries, err := os.ReadDir(filepath.Join(dir, "articles"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, rep.Published[0]+".md", entries[0].Name())

	// slug log and attribution map follow the publish
	slugs, err := p.Publisher.LoadSlugLog()
	require.NoError(t, err)
	assert.Equal(t, rep.Published, slugs)

	_, err = os.Stat(filepath.Join(dir, "attributions.json"))
	assert.NoError(t, err)
}

func TestPipelineSecondRunSkipsPublishedSlugs(t *testing.T) {
	p, dir := newTestPipeline(t, 3)

	first, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Published, 2, "both mapped topics publish on the first run")

	second, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second.Ideas, "published slugs must not be re-proposed")
	assert.Empty(t, second.Published)

	entries, err := os.ReadDir(filepath.Join(dir, "articles"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "second run must not add files")
}

func TestFromConfigDefaultsToStrictGating(t *testing.T) {
	var cfg config.Config
	cfg.FillDefaults()

	p, err := FromConfig(cfg, nil)
	require.NoError(t, err)
	assert.True(t, p.Strict, "an unset validator section must still gate on score")
}

func TestPipelineIdeaCap(t *testing.T) {
	p, _ := newTestPipeline(t, 1)

	rep, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.Ideas, 1)
	assert.Len(t, rep.Published, 1)
}
