package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillDefaults(t *testing.T) {
	var c Config
	c.FillDefaults()

	assert.Equal(t, "info", c.App.LogLevel)
	assert.Equal(t, "data/knowledge.json", c.Store.KnowledgeFile)
	assert.Equal(t, "content/articles", c.Store.OutputDir)
	assert.Equal(t, "15s", c.Collector.Timeout)
	assert.Equal(t, 20, c.Collector.RelevanceThreshold)
	assert.Equal(t, 500, c.Collector.MaxItems)
	assert.Equal(t, 30, c.Collector.WindowDays)
	assert.Equal(t, 3, c.Ranker.MaxIdeas)
	assert.Equal(t, 1500, c.Synth.MinWords)
	assert.Equal(t, "2s", c.Synth.RequestDelay)
	assert.Equal(t, "30m", c.Redis.CacheTTL)
	assert.False(t, c.Validator.Lenient, "score gating must be strict out of the box")
}

func TestFillDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{
		App:       AppConfig{LogLevel: "debug"},
		Ranker:    RankerConfig{MaxIdeas: 1},
		Collector: CollectorConfig{RelevanceThreshold: 40},
	}
	c.FillDefaults()

	assert.Equal(t, "debug", c.App.LogLevel)
	assert.Equal(t, 1, c.Ranker.MaxIdeas)
	assert.Equal(t, 40, c.Collector.RelevanceThreshold)
}
