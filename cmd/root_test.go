package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverlay(t *testing.T) {
	t.Setenv("CONTENTSMITH_STORE_OUTPUT_DIR", "/srv/articles")
	t.Setenv("CONTENTSMITH_REDIS_ADDR", "localhost:6380")
	t.Setenv("CONTENTSMITH_APP_LOG_LEVEL", "debug")
	t.Setenv("CONTENTSMITH_VALIDATOR_LENIENT", "true")
	t.Setenv("MAX_ARTICLES", "2")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

	initConfig()
	cfg := GetConfig()

	assert.Equal(t, "/srv/articles", cfg.Store.OutputDir)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.True(t, cfg.Validator.Lenient)
	assert.Equal(t, 2, cfg.Ranker.MaxIdeas)
	assert.Equal(t, "gpt-4o-mini", cfg.Synth.Primary.Model)
}
