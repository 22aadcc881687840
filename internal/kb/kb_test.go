package kb

import (
	"testing"
	"time"

	"contentsmith/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Flowctl", base.Product.Name)
	assert.NotEmpty(t, base.Product.Facts)
	assert.NotEmpty(t, base.Keywords.Weighted)
	assert.NotEmpty(t, base.Topics)
	assert.NotEmpty(t, base.AllowedCommands)
	assert.NotEmpty(t, base.ExtendedNotes)

	// every topic template uses a valid category
	for name, tpl := range base.Topics {
		assert.True(t, tpl.Category.Valid(), "topic %s has category %q", name, tpl.Category)
		assert.NotEmpty(t, tpl.Keywords, "topic %s", name)
	}
	// every category has its section requirements
	for _, c := range model.Categories() {
		assert.NotEmpty(t, base.SectionsFor(c), "category %s", c)
	}
}

func TestCommandAllowed(t *testing.T) {
	base := MustLoad()

	assert.True(t, base.CommandAllowed("flowctl sync"))
	assert.True(t, base.CommandAllowed("flowctl plan --manifest sync.yaml"))
	assert.True(t, base.CommandAllowed("  flowctl verify  "))

	assert.False(t, base.CommandAllowed("flowctl nuke"))
	assert.False(t, base.CommandAllowed("flowctl syncer"), "prefix must stop at a word boundary")
	assert.False(t, base.CommandAllowed("otherctl sync"))
}

func TestExpandVars(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "What's New in Flowctl 2026", ExpandVars("What's New in Flowctl {.CurrentYear}", now))
	assert.Equal(t, "as of 2026-08-29", ExpandVars("as of {.CurrentDate}", now))
	assert.Equal(t, "no placeholders", ExpandVars("no placeholders", now))
}
