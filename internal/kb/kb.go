package kb

import (
	_ "embed"
	"strings"
	"sync"

	"contentsmith/internal/model"

	"gopkg.in/yaml.v3"
)

// TopicTemplate maps a trending topic to a concrete article assignment.
type TopicTemplate struct {
	Title    string         `yaml:"title"` // may contain {.CurrentYear}
	Category model.Category `yaml:"category"`
	Keywords []string       `yaml:"keywords"`
}

// Base is the static knowledge the pipeline writes from: verified product
// facts, the topic-to-article mapping, per-category section requirements,
// and the command allow-list used by the accuracy rubric.
type Base struct {
	Product struct {
		Name    string   `yaml:"name"`
		Tagline string   `yaml:"tagline"`
		Site    string   `yaml:"site"`
		Facts   []string `yaml:"facts"`
	} `yaml:"product"`
	Keywords struct {
		Weighted map[string]int `yaml:"weighted"`
		Bonus    map[string]int `yaml:"bonus"`
	} `yaml:"keywords"`
	Topics           map[string]TopicTemplate    `yaml:"topics"`
	RequiredSections map[model.Category][]string `yaml:"required_sections"`
	AllowedCommands  []string                    `yaml:"allowed_commands"`
	ExtendedNotes    string                      `yaml:"extended_notes"`
}

//go:embed base.yaml
var baseYAML []byte

var (
	loadOnce sync.Once
	loaded   Base
	loadErr  error
)

// Load parses the embedded knowledge base. The result is cached; the
// embedded document is fixed at build time so a parse failure is a
// programming error surfaced on first use.
func Load() (Base, error) {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(baseYAML, &loaded)
	})
	return loaded, loadErr
}

// MustLoad is Load for callers that treat a broken embedded base as fatal.
func MustLoad() Base {
	b, err := Load()
	if err != nil {
		panic("kb: embedded base.yaml invalid: " + err.Error())
	}
	return b
}

// SectionsFor returns the required section headings for a category.
func (b Base) SectionsFor(c model.Category) []string {
	return b.RequiredSections[c]
}

// CommandAllowed reports whether a product sub-command (e.g. "flowctl sync")
// is in the verified allow-list. Matching is prefix-based so flags and
// arguments after the sub-command do not matter.
func (b Base) CommandAllowed(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	for _, a := range b.AllowedCommands {
		if cmd == a || strings.HasPrefix(cmd, a+" ") {
			return true
		}
	}
	return false
}
