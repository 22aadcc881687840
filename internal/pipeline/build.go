package pipeline

import (
	"fmt"
	"time"

	"contentsmith/internal/cache"
	"contentsmith/internal/collect"
	"contentsmith/internal/config"
	"contentsmith/internal/kb"
	"contentsmith/internal/knowledge"
	"contentsmith/internal/publish"
	"contentsmith/internal/source"
	"contentsmith/internal/synth"
	"contentsmith/internal/validate"
)

// BuildSources constructs the configured source clients.
func BuildSources(cfg config.Config, fc *cache.FetchCache) ([]source.Source, error) {
	timeout, err := time.ParseDuration(cfg.Collector.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid collector.timeout: %w", err)
	}
	retries := cfg.Collector.Retries
	var out []source.Source
	for _, sc := range cfg.Sources {
		if !sc.Enabled {
			continue
		}
		switch sc.Kind {
		case "hn":
			out = append(out, source.NewHNSearch(sc.Name, sc.BaseURL, sc.Query, sc.Tags, timeout, retries, fc))
		case "devto":
			out = append(out, source.NewDevTo(sc.Name, sc.BaseURL, sc.Query, sc.Tags, timeout, retries, fc))
		case "reddit":
			out = append(out, source.NewReddit(sc.Name, sc.BaseURL, sc.Query, sc.Tags, timeout, retries, fc))
		case "blogindex":
			out = append(out, source.NewBlogIndex(sc.Name, sc.BaseURL, sc.Tags, timeout, retries, fc))
		default:
			return nil, fmt.Errorf("unknown source kind %q for source %q", sc.Kind, sc.Name)
		}
	}
	return out, nil
}

// BuildCollector wires the signal collector from config.
func BuildCollector(cfg config.Config, base kb.Base, srcs []source.Source, store *knowledge.Store) *collect.Collector {
	return &collect.Collector{
		Sources:   srcs,
		Store:     store,
		Base:      base,
		Threshold: cfg.Collector.RelevanceThreshold,
		Window:    time.Duration(cfg.Collector.WindowDays) * 24 * time.Hour,
		MaxItems:  cfg.Collector.MaxItems,
	}
}

// BuildProviders assembles the generative provider chain in fallback
// order: primary, then secondary. Offline mode yields an empty chain so
// the synthesizer goes straight to the deterministic template.
func BuildProviders(cfg config.SynthConfig) []synth.Provider {
	if cfg.Offline {
		return nil
	}
	var out []synth.Provider
	if p := synth.NewOpenAI("openai-primary", cfg.Primary); p != nil {
		out = append(out, p)
	}
	if p := synth.NewOpenAI("openai-secondary", cfg.Secondary); p != nil {
		out = append(out, p)
	}
	return out
}

// FromConfig builds a complete pipeline from configuration.
func FromConfig(cfg config.Config, fc *cache.FetchCache) (*Pipeline, error) {
	base, err := kb.Load()
	if err != nil {
		return nil, err
	}
	srcs, err := BuildSources(cfg, fc)
	if err != nil {
		return nil, err
	}
	delay, err := time.ParseDuration(cfg.Synth.RequestDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid synth.request_delay: %w", err)
	}
	store := knowledge.NewStore(cfg.Store.KnowledgeFile)
	return &Pipeline{
		Collector: BuildCollector(cfg, base, srcs, store),
		Store:     store,
		Base:      base,
		Publisher: &publish.Publisher{
			OutputDir:       cfg.Store.OutputDir,
			SlugLogFile:     cfg.Store.SlugLogFile,
			AttributionFile: cfg.Store.AttributionFile,
		},
		Validator: validate.New(base),
		Providers: BuildProviders(cfg.Synth),
		MaxIdeas:  cfg.Ranker.MaxIdeas,
		MinWords:  cfg.Synth.MinWords,
		Delay:     delay,
		Strict:    !cfg.Validator.Lenient,
	}, nil
}
