package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// StoreConfig names the flat-file stores the pipeline reads and writes.
type StoreConfig struct {
	KnowledgeFile   string `mapstructure:"knowledge_file"`   // JSON knowledge store
	SlugLogFile     string `mapstructure:"slug_log_file"`    // JSON array of generated slugs
	AttributionFile string `mapstructure:"attribution_file"` // JSON map slug -> attribution
	OutputDir       string `mapstructure:"output_dir"`       // article markdown output
}

// SourceConfig describes one external signal source.
type SourceConfig struct {
	Name    string   `mapstructure:"name"`
	Kind    string   `mapstructure:"kind"` // hn | devto | reddit | blogindex
	BaseURL string   `mapstructure:"base_url"`
	Query   string   `mapstructure:"query"`
	Tags    []string `mapstructure:"tags"`
	Enabled bool     `mapstructure:"enabled"`
}

// CollectorConfig tunes the signal collector.
type CollectorConfig struct {
	Timeout            string `mapstructure:"timeout"` // per-request, duration string
	Retries            int    `mapstructure:"retries"`
	RelevanceThreshold int    `mapstructure:"relevance_threshold"`
	MaxItems           int    `mapstructure:"max_items"`
	WindowDays         int    `mapstructure:"window_days"`
	FetchInterval      string `mapstructure:"fetch_interval"` // serve mode
}

// RankerConfig tunes idea selection.
type RankerConfig struct {
	MaxIdeas int `mapstructure:"max_ideas"`
}

// OpenAIConfig is one chat-completion endpoint.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // optional, for compatible providers
}

// SynthConfig controls the content synthesizer and its provider chain.
type SynthConfig struct {
	Primary      OpenAIConfig `mapstructure:"primary"`
	Secondary    OpenAIConfig `mapstructure:"secondary"`
	Offline      bool         `mapstructure:"offline"` // skip generative providers entirely
	MinWords     int          `mapstructure:"min_words"`
	RequestDelay string       `mapstructure:"request_delay"` // fixed sleep between generative calls
	RunInterval  string       `mapstructure:"run_interval"`  // serve mode
}

// ValidatorConfig controls publication gating.
type ValidatorConfig struct {
	// Lenient lets a below-threshold overall score publish anyway; the
	// default (false) blocks it. Critical issues always block, independent
	// of this flag.
	Lenient bool `mapstructure:"lenient"`
}

// RedisConfig holds the optional fetch-cache connection.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL string `mapstructure:"cache_ttl"`
}

// Config is the top-level configuration structure.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Store     StoreConfig     `mapstructure:"store"`
	Sources   []SourceConfig  `mapstructure:"sources"`
	Collector CollectorConfig `mapstructure:"collector"`
	Ranker    RankerConfig    `mapstructure:"ranker"`
	Synth     SynthConfig     `mapstructure:"synth"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Store.KnowledgeFile == "" {
		c.Store.KnowledgeFile = "data/knowledge.json"
	}
	if c.Store.SlugLogFile == "" {
		c.Store.SlugLogFile = "data/generated-articles.json"
	}
	if c.Store.AttributionFile == "" {
		c.Store.AttributionFile = "data/image-attributions.json"
	}
	if c.Store.OutputDir == "" {
		c.Store.OutputDir = "content/articles"
	}
	if c.Collector.Timeout == "" {
		c.Collector.Timeout = "15s"
	}
	if c.Collector.Retries == 0 {
		c.Collector.Retries = 2
	}
	if c.Collector.RelevanceThreshold == 0 {
		c.Collector.RelevanceThreshold = 20
	}
	if c.Collector.MaxItems == 0 {
		c.Collector.MaxItems = 500
	}
	if c.Collector.WindowDays == 0 {
		c.Collector.WindowDays = 30
	}
	if c.Collector.FetchInterval == "" {
		c.Collector.FetchInterval = "1h"
	}
	if c.Ranker.MaxIdeas == 0 {
		c.Ranker.MaxIdeas = 3
	}
	if c.Synth.MinWords == 0 {
		c.Synth.MinWords = 1500
	}
	if c.Synth.RequestDelay == "" {
		c.Synth.RequestDelay = "2s"
	}
	if c.Synth.RunInterval == "" {
		c.Synth.RunInterval = "24h"
	}
	if c.Redis.CacheTTL == "" {
		c.Redis.CacheTTL = "30m"
	}
}
