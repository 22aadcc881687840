package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"contentsmith/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "contentsmith",
	Short: "Contentsmith CLI",
	Long:  "SEO article pipeline for Flowctl: collect signals, rank topics, synthesize, validate, publish.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func initConfig() {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/contentsmith")
		v.AddConfigPath("configs")
	}

	v.SetEnvPrefix("CONTENTSMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv alone does not surface unset keys through Unmarshal, so
	// every env-overridable key gets an explicit binding.
	for _, key := range []string{
		"app.log_level",
		"store.knowledge_file",
		"store.slug_log_file",
		"store.attribution_file",
		"store.output_dir",
		"collector.relevance_threshold",
		"synth.min_words",
		"synth.secondary.api_key",
		"synth.secondary.model",
		"validator.lenient",
		"redis.addr",
		"redis.password",
	} {
		_ = v.BindEnv(key)
	}
	// Short env names kept for CI compatibility.
	_ = v.BindEnv("ranker.max_ideas", "CONTENTSMITH_RANKER_MAX_IDEAS", "MAX_ARTICLES")
	_ = v.BindEnv("synth.offline", "CONTENTSMITH_SYNTH_OFFLINE", "OFFLINE_MODE")
	_ = v.BindEnv("synth.primary.api_key", "CONTENTSMITH_SYNTH_PRIMARY_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("synth.primary.model", "CONTENTSMITH_SYNTH_PRIMARY_MODEL", "OPENAI_MODEL")

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	appCfg.FillDefaults()
	setupLogger(appCfg.App.LogLevel)
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}
