// Package config loads CLI configuration from defaults, an optional
// config file and environment variables, in increasing order of
// precedence.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds every setting the CLI reads at startup.
type Config struct {
	Parser ParserConfig
	Cache  CacheConfig
	Log    LogConfig
}

// ParserConfig names the adapter to use and where it should look for its
// own backend (e.g. a decoder binary or shared library), when one exists
// outside this module.
type ParserConfig struct {
	Adapter    string
	BackendDir string
}

// CacheConfig controls the report cache database.
type CacheConfig struct {
	Enabled bool
	Path    string
}

// LogConfig controls structured log output.
type LogConfig struct {
	Level  string
	Format string
}

var globalConfig *Config

// Load reads configuration from configPath (or "replayctl.toml" in the
// current directory, $HOME/.replayctl or /etc/replayctl, when empty).
// Environment variables override file values, which override defaults;
// a missing file leaves defaults and environment variables only.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("replayctl")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.replayctl")
		v.AddConfigPath("/etc/replayctl")
	}

	v.SetDefault("parser.adapter", "null")
	v.SetDefault("parser.backend_dir", "")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", "replay_reports.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.AutomaticEnv()
	v.BindEnv("parser.adapter", "REPLAYCTL_PARSER_ADAPTER")
	v.BindEnv("cache.path", "REPLAYCTL_CACHE_PATH")
	v.BindEnv("log.level", "REPLAYCTL_LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		fmt.Fprintln(os.Stderr, "no config file found, using defaults and environment variables")
	}

	cfg := &Config{
		Parser: ParserConfig{
			Adapter:    v.GetString("parser.adapter"),
			BackendDir: v.GetString("parser.backend_dir"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			Path:    v.GetString("cache.path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the already-loaded global configuration.
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded; call config.Load() first")
	}
	return globalConfig
}
