// Package config loads the settings shared by the excore binaries.
//
// Environment variables (EXCORE_APPLICATION, EXCORE_LOG_LEVEL, ...) take precedence
// over the config file, which takes precedence over the defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/next-trace/scg-exception/logging"
	"github.com/next-trace/scg-exception/render"
	"github.com/next-trace/scg-exception/report"
)

const (
	DefaultEnvPrefix   = "EXCORE"
	DefaultApplication = "excore"
	DefaultFormat      = "json"
	DefaultLogLevel    = "info"

	configName = "excore"
)

// Config holds the binary settings.
type Config struct {
	Application   string    `mapstructure:"application"`
	HelpLink      string    `mapstructure:"help_link"`
	MaxChainDepth int       `mapstructure:"max_chain_depth"`
	Format        string    `mapstructure:"format"`
	Log           LogConfig `mapstructure:"log"`
}

// LogConfig mirrors logging.Config.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Logging converts to the logging package configuration.
func (c LogConfig) Logging() logging.Config {
	return logging.Config{Level: c.Level, Pretty: c.Pretty}
}

// Option defines a configuration option that can be passed to Load
type Option func(*options)

type options struct {
	configPath  string
	envPrefix   string
	searchPaths []string
}

// WithConfigFile specifies an explicit configuration file path.
// Unlike the default search, a missing explicit file is an error.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configPath = path }
}

// WithEnvPrefix specifies a custom environment variable prefix
// Default is "EXCORE"
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// WithSearchPaths replaces the directories searched for excore.{yaml,toml,json}.
func WithSearchPaths(paths ...string) Option {
	return func(o *options) { o.searchPaths = paths }
}

// Load reads and validates the configuration.
func Load(opts ...Option) (*Config, error) {
	o := options{
		envPrefix:   DefaultEnvPrefix,
		searchPaths: []string{".", "/etc/excore"},
	}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	v.SetDefault("application", DefaultApplication)
	v.SetDefault("help_link", "")
	v.SetDefault("max_chain_depth", report.DefaultMaxDepth)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.pretty", false)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.configPath != "" {
		v.SetConfigFile(o.configPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		for _, p := range o.searchPaths {
			v.AddConfigPath(p)
		}

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Application) == "" {
		return &ValidationError{Field: "application", Value: c.Application, Reason: "must not be empty"}
	}

	if c.MaxChainDepth < 0 {
		return &ValidationError{Field: "max_chain_depth", Value: c.MaxChainDepth, Reason: "must be zero (unbounded) or positive"}
	}

	if _, err := render.ParseFormat(c.Format); err != nil {
		return &ValidationError{Field: "format", Value: c.Format, Reason: "must be json or yaml"}
	}

	if !logging.ValidLevel(c.Log.Level) {
		return &ValidationError{Field: "log.level", Value: c.Log.Level, Reason: "unknown log level"}
	}

	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s=%v: %s", e.Field, e.Value, e.Reason)
}
