// Package config loads matcher settings from a YAML or JSON file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-matcher/internal/embeddings"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. RESUME_MATCHER_EMBEDDING_PROVIDER
	EnvPrefix = "RESUME_MATCHER"
	// DefaultConfigName is looked up in the working directory when no file is given
	DefaultConfigName = "resume-matcher"
)

// Config is the full set of matcher settings
type Config struct {
	DatabaseURL string          `mapstructure:"database-url"`
	Log         LogConfig       `mapstructure:"log"`
	Embedding   EmbeddingConfig `mapstructure:"embedding"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Matching    MatchingConfig  `mapstructure:"matching"`
	Fetch       FetchConfig     `mapstructure:"fetch"`
}

// LogConfig selects the log encoding and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// EmbeddingConfig selects and sizes the embedding service
type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider" validate:"oneof=hashing gemini"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api-key" validate:"required_if=Provider gemini"`
	Dimension int    `mapstructure:"dimension" validate:"min=8,max=4096"`
	CacheSize int    `mapstructure:"cache-size" validate:"min=0"`
}

// RedisConfig enables the shared embedding cache when Addr is set
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" validate:"omitempty,hostname_port"`
	Password string        `mapstructure:"password"`
	TTL      time.Duration `mapstructure:"ttl" validate:"min=0"`
}

// MatchingConfig holds the scoring weights and batch parallelism
type MatchingConfig struct {
	Weights     types.Weights `mapstructure:"weights"`
	Concurrency int           `mapstructure:"concurrency" validate:"min=1,max=256"`
}

// FetchConfig controls job posting retrieval from URLs
type FetchConfig struct {
	UseBrowser bool          `mapstructure:"use-browser"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"min=0"`
}

// Loader layers defaults, a config file, RESUME_MATCHER_* variables and bound flags
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader with defaults and environment bindings in place
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Conventional names that predate the prefix
	_ = v.BindEnv("database-url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("embedding.api-key", EnvPrefix+"_EMBEDDING_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("redis.addr", EnvPrefix+"_REDIS_ADDR", "REDIS_ADDR")

	return &Loader{v: v}
}

func setDefaults(v *viper.Viper) {
	w := types.DefaultWeights()

	v.SetDefault("database-url", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("embedding.provider", embeddings.ProviderHashing)
	v.SetDefault("embedding.model", "")
	v.SetDefault("embedding.api-key", "")
	v.SetDefault("embedding.dimension", embeddings.DefaultDimension)
	v.SetDefault("embedding.cache-size", embeddings.DefaultCacheSize)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.ttl", embeddings.DefaultRedisTTL)
	v.SetDefault("matching.weights.semantic", w.Semantic)
	v.SetDefault("matching.weights.skill", w.Skill)
	v.SetDefault("matching.weights.experience", w.Experience)
	v.SetDefault("matching.concurrency", matching.DefaultConcurrency)
	v.SetDefault("fetch.use-browser", false)
	v.SetDefault("fetch.timeout", 30*time.Second)
}

// BindFlag lets a command-line flag override key when the flag is set
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %q", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads path when given, otherwise an optional resume-matcher.{yaml,json}
// in the working directory, and returns the validated result
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		l.v.AddConfigPath(".")
		l.v.SetConfigName(DefaultConfigName)
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFile returns the file the loader read, or "" when none was found
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Load is a convenience for NewLoader().Load(path)
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Validate checks field bounds and that the matching weights sum to 1
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := matching.ValidateWeights(c.Matching.Weights); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// EmbeddingOptions maps the embedding and redis settings onto the service factory options
func (c *Config) EmbeddingOptions() embeddings.Options {
	return embeddings.Options{
		Provider:      c.Embedding.Provider,
		Model:         c.Embedding.Model,
		APIKey:        c.Embedding.APIKey,
		Dimension:     c.Embedding.Dimension,
		CacheSize:     c.Embedding.CacheSize,
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisTTL:      c.Redis.TTL,
	}
}
