package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/embeddings"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, embeddings.ProviderHashing, cfg.Embedding.Provider)
	assert.Equal(t, embeddings.DefaultDimension, cfg.Embedding.Dimension)
	assert.Equal(t, embeddings.DefaultCacheSize, cfg.Embedding.CacheSize)
	assert.Equal(t, embeddings.DefaultRedisTTL, cfg.Redis.TTL)
	assert.Equal(t, types.DefaultWeights(), cfg.Matching.Weights)
	assert.Equal(t, matching.DefaultConcurrency, cfg.Matching.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.Log.JSON)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "matcher.yaml", `
database-url: postgres://localhost:5432/matcher
log:
  json: true
embedding:
  provider: gemini
  api-key: test-key
  dimension: 768
redis:
  addr: localhost:6379
  ttl: 48h
matching:
  weights:
    semantic: 0.5
    skill: 0.3
    experience: 0.2
  concurrency: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/matcher", cfg.DatabaseURL)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, embeddings.ProviderGemini, cfg.Embedding.Provider)
	assert.Equal(t, 768, cfg.Embedding.Dimension)
	assert.Equal(t, 48*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, types.Weights{Semantic: 0.5, Skill: 0.3, Experience: 0.2}, cfg.Matching.Weights)
	assert.Equal(t, 4, cfg.Matching.Concurrency)

	opts := cfg.EmbeddingOptions()
	assert.Equal(t, "test-key", opts.APIKey)
	assert.Equal(t, "localhost:6379", opts.RedisAddr)
	assert.Equal(t, 768, opts.Dimension)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "matcher.json", `{"embedding": {"dimension": 128}, "fetch": {"use-browser": true}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Embedding.Dimension)
	assert.True(t, cfg.Fetch.UseBrowser)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RESUME_MATCHER_EMBEDDING_DIMENSION", "256")
	t.Setenv("RESUME_MATCHER_MATCHING_CONCURRENCY", "2")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Embedding.Dimension)
	assert.Equal(t, 2, cfg.Matching.Concurrency)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "from-env", cfg.Embedding.APIKey)
}

func TestLoad_FlagOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RESUME_MATCHER_LOG_DEBUG", "false")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--debug"}))

	l := NewLoader()
	require.NoError(t, l.BindFlag("log.debug", flags.Lookup("debug")))
	assert.Error(t, l.BindFlag("log.json", flags.Lookup("missing")))

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Log.Debug)
	assert.Empty(t, l.ConfigFile())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := Load("/nonexistent/path/config.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "bad.json", "{ invalid json }"))
		assert.Error(t, err)
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := Load(writeConfig(t, "bad.yaml", "embedding:\n  provider: openai\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config error")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Embedding: EmbeddingConfig{Provider: embeddings.ProviderHashing, Dimension: 384},
			Matching:  MatchingConfig{Weights: types.DefaultWeights(), Concurrency: 8},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown provider", mutate: func(c *Config) { c.Embedding.Provider = "openai" }, wantErr: "Provider"},
		{name: "gemini without key", mutate: func(c *Config) { c.Embedding.Provider = embeddings.ProviderGemini }, wantErr: "APIKey"},
		{name: "gemini with key", mutate: func(c *Config) {
			c.Embedding.Provider = embeddings.ProviderGemini
			c.Embedding.APIKey = "k"
		}},
		{name: "tiny dimension", mutate: func(c *Config) { c.Embedding.Dimension = 2 }, wantErr: "Dimension"},
		{name: "bad redis address", mutate: func(c *Config) { c.Redis.Addr = "not an address" }, wantErr: "Addr"},
		{name: "zero concurrency", mutate: func(c *Config) { c.Matching.Concurrency = 0 }, wantErr: "Concurrency"},
		{name: "weights out of range", mutate: func(c *Config) { c.Matching.Weights.Skill = 1.5 }, wantErr: "Skill"},
		{name: "weights do not sum to one", mutate: func(c *Config) {
			c.Matching.Weights = types.Weights{Semantic: 0.2, Skill: 0.2, Experience: 0.2}
		}, wantErr: "sum to 1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
