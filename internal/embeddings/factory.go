package embeddings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
)

// Provider names
const (
	ProviderHashing = "hashing"
	ProviderGemini  = "gemini"
)

// Options selects and configures an embedding provider
type Options struct {
	Provider  string
	Model     string
	APIKey    string
	Dimension int
	CacheSize int

	// RedisAddr enables the shared cache tier when set
	RedisAddr     string
	RedisPassword string
	RedisTTL      time.Duration
}

// Closer is implemented by services holding network resources
type Closer interface {
	Close() error
}

// Handle is a ready service plus the resources to release when done
type Handle struct {
	Service
	closers []Closer
}

// Close releases provider and cache connections
func (h *Handle) Close() error {
	var firstErr error
	for _, c := range h.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// New builds the configured provider wrapped in the cache chain
func New(ctx context.Context, opts Options, log *zap.Logger) (*Handle, error) {
	log = logger.OrNop(log)
	dim := opts.Dimension
	if dim <= 0 {
		dim = DefaultDimension
	}

	var (
		inner   Service
		model   string
		closers []Closer
	)

	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderHashing:
		inner = NewHashingService(dim)
		model = fmt.Sprintf("%s-%d", ProviderHashing, dim)
	case ProviderGemini:
		svc, err := NewGeminiService(ctx, opts.APIKey, opts.Model, dim, log)
		if err != nil {
			return nil, err
		}
		inner = svc
		model = svc.Model()
		closers = append(closers, svc)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", opts.Provider)
	}

	caches := []Cache{NewMemoryCache(opts.CacheSize)}
	if opts.RedisAddr != "" {
		rc := NewRedisCache(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisTTL, log)
		caches = append(caches, rc)
		closers = append(closers, rc)
	}

	log.Debug("embedding service ready", logger.EmbeddingFields(strings.ToLower(opts.Provider), model)...)
	return &Handle{
		Service: NewCachedService(inner, model, log, caches...),
		closers: closers,
	}, nil
}
