package embeddings

import (
	"context"
	"encoding/hex"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/jonathan/resume-matcher/internal/logger"
)

// DefaultCacheSize bounds the in-process cache
const DefaultCacheSize = 1000

// Cache stores vectors by key. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, vec []float32)
}

// cacheKey namespaces a text digest by model so providers never share entries
func cacheKey(model, text string) string {
	sum := blake2b.Sum256([]byte(text))
	return "emb:" + model + ":" + hex.EncodeToString(sum[:])
}

// MemoryCache is a bounded FIFO cache: once full, the oldest insertion is evicted
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]float32
	order    []string
}

// NewMemoryCache returns a cache holding at most capacity vectors, DefaultCacheSize when not positive
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string][]float32, capacity),
	}
}

// Get implements Cache
func (c *MemoryCache) Get(_ context.Context, key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vec, ok := c.entries[key]
	return vec, ok
}

// Set implements Cache
func (c *MemoryCache) Set(_ context.Context, key string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = vec
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = vec
	c.order = append(c.order, key)
}

// Len returns the number of cached vectors
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CachedService wraps a Service with a chain of caches, consulted in order.
// A hit in a later cache is copied into the earlier ones.
type CachedService struct {
	inner  Service
	model  string
	caches []Cache
	log    *zap.Logger
}

// NewCachedService wraps inner. model namespaces the cache keys.
func NewCachedService(inner Service, model string, log *zap.Logger, caches ...Cache) *CachedService {
	return &CachedService{
		inner:  inner,
		model:  model,
		caches: caches,
		log:    logger.OrNop(log),
	}
}

// Dimension implements Service
func (s *CachedService) Dimension() int {
	return s.inner.Dimension()
}

// Encode implements Service
func (s *CachedService) Encode(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EncodeBatch implements Service. Only cache misses reach the wrapped
// service, in a single batch call.
func (s *CachedService) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([][]float32, len(texts))
	var missTexts []string
	pending := make(map[string][]int)

	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			out[i] = Zero(s.Dimension())
			continue
		}
		key := cacheKey(s.model, text)
		if vec, ok := s.lookup(ctx, key); ok {
			out[i] = vec
			continue
		}
		if idx, ok := pending[key]; ok {
			pending[key] = append(idx, i)
			continue
		}
		pending[key] = []int{i}
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	s.log.Debug("encoding cache misses", zap.Int("misses", len(missTexts)), zap.Int("total", len(texts)))
	vecs, err := s.inner.EncodeBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, &APICallError{Message: "embedding count does not match input count"}
	}

	for j, vec := range vecs {
		key := cacheKey(s.model, missTexts[j])
		for _, c := range s.caches {
			c.Set(ctx, key, vec)
		}
		for _, i := range pending[key] {
			out[i] = vec
		}
	}
	return out, nil
}

func (s *CachedService) lookup(ctx context.Context, key string) ([]float32, bool) {
	for i, c := range s.caches {
		vec, ok := c.Get(ctx, key)
		if !ok {
			continue
		}
		for _, earlier := range s.caches[:i] {
			earlier.Set(ctx, key, vec)
		}
		return vec, true
	}
	return nil, false
}
