package embeddings

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
)

// DefaultRedisTTL is how long vectors stay in Redis
const DefaultRedisTTL = 7 * 24 * time.Hour

// RedisCache is a shared second-tier vector cache. When Redis is unreachable
// it behaves as an always-missing cache and warns once.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger

	warnedUnavailable atomic.Bool
}

// NewRedisCache connects to addr and pings it. An unreachable server yields a
// cache that bypasses Redis rather than an error.
func NewRedisCache(ctx context.Context, addr, password string, ttl time.Duration, log *zap.Logger) *RedisCache {
	log = logger.WithFields(log, zap.String("redis_addr", addr))
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, bypassing embedding cache", zap.Error(err))
		_ = client.Close()
		return &RedisCache{ttl: ttl, log: log}
	}

	return &RedisCache{client: client, ttl: ttl, log: log}
}

// NewRedisCacheFromClient wraps an existing client
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisCache{client: client, ttl: ttl, log: logger.OrNop(log)}
}

// Available reports whether Redis is connected
func (r *RedisCache) Available() bool {
	return r != nil && r.client != nil
}

func (r *RedisCache) warnOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn("redis error, embedding cache degraded", zap.Error(err))
	}
}

// Get implements Cache
func (r *RedisCache) Get(ctx context.Context, key string) ([]float32, bool) {
	if !r.Available() {
		return nil, false
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warnOnce(err)
		}
		return nil, false
	}
	vec, ok := decodeVector(b)
	return vec, ok
}

// Set implements Cache
func (r *RedisCache) Set(ctx context.Context, key string, vec []float32) {
	if !r.Available() {
		return
	}
	if err := r.client.Set(ctx, key, encodeVector(vec), r.ttl).Err(); err != nil {
		r.warnOnce(err)
	}
}

// Close releases the Redis connection
func (r *RedisCache) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

// encodeVector packs float32s little-endian
func encodeVector(vec []float32) []byte {
	b := make([]byte, 4*len(vec))
	for i, x := range vec {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(x))
	}
	return b
}

func decodeVector(b []byte) ([]float32, bool) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, false
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return vec, true
}
