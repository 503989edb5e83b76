package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/macromind/v1/internal/ports/outbound"
)

// RedisCacheRepository implements the cache repository on Redis
type RedisCacheRepository struct {
	redis  *RedisClient
	logger *zap.Logger
}

// NewRedisCacheRepository creates a Redis-backed cache repository
func NewRedisCacheRepository(redis *RedisClient, logger *zap.Logger) outbound.CacheRepository {
	return &RedisCacheRepository{
		redis:  redis,
		logger: logger.Named("cache"),
	}
}

// Get retrieves a value; misses return nil, nil
func (r *RedisCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.redis.Get(ctx, key)
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with a TTL
func (r *RedisCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.redis.Set(ctx, key, value, ttl); err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a value
func (r *RedisCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.redis.Delete(ctx, key); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Exists checks whether a key is present
func (r *RedisCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	return r.redis.Exists(ctx, key)
}

// MemoryCacheRepository is an in-process fallback used when Redis is
// disabled, and in tests. Entries expire lazily on read.
type MemoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCacheRepository creates an in-process cache repository
func NewMemoryCacheRepository() outbound.CacheRepository {
	return &MemoryCacheRepository{entries: make(map[string]memoryEntry)}
}

func (m *MemoryCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.value, nil
}

func (m *MemoryCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	data, _ := m.Get(ctx, key)
	return data != nil, nil
}
