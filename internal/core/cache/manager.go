// Package cache stores capture results (OCR transcripts and vision
// extractions) keyed by image hash, so re-submitting the same photo does not
// re-run the expensive collaborator call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager is the capture-result cache. It always keeps an in-memory store;
// when a Redis address is configured the redis backend is consulted first.
type Manager struct {
	config *config.Config
	redis  *RedisStore
	mu     sync.RWMutex
	store  map[string]entry
	stats  stats
	done   chan struct{}
}

type entry struct {
	value     string
	expiresAt time.Time
}

type stats struct {
	hits      int64
	misses    int64
	evictions int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
}

// NewManager creates the cache manager. Returns nil when caching is
// disabled; callers treat a nil manager as a no-op.
func NewManager(cfg *config.Config) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("cache disabled")
		return nil
	}

	m := &Manager{
		config: cfg,
		store:  make(map[string]entry),
		done:   make(chan struct{}),
	}

	if cfg.Cache.RedisAddr != "" {
		redisStore, err := NewRedisStore(&cfg.Cache)
		if err != nil {
			common.LogWarn("redis cache unavailable, falling back to memory",
				zap.Error(err),
				zap.String("addr", cfg.Cache.RedisAddr),
			)
		} else {
			m.redis = redisStore
		}
	}

	go m.cleanupLoop()

	common.LogInfo("cache manager initialized",
		zap.Int("max_size", cfg.Cache.MaxSize),
		zap.Duration("ttl", cfg.Cache.TTL),
		zap.Duration("cleanup_interval", cfg.Cache.CleanupInterval),
		zap.Bool("redis", m.redis != nil),
	)

	return m
}

// Key derives a cache key from the operation kind and the image payload.
func Key(kind, imageData string) string {
	sum := sha256.Sum256([]byte(imageData))
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached value for key, or ("", false) on a miss.
func (m *Manager) Get(ctx context.Context, key string) (string, bool) {
	if m == nil {
		return "", false
	}

	if m.redis != nil {
		if val, ok := m.redis.Get(ctx, key); ok {
			m.mu.Lock()
			m.stats.hits++
			m.mu.Unlock()
			common.LogCacheHit("redis", key)
			return val, true
		}
	}

	m.mu.RLock()
	e, exists := m.store[key]
	m.mu.RUnlock()

	if !exists || time.Now().After(e.expiresAt) {
		m.mu.Lock()
		if exists {
			delete(m.store, key)
			m.stats.evictions++
		}
		m.stats.misses++
		m.mu.Unlock()
		common.LogCacheMiss("memory", key)
		return "", false
	}

	m.mu.Lock()
	m.stats.hits++
	m.mu.Unlock()
	common.LogCacheHit("memory", key)
	return e.value, true
}

// Set stores a value under key with the configured TTL.
func (m *Manager) Set(ctx context.Context, key, value string) {
	if m == nil {
		return
	}

	if m.redis != nil {
		m.redis.Set(ctx, key, value, m.config.Cache.TTL)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.config.Cache.MaxSize {
		m.evictOldestLocked()
	}
	m.store[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(m.config.Cache.TTL),
	}
}

// Snapshot returns current counters.
func (m *Manager) Snapshot() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
		Entries:   len(m.store),
	}
}

// Close stops the cleanup loop and releases the redis connection.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	close(m.done)
	if m.redis != nil {
		m.redis.Close()
	}
}

func (m *Manager) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for k, e := range m.store {
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey = k
			oldest = e.expiresAt
		}
	}
	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for k, e := range m.store {
				if now.After(e.expiresAt) {
					delete(m.store, k)
					m.stats.evictions++
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}
