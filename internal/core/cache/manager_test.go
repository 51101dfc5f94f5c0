package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-parser/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         3,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
	}
}

func TestNewManagerDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false
	assert.Nil(t, NewManager(cfg))
}

func TestNilManagerIsNoOp(t *testing.T) {
	var m *Manager
	_, ok := m.Get(context.Background(), "k")
	assert.False(t, ok)
	m.Set(context.Background(), "k", "v")
	assert.Equal(t, Stats{}, m.Snapshot())
	m.Close()
}

func TestManagerGetSet(t *testing.T) {
	m := NewManager(testConfig())
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()

	_, ok := m.Get(ctx, "fehlt")
	assert.False(t, ok)

	m.Set(ctx, "k1", "wert")
	val, ok := m.Get(ctx, "k1")
	assert.True(t, ok)
	assert.Equal(t, "wert", val)

	stats := m.Snapshot()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestManagerEvictsAtMaxSize(t *testing.T) {
	m := NewManager(testConfig())
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		m.Set(ctx, fmt.Sprintf("k%d", i), "v")
	}

	stats := m.Snapshot()
	assert.LessOrEqual(t, stats.Entries, 3)
	assert.GreaterOrEqual(t, stats.Evictions, int64(2))
}

func TestManagerExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.TTL = time.Millisecond
	m := NewManager(cfg)
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	m.Set(ctx, "k", "v")
	time.Sleep(5 * time.Millisecond)

	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
	assert.GreaterOrEqual(t, m.Snapshot().Evictions, int64(1))
}

func TestKey(t *testing.T) {
	a := Key("ocr", "bilddaten")
	b := Key("ocr", "bilddaten")
	c := Key("vision", "bilddaten")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "ocr:")
	assert.Len(t, a, len("ocr:")+64)
}
