package providers

import (
	"petcare/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func cacheConfig(enabled bool, size int, ttl time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
			TTL:     ttl,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, time.Minute), &providerTestLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, time.Minute), &providerTestLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_DefaultTTL(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 0), &providerTestLogger{})
	cp, ok := c.(*CacheProvider)
	assert.True(t, ok)
	assert.Equal(t, defaultCacheTTL, cp.ttl)
}

func TestCacheProvider_SetGetDel(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), &providerTestLogger{})

	c.Set("pet-storage", []byte(`{"version":1}`))
	val, ok := c.Get("pet-storage")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"version":1}`), val)

	c.Del("pet-storage")
	_, ok = c.Get("pet-storage")
	assert.False(t, ok)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), &providerTestLogger{})

	c.Set("k", []byte("v1"))
	c.Set("k", []byte("v2"))

	val, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
}

func TestCacheProvider_TTLExpiry(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Second), &providerTestLogger{})

	c.Set("k", []byte("v"))
	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(2100 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestInstrumentedCacheProvider_CountsHitsAndMisses(t *testing.T) {
	metrics := &countingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Minute), &providerTestLogger{}, metrics)

	c.Get("missing")
	c.Set("k", []byte("v"))
	c.Get("k")

	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestInstrumentedCacheProvider_DisabledSkipsMetrics(t *testing.T) {
	metrics := &countingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, time.Minute), &providerTestLogger{}, metrics)

	c.Get("k")
	assert.IsType(t, &noopCache{}, c)
	assert.Equal(t, 0, metrics.misses)
}

type countingMetrics struct {
	mockMetrics
	hits   int
	misses int
}

func (m *countingMetrics) IncCacheHits()   { m.hits++ }
func (m *countingMetrics) IncCacheMisses() { m.misses++ }
