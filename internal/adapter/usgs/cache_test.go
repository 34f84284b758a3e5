package usgs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingProvider struct {
	calls     int
	elevation float64
	err       error
}

func (m *countingProvider) ElevationAt(_ context.Context, _, _ float64) (float64, error) {
	m.calls++
	return m.elevation, m.err
}

// --- CachedProvider tests ---

func TestCachedProvider_CacheHit(t *testing.T) {
	inner := &countingProvider{elevation: 1609.34}
	cached := NewCachedProvider(inner, 10, testMetrics())

	e1, err := cached.ElevationAt(context.Background(), 39.7392, -104.9847)
	require.NoError(t, err)
	assert.Equal(t, 1609.34, e1)

	e2, err := cached.ElevationAt(context.Background(), 39.7392, -104.9847)
	require.NoError(t, err)
	assert.Equal(t, 1609.34, e2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedProvider_DifferentPointsMiss(t *testing.T) {
	inner := &countingProvider{elevation: 100.0}
	cached := NewCachedProvider(inner, 10, testMetrics())

	_, _ = cached.ElevationAt(context.Background(), 39.7392, -104.9847)
	_, _ = cached.ElevationAt(context.Background(), 30.2672, -97.7431)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("service unavailable")}
	cached := NewCachedProvider(inner, 10, testMetrics())

	_, err := cached.ElevationAt(context.Background(), 39.7392, -104.9847)
	require.Error(t, err)

	_, err = cached.ElevationAt(context.Background(), 39.7392, -104.9847)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls, "failures should reach inner every time")
}

func TestCachedProvider_NearbyPointsDistinct(t *testing.T) {
	inner := &countingProvider{elevation: 55.5}
	cached := NewCachedProvider(inner, 10, testMetrics())

	_, _ = cached.ElevationAt(context.Background(), 39.000001, -104.0)
	_, _ = cached.ElevationAt(context.Background(), 39.000002, -104.0)

	assert.Equal(t, 2, inner.calls, "points differing within key precision are separate entries")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", 1.0)
	c.put("b", 2.0)

	value, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, value)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", 1.0)
	c.put("b", 2.0)
	c.put("c", 3.0) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	value, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, value)

	value, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 3.0, value)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", 1.0)
	c.put("b", 2.0)

	// Access "a" to promote it
	c.get("a")

	// Insert "c", which should evict "b" (LRU), not "a"
	c.put("c", 3.0)

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", 1.0)
	c.put("a", 9.0)

	value, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 9.0, value)
}
