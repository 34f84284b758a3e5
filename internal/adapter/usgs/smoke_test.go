//go:build usgs

package usgs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/couchcryptid/asteroid-impact-api/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real USGS EPQS API, which covers the United States only.
// Run with: go test -tags=usgs ./internal/adapter/usgs/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://nationalmap.gov/epqs",
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_ElevationAt_Denver(t *testing.T) {
	c := smokeClient(t)

	elevation, err := c.ElevationAt(context.Background(), 39.7392, -104.9847)
	require.NoError(t, err)

	assert.InDelta(t, 1600.0, elevation, 50.0, "Denver sits around a mile high")
}

func TestSmoke_ElevationAt_DeathValley(t *testing.T) {
	c := smokeClient(t)

	elevation, err := c.ElevationAt(context.Background(), 36.2297, -116.7673)
	require.NoError(t, err)

	assert.Less(t, elevation, 0.0, "Badwater Basin is below sea level")
}

func TestSmoke_ElevationAt_OpenOcean(t *testing.T) {
	c := smokeClient(t)

	// Mid-Pacific, outside EPQS coverage.
	_, err := c.ElevationAt(context.Background(), 10.0, -150.0)
	if err != nil {
		assert.True(t, errors.Is(err, ErrNoData), "expected the no-data sentinel, got: %v", err)
	}
}

func TestSmoke_CachedProvider(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedProvider(c, 10, observability.NewMetricsForTesting())

	// First call: cache miss, real API call.
	e1, err := cached.ElevationAt(context.Background(), 35.1983, -111.6513)
	require.NoError(t, err)
	assert.Greater(t, e1, 2000.0, "Flagstaff is high desert")

	// Second call: cache hit, no API call.
	e2, err := cached.ElevationAt(context.Background(), 35.1983, -111.6513)
	require.NoError(t, err)
	assert.Equal(t, e1, e2)
}
