package domain

import (
	"context"
	"log/slog"
)

// Surface source labels recorded in SurfaceInfo.
const (
	SurfaceSourceUSGS     = "usgs_api"
	SurfaceSourceFallback = "fallback_default_land"
)

// ElevationProvider resolves ground elevation at a coordinate.
type ElevationProvider interface {
	// ElevationAt returns the elevation in meters above sea level.
	ElevationAt(ctx context.Context, lat, lon float64) (float64, error)
}

// ClassifySurface decides whether the impact point is water. If provider is
// nil or the lookup fails, the point is assumed to be land and the source
// label records the fallback (graceful degradation).
func ClassifySurface(ctx context.Context, lat, lon float64, provider ElevationProvider, logger *slog.Logger) SurfaceInfo {
	if provider == nil {
		return SurfaceInfo{IsWater: false, Source: SurfaceSourceFallback}
	}

	elevationM, err := provider.ElevationAt(ctx, lat, lon)
	if err != nil {
		logger.Warn("elevation lookup failed",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		return SurfaceInfo{IsWater: false, Source: SurfaceSourceFallback}
	}

	return SurfaceInfo{
		IsWater:    elevationM <= 0,
		Source:     SurfaceSourceUSGS,
		ElevationM: &elevationM,
	}
}
