package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(46.2, -122.18, 46.2, -122.18))
	})

	t.Run("london to paris", func(t *testing.T) {
		dist := Haversine(51.5074, -0.1278, 48.8566, 2.3522)
		assert.InDelta(t, 343.5, dist, 1.0)
	})

	t.Run("new york to los angeles", func(t *testing.T) {
		dist := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
		assert.InDelta(t, 3936, dist, 5.0)
	})

	t.Run("symmetric", func(t *testing.T) {
		forward := Haversine(19.4, -155.3, 46.85, -121.75)
		backward := Haversine(46.85, -121.75, 19.4, -155.3)
		assert.InDelta(t, forward, backward, 1e-9)
	})

	t.Run("crosses the antimeridian", func(t *testing.T) {
		// Suva to Apia is about 1150 km, not most of the way around the planet.
		dist := Haversine(-18.1416, 178.4419, -13.8507, -171.7514)
		assert.InDelta(t, 1150, dist, 25.0)
	})
}

func TestNormalizeLon(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		expected float64
	}{
		{"already normalized", -120.5, -120.5},
		{"zero", 0, 0},
		{"wraps positive overflow", 200, -160},
		{"wraps negative overflow", -200, 160},
		{"antimeridian maps west", 180, -180},
		{"negative antimeridian", -180, -180},
		{"full turn", 360, 0},
		{"double overflow", 540, -180},
		{"negative full turn", -360, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeLon(tt.lon), 1e-9)
		})
	}
}

func TestValidateCoords(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		assert.NoError(t, ValidateCoords(36.0, -120.0))
	})

	t.Run("boundary values", func(t *testing.T) {
		assert.NoError(t, ValidateCoords(90, 180))
		assert.NoError(t, ValidateCoords(-90, -180))
	})

	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"latitude too high", 90.01, 0},
		{"latitude too low", -90.01, 0},
		{"longitude too high", 0, 180.01},
		{"longitude too low", 0, -180.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoords(tt.lat, tt.lon)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
