package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyVolcanicImpact(t *testing.T) {
	t.Run("direct hit on a vent", func(t *testing.T) {
		result := ClassifyVolcanicImpact(46.2, -122.18, 1e18)

		assert.True(t, result.IsAffected)
		require.NotNil(t, result.VolcanoName)
		assert.Equal(t, "Mount St. Helens", *result.VolcanoName)
		require.NotNil(t, result.ImpactLevel)
		assert.Equal(t, "medium", *result.ImpactLevel)
	})

	t.Run("within the radius but off center", func(t *testing.T) {
		// About 44 km north of the St. Helens vent.
		result := ClassifyVolcanicImpact(46.6, -122.18, 1e15)

		assert.True(t, result.IsAffected)
		require.NotNil(t, result.VolcanoName)
		assert.Equal(t, "Mount St. Helens", *result.VolcanoName)
	})

	t.Run("rainier is distinct from st helens", func(t *testing.T) {
		result := ClassifyVolcanicImpact(46.85, -121.75, 1e15)

		assert.True(t, result.IsAffected)
		require.NotNil(t, result.VolcanoName)
		assert.Equal(t, "Mount Rainier", *result.VolcanoName)
	})

	t.Run("open ocean", func(t *testing.T) {
		result := ClassifyVolcanicImpact(0, 0, 1e20)

		assert.False(t, result.IsAffected)
		assert.Nil(t, result.VolcanoName)
		assert.Nil(t, result.ImpactLevel)
	})
}

func TestImpactLevelForEnergy(t *testing.T) {
	tests := []struct {
		name         string
		energyJoules float64
		expected     string
	}{
		{"above high threshold", 2e19, "high"},
		{"exactly high threshold stays medium", 1e19, "medium"},
		{"above medium threshold", 5e17, "medium"},
		{"exactly medium threshold stays low", 1e17, "low"},
		{"small impact", 1e12, "low"},
		{"zero energy", 0, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, impactLevelForEnergy(tt.energyJoules))
		})
	}
}
