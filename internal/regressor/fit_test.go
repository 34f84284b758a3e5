package regressor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampData builds n samples of y = 2x over [0, 1).
func rampData(n int) (features, targets [][]float64) {
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		features = append(features, []float64{x})
		targets = append(targets, []float64{2 * x})
	}
	return features, targets
}

func TestFit(t *testing.T) {
	features, targets := rampData(50)
	opts := FitOptions{NumTrees: 20, MaxDepth: 8, MinLeaf: 1, Seed: 42}

	forest, err := Fit(features, targets, opts)
	require.NoError(t, err)
	require.Len(t, forest.Trees, 20)

	t.Run("recovers the ramp in-sample", func(t *testing.T) {
		for _, x := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
			pred, err := forest.Predict([]float64{x})
			require.NoError(t, err)
			assert.InDelta(t, 2*x, pred[0], 0.15, "at x=%g", x)
		}
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		again, err := Fit(features, targets, opts)
		require.NoError(t, err)

		for _, x := range []float64{0.2, 0.6} {
			a, err := forest.Predict([]float64{x})
			require.NoError(t, err)
			b, err := again.Predict([]float64{x})
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	})
}

func TestFit_MultiTarget(t *testing.T) {
	// Two targets with opposite slopes exercise the shared-split scoring.
	var features, targets [][]float64
	for i := 0; i < 40; i++ {
		x := float64(i) / 40.0
		features = append(features, []float64{x})
		targets = append(targets, []float64{x, 1 - x})
	}

	forest, err := Fit(features, targets, FitOptions{NumTrees: 10, MaxDepth: 6, MinLeaf: 2, Seed: 7})
	require.NoError(t, err)

	pred, err := forest.Predict([]float64{0.5})
	require.NoError(t, err)
	require.Len(t, pred, 2)
	assert.InDelta(t, 0.5, pred[0], 0.15)
	assert.InDelta(t, 0.5, pred[1], 0.15)
}

func TestFit_ConstantTarget(t *testing.T) {
	features := [][]float64{{0}, {0.5}, {1}}
	targets := [][]float64{{3}, {3}, {3}}

	forest, err := Fit(features, targets, FitOptions{NumTrees: 3, MaxDepth: 4, MinLeaf: 1, Seed: 1})
	require.NoError(t, err)

	pred, err := forest.Predict([]float64{0.7})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, pred[0], 1e-9)
}

func TestFit_Errors(t *testing.T) {
	features, targets := rampData(10)

	t.Run("no samples", func(t *testing.T) {
		_, err := Fit(nil, nil, FitOptions{NumTrees: 1, MaxDepth: 1, MinLeaf: 1})
		require.Error(t, err)
	})

	t.Run("row count mismatch", func(t *testing.T) {
		_, err := Fit(features, targets[:5], FitOptions{NumTrees: 1, MaxDepth: 1, MinLeaf: 1})
		require.Error(t, err)
	})

	t.Run("non-positive options", func(t *testing.T) {
		_, err := Fit(features, targets, FitOptions{NumTrees: 0, MaxDepth: 1, MinLeaf: 1})
		require.Error(t, err)
	})

	t.Run("ragged rows", func(t *testing.T) {
		bad := [][]float64{{1, 2}, {3}}
		_, err := Fit(bad, [][]float64{{1}, {2}}, FitOptions{NumTrees: 1, MaxDepth: 1, MinLeaf: 1})
		require.Error(t, err)
	})
}
