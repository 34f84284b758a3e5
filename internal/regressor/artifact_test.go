package regressor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArtifact(t *testing.T) {
	a, err := LoadArtifact(filepath.Join("testdata", "model.json"))
	require.NoError(t, err)

	assert.Equal(t, []string{"diameter_m", "velocity_kms", "lat", "lon", "delta_km"}, a.FeatureNames)
	assert.Equal(t, []string{"crater_diam_km", "blast_radius_km"}, a.TargetNames)
	require.Len(t, a.Trees, 1)

	p, err := NewPredictor(a)
	require.NoError(t, err)

	// Small impactor scales below the stump threshold.
	pred, err := p.PredictDamage(50, 20, 0, 0, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pred.CraterDiamKm, 1e-9)
	assert.InDelta(t, 200.0, pred.BlastRadiusKm, 1e-9)

	// Large impactor routes to the other leaf.
	pred, err = p.PredictDamage(500, 20, 0, 0, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, pred.CraterDiamKm, 1e-9)
	assert.InDelta(t, 600.0, pred.BlastRadiusKm, 1e-9)
}

func TestLoadArtifact_Missing(t *testing.T) {
	_, err := LoadArtifact(filepath.Join("testdata", "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load artifact")
}

func TestLoadArtifact_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadArtifact(path)
	require.Error(t, err)
}

func TestSaveArtifactRoundTrip(t *testing.T) {
	original, err := LoadArtifact(filepath.Join("testdata", "model.json"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "model.json")
	require.NoError(t, SaveArtifact(path, original))

	reloaded, err := LoadArtifact(path)
	require.NoError(t, err)

	// The reloaded model must predict identically.
	po, err := NewPredictor(original)
	require.NoError(t, err)
	pr, err := NewPredictor(reloaded)
	require.NoError(t, err)

	a, err := po.PredictDamage(320, 25, 40, -75, 50000)
	require.NoError(t, err)
	b, err := pr.PredictDamage(320, 25, 40, -75, 50000)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestArtifactValidate(t *testing.T) {
	valid := func() *Artifact {
		return &Artifact{
			FeatureNames: []string{"diameter_m", "velocity_kms", "lat", "lon", "delta_km"},
			TargetNames:  []string{"crater_diam_km", "blast_radius_km"},
			ScalerX:      MinMaxScaler{Min: make([]float64, 5), Max: []float64{1, 1, 1, 1, 1}},
			ScalerY:      MinMaxScaler{Min: make([]float64, 2), Max: []float64{1, 1}},
			Trees:        []Tree{{Nodes: []TreeNode{{Left: -1, Right: -1, Value: []float64{0, 0}}}}},
		}
	}

	t.Run("valid artifact", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("no trees", func(t *testing.T) {
		a := valid()
		a.Trees = nil
		require.Error(t, a.Validate())
	})

	t.Run("empty tree", func(t *testing.T) {
		a := valid()
		a.Trees = append(a.Trees, Tree{})
		err := a.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("scaler width mismatch", func(t *testing.T) {
		a := valid()
		a.ScalerX.Min = []float64{0}
		require.Error(t, a.Validate())
	})

	t.Run("no feature names", func(t *testing.T) {
		a := valid()
		a.FeatureNames = nil
		require.Error(t, a.Validate())
	})
}
