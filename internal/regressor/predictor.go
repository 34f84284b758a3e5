package regressor

import (
	"fmt"
	"slices"

	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
)

// Input floors below which the model's training range gives no support.
const (
	MinDiameterM   = 1.0
	MinVelocityKms = 0.1
)

// DefaultDeltaKm is the close-approach distance feature used when a request
// does not supply one.
const DefaultDeltaKm = 1000.0

// Feature and target layouts every artifact must declare, in order.
var (
	featureNames = []string{"diameter_m", "velocity_kms", "lat", "lon", "delta_km"}
	targetNames  = []string{"crater_diam_km", "blast_radius_km"}
)

// Predictor implements domain.DamagePredictor on a loaded artifact.
type Predictor struct {
	artifact *Artifact
	forest   Forest
}

// NewPredictor wraps a validated artifact. Artifacts declaring a different
// feature or target layout are rejected rather than silently misread.
func NewPredictor(a *Artifact) (*Predictor, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if !slices.Equal(a.FeatureNames, featureNames) {
		return nil, fmt.Errorf("artifact feature layout %v does not match %v", a.FeatureNames, featureNames)
	}
	if !slices.Equal(a.TargetNames, targetNames) {
		return nil, fmt.Errorf("artifact target layout %v does not match %v", a.TargetNames, targetNames)
	}
	return &Predictor{artifact: a, forest: Forest{Trees: a.Trees}}, nil
}

// PredictDamage scales the features, evaluates the forest, and maps the
// output back to kilometers.
func (p *Predictor) PredictDamage(diameterM, velocityKms, lat, lon, deltaKm float64) (domain.DamagePrediction, error) {
	if diameterM < MinDiameterM {
		return domain.DamagePrediction{}, fmt.Errorf("%w: diameter_m must be at least %g, got %g",
			domain.ErrInvalidInput, MinDiameterM, diameterM)
	}
	if velocityKms < MinVelocityKms {
		return domain.DamagePrediction{}, fmt.Errorf("%w: velocity_kms must be at least %g, got %g",
			domain.ErrInvalidInput, MinVelocityKms, velocityKms)
	}

	scaled, err := p.artifact.ScalerX.Transform([]float64{diameterM, velocityKms, lat, lon, deltaKm})
	if err != nil {
		return domain.DamagePrediction{}, fmt.Errorf("predict damage: %w", err)
	}

	raw, err := p.forest.Predict(scaled)
	if err != nil {
		return domain.DamagePrediction{}, fmt.Errorf("predict damage: %w", err)
	}

	out, err := p.artifact.ScalerY.Inverse(raw)
	if err != nil {
		return domain.DamagePrediction{}, fmt.Errorf("predict damage: %w", err)
	}

	return domain.DamagePrediction{CraterDiamKm: out[0], BlastRadiusKm: out[1]}, nil
}
