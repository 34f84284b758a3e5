package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"
)

// Request defaults applied when a field is absent from the payload.
const (
	DefaultDiameterM   = 100.0
	DefaultVelocityKms = 20.0
)

// ErrInvalidInput marks parameter validation failures. Handlers map it to a
// 400 response; everything else stays a 500.
var ErrInvalidInput = errors.New("invalid input")

// ImpactParams are the raw inputs to an assessment.
type ImpactParams struct {
	DiameterM   float64
	VelocityKms float64
	Lat         float64
	Lon         float64
	DensityKgM3 float64 // 0 means DefaultDensityKgM3
}

// Validate rejects physically meaningless parameters. Longitude is expected
// to be normalized before the call.
func (p ImpactParams) Validate() error {
	if p.DiameterM <= 0 {
		return fmt.Errorf("%w: diameter_m must be positive, got %g", ErrInvalidInput, p.DiameterM)
	}
	if p.VelocityKms <= 0 {
		return fmt.Errorf("%w: velocity_kms must be positive, got %g", ErrInvalidInput, p.VelocityKms)
	}
	return ValidateCoords(p.Lat, p.Lon)
}

// ImpactInput echoes the effective parameters back to the caller.
type ImpactInput struct {
	DiameterM   float64 `json:"diameter_m"`
	VelocityKms float64 `json:"velocity_kms"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// SurfaceInfo classifies the impact point as water or land.
// ElevationM is nil when the lookup did not resolve.
type SurfaceInfo struct {
	IsWater    bool     `json:"is_water"`
	Source     string   `json:"is_water_source"` // "usgs_api" or "fallback_default_land"
	ElevationM *float64 `json:"elevation_m"`
}

// ImpactResults holds the computed consequence figures.
type ImpactResults struct {
	EnergyJoules        float64 `json:"energy_joules"`
	CraterDiameterM     float64 `json:"crater_diameter_m"`
	CraterDiameterKm    float64 `json:"crater_diameter_km"`
	BlastRadiusKm       float64 `json:"blast_radius_km"`
	EarthquakeMagnitude float64 `json:"earthquake_magnitude"`
}

// VolcanicImpact reports whether the impact lands near a monitored volcano.
// Name and level are nil when no volcano is affected.
type VolcanicImpact struct {
	IsAffected  bool    `json:"is_affected"`
	VolcanoName *string `json:"volcano_name"`
	ImpactLevel *string `json:"impact_level"` // "high", "medium", or "low"
}

// CatastrophicImpact flags planet-scale impactors.
type CatastrophicImpact struct {
	Destruction bool    `json:"catastrophic_destruction"`
	Message     *string `json:"catastrophic_message"`
}

// Assessment is the full consequence document returned to API callers and
// published to the assessments topic.
type Assessment struct {
	ID           string                     `json:"id"`
	ComputedAt   time.Time                  `json:"computed_at"`
	Input        ImpactInput                `json:"input"`
	Location     SurfaceInfo                `json:"location"`
	Results      ImpactResults              `json:"results"`
	Volcanic     VolcanicImpact             `json:"volcanic_impact"`
	Catastrophic CatastrophicImpact         `json:"catastrophic_impact"`
	Footprint    *geojson.FeatureCollection `json:"geojson"`
}

// DamagePrediction is the model-based estimate of crater and blast size.
type DamagePrediction struct {
	CraterDiamKm  float64 `json:"crater_diam_km"`
	BlastRadiusKm float64 `json:"blast_radius_km"`
}

// DamagePredictor produces model-based damage estimates from impactor
// parameters. deltaKm is the close-approach miss distance feature.
type DamagePredictor interface {
	PredictDamage(diameterM, velocityKms, lat, lon, deltaKm float64) (DamagePrediction, error)
}

// CityImpact is the result of joining a cataloged asteroid against a city.
type CityImpact struct {
	Asteroid       string  `json:"asteroid"`
	City           string  `json:"city"`
	CraterDiamKm   float64 `json:"crater_diam_km"`
	BlastRadiusKm  float64 `json:"blast_radius_km"`
	DistanceKm     float64 `json:"distance_km"`
	IsCityAffected bool    `json:"is_city_affected"`
}
