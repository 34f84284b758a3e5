package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// NewAssessment computes the full consequence document for one impact.
// Longitude is normalized before validation; density 0 takes the default.
// The elevation provider may be nil, in which case the surface check falls
// back to land.
func NewAssessment(ctx context.Context, params ImpactParams, elevation ElevationProvider, logger *slog.Logger) (Assessment, error) {
	params.Lon = NormalizeLon(params.Lon)
	if params.DensityKgM3 <= 0 {
		params.DensityKgM3 = DefaultDensityKgM3
	}
	if err := params.Validate(); err != nil {
		return Assessment{}, err
	}

	energy := Energy(params.DiameterM, params.VelocityKms, params.DensityKgM3)
	craterM := CraterDiameter(params.DiameterM, params.VelocityKms)
	blastKm := BlastRadius(energy)

	return Assessment{
		ID:         generateID(params),
		ComputedAt: clock.Now(),
		Input: ImpactInput{
			DiameterM:   params.DiameterM,
			VelocityKms: params.VelocityKms,
			Lat:         params.Lat,
			Lon:         params.Lon,
		},
		Location: ClassifySurface(ctx, params.Lat, params.Lon, elevation, logger),
		Results: ImpactResults{
			EnergyJoules:        energy,
			CraterDiameterM:     craterM,
			CraterDiameterKm:    craterM / 1000.0,
			BlastRadiusKm:       blastKm,
			EarthquakeMagnitude: SeismicMagnitude(energy),
		},
		Volcanic:     ClassifyVolcanicImpact(params.Lat, params.Lon, energy),
		Catastrophic: classifyCatastrophic(params.DiameterM),
		Footprint:    NewFootprint(params.Lat, params.Lon, blastKm, craterM),
	}, nil
}

// classifyCatastrophic flags impactors at least as wide as Earth.
func classifyCatastrophic(diameterM float64) CatastrophicImpact {
	if diameterM >= EarthDiameterM {
		msg := "Total destruction!"
		return CatastrophicImpact{Destruction: true, Message: &msg}
	}
	return CatastrophicImpact{}
}

// generateID produces a deterministic ID from the effective parameters.
// Reissuing the same request yields the same ID, so downstream consumers of
// the assessments topic can upsert idempotently.
func generateID(p ImpactParams) string {
	input := fmt.Sprintf("%.4f|%.4f|%.4f|%.4f|%g", p.DiameterM, p.VelocityKms, p.Lat, p.Lon, p.DensityKgM3)
	hash := sha256.Sum256([]byte(input))
	return "impact-" + hex.EncodeToString(hash[:8])
}
