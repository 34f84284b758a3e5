package domain

import "math"

const (
	// DefaultDensityKgM3 is the assumed impactor density (ordinary chondrite).
	DefaultDensityKgM3 = 3000.0

	// EarthDiameterM is the mean Earth diameter. Impactors at least this wide
	// are catastrophic regardless of any other figure.
	EarthDiameterM = 12_742_000.0
)

// Energy returns the impactor's kinetic energy in joules for a sphere of the
// given diameter (m) and density (kg/m³) arriving at velocityKms (km/s).
// Non-positive density falls back to DefaultDensityKgM3.
func Energy(diameterM, velocityKms, densityKgM3 float64) float64 {
	if densityKgM3 <= 0 {
		densityKgM3 = DefaultDensityKgM3
	}
	radiusM := diameterM / 2.0
	volumeM3 := (4.0 / 3.0) * math.Pi * math.Pow(radiusM, 3)
	massKg := volumeM3 * densityKgM3
	velocityMs := velocityKms * 1000.0
	return 0.5 * massKg * velocityMs * velocityMs
}

// CraterDiameter estimates the final crater diameter in meters from the
// impactor diameter (m) and velocity (km/s).
func CraterDiameter(diameterM, velocityKms float64) float64 {
	return diameterM * math.Pow(velocityKms, 0.44)
}

// BlastRadius estimates the destructive blast radius in kilometers from the
// impact energy in joules.
func BlastRadius(energyJoules float64) float64 {
	return math.Cbrt(energyJoules) / 1000.0
}

// SeismicMagnitude converts impact energy (J) to an equivalent earthquake
// magnitude. Returns 0 for non-positive energy.
func SeismicMagnitude(energyJoules float64) float64 {
	if energyJoules <= 0 {
		return 0
	}
	return (2.0 / 3.0) * (math.Log10(energyJoules) - 4.8)
}
