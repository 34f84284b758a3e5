package domain

// Volcano is a monitored vent with an impact-sensitivity radius.
type Volcano struct {
	Name     string
	Lat      float64
	Lon      float64
	RadiusKm float64
}

// monitoredVolcanoes is the static proximity table.
var monitoredVolcanoes = []Volcano{
	{Name: "Mount St. Helens", Lat: 46.2, Lon: -122.18, RadiusKm: 50},
	{Name: "Kilauea", Lat: 19.4, Lon: -155.3, RadiusKm: 50},
	{Name: "Mount Rainier", Lat: 46.85, Lon: -121.75, RadiusKm: 50},
}

// ClassifyVolcanicImpact checks the impact point against the monitored
// volcano table. The first volcano within its radius wins; the impact level
// follows the kinetic energy thresholds (>1e19 J high, >1e17 J medium).
func ClassifyVolcanicImpact(lat, lon, energyJoules float64) VolcanicImpact {
	for _, v := range monitoredVolcanoes {
		if Haversine(lat, lon, v.Lat, v.Lon) <= v.RadiusKm {
			name := v.Name
			level := impactLevelForEnergy(energyJoules)
			return VolcanicImpact{IsAffected: true, VolcanoName: &name, ImpactLevel: &level}
		}
	}
	return VolcanicImpact{}
}

func impactLevelForEnergy(energyJoules float64) string {
	switch {
	case energyJoules > 1e19:
		return "high"
	case energyJoules > 1e17:
		return "medium"
	default:
		return "low"
	}
}
