package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NewFootprint builds the GeoJSON impact footprint: three point features at
// the impact coordinate carrying the blast and crater extents as properties.
// Consumers draw the circles from the radii.
func NewFootprint(lat, lon, blastRadiusKm, craterDiameterM float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	impact := geojson.NewFeature(orb.Point{lon, lat})
	impact.Properties["role"] = "impact_point"
	fc.Append(impact)

	blast := geojson.NewFeature(orb.Point{lon, lat})
	blast.Properties["role"] = "blast_zone_center"
	blast.Properties["radius_km"] = blastRadiusKm
	fc.Append(blast)

	crater := geojson.NewFeature(orb.Point{lon, lat})
	crater.Properties["role"] = "crater_center"
	crater.Properties["radius_m"] = craterDiameterM
	fc.Append(crater)

	return fc
}
