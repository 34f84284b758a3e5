// Package domain models asteroid impact consequences.
//
// # Impact Formulas
//
// Consequence estimates use closed-form approximations chosen for education
// and visualization, not for survivability planning. All of them treat the
// impactor as a stony sphere arriving at the given velocity:
//
//	Kinetic energy (J):
//	  E = 0.5·m·v²  with  m = (4/3)·π·(d/2)³·ρ  and  v in m/s.
//	  Density ρ defaults to 3000 kg/m³ (ordinary chondrite).
//
//	Crater diameter (m):
//	  D = d·v^0.44  with v in km/s. A simplified scaling law; no gravity
//	  or target-strength terms.
//
//	Blast radius (km):
//	  R = E^(1/3) / 1000. Cube-root yield scaling with the constant folded
//	  into the unit conversion.
//
//	Seismic magnitude:
//	  M = (2/3)·(log10(E) − 4.8), floored at 0 for non-positive energy
//	  (Gutenberg-Richter energy relation solved for magnitude).
//
// # Coordinate Conventions
//
// Coordinates are WGS-84 degrees. Longitudes are normalized into [−180, 180)
// before validation, so 200°E arrives as −160°. Latitudes outside [−90, 90]
// are rejected. Great-circle distances use the haversine formula on a sphere
// of radius 6371 km.
//
// # Water Classification
//
// Whether the impact point is water is decided by a point elevation query
// (USGS EPQS): elevation ≤ 0 m means water. The lookup degrades gracefully.
// When the provider is unavailable or errors, the point is assumed to be
// land and the source label records the fallback:
//
//	"usgs_api"               elevation resolved, is_water trustworthy
//	"fallback_default_land"  lookup failed or disabled, land assumed
//
// # Volcano Proximity
//
// A fixed table of monitored volcanoes (Mount St. Helens, Kilauea, Mount
// Rainier) flags impacts landing within 50 km of a vent. The impact level is
// derived from kinetic energy: >1e19 J high, >1e17 J medium, else low.
//
// # Catastrophic Impacts
//
// An impactor at least as wide as Earth (12,742 km) short-circuits any
// nuance: the assessment is flagged catastrophic with a fixed message. The
// remaining figures are still computed; they are merely academic.
//
// # ID Generation
//
// Assessment IDs are deterministic SHA-256 hashes of the rounded input
// parameters. Identical requests produce identical IDs, which keys the
// published Kafka events idempotently downstream. See [generateID].
package domain
