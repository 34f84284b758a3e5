// Command validate performs integrity checks across the API's data assets:
// the asteroid and city reference catalogs and the damage model artifact. It
// uses the actual domain and regressor packages, so anything that passes here
// behaves the same way inside the running service.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -asteroids data/ref/asteroids.csv \
//	  -cities data/ref/cities.csv \
//	  -model data/model/impact_forest.json
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
	"github.com/couchcryptid/asteroid-impact-api/internal/refdata"
	"github.com/couchcryptid/asteroid-impact-api/internal/regressor"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	asteroidsPath := flag.String("asteroids", "data/ref/asteroids.csv", "path to the asteroid catalog CSV")
	citiesPath := flag.String("cities", "data/ref/cities.csv", "path to the city catalog CSV")
	modelPath := flag.String("model", "data/model/impact_forest.json", "path to the model artifact JSON")
	flag.Parse()

	if *asteroidsPath == "" || *citiesPath == "" || *modelPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*asteroidsPath, *citiesPath, *modelPath); code != 0 {
		os.Exit(code)
	}
}

func run(asteroidsPath, citiesPath, modelPath string) int {
	// ── Load all data assets ──
	fmt.Println("=== Impact API Data Validation ===")
	fmt.Println()

	asteroids, asteroidsSkipped, err := refdata.LoadAsteroids(asteroidsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load asteroid catalog: %v\n", err)
		return 1
	}
	if asteroidsSkipped > 0 {
		fmt.Printf("  Note: %d asteroid row(s) skipped (missing name or coordinates)\n", asteroidsSkipped)
	}

	cities, citiesSkipped, err := refdata.LoadCities(citiesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load city catalog: %v\n", err)
		return 1
	}
	if citiesSkipped > 0 {
		fmt.Printf("  Note: %d city row(s) skipped (missing name or coordinates)\n", citiesSkipped)
	}

	artifact, err := regressor.LoadArtifact(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load model artifact: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateCatalogIntegrity(asteroids, cities),
		validateCoordinates(asteroids, cities),
		validateNameUniqueness(asteroids, cities),
		validateModel(artifact, asteroids),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Assets: %d asteroids (%d skipped), %d cities (%d skipped), %d trees\n",
		len(asteroids), asteroidsSkipped, len(cities), citiesSkipped, len(artifact.Trees))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Catalog Integrity ──
// Validates that both catalogs have rows and that asteroid physical fields
// clear the damage model's input floors.

func validateCatalogIntegrity(asteroids []refdata.Asteroid, cities []refdata.City) *phase {
	p := &phase{name: "Phase 1: Catalog Integrity"}

	if len(asteroids) == 0 {
		p.errorf("asteroid catalog has no usable rows")
	}
	if len(cities) == 0 {
		p.errorf("city catalog has no usable rows")
	}

	for _, a := range asteroids {
		if a.DiameterM < regressor.MinDiameterM {
			p.errorf("asteroid %q: diameter_m %g is below the model floor %g", a.Name, a.DiameterM, regressor.MinDiameterM)
		}
		if a.VelocityKms < regressor.MinVelocityKms {
			p.errorf("asteroid %q: velocity %g km/s is below the model floor %g", a.Name, a.VelocityKms, regressor.MinVelocityKms)
		}
		if a.ClosestDeltaKm < 0 {
			p.errorf("asteroid %q: closest_delta_km %g is negative", a.Name, a.ClosestDeltaKm)
		}
	}
	return p
}

// ── Phase 2: Coordinate Validity ──
// Validates every coordinate pair the way the service consumes it: longitudes
// are normalized first, then both values must land in WGS-84 ranges.

func validateCoordinates(asteroids []refdata.Asteroid, cities []refdata.City) *phase {
	p := &phase{name: "Phase 2: Coordinate Validity"}

	for _, a := range asteroids {
		lon := domain.NormalizeLon(a.Lon)
		if err := domain.ValidateCoords(a.Lat, lon); err != nil {
			p.errorf("asteroid %q: %v", a.Name, err)
		}
	}
	for _, c := range cities {
		lon := domain.NormalizeLon(c.Lon)
		if err := domain.ValidateCoords(c.Lat, lon); err != nil {
			p.errorf("city %q: %v", c.Name, err)
		}
	}
	return p
}

// ── Phase 3: Name Uniqueness ──
// Lookups are case-insensitive and first-wins, so a duplicate name means one
// of the rows is unreachable through the API.

func validateNameUniqueness(asteroids []refdata.Asteroid, cities []refdata.City) *phase {
	p := &phase{name: "Phase 3: Name Uniqueness"}

	seenAsteroids := map[string]string{}
	for _, a := range asteroids {
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if first, ok := seenAsteroids[key]; ok {
			p.errorf("asteroid %q collides with %q (lookup key %q)", a.Name, first, key)
			continue
		}
		seenAsteroids[key] = a.Name
	}

	seenCities := map[string]string{}
	for _, c := range cities {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if first, ok := seenCities[key]; ok {
			p.errorf("city %q collides with %q (lookup key %q)", c.Name, first, key)
			continue
		}
		seenCities[key] = c.Name
	}
	return p
}

// ── Phase 4: Model Artifact ──
// Validates the fitted scalers and runs a prediction for every cataloged
// asteroid, exactly as the city prediction endpoint would.

func validateModel(artifact *regressor.Artifact, asteroids []refdata.Asteroid) *phase {
	p := &phase{name: "Phase 4: Model Artifact"}

	checkScalers(p, artifact)

	predictor, err := regressor.NewPredictor(artifact)
	if err != nil {
		p.errorf("build predictor: %v", err)
		return p
	}

	for _, a := range asteroids {
		lon := domain.NormalizeLon(a.Lon)
		pred, err := predictor.PredictDamage(a.DiameterM, a.VelocityKms, a.Lat, lon, a.ClosestDeltaKm)
		if err != nil {
			p.errorf("asteroid %q: %v", a.Name, err)
			continue
		}
		if !finite(pred.CraterDiamKm) || !finite(pred.BlastRadiusKm) {
			p.errorf("asteroid %q: non-finite prediction (crater %g, blast %g)", a.Name, pred.CraterDiamKm, pred.BlastRadiusKm)
			continue
		}
		if pred.CraterDiamKm < 0 || pred.BlastRadiusKm < 0 {
			p.errorf("asteroid %q: negative prediction (crater %g km, blast %g km)", a.Name, pred.CraterDiamKm, pred.BlastRadiusKm)
		}
	}
	return p
}

// checkScalers flags zero-width scaler columns. A zero span makes Transform
// collapse that column to 0, which silently blinds the forest to it.
func checkScalers(p *phase, artifact *regressor.Artifact) {
	for i, name := range artifact.FeatureNames {
		if name != "diameter_m" && name != "velocity_kms" {
			continue
		}
		if artifact.ScalerX.Max[i] <= artifact.ScalerX.Min[i] {
			p.errorf("feature scaler %q has zero width [%g, %g]", name, artifact.ScalerX.Min[i], artifact.ScalerX.Max[i])
		}
	}
	for i, name := range artifact.TargetNames {
		if artifact.ScalerY.Max[i] <= artifact.ScalerY.Min[i] {
			p.errorf("target scaler %q has zero width [%g, %g]", name, artifact.ScalerY.Min[i], artifact.ScalerY.Max[i])
		}
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
