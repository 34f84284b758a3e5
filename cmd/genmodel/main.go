// Command genmodel trains the damage regression forest on samples drawn from
// the closed-form physics estimates and writes the JSON artifact the API
// loads at startup. Sampling and training are seeded, so a given flag set
// always produces the same artifact.
//
// Usage:
//
//	go run ./cmd/genmodel \
//	  -out data/model/impact_forest.json \
//	  -samples 2000 -trees 25 -seed 42
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
	"github.com/couchcryptid/asteroid-impact-api/internal/regressor"
)

// Sampling ranges covering the near-Earth object population. Diameters and
// close-approach distances span several orders of magnitude, so both are
// drawn log-uniformly.
const (
	minDiameterM   = 1.0
	maxDiameterM   = 10_000.0
	minVelocityKms = 0.1
	maxVelocityKms = 72.0
	minDeltaKm     = 10.0
	maxDeltaKm     = 1e7
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/model/impact_forest.json", "output path for the model artifact")
	samples := flag.Int("samples", 2000, "number of training samples")
	trees := flag.Int("trees", 25, "number of trees in the forest")
	depth := flag.Int("depth", 10, "maximum tree depth")
	minLeaf := flag.Int("min-leaf", 5, "minimum samples per leaf")
	seed := flag.Int64("seed", 42, "sampling and training seed")
	flag.Parse()

	if *samples < 10 {
		return fmt.Errorf("need at least 10 samples, got %d", *samples)
	}

	features, targets := generateSamples(*samples, *seed)
	log.Printf("generated %d training samples", len(features))

	scalerX, err := regressor.FitMinMax(features)
	if err != nil {
		return fmt.Errorf("fitting feature scaler: %w", err)
	}
	scalerY, err := regressor.FitMinMax(targets)
	if err != nil {
		return fmt.Errorf("fitting target scaler: %w", err)
	}

	scaledX, err := transformAll(scalerX, features)
	if err != nil {
		return fmt.Errorf("scaling features: %w", err)
	}
	scaledY, err := transformAll(scalerY, targets)
	if err != nil {
		return fmt.Errorf("scaling targets: %w", err)
	}

	forest, err := regressor.Fit(scaledX, scaledY, regressor.FitOptions{
		NumTrees: *trees,
		MaxDepth: *depth,
		MinLeaf:  *minLeaf,
		Seed:     *seed,
	})
	if err != nil {
		return fmt.Errorf("training forest: %w", err)
	}

	artifact := &regressor.Artifact{
		FeatureNames: []string{"diameter_m", "velocity_kms", "lat", "lon", "delta_km"},
		TargetNames:  []string{"crater_diam_km", "blast_radius_km"},
		ScalerX:      scalerX,
		ScalerY:      scalerY,
		Trees:        forest.Trees,
	}
	if err := regressor.SaveArtifact(*out, artifact); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	log.Printf("wrote model artifact: %s", *out)

	printStats(artifact)
	return nil
}

// generateSamples draws impactor parameters from a seeded RNG and labels each
// row with the closed-form crater and blast estimates. Latitude, longitude,
// and approach distance carry no signal for these targets; they are kept as
// features so the artifact layout matches what the API expects.
func generateSamples(n int, seed int64) (features, targets [][]float64) {
	rng := rand.New(rand.NewSource(seed))
	features = make([][]float64, 0, n)
	targets = make([][]float64, 0, n)

	for i := 0; i < n; i++ {
		diameterM := logUniform(rng, minDiameterM, maxDiameterM)
		velocityKms := minVelocityKms + rng.Float64()*(maxVelocityKms-minVelocityKms)
		lat := -90.0 + rng.Float64()*180.0
		lon := -180.0 + rng.Float64()*360.0
		deltaKm := logUniform(rng, minDeltaKm, maxDeltaKm)

		craterKm := domain.CraterDiameter(diameterM, velocityKms) / 1000.0
		blastKm := domain.BlastRadius(domain.Energy(diameterM, velocityKms, 0))

		features = append(features, []float64{diameterM, velocityKms, lat, lon, deltaKm})
		targets = append(targets, []float64{craterKm, blastKm})
	}
	return features, targets
}

// logUniform draws a value whose logarithm is uniform over [lo, hi].
func logUniform(rng *rand.Rand, lo, hi float64) float64 {
	return math.Exp(math.Log(lo) + rng.Float64()*(math.Log(hi)-math.Log(lo)))
}

func transformAll(s regressor.MinMaxScaler, rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}

// probe is a reference impactor used to sanity-check the fitted model
// against the closed-form estimates it was trained on.
type probe struct {
	name        string
	diameterM   float64
	velocityKms float64
}

func printStats(a *regressor.Artifact) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Trees: %d\n", len(a.Trees))

	var nodes int
	for _, t := range a.Trees {
		nodes += len(t.Nodes)
	}
	fmt.Printf("Total nodes: %d\n", nodes)

	fmt.Println("Feature ranges:")
	for i, name := range a.FeatureNames {
		fmt.Printf("  %s: [%g, %g]\n", name, a.ScalerX.Min[i], a.ScalerX.Max[i])
	}
	fmt.Println("Target ranges:")
	for i, name := range a.TargetNames {
		fmt.Printf("  %s: [%g, %g]\n", name, a.ScalerY.Min[i], a.ScalerY.Max[i])
	}

	p, err := regressor.NewPredictor(a)
	if err != nil {
		log.Printf("building probe predictor: %v", err)
		return
	}

	probes := []probe{
		{name: "city-killer", diameterM: 100, velocityKms: 20},
		{name: "Bennu-class", diameterM: 490, velocityKms: 27.7},
		{name: "Chicxulub-class", diameterM: 10_000, velocityKms: 20},
	}

	fmt.Println("\nProbe predictions (model vs closed form):")
	for _, pr := range probes {
		pred, err := p.PredictDamage(pr.diameterM, pr.velocityKms, 0, 0, regressor.DefaultDeltaKm)
		if err != nil {
			log.Printf("probe %s: %v", pr.name, err)
			continue
		}
		exactCrater := domain.CraterDiameter(pr.diameterM, pr.velocityKms) / 1000.0
		exactBlast := domain.BlastRadius(domain.Energy(pr.diameterM, pr.velocityKms, 0))
		fmt.Printf("  %s (%gm @ %g km/s): crater %.3f km (exact %.3f), blast %.1f km (exact %.1f)\n",
			pr.name, pr.diameterM, pr.velocityKms,
			pred.CraterDiamKm, exactCrater, pred.BlastRadiusKm, exactBlast)
	}
}
