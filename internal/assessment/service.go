// Package assessment orchestrates the impact API's use cases: physics-based
// consequence assessment, model-based damage prediction, and the asteroid/city
// catalog join. It owns the wiring seams so handlers stay thin and adapters
// stay swappable.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
	"github.com/couchcryptid/asteroid-impact-api/internal/observability"
	"github.com/couchcryptid/asteroid-impact-api/internal/refdata"
)

// ErrModelUnavailable indicates no damage model artifact was loaded at
// startup. Handlers map it to a 503 response.
var ErrModelUnavailable = errors.New("damage model is not loaded")

// Publisher receives computed assessments for delivery to downstream
// consumers. Implementations must not block.
type Publisher interface {
	Publish(domain.Assessment)
}

// Service executes the impact API's use cases. Elevation, predictor, and
// publisher are optional: a nil elevation provider classifies every impact
// as land, a nil predictor turns prediction endpoints into 503s, and a nil
// publisher skips event delivery.
type Service struct {
	elevation domain.ElevationProvider
	predictor domain.DamagePredictor
	catalog   *refdata.Catalog
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Service and records which optional collaborators are wired.
func New(elevation domain.ElevationProvider, predictor domain.DamagePredictor, catalog *refdata.Catalog, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if elevation != nil {
		metrics.ElevationEnabled.Set(1)
	}
	if predictor != nil {
		metrics.ModelLoaded.Set(1)
	}
	return &Service{
		elevation: elevation,
		predictor: predictor,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil when the service can answer requests, or an
// error describing what is missing. A missing damage model does not fail
// readiness: assessment endpoints keep working without it.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.catalog == nil {
		return errors.New("reference catalogs are not loaded")
	}
	asteroids, cities := s.catalog.Size()
	if asteroids == 0 || cities == 0 {
		return fmt.Errorf("reference catalogs are incomplete: %d asteroids, %d cities", asteroids, cities)
	}
	return nil
}

// AssessImpact computes the full consequence assessment for one impact and
// hands the result to the publisher.
func (s *Service) AssessImpact(ctx context.Context, params domain.ImpactParams) (domain.Assessment, error) {
	start := time.Now()

	a, err := domain.NewAssessment(ctx, params, s.elevation, s.logger)
	if err != nil {
		return domain.Assessment{}, err
	}

	s.metrics.AssessmentsComputed.Inc()
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	if s.publisher != nil {
		s.publisher.Publish(a)
	}

	s.logger.Info("assessment computed",
		"id", a.ID,
		"lat", a.Input.Lat,
		"lon", a.Input.Lon,
		"is_water", a.Location.IsWater,
		"energy_joules", a.Results.EnergyJoules,
	)
	return a, nil
}

// PredictDamage runs the regression model on raw impactor features.
func (s *Service) PredictDamage(_ context.Context, diameterM, velocityKms, lat, lon, deltaKm float64) (domain.DamagePrediction, error) {
	if s.predictor == nil {
		s.metrics.PredictionRequests.WithLabelValues("raw", "error").Inc()
		return domain.DamagePrediction{}, ErrModelUnavailable
	}

	pred, err := s.predictor.PredictDamage(diameterM, velocityKms, lat, lon, deltaKm)
	if err != nil {
		s.metrics.PredictionRequests.WithLabelValues("raw", "error").Inc()
		return domain.DamagePrediction{}, err
	}

	s.metrics.PredictionRequests.WithLabelValues("raw", "success").Inc()
	return pred, nil
}

// PredictCityImpact joins a cataloged asteroid against a cataloged city:
// the model predicts damage at the asteroid's nominal impact point, and the
// city is affected when it sits inside the predicted blast radius.
func (s *Service) PredictCityImpact(_ context.Context, asteroidName, cityName string) (domain.CityImpact, error) {
	if s.predictor == nil {
		s.metrics.PredictionRequests.WithLabelValues("city", "error").Inc()
		return domain.CityImpact{}, ErrModelUnavailable
	}

	ast, err := s.catalog.Asteroid(asteroidName)
	if err != nil {
		s.metrics.PredictionRequests.WithLabelValues("city", "error").Inc()
		return domain.CityImpact{}, err
	}
	city, err := s.catalog.City(cityName)
	if err != nil {
		s.metrics.PredictionRequests.WithLabelValues("city", "error").Inc()
		return domain.CityImpact{}, err
	}

	astLon := domain.NormalizeLon(ast.Lon)
	cityLon := domain.NormalizeLon(city.Lon)
	if err := domain.ValidateCoords(ast.Lat, astLon); err != nil {
		s.metrics.PredictionRequests.WithLabelValues("city", "error").Inc()
		return domain.CityImpact{}, fmt.Errorf("asteroid %q: %w", ast.Name, err)
	}
	if err := domain.ValidateCoords(city.Lat, cityLon); err != nil {
		s.metrics.PredictionRequests.WithLabelValues("city", "error").Inc()
		return domain.CityImpact{}, fmt.Errorf("city %q: %w", city.Name, err)
	}

	pred, err := s.predictor.PredictDamage(ast.DiameterM, ast.VelocityKms, ast.Lat, astLon, ast.ClosestDeltaKm)
	if err != nil {
		s.metrics.PredictionRequests.WithLabelValues("city", "error").Inc()
		return domain.CityImpact{}, err
	}

	distance := domain.Haversine(ast.Lat, astLon, city.Lat, cityLon)

	s.metrics.PredictionRequests.WithLabelValues("city", "success").Inc()
	s.logger.Info("city impact predicted",
		"asteroid", ast.Name,
		"city", city.Name,
		"distance_km", distance,
		"is_city_affected", distance < pred.BlastRadiusKm,
	)
	return domain.CityImpact{
		Asteroid:       ast.Name,
		City:           city.Name,
		CraterDiamKm:   pred.CraterDiamKm,
		BlastRadiusKm:  pred.BlastRadiusKm,
		DistanceKm:     distance,
		IsCityAffected: distance < pred.BlastRadiusKm,
	}, nil
}

// AsteroidNames lists the cataloged asteroid names, sorted.
func (s *Service) AsteroidNames() []string {
	return s.catalog.AsteroidNames()
}

// CityNames lists the cataloged city names, sorted.
func (s *Service) CityNames() []string {
	return s.catalog.CityNames()
}
