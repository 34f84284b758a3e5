package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/asteroid-impact-api/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/asteroid-impact-api/internal/adapter/kafka"
	"github.com/couchcryptid/asteroid-impact-api/internal/adapter/usgs"
	"github.com/couchcryptid/asteroid-impact-api/internal/assessment"
	"github.com/couchcryptid/asteroid-impact-api/internal/config"
	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
	"github.com/couchcryptid/asteroid-impact-api/internal/observability"
	"github.com/couchcryptid/asteroid-impact-api/internal/refdata"
	"github.com/couchcryptid/asteroid-impact-api/internal/regressor"
)

func main() {
	// A .env file supplies configuration in development; in production the
	// environment is already set and the file is absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	gin.SetMode(gin.ReleaseMode)

	// Elevation lookups (feature-flagged via USGS_ENABLED).
	var elevation domain.ElevationProvider
	if cfg.USGSEnabled {
		client := usgs.NewClient(cfg.USGSBaseURL, cfg.USGSTimeout, metrics, logger)
		elevation = usgs.NewCachedProvider(client, cfg.USGSCacheSize, metrics)
		logger.Info("usgs elevation enabled", "cache_size", cfg.USGSCacheSize, "timeout", cfg.USGSTimeout)
	} else {
		logger.Info("usgs elevation disabled, every impact classifies as land")
	}

	catalog := loadCatalog(cfg, logger)
	predictor := loadPredictor(cfg, logger)

	// Assessment publishing (feature-flagged via KAFKA_ENABLED).
	var publisher assessment.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger, metrics)
		publisher = kafkaPublisher
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	svc := assessment.New(elevation, predictor, catalog, publisher, logger, metrics)
	srv := httpapi.NewServer(cfg, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadCatalog reads both reference CSVs. A missing catalog is fatal: the
// listing and city-impact routes cannot serve without it.
func loadCatalog(cfg *config.Config, logger *slog.Logger) *refdata.Catalog {
	asteroids, skippedAsteroids, err := refdata.LoadAsteroids(cfg.AsteroidsPath)
	if err != nil {
		logger.Error("failed to load asteroid catalog", "path", cfg.AsteroidsPath, "error", err)
		os.Exit(1)
	}
	cities, skippedCities, err := refdata.LoadCities(cfg.CitiesPath)
	if err != nil {
		logger.Error("failed to load city catalog", "path", cfg.CitiesPath, "error", err)
		os.Exit(1)
	}

	logger.Info("reference catalogs loaded",
		"asteroids", len(asteroids),
		"asteroid_rows_skipped", skippedAsteroids,
		"cities", len(cities),
		"city_rows_skipped", skippedCities,
	)
	return refdata.New(asteroids, cities)
}

// loadPredictor loads the damage model artifact. Absence is not fatal: the
// prediction endpoints answer 503 until a model is provided.
func loadPredictor(cfg *config.Config, logger *slog.Logger) domain.DamagePredictor {
	artifact, err := regressor.LoadArtifact(cfg.ModelPath)
	if err != nil {
		logger.Warn("damage model not loaded, prediction endpoints disabled",
			"path", cfg.ModelPath, "error", err)
		return nil
	}
	predictor, err := regressor.NewPredictor(artifact)
	if err != nil {
		logger.Warn("damage model rejected, prediction endpoints disabled",
			"path", cfg.ModelPath, "error", err)
		return nil
	}

	logger.Info("damage model loaded", "path", cfg.ModelPath, "trees", len(artifact.Trees))
	return predictor
}
