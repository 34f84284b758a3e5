package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// Reference data and model artifact locations.
	AsteroidsPath string
	CitiesPath    string
	ModelPath     string

	// USGS elevation lookup configuration.
	USGSEnabled   bool
	USGSBaseURL   string
	USGSTimeout   time.Duration
	USGSCacheSize int

	// Kafka assessment publishing configuration.
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaTopic         string
	KafkaPublishBuffer int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	usgsTimeout, err := parseDuration("USGS_TIMEOUT", "6s")
	if err != nil {
		return nil, err
	}

	// Elevation lookups default on; an explicit USGS_ENABLED=false opts out.
	usgsEnabled := true
	if v := os.Getenv("USGS_ENABLED"); v != "" {
		usgsEnabled = v == "true"
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		CORSAllowedOrigins: parseList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		AsteroidsPath: envOrDefault("ASTEROIDS_PATH", "data/ref/asteroids.csv"),
		CitiesPath:    envOrDefault("CITIES_PATH", "data/ref/cities.csv"),
		ModelPath:     envOrDefault("MODEL_PATH", "data/model/impact_forest.json"),

		USGSEnabled:   usgsEnabled,
		USGSBaseURL:   envOrDefault("USGS_BASE_URL", "https://nationalmap.gov/epqs"),
		USGSTimeout:   usgsTimeout,
		USGSCacheSize: parsePositiveInt("USGS_CACHE_SIZE", 1000),

		KafkaEnabled:       kafkaEnabled,
		KafkaBrokers:       parseList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:         envOrDefault("KAFKA_TOPIC", "impact-assessments"),
		KafkaPublishBuffer: parsePositiveInt("KAFKA_PUBLISH_BUFFER", 256),
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseDuration reads a duration env var, requiring a positive value.
func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

// parseList splits a comma-separated value, trimming whitespace and
// dropping empty items.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parsePositiveInt reads an integer env var, falling back to the default
// when unset, malformed, or non-positive.
func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
