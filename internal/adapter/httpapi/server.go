// Package httpapi exposes the impact service over HTTP: the public JSON
// routes plus the health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/asteroid-impact-api/internal/config"
	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
)

// ImpactService is the application surface the API exposes.
type ImpactService interface {
	AssessImpact(ctx context.Context, params domain.ImpactParams) (domain.Assessment, error)
	PredictDamage(ctx context.Context, diameterM, velocityKms, lat, lon, deltaKm float64) (domain.DamagePrediction, error)
	PredictCityImpact(ctx context.Context, asteroidName, cityName string) (domain.CityImpact, error)
	AsteroidNames() []string
	CityNames() []string
	CheckReadiness(ctx context.Context) error
}

// Server wraps the router and the underlying http.Server.
type Server struct {
	httpServer *http.Server
	svc        ImpactService
	logger     *slog.Logger
}

// NewServer builds the router and wires every route.
func NewServer(cfg *config.Config, svc ImpactService, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}

	router.GET("/", s.handleHome)
	router.POST("/impact", s.handleImpact)
	router.POST("/predict", s.handlePredict)
	router.POST("/predict/city", s.handlePredictCity)
	router.GET("/asteroids", s.handleAsteroids)
	router.GET("/cities", s.handleCities)

	router.GET("/healthz", handleHealth)
	router.GET("/readyz", handleReady(svc))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// requestID tags each request with a UUID, honoring one supplied by the caller.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// Probe and scrape endpoints stay out of the request log.
var quietPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

// requestLogger emits one structured line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if _, quiet := quietPaths[c.Request.URL.Path]; quiet {
			return
		}
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("request_id"),
		)
	}
}
