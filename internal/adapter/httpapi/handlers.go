package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/asteroid-impact-api/internal/assessment"
	"github.com/couchcryptid/asteroid-impact-api/internal/domain"
	"github.com/couchcryptid/asteroid-impact-api/internal/refdata"
	"github.com/couchcryptid/asteroid-impact-api/internal/regressor"
)

// impactRequest uses pointers so absent fields fall back to documented
// defaults while explicit zeros stay zeros.
type impactRequest struct {
	DiameterM   *float64 `json:"diameter_m"`
	VelocityKms *float64 `json:"velocity_kms"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

type predictRequest struct {
	DiameterM   *float64 `json:"diameter_m"`
	VelocityKms *float64 `json:"velocity_kms"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	DeltaKm     *float64 `json:"delta_km"`
}

type cityPredictRequest struct {
	Asteroid string `json:"asteroid" binding:"required"`
	City     string `json:"city" binding:"required"`
}

func (s *Server) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Asteroid Impact API is running (volcanic impact only, no tsunami)!",
		"usage": gin.H{
			"endpoint": "/impact",
			"method":   "POST",
			"example_payload": gin.H{
				"diameter_m":   500,
				"velocity_kms": 20,
				"lat":          36.0,
				"lon":          -120.0,
			},
		},
	})
}

func (s *Server) handleImpact(c *gin.Context) {
	var req impactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	params := domain.ImpactParams{
		DiameterM:   domain.DefaultDiameterM,
		VelocityKms: domain.DefaultVelocityKms,
	}
	if req.DiameterM != nil {
		params.DiameterM = *req.DiameterM
	}
	if req.VelocityKms != nil {
		params.VelocityKms = *req.VelocityKms
	}
	if req.Lat != nil {
		params.Lat = *req.Lat
	}
	if req.Lon != nil {
		params.Lon = *req.Lon
	}

	a, err := s.svc.AssessImpact(c.Request.Context(), params)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.DiameterM == nil || req.VelocityKms == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "diameter_m and velocity_kms are required",
		})
		return
	}

	deltaKm := regressor.DefaultDeltaKm
	if req.DeltaKm != nil {
		deltaKm = *req.DeltaKm
	}

	pred, err := s.svc.PredictDamage(c.Request.Context(), *req.DiameterM, *req.VelocityKms, req.Lat, req.Lon, deltaKm)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, pred)
}

func (s *Server) handlePredictCity(c *gin.Context) {
	var req cityPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "asteroid and city are required",
			"details": err.Error(),
		})
		return
	}

	result, err := s.svc.PredictCityImpact(c.Request.Context(), req.Asteroid, req.City)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAsteroids(c *gin.Context) {
	names := s.svc.AsteroidNames()
	c.JSON(http.StatusOK, gin.H{
		"asteroids": names,
		"count":     len(names),
	})
}

func (s *Server) handleCities(c *gin.Context) {
	names := s.svc.CityNames()
	c.JSON(http.StatusOK, gin.H{
		"cities": names,
		"count":  len(names),
	})
}

// renderError maps service errors onto HTTP statuses. Anything unrecognized
// is a 500 with the detail kept server-side.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, refdata.ErrAsteroidNotFound), errors.Is(err, refdata.ErrCityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, assessment.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed",
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func handleReady(svc ImpactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := svc.CheckReadiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
