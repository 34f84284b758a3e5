package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the impact API.
type Metrics struct {
	AssessmentsComputed prometheus.Counter
	AssessmentDuration  prometheus.Histogram
	PredictionRequests  *prometheus.CounterVec // labels: kind={raw,city}, outcome={success,error}
	ModelLoaded         prometheus.Gauge

	// Elevation lookup metrics.
	ElevationRequests    *prometheus.CounterVec // labels: outcome={success,error,no_data}
	ElevationCache       *prometheus.CounterVec // labels: result={hit,miss}
	ElevationAPIDuration prometheus.Histogram
	ElevationEnabled     prometheus.Gauge

	// Assessment publishing metrics.
	AssessmentsPublished prometheus.Counter
	PublishErrors        prometheus.Counter
	PublishDropped       prometheus.Counter
	PublishQueueDepth    prometheus.Gauge
}

// NewMetrics creates and registers all API metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_api",
			Name:      "assessments_computed_total",
			Help:      "Total impact assessments computed.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "impact_api",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete impact assessment, elevation lookup included.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PredictionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_api",
			Name:      "prediction_requests_total",
			Help:      "Damage prediction requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_api",
			Name:      "model_loaded",
			Help:      "1 when the damage regression model is loaded, 0 otherwise.",
		}),
		ElevationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_api",
			Name:      "elevation_requests_total",
			Help:      "USGS elevation API requests by outcome.",
		}, []string{"outcome"}),
		ElevationCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_api",
			Name:      "elevation_cache_total",
			Help:      "Elevation cache lookups by result.",
		}, []string{"result"}),
		ElevationAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "impact_api",
			Name:      "elevation_api_duration_seconds",
			Help:      "USGS elevation API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ElevationEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_api",
			Name:      "elevation_enabled",
			Help:      "1 when USGS elevation lookups are enabled, 0 otherwise.",
		}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_api",
			Name:      "assessments_published_total",
			Help:      "Total assessments written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_api",
			Name:      "publish_errors_total",
			Help:      "Total Kafka publish failures.",
		}),
		PublishDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_api",
			Name:      "publish_dropped_total",
			Help:      "Total assessments dropped because the publish queue was full.",
		}),
		PublishQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_api",
			Name:      "publish_queue_depth",
			Help:      "Assessments waiting in the publish queue.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsComputed,
		m.AssessmentDuration,
		m.PredictionRequests,
		m.ModelLoaded,
		m.ElevationRequests,
		m.ElevationCache,
		m.ElevationAPIDuration,
		m.ElevationEnabled,
		m.AssessmentsPublished,
		m.PublishErrors,
		m.PublishDropped,
		m.PublishQueueDepth,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsComputed:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_api", Name: "assessments_computed_total"}),
		AssessmentDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "impact_api", Name: "assessment_duration_seconds"}),
		PredictionRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_api", Name: "prediction_requests_total"}, []string{"kind", "outcome"}),
		ModelLoaded:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "impact_api", Name: "model_loaded"}),
		ElevationRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_api", Name: "elevation_requests_total"}, []string{"outcome"}),
		ElevationCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_api", Name: "elevation_cache_total"}, []string{"result"}),
		ElevationAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "impact_api", Name: "elevation_api_duration_seconds"}),
		ElevationEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "impact_api", Name: "elevation_enabled"}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_api", Name: "assessments_published_total"}),
		PublishErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_api", Name: "publish_errors_total"}),
		PublishDropped:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_api", Name: "publish_dropped_total"}),
		PublishQueueDepth:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "impact_api", Name: "publish_queue_depth"}),
	}
}
