// Package monitoring provides Prometheus metrics collection
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger *zap.Logger

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	mealsLoggedTotal     *prometheus.CounterVec
	plansGeneratedTotal  *prometheus.CounterVec
	contractsIssuedTotal *prometheus.CounterVec
	intentCacheHits      prometheus.Counter
	intentCacheMisses    prometheus.Counter

	// Pipeline metrics
	pipelineDuration   *prometheus.HistogramVec
	pipelineConfidence prometheus.Histogram
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		logger: logger,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		mealsLoggedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meals_logged_total",
				Help: "Total number of meals logged",
			},
			[]string{"source"},
		),
		plansGeneratedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meal_plans_generated_total",
				Help: "Total number of execution plans generated",
			},
			[]string{"route"},
		),
		contractsIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daily_contracts_issued_total",
				Help: "Total number of daily contracts issued",
			},
			[]string{"kind"},
		),
		intentCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "intent_cache_hits_total",
				Help: "Total number of intent cache hits",
			},
		),
		intentCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "intent_cache_misses_total",
				Help: "Total number of intent cache misses",
			},
		),

		pipelineDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "decision_pipeline_duration_seconds",
				Help:    "Decision pipeline duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"operation"},
		),
		pipelineConfidence: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "decision_pipeline_confidence",
				Help:    "Confidence distribution of generated plans",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
	}
}

// HTTPMiddleware creates a Gin middleware for HTTP metrics collection
func (m *MetricsCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(duration)
	}
}

// Business metric methods
func (m *MetricsCollector) MealLogged(source string) {
	m.mealsLoggedTotal.WithLabelValues(source).Inc()
}

func (m *MetricsCollector) PlanGenerated(route string, confidence float64) {
	m.plansGeneratedTotal.WithLabelValues(route).Inc()
	m.pipelineConfidence.Observe(confidence)
}

func (m *MetricsCollector) ContractIssued(kind string) {
	m.contractsIssuedTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsCollector) IntentCacheHit()  { m.intentCacheHits.Inc() }
func (m *MetricsCollector) IntentCacheMiss() { m.intentCacheMisses.Inc() }

// ObservePipeline records the duration of one pipeline operation
func (m *MetricsCollector) ObservePipeline(operation string, duration time.Duration) {
	m.pipelineDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
