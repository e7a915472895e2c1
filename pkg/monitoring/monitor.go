package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AchievementsUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievements_unlocked_total",
			Help: "Total number of achievements unlocked, by type",
		},
		[]string{"type"},
	)

	SubmissionsGraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_graded_total",
			Help: "Total number of graded submissions, by grading mode",
		},
		[]string{"mode"},
	)

	// BackgroundFailures counts swallowed errors from best-effort work
	// (achievement evaluation, stat refresh) that must not fail requests.
	BackgroundFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "background_failures_total",
			Help: "Total number of failures in best-effort background operations",
		},
		[]string{"operation"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AchievementsUnlocked)
	prometheus.MustRegister(SubmissionsGraded)
	prometheus.MustRegister(BackgroundFailures)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
