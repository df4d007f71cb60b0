package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todolist_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "todolist_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todolist_logins_total",
		Help: "Count of login attempts by outcome",
	}, []string{"outcome"})

	sessionsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "todolist_sessions_purged_total",
		Help: "Count of expired sessions removed by the purge job",
	})
)

// ObserveHTTPRequest records one handled HTTP request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLogin increments the login counter for an outcome label
// (ok, not_found, wrong_password, blocked).
func ObserveLogin(outcome string) {
	loginsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSessionsPurged adds the number of sessions removed by a purge run.
func ObserveSessionsPurged(count int) {
	sessionsPurged.Add(float64(count))
}

// Middleware instruments every request with the counters above. The route
// template is used as the path label so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		ObserveHTTPRequest(c.Request.Method, path, status, time.Since(start))
	}
}
