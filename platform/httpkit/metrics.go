package httpkit

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "framtt_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "framtt_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "framtt_http_requests_in_flight",
		Help: "Requests currently being served.",
	})

	// RateLimited counts requests rejected by an IP limiter.
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "framtt_rate_limited_total",
			Help: "Requests rejected by rate limiting, by route.",
		},
		[]string{"route"},
	)

	// QuestionnairesSubmitted counts stored questionnaires.
	QuestionnairesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framtt_questionnaires_submitted_total",
		Help: "Questionnaires submitted.",
	})

	// DemoRequestsSubmitted counts stored demo requests by type.
	DemoRequestsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "framtt_demo_requests_submitted_total",
			Help: "Demo requests submitted, by request type.",
		},
		[]string{"type"},
	)

	// LeadsChanged counts lead writes by action (created, updated).
	LeadsChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "framtt_leads_changed_total",
			Help: "Lead writes by action.",
		},
		[]string{"action"},
	)

	// NotificationFailures counts best-effort emails that were not delivered.
	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "framtt_notification_failures_total",
			Help: "Failed notification deliveries by kind.",
		},
		[]string{"kind"},
	)
)

// Metrics records request count and latency labelled by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := routeLabel(c)
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
