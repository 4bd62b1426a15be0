package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics are registered on a private registry, so that several servers
// may live in the same process.
type metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	generation *prometheus.HistogramVec
	sessions   prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "okgrad",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		generation: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "okgrad",
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating an output, by format.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"format"}),
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "okgrad",
			Name:      "sessions",
			Help:      "Live editing sessions.",
		}),
	}
}

// middleware counts the requests.
func (m *metrics) middleware(c *gin.Context) {
	c.Next()
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
}

// observe records the duration of the generation started at start.
func (m *metrics) observe(format string, start time.Time) {
	m.generation.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
