package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	enqueue(httpRequests, httpDuration)
}

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status class.",
		},
		[]string{"route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP handler duration by route.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"route"},
	)
)

func ObserveHTTP(route, status string, d time.Duration) {
	httpRequests.WithLabelValues(norm(route), norm(status)).Inc()
	httpDuration.WithLabelValues(norm(route)).Observe(d.Seconds())
}
