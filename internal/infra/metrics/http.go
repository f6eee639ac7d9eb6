package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(httpRequestDuration)
}

var httpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and status class.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	},
	[]string{"method", "status"},
)

func ObserveHTTPRequest(method string, status int, seconds float64) {
	httpRequestDuration.WithLabelValues(norm(method), strconv.Itoa(status)).Observe(seconds)
}
