package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		provisionsTotal,
		callbackVerifications,
		callbackDuration,
		ordersReconciled,
	)
}

var (
	provisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_provisions_total",
			Help: "Remote order provisioning attempts by result (ok/error).",
		},
		[]string{"result"},
	)

	// result: verified|rejected
	// reason (rejected only): missing_payment_id|no_binding|signature_invalid
	callbackVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_callback_verifications_total",
			Help: "Callback verification outcomes by result and bounded reason.",
		},
		[]string{"result", "reason"},
	)

	callbackDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "checkout_callback_duration_seconds",
			Help:    "Duration of callback handling in seconds.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"result"},
	)

	ordersReconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_orders_reconciled_total",
			Help: "Terminal order transitions applied, by final status.",
		},
		[]string{"status"},
	)
)

func IncProvision(result string) {
	provisionsTotal.WithLabelValues(norm(result)).Inc()
}

func IncVerification(result, reason string) {
	callbackVerifications.WithLabelValues(norm(result), norm(reason)).Inc()
}

func ObserveCallbackDuration(result string, seconds float64) {
	callbackDuration.WithLabelValues(norm(result)).Observe(seconds)
}

func IncReconciled(status string) {
	ordersReconciled.WithLabelValues(norm(status)).Inc()
}
