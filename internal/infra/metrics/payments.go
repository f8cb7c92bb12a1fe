package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	enqueue(
		paymentsTotal,
		paymentsRevenueTotal,
		paymentRecordingFailures,
		checkoutDuration,
		verifyDuration,
		reconcilerSweeps,
	)
}

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Payment attempts by terminal status (succeeded/failed/pending/cancelled).",
		},
		[]string{"status"},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_total",
			Help: "Total monetary value of completed payments, labeled by currency.",
		},
		[]string{"currency"},
	)

	// The alarm-worthy branch: provider verified the charge but the local
	// record failed. Anything non-zero here needs human eyes.
	paymentRecordingFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_recording_failures_total",
			Help: "Verified payments whose local record could not be written.",
		},
	)

	checkoutDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_checkout_duration_seconds",
			Help:    "Hosted checkout interaction time by outcome.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"outcome"},
	)

	verifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_verify_duration_seconds",
			Help:    "Provider verification call duration by outcome.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"outcome"},
	)

	reconcilerSweeps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reconciler_sweeps_total",
			Help: "Stale-pending sweep results (ok/empty/error).",
		},
		[]string{"result"},
	)
)

func IncPayment(status string) {
	paymentsTotal.WithLabelValues(norm(status)).Inc()
}

func AddPaymentRevenue(currency string, amount float64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(amount)
}

func IncRecordingFailure() {
	paymentRecordingFailures.Inc()
}

func ObserveCheckout(outcome string, d time.Duration) {
	checkoutDuration.WithLabelValues(norm(outcome)).Observe(d.Seconds())
}

func ObserveVerify(outcome string, d time.Duration) {
	verifyDuration.WithLabelValues(norm(outcome)).Observe(d.Seconds())
}

func IncReconcilerSweep(result string) {
	reconcilerSweeps.WithLabelValues(norm(result)).Inc()
}
