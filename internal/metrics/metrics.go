package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "peluqueria"

var (
	once sync.Once

	bookingOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_attempts_total",
			Help:      "Count of booking attempts by outcome.",
		},
		[]string{"outcome"},
	)

	bookingRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_retries_total",
			Help:      "Count of booking attempts repeated after a transient storage error.",
		},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_cancelled_total",
			Help:      "Count of appointments cancelled.",
		},
	)

	appointmentsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_expired_total",
			Help:      "Count of barber days cleared by the expiry sweep.",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_cache_lookups_total",
			Help:      "Availability cache lookups by result.",
		},
		[]string{"result"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingOutcomes,
			bookingRetries,
			bookingCancelled,
			appointmentsExpired,
			cacheLookups,
			httpDuration,
		)
	})
}

// IncBookingOutcome counts a booking attempt; outcome is "created" or the
// rejection code.
func IncBookingOutcome(outcome string) {
	bookingOutcomes.WithLabelValues(outcome).Inc()
}

func IncBookingRetry() {
	bookingRetries.Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func AddExpired(n int) {
	appointmentsExpired.Add(float64(n))
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// CacheObserver reports availability cache lookups.
type CacheObserver struct{}

func (CacheObserver) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(result).Inc()
}
