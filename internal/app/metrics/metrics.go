package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paysaga"

var (
	// HTTP
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "code"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// Outbox
	outboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_messages_published_total",
			Help:      "Total number of outbox messages published and marked processed.",
		},
		[]string{"type"},
	)
	outboxErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_errors_total",
			Help:      "Total number of failed outbox publisher cycles.",
		},
		[]string{"stage"},
	)
	outboxBatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outbox_batch_size",
			Help:      "Number of messages fetched per publisher cycle.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)
	outboxLagSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outbox_lag_seconds",
			Help:      "Lag between outbox message creation and publish (seconds).",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
	)
	outboxCleaned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_messages_cleaned_total",
			Help:      "Total number of processed outbox messages removed by retention.",
		},
	)

	// Consumers
	deliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Deliveries handled by consumers, by queue and result.",
		},
		[]string{"queue", "result"},
	)

	// Business
	paymentResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_results_total",
			Help:      "Payment decisions by reason.",
		},
		[]string{"success", "reason"},
	)
	orderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Order status transitions applied by the result consumer.",
		},
		[]string{"status"},
	)
	concurrencyConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "concurrency_conflicts_total",
			Help:      "Optimistic concurrency conflicts by operation.",
		},
		[]string{"operation"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,

			outboxPublished,
			outboxErrors,
			outboxBatchSize,
			outboxLagSeconds,
			outboxCleaned,

			deliveries,

			paymentResults,
			orderTransitions,
			concurrencyConflicts,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// --- HTTP ---
func ObserveHTTPRequest(method, route string, code int, d time.Duration) {
	c := strconv.Itoa(code)
	httpRequests.WithLabelValues(method, route, c).Inc()
	httpDuration.WithLabelValues(method, route, c).Observe(d.Seconds())
}

// --- Outbox ---
func IncOutboxPublished(messageType string) { outboxPublished.WithLabelValues(messageType).Inc() }
func IncOutboxError(stage string)           { outboxErrors.WithLabelValues(stage).Inc() }
func ObserveOutboxBatch(n int)              { outboxBatchSize.Observe(float64(n)) }
func AddOutboxCleaned(n int64)              { outboxCleaned.Add(float64(n)) }
func ObserveOutboxLag(d time.Duration) {
	if d < 0 {
		d = 0
	}
	outboxLagSeconds.Observe(d.Seconds())
}

// --- Consumers ---
func IncDelivery(queue, result string) { deliveries.WithLabelValues(queue, result).Inc() }

// --- Business ---
func IncPaymentResult(success bool, reason string) {
	paymentResults.WithLabelValues(strconv.FormatBool(success), reason).Inc()
}
func IncOrderTransition(status string)        { orderTransitions.WithLabelValues(status).Inc() }
func IncConcurrencyConflict(operation string) { concurrencyConflicts.WithLabelValues(operation).Inc() }
