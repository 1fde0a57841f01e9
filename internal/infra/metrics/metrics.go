// Package metrics exposes Prometheus instruments for billing events and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
)

const namespace = "billing"

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// Handler serves the registry in the Prometheus text format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// BillingMetrics counts invoices, payments, account changes and reminder findings.
type BillingMetrics struct {
	invoicesGenerated prometheus.Counter
	paymentsRecorded  *prometheus.CounterVec
	paymentAmount     *prometheus.CounterVec
	accountStatus     *prometheus.CounterVec
	reminderActions   *prometheus.GaugeVec
}

var _ adapter.BillingMetrics = (*BillingMetrics)(nil)

// NewBillingMetrics creates and registers the billing instruments.
func NewBillingMetrics(registerer prometheus.Registerer) *BillingMetrics {
	m := &BillingMetrics{
		invoicesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_generated_total",
			Help:      "Monthly invoices generated.",
		}),
		paymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Payments applied to invoices.",
		}, []string{"method"}),
		paymentAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_amount_total",
			Help:      "Money applied to invoices.",
		}, []string{"method"}),
		accountStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_status_changes_total",
			Help:      "Customer account status transitions by target status.",
		}, []string{"status"}),
		reminderActions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reminder_actions_pending",
			Help:      "Actions found by the last reminder check.",
		}, []string{"action"}),
	}

	registerer.MustRegister(
		m.invoicesGenerated,
		m.paymentsRecorded,
		m.paymentAmount,
		m.accountStatus,
		m.reminderActions,
	)
	return m
}

func (m *BillingMetrics) InvoiceGenerated() {
	m.invoicesGenerated.Inc()
}

func (m *BillingMetrics) PaymentRecorded(method entity.PaymentMethod, amount decimal.Decimal) {
	m.paymentsRecorded.WithLabelValues(string(method)).Inc()
	m.paymentAmount.WithLabelValues(string(method)).Add(amount.InexactFloat64())
}

func (m *BillingMetrics) AccountStatusChanged(status entity.AccountStatus) {
	m.accountStatus.WithLabelValues(string(status)).Inc()
}

func (m *BillingMetrics) ReminderActionsFound(action entity.ReminderActionType, count int) {
	m.reminderActions.WithLabelValues(string(action)).Set(float64(count))
}

// Noop discards every event.
type Noop struct{}

func (Noop) InvoiceGenerated()                                     {}
func (Noop) PaymentRecorded(entity.PaymentMethod, decimal.Decimal) {}
func (Noop) AccountStatusChanged(entity.AccountStatus)             {}
func (Noop) ReminderActionsFound(entity.ReminderActionType, int)   {}

// HTTPMetrics captures low-cardinality HTTP server metrics.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewHTTPMetrics creates and registers the HTTP instruments.
func NewHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint", "status_code"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served.",
		}),
	}
	registerer.MustRegister(m.requestDuration, m.inFlight)
	return m
}

// GinMiddleware records request duration and in-flight metrics.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		m.inFlight.Inc()
		start := time.Now()
		c.Next()
		m.inFlight.Dec()

		m.requestDuration.
			WithLabelValues(c.Request.Method, normalizeEndpoint(c.FullPath()), strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "unknown"
	}
	return endpoint
}
