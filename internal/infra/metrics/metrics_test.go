package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
)

func TestBillingMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewBillingMetrics(registry)

	m.InvoiceGenerated()
	m.InvoiceGenerated()
	m.PaymentRecorded(entity.PaymentMethodUPI, decimal.RequireFromString("150.50"))
	m.AccountStatusChanged(entity.AccountStatusSuspended)
	m.ReminderActionsFound(entity.ReminderSendReminder, 4)
	m.ReminderActionsFound(entity.ReminderSendReminder, 1)

	if got := testutil.ToFloat64(m.invoicesGenerated); got != 2 {
		t.Fatalf("expected 2 invoices, got %v", got)
	}
	if got := testutil.ToFloat64(m.paymentAmount.WithLabelValues("upi")); got != 150.5 {
		t.Fatalf("expected 150.5 collected, got %v", got)
	}
	if got := testutil.ToFloat64(m.accountStatus.WithLabelValues("suspended")); got != 1 {
		t.Fatalf("expected 1 suspension, got %v", got)
	}
	if got := testutil.ToFloat64(m.reminderActions.WithLabelValues(string(entity.ReminderSendReminder))); got != 1 {
		t.Fatalf("expected gauge to hold the last count, got %v", got)
	}
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := NewRegistry()
	httpMetrics := NewHTTPMetrics(registry)

	r := gin.New()
	r.Use(GinMiddleware(httpMetrics))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(Handler(registry)))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	if !strings.Contains(body, `billing_http_request_duration_seconds_count{endpoint="/ping",method="GET",status_code="204"} 1`) {
		t.Fatalf("expected ping to be recorded, got:\n%s", body)
	}
}
