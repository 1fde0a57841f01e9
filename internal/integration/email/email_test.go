package email

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/integration/email/templates"
)

type memoryQueue struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.IsReadyToProcess(now) && len(out) < limit {
			copied := *j
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	return q.Create(context.Background(), job)
}

func (q *memoryQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	j, ok := q.jobs[id]
	if !ok {
		return nil, domainerror.ErrEmailJobNotFound
	}
	copied := *j
	return &copied, nil
}

func (q *memoryQueue) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.CustomerID != nil && *j.CustomerID == customerID {
			copied := *j
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newRenderer(t *testing.T) *templates.Renderer {
	t.Helper()
	r, err := templates.NewRenderer()
	require.NoError(t, err)
	return r
}

func TestService_SendPaymentRequest(t *testing.T) {
	sender := NewMockEmailSender()
	svc := NewService(newMemoryQueue(), sender, newRenderer(t), fixedClock{now: time.Now()}, "Acme Billing")

	result, err := svc.SendPaymentRequest(context.Background(), adapter.CustomerEmailInput{
		CustomerName:   "Retail Co",
		CustomerEmail:  "ap@retail.test",
		Period:         "2024-01",
		AmountDue:      "29500.00",
		DueDate:        "16 Feb 2024",
		PaymentLinkURL: "https://rzp.io/i/abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "mock-1", result.ProviderID)

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Invoice for 2024-01 - Acme Billing", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "https://rzp.io/i/abc")
	assert.Contains(t, sent[0].Text, "INR 29500.00")
}

func TestService_SendPaymentRequestFailure(t *testing.T) {
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("503"), false)
	svc := NewService(newMemoryQueue(), sender, newRenderer(t), fixedClock{now: time.Now()}, "Acme Billing")

	_, err := svc.SendPaymentRequest(context.Background(), adapter.CustomerEmailInput{CustomerEmail: "ap@retail.test"})
	var emailErr *domainerror.EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.Equal(t, domainerror.ErrCodeTemporaryEmailFailure, emailErr.Code)

	_, err = svc.SendPaymentRequest(context.Background(), adapter.CustomerEmailInput{})
	assert.ErrorIs(t, err, domainerror.ErrMissingRecipient)
}

func TestService_QueueAndWorker(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	renderer := newRenderer(t)
	clock := fixedClock{now: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewService(queue, sender, renderer, clock, "Acme Billing")

	customerID := uuid.New()
	invoiceID := uuid.New()
	require.NoError(t, svc.QueueCustomerNotice(ctx, adapter.CustomerEmailInput{
		Template:      entity.TemplateFinalReminder,
		CustomerID:    customerID,
		CustomerName:  "Retail Co",
		CustomerEmail: "ap@retail.test",
		InvoiceID:     &invoiceID,
		Period:        "2024-01",
		AmountDue:     "100.00",
		DaysOverdue:   9,
	}))
	require.NoError(t, svc.QueueCustomerNotice(ctx, adapter.CustomerEmailInput{
		Template:       entity.TemplateLowBalanceAlert,
		CustomerID:     customerID,
		CustomerEmail:  "ap@retail.test",
		Balance:        "10.00",
		MinimumBalance: "500.00",
	}))

	err := svc.QueueCustomerNotice(ctx, adapter.CustomerEmailInput{Template: "unknown", CustomerEmail: "x@y.z"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidTemplate)

	worker := NewWorker(queue, sender, renderer, clock, WorkerConfig{})
	result := worker.ProcessNow(ctx)
	assert.Equal(t, BatchResult{Sent: 2}, result)

	sent := sender.Sent()
	require.Len(t, sent, 2)
	subjects := []string{sent[0].Subject, sent[1].Subject}
	assert.Contains(t, subjects, "Final reminder: invoice 2024-01 is 9 days overdue")

	jobs, err := queue.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	for _, j := range jobs {
		assert.Equal(t, entity.EmailStatusSent, j.Status)
		assert.NotEmpty(t, j.ProviderID)
	}
}

func TestWorker_RetriesAndPermanentFailures(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	renderer := newRenderer(t)
	clock := fixedClock{now: time.Now().UTC().Add(time.Second)}

	job := entity.NewEmailJob(entity.TemplatePaymentReminder, "ap@retail.test", "Retail", "Reminder", nil)
	require.NoError(t, queue.Create(ctx, job))

	sender.SetFailure(errors.New("timeout"), false)
	result := NewWorker(queue, sender, renderer, clock, WorkerConfig{}).Drain(ctx)
	assert.Equal(t, BatchResult{Retrying: 1}, result)

	stored, err := queue.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusPending, stored.Status)
	assert.Equal(t, 1, stored.Attempts)

	sender.SetFailure(errors.New("422 validation"), true)
	later := fixedClock{now: clock.now.Add(time.Hour)}
	result = NewWorker(queue, sender, renderer, later, WorkerConfig{}).ProcessNow(ctx)
	assert.Equal(t, BatchResult{Failed: 1}, result)

	bad := entity.NewEmailJob("gone", "ap@retail.test", "", "x", nil)
	require.NoError(t, queue.Create(ctx, bad))
	sender.Reset()
	result = NewWorker(queue, sender, renderer, later, WorkerConfig{}).ProcessNow(ctx)
	assert.Equal(t, BatchResult{Failed: 1}, result)
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  string
		want bool
	}{
		{err: "422 validation_error", want: true},
		{err: "401 Unauthorized", want: true},
		{err: "429 rate limit exceeded", want: false},
		{err: "500 internal", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			assert.Equal(t, tt.want, isPermanentError(errors.New(tt.err)))
		})
	}
}
