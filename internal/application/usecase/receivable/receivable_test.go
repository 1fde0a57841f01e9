package receivable

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/application/usecase/usecasetest"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

type fakeProvider struct {
	lastInput adapter.PaymentLinkInput
}

func (p *fakeProvider) CreatePaymentLink(_ context.Context, input adapter.PaymentLinkInput) (*adapter.PaymentLink, error) {
	p.lastInput = input
	return &adapter.PaymentLink{ID: "plink_test", ShortURL: "https://rzp.io/i/test"}, nil
}

func (p *fakeProvider) VerifyWebhookSignature([]byte, string) error { return nil }

type fakeEmail struct {
	fail bool
	sent []adapter.CustomerEmailInput
}

func (e *fakeEmail) SendPaymentRequest(_ context.Context, input adapter.CustomerEmailInput) (*adapter.SendEmailResult, error) {
	if e.fail {
		return nil, errors.New("provider down")
	}
	e.sent = append(e.sent, input)
	return &adapter.SendEmailResult{ProviderID: "msg-1"}, nil
}

func (e *fakeEmail) QueueCustomerNotice(context.Context, adapter.CustomerEmailInput) error { return nil }

type receivableFixture struct {
	store    *usecasetest.Store
	clock    *usecasetest.Clock
	customer *entity.Customer
	invoice  *entity.Invoice
}

func newReceivableFixture() *receivableFixture {
	store := usecasetest.NewStore()
	clock := &usecasetest.Clock{Current: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)}

	customer := entity.NewCustomer("Acme", "acme@example.com")
	store.PutCustomer(customer)

	inv := &entity.Invoice{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Year:       2024,
		Month:      1,
		Total:      decimal.RequireFromString("8850.50"),
		PaidAmount: decimal.RequireFromString("850"),
		Status:     entity.InvoiceStatusPartiallyPaid,
		DueDate:    clock.Current.AddDate(0, 0, 10),
	}
	store.PutInvoice(inv)

	return &receivableFixture{store: store, clock: clock, customer: customer, invoice: inv}
}

func TestCreatePaymentLink(t *testing.T) {
	f := newReceivableFixture()
	provider := &fakeProvider{}
	uc := NewCreatePaymentLinkUseCase(f.store.Invoices(), f.store.Customers(), provider, f.clock)

	out, err := uc.Execute(context.Background(), CreatePaymentLinkInput{InvoiceID: f.invoice.ID})
	require.NoError(t, err)

	assert.Equal(t, "plink_test", out.LinkID)
	assert.Equal(t, int64(800050), provider.lastInput.AmountPaise)
	assert.Equal(t, "INR", provider.lastInput.Currency)

	stored := f.store.Invoice(f.invoice.ID)
	assert.Equal(t, "https://rzp.io/i/test", stored.PaymentLinkURL)
	require.NotNil(t, stored.PaymentLinkCreatedAt)
}

func TestSendPaymentEmail(t *testing.T) {
	t.Run("requires a payment link", func(t *testing.T) {
		f := newReceivableFixture()
		uc := NewSendPaymentEmailUseCase(f.store.Invoices(), f.store.Customers(), &fakeEmail{}, f.clock)

		_, err := uc.Execute(context.Background(), SendPaymentEmailInput{InvoiceID: f.invoice.ID})
		require.ErrorIs(t, err, domainerror.ErrPaymentLinkMissing)
	})

	t.Run("failure leaves flags unset", func(t *testing.T) {
		f := newReceivableFixture()
		require.NoError(t, f.store.Invoices().SetPaymentLink(context.Background(), f.invoice.ID, "plink_1", "https://rzp.io/i/1", f.clock.Now()))
		uc := NewSendPaymentEmailUseCase(f.store.Invoices(), f.store.Customers(), &fakeEmail{fail: true}, f.clock)

		_, err := uc.Execute(context.Background(), SendPaymentEmailInput{InvoiceID: f.invoice.ID})
		require.Error(t, err)
		assert.False(t, f.store.Invoice(f.invoice.ID).PaymentEmailSent)
	})

	t.Run("success flags the invoice", func(t *testing.T) {
		f := newReceivableFixture()
		require.NoError(t, f.store.Invoices().SetPaymentLink(context.Background(), f.invoice.ID, "plink_1", "https://rzp.io/i/1", f.clock.Now()))
		email := &fakeEmail{}
		uc := NewSendPaymentEmailUseCase(f.store.Invoices(), f.store.Customers(), email, f.clock)

		out, err := uc.Execute(context.Background(), SendPaymentEmailInput{InvoiceID: f.invoice.ID})
		require.NoError(t, err)
		assert.Equal(t, "msg-1", out.MessageID)

		stored := f.store.Invoice(f.invoice.ID)
		assert.True(t, stored.PaymentEmailSent)
		assert.Equal(t, "msg-1", stored.EmailMessageID)
		require.Len(t, email.sent, 1)
		assert.Equal(t, "8000.50", email.sent[0].AmountDue)
	})
}

func TestListReceivables(t *testing.T) {
	f := newReceivableFixture()

	other := entity.NewCustomer("Bolt", "bolt@example.com")
	f.store.PutCustomer(other)
	f.store.PutInvoice(&entity.Invoice{ID: uuid.New(), CustomerID: other.ID, Year: 2024, Month: 1, Total: decimal.NewFromInt(100), PaidAmount: decimal.Zero, Status: entity.InvoiceStatusPending})
	f.store.PutInvoice(&entity.Invoice{ID: uuid.New(), CustomerID: other.ID, Year: 2023, Month: 12, Total: decimal.NewFromInt(50), PaidAmount: decimal.NewFromInt(50), Status: entity.InvoiceStatusPaid})

	out, err := NewListReceivablesUseCase(f.store.Invoices(), f.store.Customers()).Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Customers, 2)
	assert.Equal(t, 2, out.InvoiceCount)
	assert.Equal(t, "Acme", out.Customers[0].Customer.Name)
	assert.True(t, out.Customers[0].TotalOutstanding.Equal(decimal.RequireFromString("8000.50")))
	assert.True(t, out.TotalOutstanding.Equal(decimal.RequireFromString("8100.50")))
}
