package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billing-panel/backend/internal/application/usecase/usecasetest"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

type ledgerFixture struct {
	store    *usecasetest.Store
	clock    *usecasetest.Clock
	metrics  *usecasetest.Metrics
	customer *entity.Customer
	invoice  *entity.Invoice
}

func newLedgerFixture(t *testing.T, total string) *ledgerFixture {
	t.Helper()

	now := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)
	store := usecasetest.NewStore()

	customer := entity.NewCustomer("Acme Retail", "billing@acme.test")
	store.PutCustomer(customer)

	inv := &entity.Invoice{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Year:       2024,
		Month:      1,
		Total:      decimal.RequireFromString(total),
		PaidAmount: decimal.Zero,
		Status:     entity.InvoiceStatusPending,
		DueDate:    now.AddDate(0, 0, -5),
		CreatedAt:  now.AddDate(0, 0, -20),
	}
	store.PutInvoice(inv)

	return &ledgerFixture{
		store:    store,
		clock:    &usecasetest.Clock{Current: now},
		metrics:  usecasetest.NewMetrics(),
		customer: customer,
		invoice:  inv,
	}
}

func (f *ledgerFixture) useCase(policy valueobject.OverpaymentPolicy) *RecordPaymentUseCase {
	billing := valueobject.DefaultBillingPolicy()
	billing.OverpaymentPolicy = policy
	return NewRecordPaymentUseCase(f.store.Invoices(), billing, f.clock, f.metrics)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecordPayment_PartialThenFull(t *testing.T) {
	f := newLedgerFixture(t, "8850")
	uc := f.useCase(valueobject.OverpaymentReject)
	ctx := context.Background()

	first, err := uc.Execute(ctx, RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount("5000"), Method: entity.PaymentMethodBankTransfer, Reference: "UTR-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, first.Invoice.Status)
	assert.True(t, first.Invoice.PaidAmount.Equal(amount("5000")))
	assert.True(t, first.Invoice.Outstanding().Equal(amount("3850")))

	second, err := uc.Execute(ctx, RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount("3850"), Method: entity.PaymentMethodUPI, Reference: "UTR-2"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, second.Invoice.Status)
	assert.Len(t, second.Invoice.Payments, 2)
	assert.Equal(t, 2, f.metrics.Payments)

	stored := f.store.Invoice(f.invoice.ID)
	assert.True(t, stored.PaidAmount.Equal(amount("8850")))
}

func TestRecordPayment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{name: "zero amount", amount: "0", wantErr: domainerror.ErrInvalidAmount},
		{name: "negative amount", amount: "-10", wantErr: domainerror.ErrInvalidAmount},
		{name: "overpayment rejected", amount: "9000", wantErr: domainerror.ErrOverpayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t, "8850")
			uc := f.useCase(valueobject.OverpaymentReject)

			_, err := uc.Execute(context.Background(), RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount(tt.amount)})
			require.ErrorIs(t, err, tt.wantErr)

			stored := f.store.Invoice(f.invoice.ID)
			assert.True(t, stored.PaidAmount.IsZero())
			assert.Empty(t, stored.Payments)
		})
	}
}

func TestRecordPayment_UnknownInvoice(t *testing.T) {
	f := newLedgerFixture(t, "100")
	uc := f.useCase(valueobject.OverpaymentReject)

	_, err := uc.Execute(context.Background(), RecordPaymentInput{InvoiceID: uuid.New(), Amount: amount("10")})
	require.ErrorIs(t, err, domainerror.ErrNotFound)
}

func TestRecordPayment_OverpaymentPolicies(t *testing.T) {
	tests := []struct {
		name         string
		policy       valueobject.OverpaymentPolicy
		wantBalance  string
		wantCredited string
	}{
		{name: "clamp drops the excess", policy: valueobject.OverpaymentClamp, wantBalance: "0", wantCredited: "0"},
		{name: "credit keeps the excess", policy: valueobject.OverpaymentCredit, wantBalance: "150", wantCredited: "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t, "8850")
			uc := f.useCase(tt.policy)

			out, err := uc.Execute(context.Background(), RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount("9000")})
			require.NoError(t, err)

			assert.Equal(t, entity.InvoiceStatusPaid, out.Invoice.Status)
			assert.True(t, out.Invoice.PaidAmount.Equal(amount("8850")), "paid amount never exceeds total")
			assert.True(t, out.Payment.Amount.Equal(amount("8850")))
			assert.True(t, out.Credited.Equal(amount(tt.wantCredited)))
			assert.True(t, f.store.Customer(f.customer.ID).Balance.Equal(amount(tt.wantBalance)))
		})
	}
}

func TestRecordPayment_AlreadyPaid(t *testing.T) {
	f := newLedgerFixture(t, "100")
	uc := f.useCase(valueobject.OverpaymentReject)
	ctx := context.Background()

	_, err := uc.Execute(ctx, RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount("100")})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount("1")})
	require.ErrorIs(t, err, domainerror.ErrInvoiceAlreadyPaid)
}

func TestRecordPayment_DuplicateReferenceIsIdempotent(t *testing.T) {
	f := newLedgerFixture(t, "1000")
	uc := f.useCase(valueobject.OverpaymentReject)
	ctx := context.Background()

	input := RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount("400"), Reference: "pay_123"}
	_, err := uc.Execute(ctx, input)
	require.NoError(t, err)

	again, err := uc.Execute(ctx, input)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.True(t, again.Invoice.PaidAmount.Equal(amount("400")))
	assert.Len(t, f.store.Invoice(f.invoice.ID).Payments, 1)
	assert.Equal(t, 1, f.metrics.Payments)
}

func TestRecordPayment_Reactivation(t *testing.T) {
	tests := []struct {
		name            string
		status          entity.AccountStatus
		payment         string
		wantStatus      entity.AccountStatus
		wantReactivated bool
	}{
		{name: "suspended customer paying in full", status: entity.AccountStatusSuspended, payment: "500", wantStatus: entity.AccountStatusActive, wantReactivated: true},
		{name: "suspended customer paying partially", status: entity.AccountStatusSuspended, payment: "200", wantStatus: entity.AccountStatusSuspended},
		{name: "shutdown customer stays shut down", status: entity.AccountStatusShutdown, payment: "500", wantStatus: entity.AccountStatusShutdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t, "500")
			f.customer.AccountStatus = tt.status
			f.customer.StatusReason = "overdue"
			f.store.PutCustomer(f.customer)
			uc := f.useCase(valueobject.OverpaymentReject)

			out, err := uc.Execute(context.Background(), RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount(tt.payment)})
			require.NoError(t, err)

			assert.Equal(t, tt.wantReactivated, out.Reactivated)
			stored := f.store.Customer(f.customer.ID)
			assert.Equal(t, tt.wantStatus, stored.AccountStatus)
			if tt.wantReactivated {
				assert.Equal(t, reactivationReason, stored.StatusReason)
				assert.Equal(t, 1, f.metrics.StatusChanges[entity.AccountStatusActive])
			}
		})
	}
}

func TestMarkPaid(t *testing.T) {
	f := newLedgerFixture(t, "8850")
	recorder := f.useCase(valueobject.OverpaymentReject)
	ctx := context.Background()

	_, err := recorder.Execute(ctx, RecordPaymentInput{InvoiceID: f.invoice.ID, Amount: amount("5000")})
	require.NoError(t, err)

	out, err := NewMarkPaidUseCase(recorder).Execute(ctx, MarkPaidInput{InvoiceID: f.invoice.ID, PaymentID: "pay_abc"})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPaid, out.Invoice.Status)
	assert.True(t, out.Payment.Amount.Equal(amount("3850")))
	assert.Equal(t, entity.PaymentMethodRazorpay, out.Payment.Method)
	assert.Equal(t, "pay_abc", out.Payment.Reference)
}
