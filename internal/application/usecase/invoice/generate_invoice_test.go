package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/application/usecase/usecasetest"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/domain/valueobject"
)

type generateFixture struct {
	store    *usecasetest.Store
	clock    *usecasetest.Clock
	metrics  *usecasetest.Metrics
	customer *entity.Customer
}

func newGenerateFixture(t *testing.T) *generateFixture {
	t.Helper()
	store := usecasetest.NewStore()
	customer := newTestCustomer(map[entity.ServiceKey]string{
		entity.ServiceOrders: "5",
		entity.ServiceUsers:  "50",
	}, "oms")
	store.PutCustomer(customer)

	ctx := context.Background()
	usage := store.Usage()
	require.NoError(t, usage.Create(ctx, entity.NewUsageLog(customer.ID, entity.ServiceOrders, 600, 2024, 1)))
	require.NoError(t, usage.Create(ctx, entity.NewUsageLog(customer.ID, entity.ServiceOrders, 400, 2024, 1)))
	require.NoError(t, usage.Create(ctx, entity.NewUsageLog(customer.ID, entity.ServiceUsers, 50, 2024, 1)))

	return &generateFixture{
		store:    store,
		clock:    &usecasetest.Clock{Current: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)},
		metrics:  usecasetest.NewMetrics(),
		customer: customer,
	}
}

func (f *generateFixture) generator() *GenerateMonthlyInvoiceUseCase {
	return NewGenerateMonthlyInvoiceUseCase(f.store.Customers(), f.store.Usage(), f.store.Invoices(), valueobject.DefaultBillingPolicy(), f.clock, f.metrics)
}

func TestGenerateMonthlyInvoice(t *testing.T) {
	f := newGenerateFixture(t)

	out, err := f.generator().Execute(context.Background(), GenerateMonthlyInvoiceInput{CustomerID: f.customer.ID, Year: 2024, Month: 1})
	require.NoError(t, err)

	inv := out.Invoice
	assert.Equal(t, "2024-01", inv.Period())
	assert.True(t, inv.Subtotal.Equal(dec("7500")))
	assert.True(t, inv.TaxAmount.Equal(dec("1350")))
	assert.True(t, inv.Total.Equal(dec("8850")))
	assert.Equal(t, entity.InvoiceStatusPending, inv.Status)
	assert.Equal(t, int64(1000), inv.UsageSnapshot[entity.ServiceOrders])
	assert.Equal(t, f.clock.Current.AddDate(0, 0, 15), inv.DueDate)
	require.Len(t, inv.ROIBreakdown, 1)
	assert.Equal(t, "OMS", inv.ROIBreakdown[0].BundleName)
	assert.Equal(t, 1, f.metrics.Invoices)
}

func TestGenerateMonthlyInvoice_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   func(f *generateFixture) GenerateMonthlyInvoiceInput
		wantErr error
	}{
		{
			name: "unknown customer",
			input: func(*generateFixture) GenerateMonthlyInvoiceInput {
				return GenerateMonthlyInvoiceInput{CustomerID: uuid.New(), Year: 2024, Month: 1}
			},
			wantErr: domainerror.ErrNotFound,
		},
		{
			name: "invalid month",
			input: func(f *generateFixture) GenerateMonthlyInvoiceInput {
				return GenerateMonthlyInvoiceInput{CustomerID: f.customer.ID, Year: 2024, Month: 13}
			},
			wantErr: domainerror.ErrInvalidPeriod,
		},
		{
			name: "period without usage",
			input: func(f *generateFixture) GenerateMonthlyInvoiceInput {
				return GenerateMonthlyInvoiceInput{CustomerID: f.customer.ID, Year: 2024, Month: 2}
			},
			wantErr: domainerror.ErrNothingToBill,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGenerateFixture(t)
			_, err := f.generator().Execute(context.Background(), tt.input(f))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateMonthlyInvoice_Duplicate(t *testing.T) {
	f := newGenerateFixture(t)
	uc := f.generator()
	input := GenerateMonthlyInvoiceInput{CustomerID: f.customer.ID, Year: 2024, Month: 1}

	_, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), input)
	require.ErrorIs(t, err, domainerror.ErrDuplicateInvoice)

	var invErr *domainerror.InvoiceError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, domainerror.ErrCodeDuplicateInvoice, invErr.Code)
}

// lostRaceInvoiceRepo sees no invoice for the period, then loses the insert
// to a concurrent generator on the unique index.
type lostRaceInvoiceRepo struct {
	adapter.InvoiceRepository
}

func (lostRaceInvoiceRepo) FindByCustomerPeriod(context.Context, uuid.UUID, int, int) (*entity.Invoice, error) {
	return nil, domainerror.ErrInvoiceNotFound
}

func (lostRaceInvoiceRepo) Create(context.Context, *entity.Invoice) error {
	return domainerror.ErrDuplicateInvoice
}

func TestGenerateMonthlyInvoice_LosesInsertRace(t *testing.T) {
	f := newGenerateFixture(t)
	uc := NewGenerateMonthlyInvoiceUseCase(
		f.store.Customers(),
		f.store.Usage(),
		lostRaceInvoiceRepo{f.store.Invoices()},
		valueobject.DefaultBillingPolicy(),
		f.clock,
		f.metrics,
	)

	_, err := uc.Execute(context.Background(), GenerateMonthlyInvoiceInput{CustomerID: f.customer.ID, Year: 2024, Month: 1})
	require.ErrorIs(t, err, domainerror.ErrDuplicateInvoice)

	var invErr *domainerror.InvoiceError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, domainerror.ErrCodeDuplicateInvoice, invErr.Code)
	assert.Equal(t, domainerror.InvoiceErrorCode("INV-010003"), invErr.Code)
	assert.Zero(t, f.metrics.Invoices)
}

func TestRegenerateInvoice(t *testing.T) {
	f := newGenerateFixture(t)
	ctx := context.Background()

	out, err := f.generator().Execute(ctx, GenerateMonthlyInvoiceInput{CustomerID: f.customer.ID, Year: 2024, Month: 1})
	require.NoError(t, err)

	require.NoError(t, f.store.Usage().Create(ctx, entity.NewUsageLog(f.customer.ID, entity.ServiceOrders, 1000, 2024, 1)))
	f.clock.Advance(time.Hour)

	regenerator := NewRegenerateInvoiceUseCase(f.store.Customers(), f.store.Usage(), f.store.Invoices(), valueobject.DefaultBillingPolicy(), f.clock)
	regenerated, err := regenerator.Execute(ctx, RegenerateInvoiceInput{InvoiceID: out.Invoice.ID})
	require.NoError(t, err)

	assert.Equal(t, out.Invoice.ID, regenerated.Invoice.ID)
	assert.True(t, regenerated.Invoice.Subtotal.Equal(dec("12500")))
	require.NotNil(t, regenerated.Invoice.RegeneratedAt)
	assert.True(t, f.store.Invoice(out.Invoice.ID).Total.Equal(dec("14750")))
}

func TestRegenerateInvoice_WithPayments(t *testing.T) {
	f := newGenerateFixture(t)
	ctx := context.Background()

	out, err := f.generator().Execute(ctx, GenerateMonthlyInvoiceInput{CustomerID: f.customer.ID, Year: 2024, Month: 1})
	require.NoError(t, err)

	paid := f.store.Invoice(out.Invoice.ID)
	paid.ApplyPayment(entity.NewPaymentRecord(paid.ID, dec("100"), entity.PaymentMethodCash, "", "", f.clock.Now()))
	f.store.PutInvoice(paid)

	regenerator := NewRegenerateInvoiceUseCase(f.store.Customers(), f.store.Usage(), f.store.Invoices(), valueobject.DefaultBillingPolicy(), f.clock)
	_, err = regenerator.Execute(ctx, RegenerateInvoiceInput{InvoiceID: out.Invoice.ID})
	require.ErrorIs(t, err, domainerror.ErrInvoiceHasPayments)
}
