package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqlDB, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func seedCustomer(t *testing.T, repo adapter.CustomerRepository, name string) *entity.Customer {
	t.Helper()
	c := entity.NewCustomer(name, strings.ToLower(name)+"@example.com")
	c.RateCard[entity.ServiceOrders] = decimal.NewFromInt(5)
	c.Bundles = []entity.BundleKey{"oms", "wms"}
	c.UsageLimits[entity.ServiceOrders] = 1000
	c.MinimumBalance = decimal.NewFromInt(500)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func newInvoice(customerID uuid.UUID, year, month int, total int64) *entity.Invoice {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID:         uuid.New(),
		CustomerID: customerID,
		Year:       year,
		Month:      month,
		Items: []entity.LineItem{{
			ServiceKey: entity.ServiceOrders, Service: "Orders", Code: "O", Type: entity.ServiceTypeVariable,
			Quantity: 10, Unit: "per order", Rate: decimal.NewFromInt(5), Amount: decimal.NewFromInt(50),
		}},
		Subtotal:      decimal.NewFromInt(total),
		TaxRate:       decimal.RequireFromString("0.18"),
		TaxAmount:     decimal.Zero,
		Total:         decimal.NewFromInt(total),
		PaidAmount:    decimal.Zero,
		Status:        entity.InvoiceStatusPending,
		DueDate:       now.AddDate(0, 0, 15),
		ROIBreakdown:  []entity.ROIEntry{{BundleKey: "oms", BundleName: "OMS", Revenue: decimal.NewFromInt(50), ROIWeight: decimal.NewFromInt(50), InvoiceCount: 1}},
		UsageSnapshot: map[entity.ServiceKey]int64{entity.ServiceOrders: 10},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestCustomerRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestDB(t))

	c := seedCustomer(t, repo, "Zeta")
	seedCustomer(t, repo, "Alpha")

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zeta", got.Name)
	assert.True(t, got.RateCard[entity.ServiceOrders].Equal(decimal.NewFromInt(5)))
	assert.Equal(t, []entity.BundleKey{"oms", "wms"}, got.Bundles)
	assert.Equal(t, int64(1000), got.UsageLimits[entity.ServiceOrders])
	assert.True(t, got.Permissions[entity.PermissionViewInvoices])

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha", all[0].Name)

	got.Phone = "+91 99999"
	require.NoError(t, got.Suspend("overdue", time.Now()))
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "+91 99999", updated.Phone)
	assert.Equal(t, entity.AccountStatusSuspended, updated.AccountStatus)
	assert.NotNil(t, updated.StatusChangedAt)

	byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{c.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 1)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, domainerror.ErrCustomerNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), domainerror.ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUsageRepository_Sums(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customers := NewCustomerRepository(db)
	repo := NewUsageRepository(db)

	a := seedCustomer(t, customers, "A")
	b := seedCustomer(t, customers, "B")

	for _, l := range []*entity.UsageLog{
		entity.NewUsageLog(a.ID, entity.ServiceOrders, 1000, 2024, 1),
		entity.NewUsageLog(a.ID, entity.ServiceOrders, 500, 2024, 1),
		entity.NewUsageLog(a.ID, entity.ServiceUsers, 3, 2024, 1),
		entity.NewUsageLog(a.ID, entity.ServiceOrders, 99, 2024, 2),
		entity.NewUsageLog(b.ID, entity.ServiceWarehouse, 2, 2024, 1),
	} {
		require.NoError(t, repo.Create(ctx, l))
	}

	sums, err := repo.SumByCustomerPeriod(ctx, a.ID, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, map[entity.ServiceKey]int64{entity.ServiceOrders: 1500, entity.ServiceUsers: 3}, sums)

	logs, err := repo.ListByCustomerPeriod(ctx, a.ID, 2024, 1)
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	all, err := repo.SumByPeriod(ctx, 2024, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), all[b.ID][entity.ServiceWarehouse])
}

func TestInvoiceRepository_UniquePeriod(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	c := seedCustomer(t, NewCustomerRepository(db), "Acme")
	repo := NewInvoiceRepository(db)

	require.NoError(t, repo.Create(ctx, newInvoice(c.ID, 2024, 1, 100)))
	err := repo.Create(ctx, newInvoice(c.ID, 2024, 1, 200))
	assert.ErrorIs(t, err, domainerror.ErrDuplicateInvoice)

	require.NoError(t, repo.Create(ctx, newInvoice(c.ID, 2024, 2, 300)))

	list, err := repo.List(ctx, adapter.InvoiceFilter{CustomerID: &c.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Month, "newest period first")

	found, err := repo.FindByCustomerPeriod(ctx, c.ID, 2024, 1)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, int64(10), found.UsageSnapshot[entity.ServiceOrders])
	assert.Equal(t, "OMS", found.ROIBreakdown[0].BundleName)
}

func TestInvoiceRepository_ApplyPayment(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customers := NewCustomerRepository(db)
	c := seedCustomer(t, customers, "Acme")
	repo := NewInvoiceRepository(db)

	inv := newInvoice(c.ID, 2024, 1, 1000)
	require.NoError(t, repo.Create(ctx, inv))

	paid := func(amount int64, reference string) adapter.PaymentMutation {
		return func(i *entity.Invoice, cust *entity.Customer) (*entity.PaymentRecord, error) {
			if i.HasPaymentReference(reference) {
				return nil, nil
			}
			rec := entity.NewPaymentRecord(i.ID, decimal.NewFromInt(amount), entity.PaymentMethodUPI, reference, "", time.Now())
			i.ApplyPayment(rec)
			cust.Balance = cust.Balance.Add(decimal.NewFromInt(1))
			return &rec, nil
		}
	}

	updated, customer, err := repo.ApplyPayment(ctx, inv.ID, paid(400, "utr-1"))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, updated.Status)
	assert.True(t, customer.Balance.Equal(decimal.NewFromInt(1)))

	_, _, err = repo.ApplyPayment(ctx, inv.ID, paid(400, "utr-1"))
	require.NoError(t, err)

	_, _, err = repo.ApplyPayment(ctx, inv.ID, paid(600, "utr-2"))
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.Status)
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(1000)))
	require.Len(t, stored.Payments, 2)

	reloaded, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.NewFromInt(2)))

	_, _, err = repo.ApplyPayment(ctx, uuid.New(), paid(1, ""))
	assert.ErrorIs(t, err, domainerror.ErrInvoiceNotFound)

	err = repo.UpdateCalculation(ctx, stored)
	assert.ErrorIs(t, err, domainerror.ErrInvoiceHasPayments)
}

func TestInvoiceRepository_ConcurrentPayments(t *testing.T) {
	const payers = 8

	ctx := context.Background()
	db := newTestDB(t)
	c := seedCustomer(t, NewCustomerRepository(db), "Acme")
	repo := NewInvoiceRepository(db)

	inv := newInvoice(c.ID, 2024, 1, payers)
	require.NoError(t, repo.Create(ctx, inv))

	var wg sync.WaitGroup
	errs := make([]error, payers)
	for n := 0; n < payers; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, errs[n] = repo.ApplyPayment(ctx, inv.ID, func(i *entity.Invoice, _ *entity.Customer) (*entity.PaymentRecord, error) {
				rec := entity.NewPaymentRecord(i.ID, decimal.NewFromInt(1), entity.PaymentMethodUPI, fmt.Sprintf("utr-%d", n), "", time.Now())
				i.ApplyPayment(rec)
				return &rec, nil
			})
		}(n)
	}
	wg.Wait()

	for n, err := range errs {
		require.NoError(t, err, "payer %d", n)
	}

	stored, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(payers)), "paid %s", stored.PaidAmount)
	assert.Len(t, stored.Payments, payers)
	assert.Equal(t, entity.InvoiceStatusPaid, stored.Status)
}

func TestInvoiceRepository_ConcurrentCreateSamePeriod(t *testing.T) {
	const generators = 6

	ctx := context.Background()
	db := newTestDB(t)
	c := seedCustomer(t, NewCustomerRepository(db), "Acme")
	repo := NewInvoiceRepository(db)

	var wg sync.WaitGroup
	errs := make([]error, generators)
	for n := 0; n < generators; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = repo.Create(ctx, newInvoice(c.ID, 2024, 3, int64(100+n)))
		}(n)
	}
	wg.Wait()

	created, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domainerror.ErrDuplicateInvoice):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, generators-1, duplicates)

	list, err := repo.List(ctx, adapter.InvoiceFilter{CustomerID: &c.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestInvoiceRepository_PaymentLinkAndEmail(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	c := seedCustomer(t, NewCustomerRepository(db), "Acme")
	repo := NewInvoiceRepository(db)

	inv := newInvoice(c.ID, 2024, 1, 1000)
	require.NoError(t, repo.Create(ctx, inv))

	at := time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetPaymentLink(ctx, inv.ID, "plink_abc", "https://rzp.io/i/abc", at))
	require.NoError(t, repo.MarkPaymentEmailSent(ctx, inv.ID, "msg-1", at))

	found, err := repo.FindByPaymentLinkID(ctx, "plink_abc")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, found.ID)
	assert.True(t, found.PaymentEmailSent)
	assert.Equal(t, "msg-1", found.EmailMessageID)
	require.NotNil(t, found.PaymentEmailSentAt)

	_, err = repo.FindByPaymentLinkID(ctx, "")
	assert.ErrorIs(t, err, domainerror.ErrInvoiceNotFound)
	assert.ErrorIs(t, repo.SetPaymentLink(ctx, uuid.New(), "x", "y", at), domainerror.ErrInvoiceNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, entity.NewUser("a@example.com", "A", "hash", entity.RoleAdmin)))
	err := repo.Create(ctx, entity.NewUser("a@example.com", "B", "hash", entity.RoleSales))
	assert.ErrorIs(t, err, domainerror.ErrEmailAlreadyExists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	u, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}

func TestAnalyticsRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	c := seedCustomer(t, NewCustomerRepository(db), "Acme")
	invoices := NewInvoiceRepository(db)

	jan := newInvoice(c.ID, 2024, 1, 1000)
	feb := newInvoice(c.ID, 2024, 2, 500)
	require.NoError(t, invoices.Create(ctx, jan))
	require.NoError(t, invoices.Create(ctx, feb))
	_, _, err := invoices.ApplyPayment(ctx, jan.ID, func(i *entity.Invoice, _ *entity.Customer) (*entity.PaymentRecord, error) {
		rec := entity.NewPaymentRecord(i.ID, decimal.NewFromInt(1000), entity.PaymentMethodCash, "", "", time.Now())
		i.ApplyPayment(rec)
		return &rec, nil
	})
	require.NoError(t, err)

	subs := NewSubscriptionRepository(db)
	require.NoError(t, subs.Create(ctx, entity.NewSubscription(c.ID, "Growth", decimal.NewFromInt(250), entity.SubscriptionStatusActive)))
	require.NoError(t, subs.Create(ctx, entity.NewSubscription(c.ID, "Old", decimal.NewFromInt(99), entity.SubscriptionStatusCancelled)))
	require.NoError(t, NewExpenseRepository(db).Create(ctx, entity.NewExpense("hosting", decimal.NewFromInt(300), "", time.Now())))

	repo := NewAnalyticsRepository(db)
	totals, err := repo.GetOverviewTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.TotalCustomers)
	assert.Equal(t, int64(1), totals.ActiveSubscriptions)
	assert.True(t, totals.TotalMRR.Equal(decimal.NewFromInt(250)), totals.TotalMRR.String())
	assert.True(t, totals.TotalRevenue.Equal(decimal.NewFromInt(1000)), totals.TotalRevenue.String())
	assert.True(t, totals.PendingRevenue.Equal(decimal.NewFromInt(500)), totals.PendingRevenue.String())
	assert.True(t, totals.TotalExpenses.Equal(decimal.NewFromInt(300)), totals.TotalExpenses.String())

	periods, err := repo.GetRevenueByPeriod(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, 1, periods[0].Month)
	assert.Equal(t, 1, periods[0].InvoiceCount)
}

func TestRateTierRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewRateTierRepository(newTestDB(t))
	upper := int64(1000)

	require.NoError(t, repo.Create(ctx, entity.NewRateTier(entity.ServiceOrders, "1000+", 1000, nil, decimal.NewFromInt(3))))
	require.NoError(t, repo.Create(ctx, entity.NewRateTier(entity.ServiceOrders, "0-999", 0, &upper, decimal.NewFromInt(5))))
	require.NoError(t, repo.Create(ctx, entity.NewRateTier(entity.ServiceUsers, "all", 0, nil, decimal.NewFromInt(100))))

	orders, err := repo.List(ctx, entity.ServiceOrders)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(0), orders[0].RangeMin)
	require.NotNil(t, orders[0].RangeMax)
	assert.Nil(t, orders[1].RangeMax)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEmailQueueRepository_PendingJobs(t *testing.T) {
	ctx := context.Background()
	repo := NewEmailQueueRepository(newTestDB(t))
	now := time.Now().UTC()
	customerID := uuid.New()

	due := entity.NewEmailJob(entity.TemplatePaymentReminder, "a@example.com", "A", "Reminder", map[string]interface{}{"period": "2024-01"})
	due.CustomerID = &customerID
	later := entity.NewEmailJob(entity.TemplateFinalReminder, "a@example.com", "A", "Final", nil)
	later.ScheduledAt = now.Add(time.Hour)

	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, later))

	jobs, err := repo.GetPendingJobs(ctx, now.Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "2024-01", jobs[0].TemplateData["period"])

	jobs[0].MarkSent("re_123", time.Now().UTC())
	require.NoError(t, repo.Update(ctx, jobs[0]))

	stored, err := repo.GetByID(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusSent, stored.Status)
	assert.Equal(t, "re_123", stored.ProviderID)

	history, err := repo.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrEmailJobNotFound)
}
