// Package usecasetest provides in-memory adapters for use case tests.
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

// Clock is a settable adapter.Clock.
type Clock struct {
	Current time.Time
}

// Now returns the configured time.
func (c *Clock) Now() time.Time { return c.Current }

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }

// Metrics counts recorded events.
type Metrics struct {
	Invoices      int
	Payments      int
	StatusChanges map[entity.AccountStatus]int
	Actions       map[entity.ReminderActionType]int
}

// NewMetrics creates an empty Metrics recorder.
func NewMetrics() *Metrics {
	return &Metrics{
		StatusChanges: make(map[entity.AccountStatus]int),
		Actions:       make(map[entity.ReminderActionType]int),
	}
}

func (m *Metrics) InvoiceGenerated() { m.Invoices++ }

func (m *Metrics) PaymentRecorded(entity.PaymentMethod, decimal.Decimal) { m.Payments++ }

func (m *Metrics) AccountStatusChanged(status entity.AccountStatus) { m.StatusChanges[status]++ }

func (m *Metrics) ReminderActionsFound(action entity.ReminderActionType, count int) {
	m.Actions[action] += count
}

// Store is an in-memory implementation of the billing repositories.
type Store struct {
	mu        sync.Mutex
	customers map[uuid.UUID]entity.Customer
	invoices  map[uuid.UUID]entity.Invoice
	usage     []entity.UsageLog
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		customers: make(map[uuid.UUID]entity.Customer),
		invoices:  make(map[uuid.UUID]entity.Invoice),
	}
}

// Customers returns the store as an adapter.CustomerRepository.
func (s *Store) Customers() adapter.CustomerRepository { return customerRepo{s} }

// Invoices returns the store as an adapter.InvoiceRepository.
func (s *Store) Invoices() adapter.InvoiceRepository { return invoiceRepo{s} }

// Usage returns the store as an adapter.UsageRepository.
func (s *Store) Usage() adapter.UsageRepository { return usageRepo{s} }

// PutCustomer stores a copy of c.
func (s *Store) PutCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = *c
}

// PutInvoice stores a copy of inv.
func (s *Store) PutInvoice(inv *entity.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.ID] = cloneInvoice(*inv)
}

// Customer returns a copy of the stored customer.
func (s *Store) Customer(id uuid.UUID) *entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return nil
	}
	return &c
}

// Invoice returns a copy of the stored invoice.
func (s *Store) Invoice(id uuid.UUID) *entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return nil
	}
	c := cloneInvoice(inv)
	return &c
}

func cloneInvoice(inv entity.Invoice) entity.Invoice {
	inv.Payments = append([]entity.PaymentRecord(nil), inv.Payments...)
	inv.Items = append([]entity.LineItem(nil), inv.Items...)
	return inv
}

type customerRepo struct{ s *Store }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.PutCustomer(c)
	return nil
}

func (r customerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	if c := r.s.Customer(id); c != nil {
		return c, nil
	}
	return nil, domainerror.ErrCustomerNotFound
}

func (r customerRepo) FindAll(_ context.Context) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r customerRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Customer, error) {
	out := make(map[uuid.UUID]*entity.Customer)
	for _, id := range ids {
		if c := r.s.Customer(id); c != nil {
			out[id] = c
		}
	}
	return out, nil
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	if r.s.Customer(c.ID) == nil {
		return domainerror.ErrCustomerNotFound
	}
	r.s.PutCustomer(c)
	return nil
}

func (r customerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domainerror.ErrCustomerNotFound
	}
	delete(r.s.customers, id)
	return nil
}

func (r customerRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.customers)), nil
}

type usageRepo struct{ s *Store }

func (r usageRepo) Create(_ context.Context, l *entity.UsageLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.usage = append(r.s.usage, *l)
	return nil
}

func (r usageRepo) ListByCustomerPeriod(_ context.Context, customerID uuid.UUID, year, month int) ([]*entity.UsageLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.UsageLog, 0)
	for _, l := range r.s.usage {
		if l.CustomerID == customerID && l.Year == year && l.Month == month {
			l := l
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r usageRepo) SumByCustomerPeriod(ctx context.Context, customerID uuid.UUID, year, month int) (map[entity.ServiceKey]int64, error) {
	logs, _ := r.ListByCustomerPeriod(ctx, customerID, year, month)
	return entity.SumUsage(logs), nil
}

func (r usageRepo) SumByPeriod(_ context.Context, year, month int) (map[uuid.UUID]map[entity.ServiceKey]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uuid.UUID]map[entity.ServiceKey]int64)
	for _, l := range r.s.usage {
		if l.Year != year || l.Month != month {
			continue
		}
		if out[l.CustomerID] == nil {
			out[l.CustomerID] = make(map[entity.ServiceKey]int64)
		}
		out[l.CustomerID][l.Service] += l.Count
	}
	return out, nil
}

type invoiceRepo struct{ s *Store }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invoices {
		if existing.CustomerID == inv.CustomerID && existing.Year == inv.Year && existing.Month == inv.Month {
			return domainerror.ErrDuplicateInvoice
		}
	}
	r.s.invoices[inv.ID] = cloneInvoice(*inv)
	return nil
}

func (r invoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	if inv := r.s.Invoice(id); inv != nil {
		return inv, nil
	}
	return nil, domainerror.ErrInvoiceNotFound
}

func (r invoiceRepo) FindByCustomerPeriod(ctx context.Context, customerID uuid.UUID, year, month int) (*entity.Invoice, error) {
	return r.findFirst(func(inv entity.Invoice) bool {
		return inv.CustomerID == customerID && inv.Year == year && inv.Month == month
	})
}

func (r invoiceRepo) FindByPaymentLinkID(_ context.Context, linkID string) (*entity.Invoice, error) {
	return r.findFirst(func(inv entity.Invoice) bool { return inv.PaymentLinkID == linkID })
}

func (r invoiceRepo) findFirst(match func(entity.Invoice) bool) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if match(inv) {
			c := cloneInvoice(inv)
			return &c, nil
		}
	}
	return nil, domainerror.ErrInvoiceNotFound
}

func (r invoiceRepo) List(_ context.Context, filter adapter.InvoiceFilter) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Invoice, 0)
	for _, inv := range r.s.invoices {
		if filter.CustomerID != nil && inv.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Year != 0 && inv.Year != filter.Year {
			continue
		}
		if filter.Month != 0 && inv.Month != filter.Month {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, inv.Status) {
			continue
		}
		c := cloneInvoice(inv)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period() != out[j].Period() {
			return out[i].Period() > out[j].Period()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func containsStatus(statuses []entity.InvoiceStatus, s entity.InvoiceStatus) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

func (r invoiceRepo) UpdateCalculation(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domainerror.ErrInvoiceNotFound
	}
	r.s.invoices[inv.ID] = cloneInvoice(*inv)
	return nil
}

func (r invoiceRepo) SetPaymentLink(_ context.Context, id uuid.UUID, linkID, url string, at time.Time) error {
	return r.update(id, func(inv *entity.Invoice) {
		inv.PaymentLinkID = linkID
		inv.PaymentLinkURL = url
		inv.PaymentLinkCreatedAt = &at
	})
}

func (r invoiceRepo) MarkPaymentEmailSent(_ context.Context, id uuid.UUID, messageID string, at time.Time) error {
	return r.update(id, func(inv *entity.Invoice) {
		inv.PaymentEmailSent = true
		inv.PaymentEmailSentAt = &at
		inv.EmailMessageID = messageID
	})
}

func (r invoiceRepo) update(id uuid.UUID, fn func(*entity.Invoice)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return domainerror.ErrInvoiceNotFound
	}
	fn(&inv)
	r.s.invoices[id] = inv
	return nil
}

// ApplyPayment serialises mutations with the store mutex, mirroring the row lock.
func (r invoiceRepo) ApplyPayment(_ context.Context, invoiceID uuid.UUID, mutate adapter.PaymentMutation) (*entity.Invoice, *entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.invoices[invoiceID]
	if !ok {
		return nil, nil, domainerror.ErrInvoiceNotFound
	}
	storedCustomer, ok := r.s.customers[stored.CustomerID]
	if !ok {
		return nil, nil, domainerror.ErrCustomerNotFound
	}

	inv := cloneInvoice(stored)
	customer := storedCustomer
	record, err := mutate(&inv, &customer)
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return &inv, &customer, nil
	}

	r.s.invoices[invoiceID] = cloneInvoice(inv)
	r.s.customers[customer.ID] = customer
	return &inv, &customer, nil
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.Clock              = (*Clock)(nil)
	_ adapter.BillingMetrics     = (*Metrics)(nil)
	_ adapter.CustomerRepository = customerRepo{}
	_ adapter.InvoiceRepository  = invoiceRepo{}
	_ adapter.UsageRepository    = usageRepo{}
)
