package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/usecase/analytics"
	"github.com/billing-panel/backend/internal/application/usecase/ratetier"
	"github.com/billing-panel/backend/internal/domain/entity"
)

// CreateRateTierRequest represents the request body for creating a rate tier.
type CreateRateTierRequest struct {
	ServiceType string          `json:"service_type" binding:"required,service_key"`
	TierName    string          `json:"tier_name" binding:"required,max=100"`
	RangeMin    int64           `json:"range_min" binding:"gte=0"`
	RangeMax    *int64          `json:"range_max"`
	Rate        decimal.Decimal `json:"rate"`
}

// QuoteQuery binds the rate tier quote parameters.
type QuoteQuery struct {
	ServiceType string `form:"service_type" binding:"required,service_key"`
	Count       int64  `form:"count" binding:"gte=0"`
}

// RateTierResponse represents a rate tier in API responses.
type RateTierResponse struct {
	ID          string    `json:"id"`
	ServiceType string    `json:"service_type"`
	TierName    string    `json:"tier_name"`
	RangeMin    int64     `json:"range_min"`
	RangeMax    *int64    `json:"range_max"`
	Rate        float64   `json:"rate"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToRateTierResponse converts a domain RateTier.
func ToRateTierResponse(t *entity.RateTier) RateTierResponse {
	return RateTierResponse{
		ID:          t.ID.String(),
		ServiceType: string(t.ServiceType),
		TierName:    t.TierName,
		RangeMin:    t.RangeMin,
		RangeMax:    t.RangeMax,
		Rate:        t.Rate.InexactFloat64(),
		CreatedAt:   t.CreatedAt,
	}
}

// ToRateTierListResponse converts a slice of rate tiers.
func ToRateTierListResponse(tiers []*entity.RateTier) []RateTierResponse {
	out := make([]RateTierResponse, len(tiers))
	for i, t := range tiers {
		out[i] = ToRateTierResponse(t)
	}
	return out
}

// QuoteResponse is the price of a usage count under the matching tier.
type QuoteResponse struct {
	Tier   RateTierResponse `json:"tier"`
	Count  int64            `json:"count"`
	Amount float64          `json:"amount"`
}

// ToQuoteResponse converts a QuoteOutput.
func ToQuoteResponse(out *ratetier.QuoteOutput) QuoteResponse {
	return QuoteResponse{
		Tier:   ToRateTierResponse(out.Tier),
		Count:  out.Count,
		Amount: Money(out.Amount),
	}
}

// CreateSubscriptionRequest represents the request body for creating a subscription.
type CreateSubscriptionRequest struct {
	CustomerID string          `json:"customer_id" binding:"required,uuid"`
	PlanName   string          `json:"plan_name" binding:"required,max=100"`
	MRR        decimal.Decimal `json:"mrr"`
	Status     string          `json:"status" binding:"omitempty,oneof=active cancelled expired"`
}

// SubscriptionResponse represents a subscription in API responses.
type SubscriptionResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	PlanName   string    `json:"plan_name"`
	MRR        float64   `json:"mrr"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date"`
	EndDate    *string   `json:"end_date,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToSubscriptionListResponse converts a slice of subscriptions.
func ToSubscriptionListResponse(subs []*entity.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		out[i] = ToSubscriptionResponse(s)
	}
	return out
}

// ToSubscriptionResponse converts a domain Subscription.
func ToSubscriptionResponse(s *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:         s.ID.String(),
		CustomerID: s.CustomerID.String(),
		PlanName:   s.PlanName,
		MRR:        Money(s.MRR),
		Status:     string(s.Status),
		StartDate:  s.StartDate,
		EndDate:    optionalTime(s.EndDate),
		CreatedAt:  s.CreatedAt,
	}
}

// CreateExpenseRequest represents the request body for recording an expense.
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=1000"`
	Date        *time.Time      `json:"date"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToExpenseResponse converts a domain Expense.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Amount:      Money(e.Amount),
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseListResponse converts a slice of expenses.
func ToExpenseListResponse(expenses []*entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = ToExpenseResponse(e)
	}
	return out
}

// OverviewResponse is the dashboard summary.
type OverviewResponse struct {
	TotalCustomers      int64   `json:"total_customers"`
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	TotalMRR            float64 `json:"total_mrr"`
	TotalRevenue        float64 `json:"total_revenue"`
	PendingRevenue      float64 `json:"pending_revenue"`
	TotalExpenses       float64 `json:"total_expenses"`
	NetProfit           float64 `json:"net_profit"`
}

// ToOverviewResponse converts a GetOverviewOutput.
func ToOverviewResponse(out *analytics.GetOverviewOutput) OverviewResponse {
	return OverviewResponse{
		TotalCustomers:      out.TotalCustomers,
		ActiveSubscriptions: out.ActiveSubscriptions,
		TotalMRR:            Money(out.TotalMRR),
		TotalRevenue:        Money(out.TotalRevenue),
		PendingRevenue:      Money(out.PendingRevenue),
		TotalExpenses:       Money(out.TotalExpenses),
		NetProfit:           Money(out.NetProfit),
	}
}

// RevenuePointResponse is the collected revenue of one month.
type RevenuePointResponse struct {
	Period       string  `json:"period"`
	Revenue      float64 `json:"revenue"`
	InvoiceCount int     `json:"invoice_count"`
}

// ToRevenueChartResponse converts a GetRevenueChartOutput.
func ToRevenueChartResponse(out *analytics.GetRevenueChartOutput) []RevenuePointResponse {
	points := make([]RevenuePointResponse, len(out.Points))
	for i, p := range out.Points {
		points[i] = RevenuePointResponse{Period: p.Period, Revenue: Money(p.Revenue), InvoiceCount: p.InvoiceCount}
	}
	return points
}
