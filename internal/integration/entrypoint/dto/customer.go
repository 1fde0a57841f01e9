package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/application/usecase/account"
	"github.com/billing-panel/backend/internal/domain/entity"
)

// CreateCustomerRequest represents the request body for creating a customer.
type CreateCustomerRequest struct {
	Name           string                     `json:"name" binding:"required,max=200"`
	Email          string                     `json:"email" binding:"required,email"`
	Phone          string                     `json:"phone" binding:"max=30"`
	Company        string                     `json:"company" binding:"max=200"`
	RateCard       map[string]decimal.Decimal `json:"rate_card" binding:"omitempty,dive,keys,service_key,endkeys"`
	Bundles        []string                   `json:"bundles" binding:"omitempty,dive,bundle_key"`
	UsageLimits    map[string]int64           `json:"usage_limits" binding:"omitempty,dive,keys,service_key,endkeys,gte=0"`
	MinimumBalance decimal.Decimal            `json:"minimum_balance"`
	Balance        decimal.Decimal            `json:"balance"`
	Permissions    map[string]bool            `json:"permissions"`
}

// UpdateCustomerRequest changes only the fields present in the body.
type UpdateCustomerRequest struct {
	Name           *string                    `json:"name" binding:"omitempty,max=200"`
	Email          *string                    `json:"email" binding:"omitempty,email"`
	Phone          *string                    `json:"phone" binding:"omitempty,max=30"`
	Company        *string                    `json:"company" binding:"omitempty,max=200"`
	RateCard       map[string]decimal.Decimal `json:"rate_card" binding:"omitempty,dive,keys,service_key,endkeys"`
	Bundles        []string                   `json:"bundles" binding:"omitempty,dive,bundle_key"`
	UsageLimits    map[string]int64           `json:"usage_limits" binding:"omitempty,dive,keys,service_key,endkeys,gte=0"`
	MinimumBalance *decimal.Decimal           `json:"minimum_balance"`
	Balance        *decimal.Decimal           `json:"balance"`
	Permissions    map[string]bool            `json:"permissions"`
}

// AccountStatusRequest carries the reason for an account status change.
type AccountStatusRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
	Company         string             `json:"company"`
	RateCard        map[string]float64 `json:"rate_card"`
	Bundles         []string           `json:"bundles"`
	UsageLimits     map[string]int64   `json:"usage_limits"`
	MinimumBalance  float64            `json:"minimum_balance"`
	Balance         float64            `json:"balance"`
	AccountStatus   string             `json:"account_status"`
	StatusReason    string             `json:"status_reason,omitempty"`
	StatusChangedAt *string            `json:"status_changed_at,omitempty"`
	Permissions     map[string]bool    `json:"permissions"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to a CustomerResponse.
func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	rateCard := make(map[string]float64, len(c.RateCard))
	for k, v := range c.RateCard {
		rateCard[string(k)] = Money(v)
	}
	limits := make(map[string]int64, len(c.UsageLimits))
	for k, v := range c.UsageLimits {
		limits[string(k)] = v
	}
	bundles := make([]string, len(c.Bundles))
	for i, b := range c.Bundles {
		bundles[i] = string(b)
	}

	return CustomerResponse{
		ID:              c.ID.String(),
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Company:         c.Company,
		RateCard:        rateCard,
		Bundles:         bundles,
		UsageLimits:     limits,
		MinimumBalance:  Money(c.MinimumBalance),
		Balance:         Money(c.Balance),
		AccountStatus:   string(c.AccountStatus),
		StatusReason:    c.StatusReason,
		StatusChangedAt: optionalTime(c.StatusChangedAt),
		Permissions:     c.Permissions,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToCustomerListResponse converts a slice of customers.
func ToCustomerListResponse(customers []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = ToCustomerResponse(c)
	}
	return out
}

// AccountStatusResponse is returned by suspend, shutdown and reactivate.
type AccountStatusResponse struct {
	CustomerID     string `json:"customer_id"`
	PreviousStatus string `json:"previous_status"`
	AccountStatus  string `json:"account_status"`
	Reason         string `json:"reason,omitempty"`
	Message        string `json:"message"`
}

// ToAccountStatusResponse converts a status change result.
func ToAccountStatusResponse(out *account.ChangeStatusOutput) AccountStatusResponse {
	return AccountStatusResponse{
		CustomerID:     out.Customer.ID.String(),
		PreviousStatus: string(out.PreviousStatus),
		AccountStatus:  string(out.Customer.AccountStatus),
		Reason:         out.Customer.StatusReason,
		Message:        "Account " + string(out.Customer.AccountStatus),
	}
}
