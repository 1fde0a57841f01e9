package dto

import (
	"time"

	"github.com/billing-panel/backend/internal/application/usecase/usage"
	"github.com/billing-panel/backend/internal/domain/entity"
)

// LogUsageRequest represents the request body for logging usage.
type LogUsageRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	Service    string `json:"service" binding:"required,service_key"`
	Count      int64  `json:"count" binding:"gte=0"`
	Year       int    `json:"year" binding:"required,gte=2000,lte=2100"`
	Month      int    `json:"month" binding:"required,gte=1,lte=12"`
}

// PeriodQuery binds the year and month query parameters.
type PeriodQuery struct {
	Year  int `form:"year" binding:"required,gte=2000,lte=2100"`
	Month int `form:"month" binding:"required,gte=1,lte=12"`
}

// UsageLogResponse represents a usage record in API responses.
type UsageLogResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Service    string    `json:"service"`
	Count      int64     `json:"count"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	LoggedAt   time.Time `json:"logged_at"`
}

// ToUsageLogResponse converts a domain UsageLog.
func ToUsageLogResponse(l *entity.UsageLog) UsageLogResponse {
	return UsageLogResponse{
		ID:         l.ID.String(),
		CustomerID: l.CustomerID.String(),
		Service:    string(l.Service),
		Count:      l.Count,
		Year:       l.Year,
		Month:      l.Month,
		LoggedAt:   l.LoggedAt,
	}
}

// UsageListResponse lists the logs of a period with per-service totals.
type UsageListResponse struct {
	Logs   []UsageLogResponse `json:"logs"`
	Totals map[string]int64   `json:"totals"`
}

// ToUsageListResponse converts a ListUsageOutput.
func ToUsageListResponse(out *usage.ListUsageOutput) UsageListResponse {
	logs := make([]UsageLogResponse, len(out.Logs))
	for i, l := range out.Logs {
		logs[i] = ToUsageLogResponse(l)
	}
	totals := make(map[string]int64, len(out.Totals))
	for k, v := range out.Totals {
		totals[string(k)] = v
	}
	return UsageListResponse{Logs: logs, Totals: totals}
}

// ServiceExcessResponse is one service above its limit.
type ServiceExcessResponse struct {
	Service          string  `json:"service"`
	ServiceName      string  `json:"service_name"`
	Usage            int64   `json:"usage"`
	ExpectedLimit    int64   `json:"expected_limit"`
	Excess           int64   `json:"excess"`
	ExcessPercentage float64 `json:"excess_percentage"`
}

// CustomerExcessResponse groups excess services by customer.
type CustomerExcessResponse struct {
	CustomerID   string                  `json:"customer_id"`
	CustomerName string                  `json:"customer_name"`
	Services     []ServiceExcessResponse `json:"services"`
}

// ExcessUsageResponse is the excess usage report of a period.
type ExcessUsageResponse struct {
	Year      int                      `json:"year"`
	Month     int                      `json:"month"`
	Customers []CustomerExcessResponse `json:"customers"`
}

// ToExcessUsageResponse converts an ExcessUsageOutput.
func ToExcessUsageResponse(out *usage.ExcessUsageOutput) ExcessUsageResponse {
	customers := make([]CustomerExcessResponse, len(out.Customers))
	for i, c := range out.Customers {
		services := make([]ServiceExcessResponse, len(c.Services))
		for j, s := range c.Services {
			services[j] = ServiceExcessResponse{
				Service:          string(s.Service),
				ServiceName:      s.ServiceName,
				Usage:            s.Usage,
				ExpectedLimit:    s.ExpectedLimit,
				Excess:           s.Excess,
				ExcessPercentage: Money(s.ExcessPercentage),
			}
		}
		customers[i] = CustomerExcessResponse{
			CustomerID:   c.CustomerID.String(),
			CustomerName: c.CustomerName,
			Services:     services,
		}
	}
	return ExcessUsageResponse{Year: out.Year, Month: out.Month, Customers: customers}
}
