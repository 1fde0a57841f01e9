package dto

import (
	"github.com/billing-panel/backend/internal/application/usecase/report"
)

// ROIReportQuery binds the ROI report filters.
type ROIReportQuery struct {
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Year       int    `form:"year" binding:"required,gte=2000,lte=2100"`
	Month      int    `form:"month" binding:"required,gte=1,lte=12"`
}

// ProductROIResponse is the aggregated ROI of one bundle.
type ProductROIResponse struct {
	BundleName   string  `json:"bundle_name"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalUsage   int64   `json:"total_usage"`
	ROIWeight    float64 `json:"roi_weight"`
	WeightedROI  float64 `json:"weighted_roi"`
	InvoiceCount int     `json:"invoice_count"`
}

// ROIReportResponse is the ROI by product report of a period.
type ROIReportResponse struct {
	Period       string               `json:"period"`
	InvoiceCount int                  `json:"invoice_count"`
	Products     []ProductROIResponse `json:"products"`
}

// ToROIReportResponse converts a ROIByProductOutput.
func ToROIReportResponse(out *report.ROIByProductOutput) ROIReportResponse {
	products := make([]ProductROIResponse, len(out.Products))
	for i, p := range out.Products {
		products[i] = ProductROIResponse{
			BundleName:   p.BundleName,
			TotalRevenue: Money(p.TotalRevenue),
			TotalUsage:   p.TotalUsage,
			ROIWeight:    p.ROIWeight.InexactFloat64(),
			WeightedROI:  Money(p.WeightedROI),
			InvoiceCount: p.InvoiceCount,
		}
	}
	return ROIReportResponse{
		Period:       out.Period,
		InvoiceCount: out.InvoiceCount,
		Products:     products,
	}
}
