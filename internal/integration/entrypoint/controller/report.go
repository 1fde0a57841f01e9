package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/usecase/analytics"
	"github.com/billing-panel/backend/internal/application/usecase/reminder"
	"github.com/billing-panel/backend/internal/application/usecase/report"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

// ReportController handles reminder, report and analytics endpoints.
type ReportController struct {
	pendingUseCase  *reminder.CheckPendingInvoicesUseCase
	roiUseCase      *report.ROIByProductUseCase
	overviewUseCase *analytics.GetOverviewUseCase
	chartUseCase    *analytics.GetRevenueChartUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	pendingUseCase *reminder.CheckPendingInvoicesUseCase,
	roiUseCase *report.ROIByProductUseCase,
	overviewUseCase *analytics.GetOverviewUseCase,
	chartUseCase *analytics.GetRevenueChartUseCase,
) *ReportController {
	return &ReportController{
		pendingUseCase:  pendingUseCase,
		roiUseCase:      roiUseCase,
		overviewUseCase: overviewUseCase,
		chartUseCase:    chartUseCase,
	}
}

// CheckPendingInvoices handles GET /reminders/check-pending-invoices requests.
// It only classifies; carrying out the actions is left to the reminders command.
func (c *ReportController) CheckPendingInvoices(ctx *gin.Context) {
	classification, err := c.pendingUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPendingInvoicesResponse(classification))
}

// ROIByProduct handles GET /reports/roi requests.
func (c *ReportController) ROIByProduct(ctx *gin.Context) {
	var query dto.ROIReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	input := report.ROIByProductInput{Year: query.Year, Month: query.Month}
	if query.CustomerID != "" {
		id, err := uuid.Parse(query.CustomerID)
		if err != nil {
			respondInvalidRequest(ctx, err)
			return
		}
		input.CustomerID = &id
	}

	output, err := c.roiUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToROIReportResponse(output))
}

// Overview handles GET /analytics/overview requests.
func (c *ReportController) Overview(ctx *gin.Context) {
	output, err := c.overviewUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// RevenueChart handles GET /analytics/revenue-chart requests.
func (c *ReportController) RevenueChart(ctx *gin.Context) {
	output, err := c.chartUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToRevenueChartResponse(output))
}
