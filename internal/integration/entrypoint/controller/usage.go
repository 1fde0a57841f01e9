package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billing-panel/backend/internal/application/usecase/usage"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

// UsageController handles usage log endpoints.
type UsageController struct {
	logUseCase    *usage.LogUsageUseCase
	listUseCase   *usage.ListUsageUseCase
	excessUseCase *usage.ExcessUsageUseCase
}

// NewUsageController creates a new usage controller instance.
func NewUsageController(
	logUseCase *usage.LogUsageUseCase,
	listUseCase *usage.ListUsageUseCase,
	excessUseCase *usage.ExcessUsageUseCase,
) *UsageController {
	return &UsageController{
		logUseCase:    logUseCase,
		listUseCase:   listUseCase,
		excessUseCase: excessUseCase,
	}
}

// Log handles POST /usage-logs requests.
func (c *UsageController) Log(ctx *gin.Context) {
	var req dto.LogUsageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}
	customerID, ok := parseID(ctx, req.CustomerID, "customer")
	if !ok {
		return
	}

	output, err := c.logUseCase.Execute(ctx.Request.Context(), usage.LogUsageInput{
		CustomerID: customerID,
		Service:    req.Service,
		Count:      req.Count,
		Year:       req.Year,
		Month:      req.Month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToUsageLogResponse(output.Log))
}

// List handles GET /usage-logs/:customer_id requests.
func (c *UsageController) List(ctx *gin.Context) {
	customerID, ok := parseID(ctx, ctx.Param("customer_id"), "customer")
	if !ok {
		return
	}
	var query dto.PeriodQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), usage.ListUsageInput{
		CustomerID: customerID,
		Year:       query.Year,
		Month:      query.Month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUsageListResponse(output))
}

// ExcessUsage handles GET /usage-logs/excess-usage requests.
func (c *UsageController) ExcessUsage(ctx *gin.Context) {
	var query dto.PeriodQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	output, err := c.excessUseCase.Execute(ctx.Request.Context(), usage.ExcessUsageInput{
		Year:  query.Year,
		Month: query.Month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToExcessUsageResponse(output))
}
