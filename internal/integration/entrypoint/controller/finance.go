package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billing-panel/backend/internal/application/usecase/finance"
	"github.com/billing-panel/backend/internal/application/usecase/ratetier"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

// FinanceController handles rate tier, subscription and expense endpoints.
type FinanceController struct {
	createTierUseCase         *ratetier.CreateRateTierUseCase
	listTiersUseCase          *ratetier.ListRateTiersUseCase
	quoteUseCase              *ratetier.QuoteUseCase
	createSubscriptionUseCase *finance.CreateSubscriptionUseCase
	listSubscriptionsUseCase  *finance.ListSubscriptionsUseCase
	createExpenseUseCase      *finance.CreateExpenseUseCase
	listExpensesUseCase       *finance.ListExpensesUseCase
}

// NewFinanceController creates a new finance controller instance.
func NewFinanceController(
	createTierUseCase *ratetier.CreateRateTierUseCase,
	listTiersUseCase *ratetier.ListRateTiersUseCase,
	quoteUseCase *ratetier.QuoteUseCase,
	createSubscriptionUseCase *finance.CreateSubscriptionUseCase,
	listSubscriptionsUseCase *finance.ListSubscriptionsUseCase,
	createExpenseUseCase *finance.CreateExpenseUseCase,
	listExpensesUseCase *finance.ListExpensesUseCase,
) *FinanceController {
	return &FinanceController{
		createTierUseCase:         createTierUseCase,
		listTiersUseCase:          listTiersUseCase,
		quoteUseCase:              quoteUseCase,
		createSubscriptionUseCase: createSubscriptionUseCase,
		listSubscriptionsUseCase:  listSubscriptionsUseCase,
		createExpenseUseCase:      createExpenseUseCase,
		listExpensesUseCase:       listExpensesUseCase,
	}
}

// ListRateTiers handles GET /rate-tiers requests.
func (c *FinanceController) ListRateTiers(ctx *gin.Context) {
	tiers, err := c.listTiersUseCase.Execute(ctx.Request.Context(), ctx.Query("service_type"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToRateTierListResponse(tiers))
}

// CreateRateTier handles POST /rate-tiers requests.
func (c *FinanceController) CreateRateTier(ctx *gin.Context) {
	var req dto.CreateRateTierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	tier, err := c.createTierUseCase.Execute(ctx.Request.Context(), ratetier.CreateRateTierInput{
		ServiceType: req.ServiceType,
		TierName:    req.TierName,
		RangeMin:    req.RangeMin,
		RangeMax:    req.RangeMax,
		Rate:        req.Rate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToRateTierResponse(tier))
}

// Quote handles GET /rate-tiers/quote requests.
func (c *FinanceController) Quote(ctx *gin.Context) {
	var query dto.QuoteQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	output, err := c.quoteUseCase.Execute(ctx.Request.Context(), query.ServiceType, query.Count)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToQuoteResponse(output))
}

// ListSubscriptions handles GET /subscriptions requests.
func (c *FinanceController) ListSubscriptions(ctx *gin.Context) {
	subs, err := c.listSubscriptionsUseCase.Execute(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSubscriptionListResponse(subs))
}

// CreateSubscription handles POST /subscriptions requests.
func (c *FinanceController) CreateSubscription(ctx *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}
	customerID, ok := parseID(ctx, req.CustomerID, "customer")
	if !ok {
		return
	}

	sub, err := c.createSubscriptionUseCase.Execute(ctx.Request.Context(), finance.CreateSubscriptionInput{
		CustomerID: customerID,
		PlanName:   req.PlanName,
		MRR:        req.MRR,
		Status:     req.Status,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// ListExpenses handles GET /expenses requests.
func (c *FinanceController) ListExpenses(ctx *gin.Context) {
	expenses, err := c.listExpensesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(expenses))
}

// CreateExpense handles POST /expenses requests.
func (c *FinanceController) CreateExpense(ctx *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	input := finance.CreateExpenseInput{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	expense, err := c.createExpenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}
