package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billing-panel/backend/internal/application/usecase/account"
	"github.com/billing-panel/backend/internal/application/usecase/customer"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

// CustomerController handles customer and account lifecycle endpoints.
type CustomerController struct {
	createUseCase     *customer.CreateCustomerUseCase
	getUseCase        *customer.GetCustomerUseCase
	listUseCase       *customer.ListCustomersUseCase
	updateUseCase     *customer.UpdateCustomerUseCase
	deleteUseCase     *customer.DeleteCustomerUseCase
	suspendUseCase    *account.SuspendAccountUseCase
	shutdownUseCase   *account.ShutdownAccountUseCase
	reactivateUseCase *account.ReactivateAccountUseCase
}

// NewCustomerController creates a new customer controller instance.
func NewCustomerController(
	createUseCase *customer.CreateCustomerUseCase,
	getUseCase *customer.GetCustomerUseCase,
	listUseCase *customer.ListCustomersUseCase,
	updateUseCase *customer.UpdateCustomerUseCase,
	deleteUseCase *customer.DeleteCustomerUseCase,
	suspendUseCase *account.SuspendAccountUseCase,
	shutdownUseCase *account.ShutdownAccountUseCase,
	reactivateUseCase *account.ReactivateAccountUseCase,
) *CustomerController {
	return &CustomerController{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		listUseCase:       listUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		suspendUseCase:    suspendUseCase,
		shutdownUseCase:   shutdownUseCase,
		reactivateUseCase: reactivateUseCase,
	}
}

// List handles GET /customers requests.
func (c *CustomerController) List(ctx *gin.Context) {
	customers, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(customers))
}

// Get handles GET /customers/:id requests.
func (c *CustomerController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, ctx.Param("id"), "customer")
	if !ok {
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(found))
}

// Create handles POST /customers requests.
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), customer.CreateCustomerInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		RateCard:       req.RateCard,
		Bundles:        req.Bundles,
		UsageLimits:    req.UsageLimits,
		MinimumBalance: req.MinimumBalance,
		Balance:        req.Balance,
		Permissions:    req.Permissions,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(output.Customer))
}

// Update handles PUT /customers/:id requests.
func (c *CustomerController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, ctx.Param("id"), "customer")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), customer.UpdateCustomerInput{
		CustomerID:     id,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		RateCard:       req.RateCard,
		Bundles:        req.Bundles,
		UsageLimits:    req.UsageLimits,
		MinimumBalance: req.MinimumBalance,
		Balance:        req.Balance,
		Permissions:    req.Permissions,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(output.Customer))
}

// Delete handles DELETE /customers/:id requests.
func (c *CustomerController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, ctx.Param("id"), "customer")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), id); err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Customer deleted"})
}

// SuspendAccount handles POST /customers/:id/suspend-account requests.
func (c *CustomerController) SuspendAccount(ctx *gin.Context) {
	c.changeStatus(ctx, c.suspendUseCase.Execute)
}

// ShutdownAccount handles POST /customers/:id/shutdown-account requests.
func (c *CustomerController) ShutdownAccount(ctx *gin.Context) {
	c.changeStatus(ctx, c.shutdownUseCase.Execute)
}

// ReactivateAccount handles POST /customers/:id/reactivate-account requests.
func (c *CustomerController) ReactivateAccount(ctx *gin.Context) {
	c.changeStatus(ctx, c.reactivateUseCase.Execute)
}

type statusChange func(ctx context.Context, input account.ChangeStatusInput) (*account.ChangeStatusOutput, error)

func (c *CustomerController) changeStatus(ctx *gin.Context, execute statusChange) {
	id, ok := parseID(ctx, ctx.Param("id"), "customer")
	if !ok {
		return
	}

	// The body is optional for reactivation.
	var req dto.AccountStatusRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			respondInvalidRequest(ctx, err)
			return
		}
	}

	output, err := execute(ctx.Request.Context(), account.ChangeStatusInput{
		CustomerID: id,
		Reason:     req.Reason,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToAccountStatusResponse(output))
}
