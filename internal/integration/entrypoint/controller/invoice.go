package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/usecase/invoice"
	"github.com/billing-panel/backend/internal/application/usecase/payment"
	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

// InvoiceController handles invoice and payment endpoints.
type InvoiceController struct {
	generateUseCase   *invoice.GenerateMonthlyInvoiceUseCase
	regenerateUseCase *invoice.RegenerateInvoiceUseCase
	getUseCase        *invoice.GetInvoiceUseCase
	listUseCase       *invoice.ListInvoicesUseCase
	pdfUseCase        *invoice.RenderInvoicePDFUseCase
	roiUseCase        *invoice.AnalyzeInvoiceROIUseCase
	paymentUseCase    *payment.RecordPaymentUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	generateUseCase *invoice.GenerateMonthlyInvoiceUseCase,
	regenerateUseCase *invoice.RegenerateInvoiceUseCase,
	getUseCase *invoice.GetInvoiceUseCase,
	listUseCase *invoice.ListInvoicesUseCase,
	pdfUseCase *invoice.RenderInvoicePDFUseCase,
	roiUseCase *invoice.AnalyzeInvoiceROIUseCase,
	paymentUseCase *payment.RecordPaymentUseCase,
) *InvoiceController {
	return &InvoiceController{
		generateUseCase:   generateUseCase,
		regenerateUseCase: regenerateUseCase,
		getUseCase:        getUseCase,
		listUseCase:       listUseCase,
		pdfUseCase:        pdfUseCase,
		roiUseCase:        roiUseCase,
		paymentUseCase:    paymentUseCase,
	}
}

// Generate handles POST /invoices/generate requests.
func (c *InvoiceController) Generate(ctx *gin.Context) {
	var req dto.GenerateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}
	customerID, ok := parseID(ctx, req.CustomerID, "customer")
	if !ok {
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), invoice.GenerateMonthlyInvoiceInput{
		CustomerID: customerID,
		Year:       req.Year,
		Month:      req.Month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output.Invoice))
}

// Regenerate handles POST /invoices/:id/regenerate requests.
func (c *InvoiceController) Regenerate(ctx *gin.Context) {
	id, ok := parseID(ctx, ctx.Param("id"), "invoice")
	if !ok {
		return
	}

	output, err := c.regenerateUseCase.Execute(ctx.Request.Context(), invoice.RegenerateInvoiceInput{InvoiceID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// List handles GET /invoices requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	var query dto.ListInvoicesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	input := invoice.ListInvoicesInput{
		Status: query.Status,
		Year:   query.Year,
		Month:  query.Month,
	}
	if query.CustomerID != "" {
		id, err := uuid.Parse(query.CustomerID)
		if err != nil {
			respondInvalidRequest(ctx, err)
			return
		}
		input.CustomerID = &id
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output.Invoices))
}

// Get handles GET /invoices/:id requests.
func (c *InvoiceController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, ctx.Param("id"), "invoice")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), invoice.GetInvoiceInput{InvoiceID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// PDF handles GET /invoices/:id/pdf requests.
func (c *InvoiceController) PDF(ctx *gin.Context) {
	id, ok := parseID(ctx, ctx.Param("id"), "invoice")
	if !ok {
		return
	}

	output, err := c.pdfUseCase.Execute(ctx.Request.Context(), invoice.RenderInvoicePDFInput{InvoiceID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.FileName+`"`)
	ctx.Data(http.StatusOK, "application/pdf", output.Content)
}

// ROI handles GET /invoices/:id/roi requests.
func (c *InvoiceController) ROI(ctx *gin.Context) {
	id, ok := parseID(ctx, ctx.Param("id"), "invoice")
	if !ok {
		return
	}

	output, err := c.roiUseCase.Execute(ctx.Request.Context(), invoice.AnalyzeInvoiceROIInput{InvoiceID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInvoiceROIResponse(output))
}

// RecordPayment handles POST /invoices/:id/payments requests.
func (c *InvoiceController) RecordPayment(ctx *gin.Context) {
	id, ok := parseID(ctx, ctx.Param("id"), "invoice")
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(ctx, err)
		return
	}

	output, err := c.paymentUseCase.Execute(ctx.Request.Context(), payment.RecordPaymentInput{
		InvoiceID: id,
		Amount:    req.Amount,
		Method:    entity.PaymentMethod(req.Method),
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusCreated
	if output.Duplicate {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.ToPaymentResultResponse(output))
}
