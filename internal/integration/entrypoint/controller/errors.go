package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

// respondInvalidRequest answers a binding failure.
func respondInvalidRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request: " + err.Error(),
		Code:  "REQ-000001",
	})
}

// parseID parses a UUID path or body value and answers 400 when it is malformed.
func parseID(ctx *gin.Context, raw, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + what + " ID",
			Code:  "REQ-000002",
		})
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	code, message, typed := describe(err)
	if !typed {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	status := statusFor(err, code)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", ctx.FullPath(), "code", code, "error", err)
	}
	ctx.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

// describe returns the code and message of a typed domain error.
func describe(err error) (code, message string, ok bool) {
	var (
		authErr     *domainerror.AuthError
		customerErr *domainerror.CustomerError
		usageErr    *domainerror.UsageError
		invoiceErr  *domainerror.InvoiceError
		paymentErr  *domainerror.PaymentError
		emailErr    *domainerror.EmailError
		tierErr     *domainerror.RateTierError
		financeErr  *domainerror.FinanceError
	)

	switch {
	case errors.As(err, &authErr):
		return string(authErr.Code), authErr.Message, true
	case errors.As(err, &customerErr):
		return string(customerErr.Code), customerErr.Message, true
	case errors.As(err, &usageErr):
		return string(usageErr.Code), usageErr.Message, true
	case errors.As(err, &invoiceErr):
		return string(invoiceErr.Code), invoiceErr.Message, true
	case errors.As(err, &paymentErr):
		return string(paymentErr.Code), paymentErr.Message, true
	case errors.As(err, &emailErr):
		return string(emailErr.Code), emailErr.Message, true
	case errors.As(err, &tierErr):
		return string(tierErr.Code), tierErr.Message, true
	case errors.As(err, &financeErr):
		return string(financeErr.Code), financeErr.Message, true
	default:
		return "", "", false
	}
}

func statusFor(err error, code string) int {
	switch {
	case code == string(domainerror.ErrCodeUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, domainerror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainerror.ErrDuplicateInvoice),
		errors.Is(err, domainerror.ErrEmailAlreadyExists),
		errors.Is(err, domainerror.ErrInvoiceHasPayments),
		errors.Is(err, domainerror.ErrInvoiceAlreadyPaid),
		errors.Is(err, domainerror.ErrInvalidAccountTransition):
		return http.StatusConflict
	case errors.Is(err, domainerror.ErrInvalidWebhookSignature),
		errors.Is(err, domainerror.ErrInvalidCredentials),
		errors.Is(err, domainerror.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domainerror.ErrPermanentEmailFailure),
		errors.Is(err, domainerror.ErrTemporaryEmailFailure),
		errors.Is(err, domainerror.ErrEmailSendFailed),
		code == string(domainerror.ErrCodePaymentLinkFailed):
		return http.StatusBadGateway
	case code == string(domainerror.ErrCodeRateLimited):
		return http.StatusTooManyRequests
	case code == string(domainerror.ErrCodeEmailQueueFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
