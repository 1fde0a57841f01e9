// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billing-panel/backend/internal/domain/entity"
	"github.com/billing-panel/backend/internal/infra/metrics"
	"github.com/billing-panel/backend/internal/integration/entrypoint/controller"
	"github.com/billing-panel/backend/internal/integration/entrypoint/middleware"
)

var (
	staffRoles    = []entity.Role{entity.RoleAdmin, entity.RoleFinanceTeam, entity.RoleAccountant, entity.RoleSales, entity.RolePM}
	billingRoles  = []entity.Role{entity.RoleAdmin, entity.RoleFinanceTeam, entity.RoleAccountant}
	customerRoles = []entity.Role{entity.RoleAdmin, entity.RoleFinanceTeam, entity.RoleSales}
	salesRoles    = []entity.Role{entity.RoleAdmin, entity.RoleSales}
	usageRoles    = []entity.Role{entity.RoleAdmin, entity.RoleFinanceTeam, entity.RolePM}
	accountRoles  = []entity.Role{entity.RoleAdmin, entity.RoleFinanceTeam}
	adminRoles    = []entity.Role{entity.RoleAdmin}
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	customerController   *controller.CustomerController
	usageController      *controller.UsageController
	invoiceController    *controller.InvoiceController
	receivableController *controller.ReceivableController
	reportController     *controller.ReportController
	financeController    *controller.FinanceController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
	httpMetrics          *metrics.HTTPMetrics
	metricsHandler       http.Handler
}

// NewRouter creates a new router instance with all dependencies.
// httpMetrics and metricsHandler may be nil when metrics are disabled.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	customerController *controller.CustomerController,
	usageController *controller.UsageController,
	invoiceController *controller.InvoiceController,
	receivableController *controller.ReceivableController,
	reportController *controller.ReportController,
	financeController *controller.FinanceController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		customerController:   customerController,
		usageController:      usageController,
		invoiceController:    invoiceController,
		receivableController: receivableController,
		reportController:     reportController,
		financeController:    financeController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
		httpMetrics:          httpMetrics,
		metricsHandler:       metricsHandler,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}
	if r.httpMetrics != nil {
		r.engine.Use(metrics.GinMiddleware(r.httpMetrics))
	}

	r.setupOperationalRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupOperationalRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	authenticate := r.authMiddleware.Authenticate()
	allow := middleware.RequireRoles

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.loginRateLimiter.Middleware(), r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.GET("/me", authenticate, r.authController.Me)
		auth.POST("/logout", authenticate, r.authController.Logout)
	}

	// Signed by the gateway, not by a user session.
	v1.POST("/webhook/razorpay", r.receivableController.RazorpayWebhook)

	api := v1.Group("")
	api.Use(authenticate)

	customers := api.Group("/customers")
	{
		customers.GET("", allow(customerRoles...), r.customerController.List)
		customers.POST("", allow(salesRoles...), r.customerController.Create)
		customers.GET("/:id", allow(customerRoles...), r.customerController.Get)
		customers.PUT("/:id", allow(salesRoles...), r.customerController.Update)
		customers.DELETE("/:id", allow(adminRoles...), r.customerController.Delete)
		customers.POST("/:id/suspend-account", allow(accountRoles...), r.customerController.SuspendAccount)
		customers.POST("/:id/shutdown-account", allow(accountRoles...), r.customerController.ShutdownAccount)
		customers.POST("/:id/reactivate-account", allow(accountRoles...), r.customerController.ReactivateAccount)
	}

	usage := api.Group("/usage-logs")
	{
		usage.POST("", allow(usageRoles...), r.usageController.Log)
		usage.GET("/excess-usage", allow(billingRoles...), r.usageController.ExcessUsage)
		usage.GET("/:customer_id", allow(staffRoles...), r.usageController.List)
	}

	invoices := api.Group("/invoices")
	invoices.Use(allow(billingRoles...))
	{
		invoices.POST("/generate", r.invoiceController.Generate)
		invoices.GET("", r.invoiceController.List)
		invoices.GET("/:id", r.invoiceController.Get)
		invoices.POST("/:id/regenerate", r.invoiceController.Regenerate)
		invoices.GET("/:id/pdf", r.invoiceController.PDF)
		invoices.GET("/:id/roi", r.invoiceController.ROI)
		invoices.POST("/:id/payments", r.invoiceController.RecordPayment)
	}

	receivables := api.Group("/receivables")
	receivables.Use(allow(billingRoles...))
	{
		receivables.GET("", r.receivableController.List)
		receivables.POST("/create-payment-link", r.receivableController.CreatePaymentLink)
		receivables.POST("/send-payment-email", r.receivableController.SendPaymentEmail)
		receivables.POST("/mark-paid", r.receivableController.MarkPaid)
	}

	api.GET("/reminders/check-pending-invoices", allow(billingRoles...), r.reportController.CheckPendingInvoices)
	api.GET("/reports/roi", allow(billingRoles...), r.reportController.ROIByProduct)

	analytics := api.Group("/analytics")
	analytics.Use(allow(accountRoles...))
	{
		analytics.GET("/overview", r.reportController.Overview)
		analytics.GET("/revenue-chart", r.reportController.RevenueChart)
	}

	tiers := api.Group("/rate-tiers")
	{
		tiers.GET("", allow(staffRoles...), r.financeController.ListRateTiers)
		tiers.GET("/quote", allow(staffRoles...), r.financeController.Quote)
		tiers.POST("", allow(adminRoles...), r.financeController.CreateRateTier)
	}

	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(allow(billingRoles...))
	{
		subscriptions.GET("", r.financeController.ListSubscriptions)
		subscriptions.POST("", r.financeController.CreateSubscription)
	}

	expenses := api.Group("/expenses")
	expenses.Use(allow(billingRoles...))
	{
		expenses.GET("", r.financeController.ListExpenses)
		expenses.POST("", r.financeController.CreateExpense)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
