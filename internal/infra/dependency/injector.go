// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/billing-panel/backend/config"
	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/application/usecase/account"
	"github.com/billing-panel/backend/internal/application/usecase/analytics"
	"github.com/billing-panel/backend/internal/application/usecase/auth"
	"github.com/billing-panel/backend/internal/application/usecase/customer"
	"github.com/billing-panel/backend/internal/application/usecase/finance"
	"github.com/billing-panel/backend/internal/application/usecase/invoice"
	"github.com/billing-panel/backend/internal/application/usecase/payment"
	"github.com/billing-panel/backend/internal/application/usecase/ratetier"
	"github.com/billing-panel/backend/internal/application/usecase/receivable"
	"github.com/billing-panel/backend/internal/application/usecase/reminder"
	"github.com/billing-panel/backend/internal/application/usecase/report"
	"github.com/billing-panel/backend/internal/application/usecase/usage"
	"github.com/billing-panel/backend/internal/domain/valueobject"
	"github.com/billing-panel/backend/internal/infra/cache"
	"github.com/billing-panel/backend/internal/infra/metrics"
	"github.com/billing-panel/backend/internal/infra/server/router"
	"github.com/billing-panel/backend/internal/integration/adapters"
	"github.com/billing-panel/backend/internal/integration/email"
	"github.com/billing-panel/backend/internal/integration/email/templates"
	"github.com/billing-panel/backend/internal/integration/entrypoint/controller"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
	"github.com/billing-panel/backend/internal/integration/entrypoint/middleware"
	"github.com/billing-panel/backend/internal/integration/pdf"
	"github.com/billing-panel/backend/internal/integration/persistence"
	"github.com/billing-panel/backend/internal/integration/razorpay"
)

// Overrides replaces infrastructure pieces, mainly in tests. Nil fields use the defaults.
type Overrides struct {
	Clock       adapter.Clock
	EmailSender adapter.EmailSender
	Registry    *prometheus.Registry
	DBHealth    controller.HealthChecker
}

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	EmailWorker    *email.Worker
	ExecuteActions *reminder.ExecuteActionsUseCase
	CheckPending   *reminder.CheckPendingInvoicesUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, overrides Overrides) (*Injector, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	clock := overrides.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Metrics
	var (
		billingMetrics adapter.BillingMetrics = metrics.Noop{}
		httpMetrics    *metrics.HTTPMetrics
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		registry := overrides.Registry
		if registry == nil {
			registry = metrics.NewRegistry()
		}
		billingMetrics = metrics.NewBillingMetrics(registry)
		httpMetrics = metrics.NewHTTPMetrics(registry)
		metricsHandler = metrics.Handler(registry)
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	customerRepo := persistence.NewCustomerRepository(db)
	usageRepo := persistence.NewUsageRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	tierRepo := persistence.NewRateTierRepository(db)
	subscriptionRepo := persistence.NewSubscriptionRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	analyticsRepo := persistence.NewAnalyticsRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters
	passwordService := adapters.NewPasswordService(0)
	sessionStore := adapters.NewRedisSessionStore(redisClient)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, sessionStore, clock)

	gateway := razorpay.NewClient(razorpay.Config{
		KeyID:         cfg.Razorpay.KeyID,
		KeySecret:     cfg.Razorpay.KeySecret,
		WebhookSecret: cfg.Razorpay.WebhookSecret,
		CallbackURL:   cfg.Razorpay.CallbackURL,
		BaseURL:       cfg.Razorpay.BaseURL,
		Mock:          cfg.Razorpay.Mock,
		AllowUnsigned: cfg.Server.Environment == "test",
	})
	if cfg.Razorpay.Mock {
		slog.Warn("Razorpay running in mock mode")
	}
	if cfg.Razorpay.WebhookSecret == "" && cfg.Server.Environment != "test" {
		slog.Warn("RAZORPAY_WEBHOOK_SECRET not set, webhook deliveries will be rejected")
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	sender := overrides.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		} else {
			slog.Warn("RESEND_API_KEY not set, emails will only be logged")
			sender = email.LogSender{}
		}
	}
	emailService := email.NewService(emailQueueRepo, sender, renderer, clock, cfg.Email.CompanyName)
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, clock, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	invoiceRenderer := pdf.NewInvoiceRenderer(pdf.Issuer{
		Name:  cfg.Email.CompanyName,
		Email: cfg.Email.FromEmail,
	})

	policy := valueobject.BillingPolicy{
		TaxRate:           cfg.Billing.TaxRate,
		PaymentTermsDays:  cfg.Billing.PaymentTermsDays,
		OverpaymentPolicy: valueobject.ParseOverpaymentPolicy(cfg.Billing.OverpaymentPolicy),
	}
	thresholds := valueobject.ReminderThresholds{
		ReminderDays:      cfg.Reminder.ReminderDays,
		FinalReminderDays: cfg.Reminder.FinalReminderDays,
		SuspendDays:       cfg.Reminder.SuspendDays,
		ShutdownDays:      cfg.Reminder.ShutdownDays,
	}

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)

	// Customer and account use cases
	suspendUseCase := account.NewSuspendAccountUseCase(customerRepo, clock, billingMetrics)
	shutdownUseCase := account.NewShutdownAccountUseCase(customerRepo, clock, billingMetrics)
	reactivateUseCase := account.NewReactivateAccountUseCase(customerRepo, clock, billingMetrics)

	// Billing use cases
	recordPaymentUseCase := payment.NewRecordPaymentUseCase(invoiceRepo, policy, clock, billingMetrics)
	checkPendingUseCase := reminder.NewCheckPendingInvoicesUseCase(invoiceRepo, customerRepo, thresholds, clock, billingMetrics)
	executeActionsUseCase := reminder.NewExecuteActionsUseCase(checkPendingUseCase, suspendUseCase, shutdownUseCase, invoiceRepo, emailService)

	// Controllers
	dbHealth := overrides.DBHealth
	if dbHealth == nil {
		dbHealth = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	healthController := controller.NewHealthController(dbHealth, cache.HealthCheck(redisClient), clock)

	authController := controller.NewAuthController(registerUseCase, loginUseCase, logoutUseCase, getCurrentUserUseCase)

	customerController := controller.NewCustomerController(
		customer.NewCreateCustomerUseCase(customerRepo),
		customer.NewGetCustomerUseCase(customerRepo),
		customer.NewListCustomersUseCase(customerRepo),
		customer.NewUpdateCustomerUseCase(customerRepo, clock),
		customer.NewDeleteCustomerUseCase(customerRepo),
		suspendUseCase,
		shutdownUseCase,
		reactivateUseCase,
	)

	usageController := controller.NewUsageController(
		usage.NewLogUsageUseCase(customerRepo, usageRepo, clock),
		usage.NewListUsageUseCase(usageRepo),
		usage.NewExcessUsageUseCase(customerRepo, usageRepo),
	)

	invoiceController := controller.NewInvoiceController(
		invoice.NewGenerateMonthlyInvoiceUseCase(customerRepo, usageRepo, invoiceRepo, policy, clock, billingMetrics),
		invoice.NewRegenerateInvoiceUseCase(customerRepo, usageRepo, invoiceRepo, policy, clock),
		invoice.NewGetInvoiceUseCase(invoiceRepo),
		invoice.NewListInvoicesUseCase(invoiceRepo),
		invoice.NewRenderInvoicePDFUseCase(invoiceRepo, customerRepo, invoiceRenderer),
		invoice.NewAnalyzeInvoiceROIUseCase(invoiceRepo),
		recordPaymentUseCase,
	)

	receivableController := controller.NewReceivableController(
		receivable.NewListReceivablesUseCase(invoiceRepo, customerRepo),
		receivable.NewCreatePaymentLinkUseCase(invoiceRepo, customerRepo, gateway, clock),
		receivable.NewSendPaymentEmailUseCase(invoiceRepo, customerRepo, emailService, clock),
		payment.NewMarkPaidUseCase(recordPaymentUseCase),
		payment.NewHandleWebhookUseCase(gateway, invoiceRepo, recordPaymentUseCase),
	)

	reportController := controller.NewReportController(
		checkPendingUseCase,
		report.NewROIByProductUseCase(invoiceRepo),
		analytics.NewGetOverviewUseCase(analyticsRepo),
		analytics.NewGetRevenueChartUseCase(analyticsRepo),
	)

	financeController := controller.NewFinanceController(
		ratetier.NewCreateRateTierUseCase(tierRepo),
		ratetier.NewListRateTiersUseCase(tierRepo),
		ratetier.NewQuoteUseCase(tierRepo),
		finance.NewCreateSubscriptionUseCase(subscriptionRepo, customerRepo, clock),
		finance.NewListSubscriptionsUseCase(subscriptionRepo),
		finance.NewCreateExpenseUseCase(expenseRepo, clock),
		finance.NewListExpensesUseCase(expenseRepo),
	)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Enabled:        cfg.RateLimit.Enabled && cfg.Server.Environment != "test",
		MaxAttempts:    cfg.RateLimit.MaxAttempts,
		WindowDuration: cfg.RateLimit.Window,
	}, clock)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		customerController,
		usageController,
		invoiceController,
		receivableController,
		reportController,
		financeController,
		loginRateLimiter,
		authMiddleware,
		httpMetrics,
		metricsHandler,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		EmailWorker:    emailWorker,
		ExecuteActions: executeActionsUseCase,
		CheckPending:   checkPendingUseCase,
	}, nil
}
