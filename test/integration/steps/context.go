//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/billing-panel/backend/config"
	"github.com/billing-panel/backend/internal/infra/dependency"
	"github.com/billing-panel/backend/internal/integration/email"
	"github.com/billing-panel/backend/internal/integration/persistence/model"
	"github.com/billing-panel/backend/test/integration/mock"
)

const (
	testJWTSecret      = "test-jwt-secret-key-for-testing-purposes"
	testWebhookSecret  = "test-webhook-secret"
	testPassword       = "Sup3rSecret!"
	bootstrapAdminMail = "admin@billing.test"
)

// suite holds what every scenario shares: one server over one database.
type suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	clock    *mock.Time
	gateway  *mock.ApiMock
	mailer   *email.MockEmailSender
}

var (
	suiteOnce sync.Once
	shared    *suite
)

func startSuite() *suite {
	suiteOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			db:      mock.NewDb(model.AllModels()...),
			clock:   mock.NewTime(),
			gateway: mock.NewApiServer(),
			mailer:  email.NewMockEmailSender(),
		}
		s.gateway.Start()

		env := map[string]string{
			"ENV":                     "test",
			"DATABASE_URL":            "sqlite://memory",
			"REDIS_URL":               "redis://miniredis",
			"JWT_SECRET":              testJWTSecret,
			"RAZORPAY_KEY_ID":         "rzp_test_key",
			"RAZORPAY_KEY_SECRET":     "rzp_test_secret",
			"RAZORPAY_WEBHOOK_SECRET": testWebhookSecret,
			"RAZORPAY_BASE_URL":       s.gateway.GetUrl(),
			"RAZORPAY_MOCK":           "false",
			"METRICS_ENABLED":         "true",
			"EMAIL_WORKER_ENABLED":    "false",
		}
		for key, value := range env {
			_ = os.Setenv(key, value)
		}

		cfg, err := config.Load()
		if err != nil {
			panic(fmt.Sprintf("invalid test config: %v", err))
		}

		injector, err := dependency.NewInjector(cfg, s.db.DbConn, mock.NewRedis(), dependency.Overrides{
			Clock:       s.clock,
			EmailSender: s.mailer,
			Registry:    prometheus.NewRegistry(),
			DBHealth:    func(context.Context) error { return nil },
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire test server: %v", err))
		}
		s.injector = injector
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
		shared = s
	})
	return shared
}

type testContext struct {
	*suite

	uri      string
	client   *http.Client
	headers  map[string]string
	response *response

	accessToken string
	tokens      map[string]string
	customers   map[string]uuid.UUID
	invoiceID   uuid.UUID
	lastID      string
}

type response struct {
	status int
	body   any
	raw    []byte
	header http.Header
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.tokens = make(map[string]string)
	t.customers = make(map[string]uuid.UUID)
	t.invoiceID = uuid.Nil
	t.lastID = ""

	t.clock.SetCurrentTime(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))
	t.gateway.Reset()
	t.mailer.Reset()
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	s := startSuite()
	test := &testContext{
		suite:  s,
		uri:    s.server.URL,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)
	ctx.Given(`^(\d+) days pass$`, test.daysPass)

	// Auth steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^I am not logged in$`, test.iAmNotLoggedIn)

	// Billing setup steps
	ctx.Given(`^a customer "([^"]*)" exists with:$`, test.aCustomerExistsWith)
	ctx.Given(`^"([^"]*)" logged (\d+) "([^"]*)" for (\d{4})-(\d{2})$`, test.customerLoggedUsage)
	ctx.Given(`^an invoice is generated for "([^"]*)" for (\d{4})-(\d{2})$`, test.anInvoiceIsGenerated)
	ctx.Given(`^the payment gateway responds to "([^"]*)" "([^"]*)" with status (\d+) and body:$`, test.theGatewayRespondsWith)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^a signed Razorpay webhook is delivered with body:$`, test.aSignedWebhookIsDelivered)
	ctx.When(`^a Razorpay webhook with signature "([^"]*)" is delivered with body:$`, test.aWebhookWithSignatureIsDelivered)
	ctx.When(`^the reminder actions are executed$`, test.theReminderActionsAreExecuted)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, test.theResponseHeaderShouldBe)

	// Side effect assertion steps
	ctx.Then(`^the payment gateway should have received (\d+) "([^"]*)" requests? to "([^"]*)"$`, test.theGatewayShouldHaveReceived)
	ctx.Then(`^(\d+) emails? should have been sent to "([^"]*)"$`, test.emailsShouldHaveBeenSentTo)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}
