// Package razorpay creates payment links and verifies webhooks for the Razorpay gateway.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/billing-panel/backend/internal/application/adapter"
)

const (
	defaultBaseURL  = "https://api.razorpay.com/v1"
	mockShortURLFmt = "https://rzp.io/i/%s"
)

// ErrInvalidSignature is returned when a webhook body does not match its signature.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Config holds the gateway credentials.
type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	CallbackURL   string
	BaseURL       string
	// Mock returns generated links without calling the API.
	Mock bool
	// AllowUnsigned accepts webhooks without a signature while no secret is set.
	// Only the test environment turns it on.
	AllowUnsigned bool
}

// Client implements adapter.PaymentLinkProvider.
type Client struct {
	config Config
	http   *retryablehttp.Client
}

// NewClient creates a Razorpay client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 200 * time.Millisecond
	httpClient.RetryWaitMax = 2 * time.Second
	httpClient.HTTPClient.Timeout = 10 * time.Second
	httpClient.Logger = slog.Default()

	return &Client{config: config, http: httpClient}
}

var _ adapter.PaymentLinkProvider = (*Client)(nil)

type linkCustomer struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

type createLinkRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Description    string            `json:"description"`
	ReferenceID    string            `json:"reference_id"`
	Customer       linkCustomer      `json:"customer"`
	Notify         map[string]bool   `json:"notify"`
	ReminderEnable bool              `json:"reminder_enable"`
	CallbackURL    string            `json:"callback_url,omitempty"`
	CallbackMethod string            `json:"callback_method,omitempty"`
	Notes          map[string]string `json:"notes,omitempty"`
}

type createLinkResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreatePaymentLink creates a hosted payment link for the amount.
func (c *Client) CreatePaymentLink(ctx context.Context, input adapter.PaymentLinkInput) (*adapter.PaymentLink, error) {
	if input.AmountPaise <= 0 {
		return nil, fmt.Errorf("payment link amount must be positive")
	}
	if c.config.Mock {
		return mockLink(), nil
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}
	body := createLinkRequest{
		Amount:         input.AmountPaise,
		Currency:       currency,
		Description:    input.Description,
		ReferenceID:    input.InvoiceID.String(),
		Customer:       linkCustomer{Name: input.CustomerName, Email: input.CustomerEmail, Contact: input.CustomerPhone},
		Notify:         map[string]bool{"sms": input.CustomerPhone != "", "email": input.CustomerEmail != ""},
		ReminderEnable: true,
		Notes:          map[string]string{"invoice_id": input.InvoiceID.String()},
	}
	if c.config.CallbackURL != "" {
		body.CallbackURL = c.config.CallbackURL
		body.CallbackMethod = "get"
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment link request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/payment_links", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment link request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment link response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay: %s (%s)", apiErr.Error.Description, apiErr.Error.Code)
		}
		return nil, fmt.Errorf("razorpay: unexpected status %d", resp.StatusCode)
	}

	var link createLinkResponse
	if err := json.Unmarshal(raw, &link); err != nil {
		return nil, fmt.Errorf("failed to decode payment link response: %w", err)
	}

	return &adapter.PaymentLink{ID: link.ID, ShortURL: link.ShortURL}, nil
}

// VerifyWebhookSignature checks the hex HMAC-SHA256 of the raw body.
func (c *Client) VerifyWebhookSignature(payload []byte, signature string) error {
	if c.config.WebhookSecret == "" {
		if c.config.AllowUnsigned {
			return nil
		}
		return fmt.Errorf("webhook secret not configured")
	}
	if signature == "" {
		return ErrInvalidSignature
	}

	expected := Sign(c.config.WebhookSecret, payload)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the signature Razorpay sends for payload.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func mockLink() *adapter.PaymentLink {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &adapter.PaymentLink{
		ID:       "plink_" + id[:14],
		ShortURL: fmt.Sprintf(mockShortURLFmt, id[14:22]),
	}
}
