// Package valueobject contains domain value objects for the Billing Panel system.
package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OverpaymentPolicy decides what happens to money beyond an invoice's outstanding balance.
type OverpaymentPolicy string

const (
	// OverpaymentReject refuses the payment.
	OverpaymentReject OverpaymentPolicy = "reject"
	// OverpaymentClamp applies only the outstanding balance and drops the excess.
	OverpaymentClamp OverpaymentPolicy = "clamp"
	// OverpaymentCredit applies the outstanding balance and credits the excess to the customer.
	OverpaymentCredit OverpaymentPolicy = "credit"
)

// ParseOverpaymentPolicy maps a config value to a policy, defaulting to reject.
func ParseOverpaymentPolicy(s string) OverpaymentPolicy {
	switch OverpaymentPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case OverpaymentClamp:
		return OverpaymentClamp
	case OverpaymentCredit:
		return OverpaymentCredit
	default:
		return OverpaymentReject
	}
}

// BillingPolicy holds the tunable rules of invoice generation and payment.
type BillingPolicy struct {
	TaxRate           decimal.Decimal // 0.18 = 18% GST
	PaymentTermsDays  int
	OverpaymentPolicy OverpaymentPolicy
}

// DefaultBillingPolicy returns 18% GST, 15 day terms and rejection of overpayments.
func DefaultBillingPolicy() BillingPolicy {
	return BillingPolicy{
		TaxRate:           decimal.NewFromFloat(0.18),
		PaymentTermsDays:  15,
		OverpaymentPolicy: OverpaymentReject,
	}
}

// SplitPayment divides an incoming amount into what the invoice absorbs and the excess.
func SplitPayment(amount, outstanding decimal.Decimal) (applied, excess decimal.Decimal) {
	if amount.LessThanOrEqual(outstanding) {
		return amount, decimal.Zero
	}
	return outstanding, amount.Sub(outstanding)
}
