// Package customer contains customer management use cases.
package customer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCustomerError(
			domainerror.ErrCodeInvalidCustomerName,
			"customer name is required",
			domainerror.ErrInvalidCustomerName,
		)
	}
	return name, nil
}

func validateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return "", domainerror.NewCustomerError(
			domainerror.ErrCodeInvalidCustomerEmail,
			"invalid email format",
			domainerror.ErrInvalidCustomerEmail,
		)
	}
	return email, nil
}

// parseRateCard accepts any catalog service, variable or fixed.
func parseRateCard(in map[string]decimal.Decimal) (map[entity.ServiceKey]decimal.Decimal, error) {
	out := make(map[entity.ServiceKey]decimal.Decimal, len(in))
	for key, rate := range in {
		if _, ok := entity.LookupService(key); !ok {
			return nil, domainerror.NewCustomerError(
				domainerror.ErrCodeUnknownRateService,
				fmt.Sprintf("unknown service %q in rate card", key),
				domainerror.ErrUnknownService,
			)
		}
		if rate.IsNegative() {
			return nil, domainerror.NewCustomerError(
				domainerror.ErrCodeInvalidRate,
				fmt.Sprintf("rate for %s must not be negative", key),
				domainerror.ErrInvalidRate,
			)
		}
		out[entity.ServiceKey(key)] = rate
	}
	return out, nil
}

func parseBundles(in []string) ([]entity.BundleKey, error) {
	out := make([]entity.BundleKey, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, key := range in {
		if _, ok := entity.LookupBundle(key); !ok {
			return nil, domainerror.NewCustomerError(
				domainerror.ErrCodeUnknownBundle,
				fmt.Sprintf("unknown bundle %q", key),
				domainerror.ErrUnknownBundle,
			)
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, entity.BundleKey(key))
		}
	}
	return out, nil
}

func parseUsageLimits(in map[string]int64) (map[entity.ServiceKey]int64, error) {
	out := make(map[entity.ServiceKey]int64, len(in))
	for key, limit := range in {
		if !entity.IsVariableService(key) {
			return nil, domainerror.NewCustomerError(
				domainerror.ErrCodeUnknownRateService,
				fmt.Sprintf("unknown usage service %q", key),
				domainerror.ErrUnknownService,
			)
		}
		if limit < 0 {
			return nil, domainerror.NewCustomerError(
				domainerror.ErrCodeInvalidRate,
				fmt.Sprintf("usage limit for %s must not be negative", key),
				domainerror.ErrInvalidRate,
			)
		}
		out[entity.ServiceKey(key)] = limit
	}
	return out, nil
}
