package validation

import (
	"strings"

	"github.com/dividenddash/backend/internal/api/request"
	"github.com/dividenddash/backend/internal/dates"
)

// ValidateAddHolding validates a purchase request.
//
// Required fields:
//   - symbol: non-empty
//   - shares: must be positive
//   - pricePerShare: must be positive
//   - date: must be in YYYY-MM-DD format
//
// Violations are reported to the caller as a validation Error with
// field-specific messages, never silently coerced.
func ValidateAddHolding(req request.AddHoldingRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if req.Shares <= 0 {
		errors["shares"] = "shares must be positive"
	}

	if req.PricePerShare <= 0 {
		errors["pricePerShare"] = "pricePerShare must be positive"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := dates.Parse(req.Date); err != nil {
		errors["date"] = "date must be in YYYY-MM-DD format"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
