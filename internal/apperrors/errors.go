package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given symbol is not in the catalog.
	ErrFundNotFound = errors.New("fund not found")

	// ErrPositionNotFound indicates that no position exists for the given symbol.
	ErrPositionNotFound = errors.New("position not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidShares indicates that a purchase was attempted with zero or negative shares.
	ErrInvalidShares = errors.New("shares must be positive")

	// ErrInvalidPrice indicates that a purchase was attempted with a zero or negative price.
	ErrInvalidPrice = errors.New("price per share must be positive")

	// ErrInvalidDate indicates that a date field is missing or not in YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidSymbol indicates that a required symbol is empty or missing.
	ErrInvalidSymbol = errors.New("symbol is required")
)

// External collaborator errors represent failures at the market-data boundary.
var (
	// ErrUpstreamFetch indicates that the market-data provider failed for every
	// symbol in a refresh batch. Per-symbol failures inside a partially
	// successful batch are reported in the batch result instead.
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrAPIKeyNotConfigured indicates that no market-data API key has been
	// stored, so live refreshes cannot be performed.
	ErrAPIKeyNotConfigured = errors.New("market data API key not configured")
)

// CooldownError reports a refresh attempt made before the gate reopened.
// It carries the remaining wait so callers can present it (e.g. Retry-After).
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("refresh on cooldown, ready in %s", e.Remaining.Round(time.Second))
}

// IsCooldown reports whether err is a CooldownError and returns it if so.
func IsCooldown(err error) (*CooldownError, bool) {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
