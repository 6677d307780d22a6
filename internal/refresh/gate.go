// Package refresh implements the cooldown gate in front of external
// market-data refreshes. The gate is a two-state machine, Ready and Cooldown,
// evaluated lazily against an injected timestamp store and clock; no timers
// are involved.
package refresh

import (
	"context"
	"time"

	"github.com/dividenddash/backend/internal/apperrors"
)

// DefaultCooldown is the minimum spacing between successful refreshes.
// The upstream quota allows one full catalog refresh per day.
const DefaultCooldown = 24 * time.Hour

// Store persists the last-successful-refresh timestamp. The gate never owns
// storage directly; a sqlite-backed implementation lives in the repository
// layer and an in-memory one in the tests.
type Store interface {
	// LastRefresh returns the stored timestamp, or ok=false when no refresh
	// has ever succeeded.
	LastRefresh() (t time.Time, ok bool, err error)
	// SetLastRefresh stores the timestamp of a successful refresh.
	SetLastRefresh(t time.Time) error
}

// Gate guards refresh attempts with a cooldown window.
type Gate struct {
	store    Store
	cooldown time.Duration
	now      func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithCooldown overrides the cooldown window.
func WithCooldown(d time.Duration) Option {
	return func(g *Gate) { g.cooldown = d }
}

// WithClock overrides the time source. Tests use this to avoid real waiting.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// NewGate creates a Gate over the given store.
func NewGate(store Store, opts ...Option) *Gate {
	g := &Gate{
		store:    store,
		cooldown: DefaultCooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanRefresh reports whether a refresh is currently permitted.
func (g *Gate) CanRefresh() (bool, error) {
	remaining, err := g.remaining()
	if err != nil {
		return false, err
	}
	return remaining <= 0, nil
}

// TimeUntilReady returns how long until the gate reopens, zero if it is
// already open.
func (g *Gate) TimeUntilReady() (time.Duration, error) {
	remaining, err := g.remaining()
	if err != nil {
		return 0, err
	}
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// LastRefresh exposes the stored timestamp for status reporting.
func (g *Gate) LastRefresh() (time.Time, bool, error) {
	return g.store.LastRefresh()
}

// Cooldown returns the configured cooldown window.
func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}

func (g *Gate) remaining() (time.Duration, error) {
	last, ok, err := g.store.LastRefresh()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return g.cooldown - g.now().Sub(last), nil
}

// PerformRefresh runs fetch behind the gate. It fails with a CooldownError
// when the gate is closed. The last-refresh timestamp is committed only when
// fetch succeeds: a failed fetch leaves the gate open so the caller can retry
// immediately instead of losing the day's quota on a failure.
func (g *Gate) PerformRefresh(ctx context.Context, fetch func(context.Context) error) error {
	remaining, err := g.remaining()
	if err != nil {
		return err
	}
	if remaining > 0 {
		return &apperrors.CooldownError{Remaining: remaining}
	}

	if err := fetch(ctx); err != nil {
		return err
	}

	return g.store.SetLastRefresh(g.now())
}
