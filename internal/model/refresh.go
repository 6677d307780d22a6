package model

import "time"

// RefreshStatus describes the refresh gate state for API consumers.
type RefreshStatus struct {
	CanRefresh     bool       `json:"canRefresh"`
	LastRefresh    *time.Time `json:"lastRefresh,omitempty"`
	TimeUntilNext  string     `json:"timeUntilNext"`          // human-readable, "0s" when ready
	SecondsToReady int64      `json:"secondsToReady"`         // 0 when ready
	CooldownHours  float64    `json:"cooldownHours"`
}

// SymbolRefreshResult records the outcome of refreshing a single symbol.
// Batch refreshes accumulate these instead of aborting on the first failure.
type SymbolRefreshResult struct {
	Symbol string `json:"symbol"`
	Error  string `json:"error,omitempty"`
}

// RefreshResult summarizes one refresh batch.
type RefreshResult struct {
	Timestamp time.Time             `json:"timestamp"`
	Updated   int                   `json:"updated"`
	Failed    int                   `json:"failed"`
	Results   []SymbolRefreshResult `json:"results"`
}
