package model

import (
	"time"

	"github.com/dividenddash/backend/internal/dates"
)

// TransactionBuy is the only transaction type the ledger records today.
// Sales are modeled as position removal, not as sell transactions.
const TransactionBuy = "buy"

// Transaction is an immutable audit record of one purchase event.
// It is append-only: one Transaction is created per purchase, even when the
// purchase merges into an existing Position, and it is never mutated after.
type Transaction struct {
	ID        string     `json:"id"`
	Symbol    string     `json:"symbol"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Shares    float64    `json:"shares"`
	Price     float64    `json:"price"` // price per share
	Total     float64    `json:"total"` // shares * price
	Date      dates.Date `json:"date"`
	CreatedAt time.Time  `json:"createdAt"`
}
