package testutil

import (
	"database/sql"
	"testing"

	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/model"
)

// FundBuilder provides a fluent interface for creating test fund rows.
//
// Example usage:
//
//	// Simple creation with defaults
//	fund := testutil.NewFund("SCHD").Build(t, db)
//
//	// Customized fund
//	fund := testutil.NewFund("JEPI").
//	    WithFrequency(dates.Monthly).
//	    WithDividend(0.48, "2024-03-28").
//	    Build(t, db)
type FundBuilder struct {
	fund model.Fund
}

// NewFund creates a FundBuilder with sensible defaults for the symbol.
func NewFund(symbol string) *FundBuilder {
	return &FundBuilder{fund: model.Fund{
		Symbol:           symbol,
		Name:             symbol + " Test Fund",
		Price:            100,
		DividendPerShare: 0.50,
		ExDividendDate:   mustDate("2024-03-25"),
		Frequency:        dates.Quarterly,
		Sector:           "Test",
	}}
}

// WithName sets a custom display name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.fund.Name = name
	return b
}

// WithPrice sets a custom price.
func (b *FundBuilder) WithPrice(price float64) *FundBuilder {
	b.fund.Price = price
	return b
}

// WithDividend sets the per-payment dividend and last ex-date.
func (b *FundBuilder) WithDividend(perShare float64, exDate string) *FundBuilder {
	b.fund.DividendPerShare = perShare
	b.fund.ExDividendDate = mustDate(exDate)
	return b
}

// WithFrequency sets the payment frequency.
func (b *FundBuilder) WithFrequency(freq dates.Frequency) *FundBuilder {
	b.fund.Frequency = freq
	return b
}

// WithSector sets the sector tag.
func (b *FundBuilder) WithSector(sector string) *FundBuilder {
	b.fund.Sector = sector
	return b
}

// WithoutDividendData clears the dividend fields, making the fund invisible
// to the projector.
func (b *FundBuilder) WithoutDividendData() *FundBuilder {
	b.fund.DividendPerShare = 0
	b.fund.ExDividendDate = dates.Date{}
	b.fund.Frequency = dates.Unknown
	return b
}

// Build inserts the fund into the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	var exDate any
	if !b.fund.ExDividendDate.IsZero() {
		exDate = b.fund.ExDividendDate.String()
	}

	query := `
		INSERT INTO fund (symbol, name, price, dividend_per_share, annual_dividend, ex_dividend_date, frequency, sector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query,
		b.fund.Symbol, b.fund.Name, b.fund.Price,
		b.fund.DividendPerShare, b.fund.AnnualDividend,
		exDate, string(b.fund.Frequency), b.fund.Sector,
	)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}
	return b.fund
}

// Fund returns the built fund without inserting it.
func (b *FundBuilder) Fund() model.Fund {
	return b.fund
}

// SCHD builds the canonical quarterly dividend fund used across tests.
func SCHD(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()
	return NewFund("SCHD").
		WithName("Schwab US Dividend Equity ETF").
		WithPrice(78.43).
		WithDividend(0.74, "2024-03-25").
		WithSector("Dividend").
		Build(t, db)
}

func mustDate(s string) dates.Date {
	d, err := dates.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
