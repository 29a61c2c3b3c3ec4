package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	// Simple creation with defaults
//	holding := testutil.NewHolding().Build(t, db)
//
//	// Customized holding
//	holding := testutil.NewHolding().
//	    WithFund("ARKK").
//	    WithDate(testutil.Date("2021-01-04")).
//	    WithTicker("TSLA").
//	    WithShares(100).
//	    Build(t, db)
type HoldingBuilder struct {
	ID          string
	Date        time.Time
	Fund        string
	Identifier  string
	Ticker      string
	Company     string
	MarketValue decimal.Decimal
	Shares      int64
	Weight      decimal.Decimal
	UploadedAt  time.Time
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding() *HoldingBuilder {
	return &HoldingBuilder{
		ID:          MakeID(),
		Date:        Date("2021-01-04"),
		Fund:        "ARKK",
		Identifier:  MakeCUSIP(),
		Ticker:      MakeTicker("T"),
		Company:     "Test Company Inc",
		MarketValue: decimal.RequireFromString("1000.00"),
		Shares:      10,
		Weight:      decimal.RequireFromString("1.25"),
		UploadedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

// WithDate sets a custom date.
func (b *HoldingBuilder) WithDate(date time.Time) *HoldingBuilder {
	b.Date = date
	return b
}

// WithFund sets a custom fund code.
func (b *HoldingBuilder) WithFund(fund string) *HoldingBuilder {
	b.Fund = fund
	return b
}

// WithIdentifier sets a custom CUSIP.
func (b *HoldingBuilder) WithIdentifier(identifier string) *HoldingBuilder {
	b.Identifier = identifier
	return b
}

// WithTicker sets a custom ticker.
func (b *HoldingBuilder) WithTicker(ticker string) *HoldingBuilder {
	b.Ticker = ticker
	return b
}

// WithCompany sets a custom company name.
func (b *HoldingBuilder) WithCompany(company string) *HoldingBuilder {
	b.Company = company
	return b
}

// WithMarketValue sets the market value from a decimal string.
func (b *HoldingBuilder) WithMarketValue(value string) *HoldingBuilder {
	b.MarketValue = decimal.RequireFromString(value)
	return b
}

// WithShares sets the share count.
func (b *HoldingBuilder) WithShares(shares int64) *HoldingBuilder {
	b.Shares = shares
	return b
}

// WithWeight sets the weight from a decimal string.
func (b *HoldingBuilder) WithWeight(weight string) *HoldingBuilder {
	b.Weight = decimal.RequireFromString(weight)
	return b
}

// Build creates the holding in the database and returns it.
// The weighted average price is derived from market value and shares.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	if b.Shares == 0 {
		t.Fatalf("HoldingBuilder requires nonzero shares")
	}
	avgPrice := b.MarketValue.Div(decimal.NewFromInt(b.Shares))

	query := `
		INSERT INTO holding (
			id, date, fund, identifier, ticker, company,
			market_value, shares, weight, weighted_avg_price, uploaded_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.Date.Format("2006-01-02"),
		b.Fund,
		b.Identifier,
		b.Ticker,
		b.Company,
		b.MarketValue.String(),
		b.Shares,
		b.Weight.String(),
		avgPrice.String(),
		b.UploadedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return model.Holding{
		ID:               b.ID,
		Date:             b.Date,
		Fund:             b.Fund,
		Identifier:       b.Identifier,
		Ticker:           b.Ticker,
		Company:          b.Company,
		MarketValue:      b.MarketValue,
		Shares:           b.Shares,
		Weight:           b.Weight,
		WeightedAvgPrice: avgPrice,
		UploadedAt:       b.UploadedAt,
	}
}

// Convenience functions

// CreateHoldings creates count holdings of fund on date with random securities.
//
// Example usage:
//
//	holdings := testutil.CreateHoldings(t, db, "ARKK", testutil.Date("2021-01-04"), 5)
func CreateHoldings(t *testing.T, db *sql.DB, fund string, date time.Time, count int) []model.Holding {
	t.Helper()

	holdings := make([]model.Holding, count)
	for i := 0; i < count; i++ {
		holdings[i] = NewHolding().WithFund(fund).WithDate(date).Build(t, db)
	}
	return holdings
}

// Date parses a YYYY-MM-DD date in UTC and panics on malformed input.
func Date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(fmt.Sprintf("testutil.Date(%q): %v", value, err))
	}
	return d
}

// HoldingsCSVHeader is the header row of an uploaded holdings file.
const HoldingsCSVHeader = "date,fund,company,ticker,cusip,shares,market value($),weight(%)"

// HoldingsCSV builds the content of an uploaded holdings file.
//
// Example usage:
//
//	content := testutil.NewHoldingsCSV().
//	    AddRow("01/04/2021", "ARKK", "TESLA INC", "TSLA", "88160R101", "100", "72986.00", "10.05").
//	    String()
type HoldingsCSV struct {
	header string
	rows   []string
}

// NewHoldingsCSV starts a file with the standard header.
func NewHoldingsCSV() *HoldingsCSV {
	return &HoldingsCSV{header: HoldingsCSVHeader}
}

// WithHeader replaces the header row.
func (c *HoldingsCSV) WithHeader(header string) *HoldingsCSV {
	c.header = header
	return c
}

// AddRow appends a row in header order: date, fund, company, ticker, cusip,
// shares, market value, weight. Fields containing commas are quoted.
func (c *HoldingsCSV) AddRow(date, fund, company, ticker, cusip, shares, marketValue, weight string) *HoldingsCSV {
	fields := []string{date, fund, company, ticker, cusip, shares, marketValue, weight}
	for i, f := range fields {
		if strings.ContainsAny(f, ",\"") {
			fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
	}
	c.rows = append(c.rows, strings.Join(fields, ","))
	return c
}

// String renders the file.
func (c *HoldingsCSV) String() string {
	return strings.Join(append([]string{c.header}, c.rows...), "\n") + "\n"
}
