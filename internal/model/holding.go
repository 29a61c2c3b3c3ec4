package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one fund's position in one security on one date.
// (Date, Fund, Identifier) identifies a holding; a second record with the
// same triple is never stored.
type Holding struct {
	ID               string          `json:"id"`
	Date             time.Time       `json:"date"`
	Fund             string          `json:"fund"`
	Identifier       string          `json:"identifier"`
	Ticker           string          `json:"ticker"`
	Company          string          `json:"company"`
	MarketValue      decimal.Decimal `json:"marketValue"`
	Shares           int64           `json:"shares"`
	Weight           decimal.Decimal `json:"weight"`
	WeightedAvgPrice decimal.Decimal `json:"weightedAvgPrice"`
	UploadedAt       time.Time       `json:"uploadedAt"`
}

// SeriesKey is the label a holding is charted under: its ticker, or its
// identifier for positions without one (cash, swaps).
func (h Holding) SeriesKey() string {
	if h.Ticker != "" {
		return h.Ticker
	}
	return h.Identifier
}

// IngestResult summarizes one uploaded holdings file.
type IngestResult struct {
	Filename string     `json:"filename"`
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"` // already stored
	Dropped  int        `json:"dropped"` // unparseable date
	Errors   []RowError `json:"errors"`
}

// RowError describes a row rejected during ingestion. Row is the 1-based
// line number in the file, header included.
type RowError struct {
	Row        int    `json:"row"`
	Identifier string `json:"identifier,omitempty"`
	Error      string `json:"error"`
}

// Summary renders the result as a one line status message.
func (r IngestResult) Summary() string {
	return fmt.Sprintf("%s uploaded: %d inserted, %d skipped, %d dropped, %d failed",
		r.Filename, r.Inserted, r.Skipped, r.Dropped, len(r.Errors))
}
