package model

import "strings"

// AllFunds is the pseudo fund selecting every stored holding.
const AllFunds = "All funds"

// IsAllFunds reports whether fund selects every holding.
func IsAllFunds(fund string) bool {
	fund = strings.TrimSpace(fund)
	return fund == "" || strings.EqualFold(fund, AllFunds)
}

// FundLabel returns the display name of a fund selection.
func FundLabel(fund string) string {
	if IsAllFunds(fund) {
		return AllFunds
	}
	return strings.TrimSpace(fund)
}

// HoldingGroup holds the records of one fund on one date. The AllFunds
// group has a zero Date and carries every record.
type HoldingGroup struct {
	Fund     string    `json:"fund"`
	Date     string    `json:"date,omitempty"`
	Holdings []Holding `json:"holdings"`
}

// FundOverview is the landing view: distinct funds and records grouped by
// date and fund.
type FundOverview struct {
	Message string         `json:"message,omitempty"`
	Funds   []string       `json:"funds"`
	Groups  []HoldingGroup `json:"groups"`
}
