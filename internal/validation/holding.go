package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
)

// Column limits of the holding table.
const (
	MaxFundLength       = 10
	MaxIdentifierLength = 40
	MaxTickerLength     = 5
	MaxCompanyLength    = 100
)

// ValidateHolding checks the text fields of a parsed holding against the
// column limits. Numeric fields are checked while parsing.
func ValidateHolding(h model.Holding) error {
	vErr := newError()

	if err := ValidateUUID(h.ID); err != nil {
		vErr.add("id", "%v", err)
	}
	if err := ValidateFundCode(h.Fund); err != nil {
		vErr.add("fund", "%v", err)
	}
	if utf8.RuneCountInString(h.Identifier) > MaxIdentifierLength {
		vErr.add("cusip", "cusip must be %d characters or less", MaxIdentifierLength)
	}
	if utf8.RuneCountInString(h.Ticker) > MaxTickerLength {
		vErr.add("ticker", "ticker must be %d characters or less", MaxTickerLength)
	}
	if utf8.RuneCountInString(h.Company) > MaxCompanyLength {
		vErr.add("company", "company must be %d characters or less", MaxCompanyLength)
	}

	return vErr.orNil()
}

// ValidateFundCode checks a fund code taken from a file or a URL.
func ValidateFundCode(fund string) error {
	fund = strings.TrimSpace(fund)
	if fund == "" {
		return fmt.Errorf("%w: fund", apperrors.ErrMissingRequiredField)
	}
	if utf8.RuneCountInString(fund) > MaxFundLength {
		return fmt.Errorf("fund must be %d characters or less", MaxFundLength)
	}
	if model.IsAllFunds(fund) {
		return fmt.Errorf("fund %q is reserved for the all funds selection", fund)
	}
	return nil
}
