package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
)

func validHolding() model.Holding {
	return model.Holding{
		ID:         uuid.NewString(),
		Fund:       "ARKK",
		Identifier: "88160R101",
		Ticker:     "TSLA",
		Company:    "TESLA INC",
	}
}

func TestValidateHolding(t *testing.T) {
	t.Run("accepts a valid holding", func(t *testing.T) {
		if err := ValidateHolding(validHolding()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts empty ticker and identifier", func(t *testing.T) {
		h := validHolding()
		h.Ticker = ""
		h.Identifier = ""
		if err := ValidateHolding(h); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("reports every field over its limit", func(t *testing.T) {
		h := validHolding()
		h.Fund = "FUNDCODE123"
		h.Identifier = strings.Repeat("9", 41)
		h.Ticker = "TOOLONG"
		h.Company = strings.Repeat("x", 101)

		err := ValidateHolding(h)
		var vErr *Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %v", err)
		}
		for _, field := range []string{"fund", "cusip", "ticker", "company"} {
			if _, ok := vErr.Fields[field]; !ok {
				t.Errorf("Expected error for field '%s', got %v", field, vErr.Fields)
			}
		}
	})

	t.Run("rejects missing fund", func(t *testing.T) {
		h := validHolding()
		h.Fund = "  "
		if err := ValidateHolding(h); err == nil {
			t.Error("Expected error for blank fund, got nil")
		}
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		h := validHolding()
		h.ID = "not-a-uuid"
		err := ValidateHolding(h)
		var vErr *Error
		if !errors.As(err, &vErr) || vErr.Fields["id"] == "" {
			t.Errorf("Expected id error, got %v", err)
		}
	})
}

func TestValidateFundCode(t *testing.T) {
	if err := ValidateFundCode("ARKK"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := ValidateFundCode(""); !errors.Is(err, apperrors.ErrMissingRequiredField) {
		t.Errorf("Expected ErrMissingRequiredField, got %v", err)
	}
	if err := ValidateFundCode("ARKKARKKARKK"); err == nil {
		t.Error("Expected error for oversized fund, got nil")
	}
	for _, fund := range []string{"All funds", "all FUNDS", " All funds "} {
		if err := ValidateFundCode(fund); err == nil {
			t.Errorf("Expected error for reserved fund %q, got nil", fund)
		}
	}
}

func TestError_Error(t *testing.T) {
	err := &Error{Fields: map[string]string{"ticker": "too long", "company": "too long"}}

	if got := err.Error(); got != "company: too long; ticker: too long" {
		t.Errorf("Expected sorted message, got '%s'", got)
	}
}
