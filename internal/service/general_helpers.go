package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

// uploadDateFormat accepts MM/DD/YYYY as well as single digit months and days.
const uploadDateFormat = "1/2/2006"

// numberDecoration holds characters stripped from numeric cells: thousands
// separators, currency and percent signs.
var numberDecoration = strings.NewReplacer(",", "", "$", "", "%", "", " ", "")

// calendarDays returns every day from start to end inclusive as YYYY-MM-DD.
//
// Example:
//
//	calendarDays(2021-01-01, 2021-01-03) // ["2021-01-01", "2021-01-02", "2021-01-03"]
func calendarDays(start, end time.Time) ([]string, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", end.Format(dateFormat), start.Format(dateFormat))
	}

	var days []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day.Format(dateFormat))
	}
	return days, nil
}

// Upload dates outside these years are treated as unparseable; they would
// otherwise stretch report calendars over millennia.
const (
	minUploadYear = 1900
	maxUploadYear = 2200
)

// parseUploadDate parses a date cell of an uploaded file.
func parseUploadDate(value string) (time.Time, error) {
	d, err := time.Parse(uploadDateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, value)
	}
	if d.Year() < minUploadYear || d.Year() > maxUploadYear {
		return time.Time{}, fmt.Errorf("%w: %q is outside %d-%d", apperrors.ErrInvalidDate, value, minUploadYear, maxUploadYear)
	}
	return d, nil
}

// parseDecimal parses a numeric cell such as "1,234.50", "$99" or "5.1%".
func parseDecimal(field, value string) (decimal.Decimal, error) {
	cleaned := numberDecoration.Replace(strings.TrimSpace(value))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", apperrors.ErrInvalidNumber, field, value)
	}
	return d, nil
}

// parseShares parses a share count. Fractional counts are rejected.
func parseShares(value string) (int64, error) {
	d, err := parseDecimal("shares", value)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: shares %q is not a whole number", apperrors.ErrInvalidNumber, value)
	}
	return d.IntPart(), nil
}

// weightedAvgPrice divides market value by shares.
func weightedAvgPrice(marketValue decimal.Decimal, shares int64) (decimal.Decimal, error) {
	if shares == 0 {
		return decimal.Zero, apperrors.ErrZeroShares
	}
	return marketValue.Div(decimal.NewFromInt(shares)), nil
}
