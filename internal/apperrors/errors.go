package apperrors

import "errors"

// Domain entity errors represent missing data in the system.
var (
	// ErrNoData indicates that a fund selection matched no stored holdings.
	ErrNoData = errors.New("no data for selection")
)

// Upload errors reject a whole holdings file before any row is stored.
var (
	// ErrMissingFile indicates that the multipart "file" field was absent or empty.
	ErrMissingFile = errors.New("no file uploaded")

	// ErrInvalidCSV indicates that the upload could not be read as CSV.
	ErrInvalidCSV = errors.New("invalid CSV file")

	// ErrInvalidCSVHeaders indicates that one or more required columns are missing.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")
)

// Row errors reject a single holding; ingestion continues with the next row.
var (
	// ErrInvalidDate indicates a date that is not in MM/DD/YYYY form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidNumber indicates a non-numeric market value, weight or share count.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrZeroShares indicates a holding with zero shares, whose weighted
	// average price would divide by zero.
	ErrZeroShares = errors.New("shares must be nonzero")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Operation failure errors represent system-level failures.
var (
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToDeleteHoldings   = errors.New("failed to delete holdings")
	ErrFailedToStoreHolding     = errors.New("failed to store holding")
	ErrFailedToGetVersionInfo   = errors.New("failed to get version information")
)
