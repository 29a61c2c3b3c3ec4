package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/repository"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/service"
)

func NewTestIngestService(t *testing.T, db *sql.DB) *service.IngestService {
	t.Helper()

	return service.NewIngestService(
		db,
		repository.NewHoldingRepository(db),
	)
}

func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()

	return service.NewHoldingService(
		db,
		repository.NewHoldingRepository(db),
	)
}

func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()

	return service.NewReportService(
		repository.NewHoldingRepository(db),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// MakeCUSIP generates a 9 character security identifier for testing.
//
// Example usage:
//
//	cusip := testutil.MakeCUSIP()
//	// Returns: "7X2B9Q0LM"
func MakeCUSIP() string {
	return randomAlphanumeric(9)
}

// MakeTicker generates a ticker symbol of at most five characters.
//
// Example usage:
//
//	ticker := testutil.MakeTicker("T")
//	// Returns: "TQ3Z"
func MakeTicker(base string) string {
	if base == "" {
		base = "T"
	}
	if len(base) >= 5 {
		return base[:5]
	}
	return base + randomAlphanumeric(5-len(base))
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
