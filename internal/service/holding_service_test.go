package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/testutil"
)

// TestHoldingService_Overview tests the Overview method.
//
// WHY: The landing page lists what is stored. Groups must follow the
// (date, fund) split and the all funds group must only exist when data does.
func TestHoldingService_Overview(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store has no funds and no groups", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		overview, err := svc.Overview(ctx)
		if err != nil {
			t.Fatalf("Overview() returned unexpected error: %v", err)
		}
		if len(overview.Funds) != 0 || len(overview.Groups) != 0 {
			t.Errorf("Expected an empty overview, got %+v", overview)
		}
	})

	t.Run("groups holdings by date and fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		testutil.CreateHoldings(t, db, "ARKW", testutil.Date("2021-01-04"), 2)
		testutil.CreateHoldings(t, db, "ARKK", testutil.Date("2021-01-04"), 3)
		testutil.CreateHoldings(t, db, "ARKK", testutil.Date("2021-01-05"), 1)

		overview, err := svc.Overview(ctx)
		if err != nil {
			t.Fatalf("Overview() returned unexpected error: %v", err)
		}

		if len(overview.Funds) != 2 || overview.Funds[0] != "ARKK" || overview.Funds[1] != "ARKW" {
			t.Errorf("Expected funds [ARKK ARKW], got %v", overview.Funds)
		}

		want := []struct {
			fund  string
			date  string
			count int
		}{
			{"ARKK", "2021-01-04", 3},
			{"ARKW", "2021-01-04", 2},
			{"ARKK", "2021-01-05", 1},
			{model.AllFunds, "", 6},
		}
		if len(overview.Groups) != len(want) {
			t.Fatalf("Expected %d groups, got %d", len(want), len(overview.Groups))
		}
		for i, w := range want {
			g := overview.Groups[i]
			if g.Fund != w.fund || g.Date != w.date || len(g.Holdings) != w.count {
				t.Errorf("Group %d: expected %s/%s with %d holdings, got %s/%s with %d",
					i, w.fund, w.date, w.count, g.Fund, g.Date, len(g.Holdings))
			}
		}
	})
}

// TestHoldingService_Delete tests the Delete method.
//
// WHY: Deletes are destructive. Deleting one fund must not touch others and
// deleting everything must leave a usable, empty store.
func TestHoldingService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes only the selected fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		testutil.CreateHoldings(t, db, "ARKK", testutil.Date("2021-01-04"), 3)
		testutil.CreateHoldings(t, db, "ARKG", testutil.Date("2021-01-04"), 2)
		before := testutil.CountRows(t, db, "holding")
		arkk := testutil.CountFundRows(t, db, "ARKK")

		deleted, err := svc.Delete(ctx, "ARKK")
		if err != nil {
			t.Fatalf("Delete() returned unexpected error: %v", err)
		}

		if deleted != int64(arkk) {
			t.Errorf("Expected %d deleted, got %d", arkk, deleted)
		}
		testutil.AssertRowCount(t, db, "holding", before-arkk)
		if n := testutil.CountFundRows(t, db, "ARKG"); n != 2 {
			t.Errorf("Expected ARKG to keep 2 holdings, got %d", n)
		}
	})

	t.Run("unknown fund deletes nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		testutil.CreateHoldings(t, db, "ARKK", testutil.Date("2021-01-04"), 2)

		deleted, err := svc.Delete(ctx, "NOPE")
		if err != nil {
			t.Fatalf("Delete() returned unexpected error: %v", err)
		}
		if deleted != 0 {
			t.Errorf("Expected 0 deleted, got %d", deleted)
		}
		testutil.AssertRowCount(t, db, "holding", 2)
	})

	t.Run("all funds resets the store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		testutil.CreateHoldings(t, db, "ARKK", testutil.Date("2021-01-04"), 3)
		testutil.CreateHoldings(t, db, "ARKG", testutil.Date("2021-01-05"), 2)

		deleted, err := svc.Delete(ctx, model.AllFunds)
		if err != nil {
			t.Fatalf("Delete() returned unexpected error: %v", err)
		}
		if deleted != 5 {
			t.Errorf("Expected 5 deleted, got %d", deleted)
		}
		testutil.AssertRowCount(t, db, "holding", 0)

		overview, err := svc.Overview(ctx)
		if err != nil {
			t.Fatalf("Overview() returned unexpected error: %v", err)
		}
		if len(overview.Funds) != 0 {
			t.Errorf("Expected no funds after reset, got %v", overview.Funds)
		}

		// The schema is recreated, so the store accepts new holdings.
		testutil.NewHolding().WithFund("ARKQ").Build(t, db)
		testutil.AssertRowCount(t, db, "holding", 1)
	})

	t.Run("all funds on an empty store succeeds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		deleted, err := svc.Delete(ctx, "")
		if err != nil {
			t.Fatalf("Delete() returned unexpected error: %v", err)
		}
		if deleted != 0 {
			t.Errorf("Expected 0 deleted, got %d", deleted)
		}
	})
}

// TestHoldingService_Export tests the Export method.
//
// WHY: Exports are meant to be uploaded again, so their layout must match
// what the ingestor accepts.
func TestHoldingService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("exported file ingests into an empty store", func(t *testing.T) {
		source := testutil.SetupTestDB(t)
		ingest := testutil.NewTestIngestService(t, source)
		svc := testutil.NewTestHoldingService(t, source)

		if _, err := ingest.Ingest(ctx, "holdings.csv", strings.NewReader(sampleHoldingsCSV())); err != nil {
			t.Fatalf("Ingest() returned unexpected error: %v", err)
		}

		var buf bytes.Buffer
		written, err := svc.Export(ctx, model.AllFunds, &buf)
		if err != nil {
			t.Fatalf("Export() returned unexpected error: %v", err)
		}
		if written != 4 {
			t.Errorf("Expected 4 rows written, got %d", written)
		}
		if !strings.HasPrefix(buf.String(), testutil.HoldingsCSVHeader+"\n") {
			t.Errorf("Expected upload header, got %q", strings.SplitN(buf.String(), "\n", 2)[0])
		}

		// Re-uploading into the source store only finds duplicates.
		again, err := ingest.Ingest(ctx, "export.csv", bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("Ingest() of export returned unexpected error: %v", err)
		}
		if again.Inserted != 0 || again.Skipped != 4 {
			t.Errorf("Expected 4 skipped duplicates, got %+v", again)
		}

		target := testutil.SetupTestDB(t)
		result, err := testutil.NewTestIngestService(t, target).Ingest(ctx, "export.csv", bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("Ingest() into new store returned unexpected error: %v", err)
		}
		if result.Inserted != 4 || len(result.Errors) != 0 {
			t.Errorf("Expected 4 inserted, got %+v", result)
		}
	})

	t.Run("exports only the selected fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		testutil.CreateHoldings(t, db, "ARKK", testutil.Date("2021-01-04"), 2)
		testutil.CreateHoldings(t, db, "ARKG", testutil.Date("2021-01-04"), 3)

		var buf bytes.Buffer
		written, err := svc.Export(ctx, "ARKG", &buf)
		if err != nil {
			t.Fatalf("Export() returned unexpected error: %v", err)
		}
		if written != 3 {
			t.Errorf("Expected 3 rows, got %d", written)
		}
		if strings.Contains(buf.String(), ",ARKK,") {
			t.Errorf("Expected no ARKK rows in export")
		}
	})

	t.Run("empty selection returns ErrNoData", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		var buf bytes.Buffer
		_, err := svc.Export(ctx, "ARKK", &buf)
		if !errors.Is(err, apperrors.ErrNoData) {
			t.Errorf("Expected ErrNoData, got %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("Expected nothing written, got %q", buf.String())
		}
	})
}
