package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/database"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/logging"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/repository"
)

// exportDateFormat matches the date format of uploaded files.
const exportDateFormat = "01/02/2006"

// HoldingService handles listing, exporting and deleting stored holdings.
type HoldingService struct {
	db          *sql.DB
	holdingRepo *repository.HoldingRepository
}

// NewHoldingService creates a new HoldingService with the provided dependencies.
func NewHoldingService(
	db *sql.DB,
	holdingRepo *repository.HoldingRepository,
) *HoldingService {
	return &HoldingService{
		db:          db,
		holdingRepo: holdingRepo,
	}
}

// Overview groups every stored holding by (date, fund) and lists the distinct
// funds. When any holding exists a final model.AllFunds group carries all of them.
func (s *HoldingService) Overview(ctx context.Context) (model.FundOverview, error) {
	holdings, err := s.holdingRepo.GetHoldings(ctx, model.AllFunds)
	if err != nil {
		return model.FundOverview{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHoldings, err)
	}
	funds, err := s.holdingRepo.GetFunds(ctx)
	if err != nil {
		return model.FundOverview{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHoldings, err)
	}

	overview := model.FundOverview{
		Funds:  funds,
		Groups: []model.HoldingGroup{},
	}

	// Holdings arrive ordered by date then fund, so groups are contiguous.
	for _, h := range holdings {
		day := h.Date.Format(dateFormat)
		last := len(overview.Groups) - 1
		if last < 0 || overview.Groups[last].Date != day || overview.Groups[last].Fund != h.Fund {
			overview.Groups = append(overview.Groups, model.HoldingGroup{Fund: h.Fund, Date: day})
			last++
		}
		overview.Groups[last].Holdings = append(overview.Groups[last].Holdings, h)
	}

	if len(holdings) > 0 {
		overview.Groups = append(overview.Groups, model.HoldingGroup{
			Fund:     model.AllFunds,
			Holdings: holdings,
		})
	}

	return overview, nil
}

// Delete removes the holdings of fund and returns how many were removed.
// An empty fund or model.AllFunds drops and recreates the whole schema.
func (s *HoldingService) Delete(ctx context.Context, fund string) (int64, error) {
	log := logging.FromContext(ctx).WithField("fund", model.FundLabel(fund))

	if !model.IsAllFunds(fund) {
		deleted, err := s.holdingRepo.DeleteByFund(ctx, fund)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToDeleteHoldings, err)
		}
		log.WithField("deleted", deleted).Info("deleted fund holdings")
		return deleted, nil
	}

	count, err := s.holdingRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToDeleteHoldings, err)
	}
	if err := database.Reset(ctx, s.db); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToDeleteHoldings, err)
	}
	log.WithField("deleted", count).Info("reset holdings store")
	return count, nil
}

// holdingCSVRow is one exported holding, in the column layout of uploads.
type holdingCSVRow struct {
	Date        string `csv:"date"`
	Fund        string `csv:"fund"`
	Company     string `csv:"company"`
	Ticker      string `csv:"ticker"`
	Cusip       string `csv:"cusip"`
	Shares      int64  `csv:"shares"`
	MarketValue string `csv:"market value($)"`
	Weight      string `csv:"weight(%)"`
}

// Export writes the holdings of fund (every fund for model.AllFunds) to w as
// CSV that can be uploaded again. It returns the number of rows written, or
// apperrors.ErrNoData before writing anything when the selection is empty.
func (s *HoldingService) Export(ctx context.Context, fund string, w io.Writer) (int, error) {
	holdings, err := s.holdingRepo.GetHoldings(ctx, fund)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHoldings, err)
	}
	if len(holdings) == 0 {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrNoData, model.FundLabel(fund))
	}

	rows := make([]holdingCSVRow, len(holdings))
	for i, h := range holdings {
		rows[i] = holdingCSVRow{
			Date:        h.Date.Format(exportDateFormat),
			Fund:        h.Fund,
			Company:     h.Company,
			Ticker:      h.Ticker,
			Cusip:       h.Identifier,
			Shares:      h.Shares,
			MarketValue: h.MarketValue.String(),
			Weight:      h.Weight.String(),
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return 0, fmt.Errorf("failed to write holdings CSV: %w", err)
	}
	return len(rows), nil
}
