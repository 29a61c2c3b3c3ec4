package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// ReportService pivots stored holdings into per-metric, per-ticker time series.
type ReportService struct {
	holdingRepo *repository.HoldingRepository
	inflight    singleflight.Group
}

// NewReportService creates a new ReportService with the provided repository dependency.
func NewReportService(holdingRepo *repository.HoldingRepository) *ReportService {
	return &ReportService{
		holdingRepo: holdingRepo,
	}
}

// Report builds the chart bundle of a fund, or of every fund when fund is
// empty or model.AllFunds.
//
// Each of the four metric charts uses the complete daily calendar between the
// first and last holding date as labels. A ticker series only has points on
// days the ticker was held; missing days are not filled. When a ticker appears
// several times on one day (the same security held by several funds), market
// value and shares are summed while weight and price are averaged.
//
// Returns apperrors.ErrNoData when the selection holds no records.
// Concurrent calls for the same selection share one computation.
func (s *ReportService) Report(ctx context.Context, fund string) (model.ChartBundle, error) {
	label := model.FundLabel(fund)

	// Detached from the caller: concurrent waiters share this computation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.inflight.Do(label, func() (any, error) {
		return s.buildReport(shared, label)
	})
	if err != nil {
		return model.ChartBundle{}, err
	}
	return v.(model.ChartBundle), nil
}

func (s *ReportService) buildReport(ctx context.Context, fund string) (model.ChartBundle, error) {
	holdings, err := s.holdingRepo.GetHoldings(ctx, fund)
	if err != nil {
		return model.ChartBundle{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHoldings, err)
	}
	if len(holdings) == 0 {
		return model.ChartBundle{}, fmt.Errorf("%w: %s", apperrors.ErrNoData, fund)
	}

	start, end := holdings[0].Date, holdings[0].Date
	byTicker := make(map[string]map[string][]model.Holding)
	for _, h := range holdings {
		if h.Date.Before(start) {
			start = h.Date
		}
		if h.Date.After(end) {
			end = h.Date
		}

		key := h.SeriesKey()
		if byTicker[key] == nil {
			byTicker[key] = make(map[string][]model.Holding)
		}
		day := h.Date.Format(dateFormat)
		byTicker[key][day] = append(byTicker[key][day], h)
	}

	tickers := make([]string, 0, len(byTicker))
	for ticker := range byTicker {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	labels, err := calendarDays(start, end)
	if err != nil {
		return model.ChartBundle{}, err
	}

	charts := make([]model.MetricChart, 0, len(model.Metrics))
	for _, metric := range model.Metrics {
		chart := model.MetricChart{
			Metric: metric,
			Title:  metric.Title(),
			Labels: labels,
			Series: make([]model.TickerSeries, 0, len(tickers)),
		}
		for _, ticker := range tickers {
			days := byTicker[ticker]
			points := []model.Point{}
			for _, day := range labels {
				records, ok := days[day]
				if !ok {
					continue
				}
				points = append(points, model.Point{
					X: day,
					Y: aggregate(metric, records).InexactFloat64(),
				})
			}
			chart.Series = append(chart.Series, model.TickerSeries{Ticker: ticker, Points: points})
		}
		charts = append(charts, chart)
	}

	return model.ChartBundle{
		Fund:    fund,
		Start:   start.Format(dateFormat),
		End:     end.Format(dateFormat),
		Tickers: tickers,
		Charts:  charts,
	}, nil
}

// aggregate combines the metric values of records held on the same day.
func aggregate(metric model.Metric, records []model.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range records {
		total = total.Add(metric.Value(h))
	}
	if metric.Additive() || len(records) == 1 {
		return total
	}
	return total.Div(decimal.NewFromInt(int64(len(records))))
}
