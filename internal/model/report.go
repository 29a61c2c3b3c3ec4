package model

import "github.com/shopspring/decimal"

// Metric names a charted holding attribute.
type Metric string

const (
	MetricMarketValue      Metric = "marketValue"
	MetricShares           Metric = "shares"
	MetricWeight           Metric = "weight"
	MetricWeightedAvgPrice Metric = "weightedAvgPrice"
)

// Metrics lists the charted metrics in display order.
var Metrics = []Metric{
	MetricMarketValue,
	MetricShares,
	MetricWeight,
	MetricWeightedAvgPrice,
}

var metricTitles = map[Metric]string{
	MetricMarketValue:      "Market value ($)",
	MetricShares:           "Shares",
	MetricWeight:           "Weight (%)",
	MetricWeightedAvgPrice: "Weighted average price ($)",
}

var metricValues = map[Metric]func(Holding) decimal.Decimal{
	MetricMarketValue:      func(h Holding) decimal.Decimal { return h.MarketValue },
	MetricShares:           func(h Holding) decimal.Decimal { return decimal.NewFromInt(h.Shares) },
	MetricWeight:           func(h Holding) decimal.Decimal { return h.Weight },
	MetricWeightedAvgPrice: func(h Holding) decimal.Decimal { return h.WeightedAvgPrice },
}

// Title returns a human readable chart title.
func (m Metric) Title() string { return metricTitles[m] }

// Value extracts the metric from h. Unknown metrics yield zero.
func (m Metric) Value(h Holding) decimal.Decimal {
	if fn, ok := metricValues[m]; ok {
		return fn(h)
	}
	return decimal.Zero
}

// Additive reports whether values of several holdings on the same date add up
// (market value, shares) rather than average out (weight, price).
func (m Metric) Additive() bool {
	return m == MetricMarketValue || m == MetricShares
}

// Point is one observation of a ticker series.
type Point struct {
	X string  `json:"x"` // YYYY-MM-DD
	Y float64 `json:"y"`
}

// TickerSeries holds the observed points of one ticker. Days without a
// record have no point.
type TickerSeries struct {
	Ticker string  `json:"ticker"`
	Points []Point `json:"points"`
}

// MetricChart is one chart of a report: the full calendar as labels and a
// series per ticker.
type MetricChart struct {
	Metric Metric         `json:"metric"`
	Title  string         `json:"title"`
	Labels []string       `json:"labels"`
	Series []TickerSeries `json:"series"`
}

// ChartBundle is the report for one fund selection.
type ChartBundle struct {
	Fund    string        `json:"fund"`
	Start   string        `json:"start"`
	End     string        `json:"end"`
	Tickers []string      `json:"tickers"`
	Charts  []MetricChart `json:"charts"`
}
