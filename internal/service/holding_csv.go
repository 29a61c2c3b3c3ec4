package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/validation"
)

// Columns of an uploaded holdings file, matched case-insensitively.
const (
	colDate        = "date"
	colFund        = "fund"
	colCusip       = "cusip"
	colTicker      = "ticker"
	colCompany     = "company"
	colMarketValue = "market value($)"
	colWeight      = "weight(%)"
	colShares      = "shares"
)

var requiredColumns = []string{
	colDate,
	colFund,
	colCusip,
	colTicker,
	colCompany,
	colMarketValue,
	colWeight,
	colShares,
}

// holdingFrame is an uploaded holdings file loaded as a string dataframe.
type holdingFrame struct {
	df      dataframe.DataFrame
	columns map[string]series.Series
}

// readHoldingFrame loads r into a dataframe and checks the header.
// Rows shorter than the header are padded and longer rows truncated so that
// trailing notes in a file end up as rows with an unparseable date.
func readHoldingFrame(r io.Reader) (*holdingFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSV, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrInvalidCSV)
	}

	header := records[0]
	for i, name := range header {
		header[i] = normalizeHeader(name)
	}
	for i := 1; i < len(records); i++ {
		records[i] = fitRecord(records[i], len(header))
	}

	seen := make(map[string]int, len(header))
	for _, name := range header {
		seen[name]++
	}
	var missing, repeated []string
	for _, column := range requiredColumns {
		switch {
		case seen[column] == 0:
			missing = append(missing, column)
		case seen[column] > 1:
			repeated = append(repeated, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", apperrors.ErrInvalidCSVHeaders, strings.Join(missing, ", "))
	}
	if len(repeated) > 0 {
		return nil, fmt.Errorf("%w: duplicated %s", apperrors.ErrInvalidCSVHeaders, strings.Join(repeated, ", "))
	}

	// A header without rows is a valid, empty upload.
	if len(records) == 1 {
		return &holdingFrame{}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSV, df.Err)
	}

	columns := make(map[string]series.Series, len(requiredColumns))
	for _, column := range requiredColumns {
		col := df.Col(column)
		if col.Err != nil {
			return nil, fmt.Errorf("%w: column %s: %v", apperrors.ErrInvalidCSVHeaders, column, col.Err)
		}
		columns[column] = col
	}

	return &holdingFrame{df: df, columns: columns}, nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func fitRecord(record []string, width int) []string {
	if len(record) >= width {
		return record[:width]
	}
	padded := make([]string, width)
	copy(padded, record)
	return padded
}

// Rows returns the number of data rows.
func (f *holdingFrame) Rows() int {
	return f.df.Nrow()
}

func (f *holdingFrame) cell(row int, column string) string {
	value := f.columns[column].Elem(row).String()
	if value == "NaN" {
		return ""
	}
	return strings.TrimSpace(value)
}

// Holding converts a data row. A row with an unparseable date returns an error
// wrapping apperrors.ErrInvalidDate; other errors describe a rejected row.
func (f *holdingFrame) Holding(row int, uploadedAt time.Time) (model.Holding, error) {
	date, err := parseUploadDate(f.cell(row, colDate))
	if err != nil {
		return model.Holding{}, err
	}

	marketValue, err := parseDecimal("market value", f.cell(row, colMarketValue))
	if err != nil {
		return model.Holding{}, err
	}
	weight, err := parseDecimal("weight", f.cell(row, colWeight))
	if err != nil {
		return model.Holding{}, err
	}
	shares, err := parseShares(f.cell(row, colShares))
	if err != nil {
		return model.Holding{}, err
	}
	avgPrice, err := weightedAvgPrice(marketValue, shares)
	if err != nil {
		return model.Holding{}, err
	}

	h := model.Holding{
		ID:               uuid.NewString(),
		Date:             date,
		Fund:             f.cell(row, colFund),
		Identifier:       f.cell(row, colCusip),
		Ticker:           f.cell(row, colTicker),
		Company:          f.cell(row, colCompany),
		MarketValue:      marketValue,
		Shares:           shares,
		Weight:           weight,
		WeightedAvgPrice: avgPrice,
		UploadedAt:       uploadedAt,
	}

	if err := validation.ValidateHolding(h); err != nil {
		return model.Holding{}, err
	}
	return h, nil
}

// Identifier returns the raw cusip cell of a row for error reports.
func (f *holdingFrame) Identifier(row int) string {
	return f.cell(row, colCusip)
}

func isDroppedRow(err error) bool {
	return errors.Is(err, apperrors.ErrInvalidDate)
}
