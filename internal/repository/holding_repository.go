package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
type HoldingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// WithTx returns a repository that runs every statement inside tx.
func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *HoldingRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Exists reports whether a holding with the given (date, fund, identifier) is stored.
func (r *HoldingRepository) Exists(ctx context.Context, date time.Time, fund, identifier string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM holding
			WHERE date = ? AND fund = ? AND identifier = ?
		)
	`

	var exists bool
	err := r.getQuerier().QueryRowContext(ctx, query, date.Format(DateFormat), fund, identifier).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query holding table: %w", err)
	}
	return exists, nil
}

// Insert stores h. It returns false without error when a holding with the same
// (date, fund, identifier) already exists.
func (r *HoldingRepository) Insert(ctx context.Context, h model.Holding) (bool, error) {
	query := `
		INSERT OR IGNORE INTO holding (
			id, date, fund, identifier, ticker, company,
			market_value, shares, weight, weighted_avg_price, uploaded_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		h.ID,
		h.Date.Format(DateFormat),
		h.Fund,
		h.Identifier,
		h.Ticker,
		h.Company,
		h.MarketValue.String(),
		h.Shares,
		h.Weight.String(),
		h.WeightedAvgPrice.String(),
		h.UploadedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read inserted rows: %w", err)
	}
	return affected == 1, nil
}

// GetHoldings retrieves holdings ordered by date, fund and ticker.
// An empty fund or model.AllFunds returns every holding.
func (r *HoldingRepository) GetHoldings(ctx context.Context, fund string) ([]model.Holding, error) {
	query := `
		SELECT id, date, fund, identifier, ticker, company,
		       market_value, shares, weight, weighted_avg_price, uploaded_at
		FROM holding
	`

	var args []any
	if !model.IsAllFunds(fund) {
		query += ` WHERE fund = ?`
		args = append(args, fund)
	}
	query += ` ORDER BY date ASC, fund ASC, ticker ASC, identifier ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		var h model.Holding
		var dateStr, uploadedStr string

		err := rows.Scan(
			&h.ID,
			&dateStr,
			&h.Fund,
			&h.Identifier,
			&h.Ticker,
			&h.Company,
			&h.MarketValue,
			&h.Shares,
			&h.Weight,
			&h.WeightedAvgPrice,
			&uploadedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}

		h.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		h.UploadedAt, err = ParseTime(uploadedStr)
		if err != nil {
			return nil, err
		}

		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetFunds returns the distinct fund codes in alphabetical order.
func (r *HoldingRepository) GetFunds(ctx context.Context) ([]string, error) {
	rows, err := r.getQuerier().QueryContext(ctx, `SELECT DISTINCT fund FROM holding ORDER BY fund ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	funds := []string{}
	for rows.Next() {
		var fund string
		if err := rows.Scan(&fund); err != nil {
			return nil, fmt.Errorf("failed to scan fund: %w", err)
		}
		funds = append(funds, fund)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return funds, nil
}

// Count returns the number of stored holdings.
func (r *HoldingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.getQuerier().QueryRowContext(ctx, `SELECT COUNT(*) FROM holding`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count holdings: %w", err)
	}
	return count, nil
}

// DeleteByFund removes every holding of fund and returns how many were removed.
func (r *HoldingRepository) DeleteByFund(ctx context.Context, fund string) (int64, error) {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM holding WHERE fund = ?`, fund)
	if err != nil {
		return 0, fmt.Errorf("failed to delete holdings: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read deleted rows: %w", err)
	}
	return deleted, nil
}
