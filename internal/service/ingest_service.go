package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/ndewijer/Fund-Holdings-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/logging"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/model"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// IngestService turns uploaded holdings files into stored holdings.
type IngestService struct {
	db          *sql.DB
	holdingRepo *repository.HoldingRepository
}

// NewIngestService creates a new IngestService with the provided dependencies.
func NewIngestService(
	db *sql.DB,
	holdingRepo *repository.HoldingRepository,
) *IngestService {
	return &IngestService{
		db:          db,
		holdingRepo: holdingRepo,
	}
}

// Ingest parses a holdings CSV and stores every new holding.
//
// Processing happens in two passes:
//  1. Every row is converted. Rows with an unparseable date are dropped
//     silently. Rows with bad numbers, zero shares or oversized text fields
//     are logged and reported in IngestResult.Errors.
//  2. Each converted holding is stored in its own transaction. A holding whose
//     (date, fund, identifier) is already stored is skipped, not updated.
//
// Rows committed before a storage failure stay committed; the returned result
// counts them. A missing header column rejects the file before anything is stored.
func (s *IngestService) Ingest(ctx context.Context, filename string, r io.Reader) (model.IngestResult, error) {
	log := logging.FromContext(ctx).WithField("filename", filename)
	result := model.IngestResult{Filename: filename, Errors: []model.RowError{}}

	frame, err := readHoldingFrame(r)
	if err != nil {
		log.WithError(err).Warn("rejected holdings file")
		return result, err
	}

	type parsedRow struct {
		line    int
		holding model.Holding
	}

	uploadedAt := time.Now().UTC().Truncate(time.Second)
	parsed := make([]parsedRow, 0, frame.Rows())

	for i := 0; i < frame.Rows(); i++ {
		line := i + 2 // 1-based, after the header
		h, err := frame.Holding(i, uploadedAt)
		if err != nil {
			if isDroppedRow(err) {
				result.Dropped++
				log.WithField("row", line).Debug("dropping row without a valid date")
				continue
			}
			result.Errors = append(result.Errors, model.RowError{
				Row:        line,
				Identifier: frame.Identifier(i),
				Error:      err.Error(),
			})
			log.WithFields(logrus.Fields{
				"row":   line,
				"cusip": frame.Identifier(i),
			}).WithError(err).Warn("skipping holding row")
			continue
		}
		parsed = append(parsed, parsedRow{line: line, holding: h})
	}

	for _, row := range parsed {
		inserted, err := s.store(ctx, row.holding)
		if err != nil {
			log.WithField("row", row.line).WithError(err).Error("failed to store holding")
			return result, fmt.Errorf("%w on row %d: %w", apperrors.ErrFailedToStoreHolding, row.line, err)
		}
		if inserted {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}

	log.WithFields(logrus.Fields{
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
		"dropped":  result.Dropped,
		"failed":   len(result.Errors),
	}).Info("holdings file ingested")

	return result, nil
}

// store inserts h unless its (date, fund, identifier) is already present.
// Each holding commits on its own.
func (s *IngestService) store(ctx context.Context, h model.Holding) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	repo := s.holdingRepo.WithTx(tx)

	exists, err := repo.Exists(ctx, h.Date, h.Fund, h.Identifier)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	inserted, err := repo.Insert(ctx, h)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}
