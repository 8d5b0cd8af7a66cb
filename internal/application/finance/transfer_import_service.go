// Package finance loads ledger data from the legacy system's exports.
package finance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/finance"
	csvimport "github.com/gewis/sudosos-syncd/internal/infrastructure/import"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// importBatchSize is how many transfers are upserted per statement
const importBatchSize = 500

// requiredTransferHeaders are the columns a transfer export must carry
var requiredTransferHeaders = []string{"from_id", "to_id", "amount", "booked_at"}

// bookedAtLayouts are the timestamp formats accepted in exports
var bookedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TransferImportResult summarizes one import run
type TransferImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	SkippedRows  int                  `json:"skipped_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
}

// TransferImportService bulk-loads ledger transfers from a CSV export.
// Rows carrying an id column are upserted, so re-running an import after a
// partial failure is safe.
type TransferImportService struct {
	transfers finance.TransferRepository
	logger    *zap.Logger
}

// NewTransferImportService creates a transfer import service
func NewTransferImportService(transfers finance.TransferRepository, logger *zap.Logger) *TransferImportService {
	return &TransferImportService{
		transfers: transfers,
		logger:    logger,
	}
}

// ImportCSV reads a transfer export and books its rows into the ledger.
// Malformed rows are reported per row and skipped; only a broken file or a
// failed database write aborts the import.
func (s *TransferImportService) ImportCSV(ctx context.Context, r io.Reader) (*TransferImportResult, error) {
	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, err
	}
	if missing := parser.MissingHeaders(requiredTransferHeaders); len(missing) > 0 {
		return nil, fmt.Errorf("transfer export is missing columns: %s", strings.Join(missing, ", "))
	}

	result := &TransferImportResult{}
	batch := make([]*finance.Transfer, 0, importBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.transfers.Import(ctx, batch); err != nil {
			return fmt.Errorf("failed to book transfer batch: %w", err)
		}
		result.ImportedRows += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		row, err := parser.ReadRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.TotalRows++
			result.ErrorRows++
			result.Errors = append(result.Errors, csvimport.NewRowError(result.TotalRows+1, "", err.Error()))
			continue
		}

		result.TotalRows++
		if row.IsEmpty() {
			result.SkippedRows++
			continue
		}

		transfer, rowErr := parseTransferRow(row)
		if rowErr != nil {
			result.ErrorRows++
			result.Errors = append(result.Errors, *rowErr)
			continue
		}

		batch = append(batch, transfer)
		if len(batch) >= importBatchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}

	if err := flush(); err != nil {
		return result, err
	}

	s.logger.Info("Imported transfer export",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported_rows", result.ImportedRows),
		zap.Int("error_rows", result.ErrorRows))

	return result, nil
}

// parseTransferRow converts one CSV row into a domain transfer
func parseTransferRow(row *csvimport.Row) (*finance.Transfer, *csvimport.RowError) {
	fromID, err := parseOptionalUUID(row.Get("from_id"))
	if err != nil {
		rowErr := csvimport.NewRowError(row.Number, "from_id", err.Error())
		return nil, &rowErr
	}
	toID, err := parseOptionalUUID(row.Get("to_id"))
	if err != nil {
		rowErr := csvimport.NewRowError(row.Number, "to_id", err.Error())
		return nil, &rowErr
	}

	amount, err := decimal.NewFromString(row.Get("amount"))
	if err != nil {
		rowErr := csvimport.NewRowError(row.Number, "amount", "not a valid amount")
		return nil, &rowErr
	}

	bookedAt, err := parseBookedAt(row.Get("booked_at"))
	if err != nil {
		rowErr := csvimport.NewRowError(row.Number, "booked_at", err.Error())
		return nil, &rowErr
	}

	transfer, err := finance.NewTransfer(fromID, toID, amount, row.Get("description"), bookedAt)
	if err != nil {
		rowErr := csvimport.NewRowError(row.Number, "", err.Error())
		return nil, &rowErr
	}

	// Exports carrying row ids keep them, making the import an upsert
	if raw := row.Get("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			rowErr := csvimport.NewRowError(row.Number, "id", "not a valid UUID")
			return nil, &rowErr
		}
		transfer.ID = id
	}

	return transfer, nil
}

// parseOptionalUUID treats an empty field as absent
func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.New("not a valid UUID")
	}
	return &id, nil
}

// parseBookedAt accepts the timestamp formats seen in legacy exports
func parseBookedAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("booking timestamp is required")
	}
	for _, layout := range bookedAtLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.New("not a recognized timestamp")
}
