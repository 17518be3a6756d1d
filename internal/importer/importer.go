// Package importer orchestrates the full statement import: parse the CSV,
// deduplicate against existing data and persist what survives, with an
// auditable batch record per file.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rkeller/pennyflow/internal/bankcsv"
	"rkeller/pennyflow/internal/canonical"
	"rkeller/pennyflow/internal/logging"
	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/store"
)

// ErrUnauthorized is returned when the target account does not exist or does
// not belong to the importing user. Nothing is written in that case.
var ErrUnauthorized = errors.New("account not found or not owned by user")

// Importer runs statement imports against a store.
type Importer struct {
	store  store.Store
	parser *bankcsv.Parser
	logger logging.Logger
}

// New creates an Importer. A nil logger falls back to a default adapter.
func New(s store.Store, parser *bankcsv.Parser, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if parser == nil {
		parser = bankcsv.NewParser(logger, "")
	}
	return &Importer{store: s, parser: parser, logger: logger}
}

// ProcessImport ingests one uploaded CSV file into the user's account.
//
// The account ownership check runs before anything else; a failed check
// writes nothing. A structurally unparseable file also writes nothing, not
// even a batch record, and reports the parse errors. Otherwise a batch
// record is created up front, each parsed transaction is deduplicated by its
// canonical id and inserted sequentially in file order, and the batch is
// finalized with the counters regardless of individual row outcomes.
func (i *Importer) ProcessImport(ctx context.Context, userID, accountID, csvContent, fileName string) (*models.ImportSummary, error) {
	account, err := i.store.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account.UserID != userID {
		return nil, ErrUnauthorized
	}

	result := i.parser.ParseCSV(csvContent)
	if !result.Success {
		i.logger.Warn("import rejected: file could not be parsed",
			logging.Field{Key: "file", Value: fileName})
		return &models.ImportSummary{
			Success:    false,
			ErrorCount: len(result.Errors),
			Errors:     result.Errors,
		}, nil
	}

	batch := &models.ImportBatch{
		ID:        uuid.NewString(),
		UserID:    userID,
		AccountID: accountID,
		FileName:  fileName,
		BankType:  result.BankType,
		RowCount:  len(result.Transactions),
		Status:    models.ImportProcessing,
		StartedAt: time.Now().UTC(),
	}
	if err := i.store.CreateImportBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create import batch: %w", err)
	}

	// Rows the parser rejected never reach the batch; its error list covers
	// persistence failures only.
	summary := &models.ImportSummary{Success: true}

	for _, parsed := range result.Transactions {
		if err := i.importOne(ctx, userID, accountID, batch.ID, parsed, summary); err != nil {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("transaction on %s: %v", parsed.Date, err))
		}
	}

	summary.ErrorCount = len(summary.Errors)

	batch.ImportedCount = summary.ImportedCount
	batch.DuplicateCount = summary.DuplicateCount
	batch.ErrorCount = summary.ErrorCount
	batch.Errors = summary.Errors
	batch.Status = models.ImportCompleted
	batch.CompletedAt = time.Now().UTC()
	if err := i.store.FinalizeImportBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to finalize import batch: %w", err)
	}

	i.logger.Info("import completed",
		logging.Field{Key: "file", Value: fileName},
		logging.Field{Key: "bank", Value: string(result.BankType)},
		logging.Field{Key: "imported", Value: summary.ImportedCount},
		logging.Field{Key: "duplicates", Value: summary.DuplicateCount},
		logging.Field{Key: "errors", Value: summary.ErrorCount})

	return summary, nil
}

// importOne deduplicates and persists a single parsed transaction, updating
// the summary counters. An error means the row failed to persist; the caller
// records it and moves on.
func (i *Importer) importOne(ctx context.Context, userID, accountID, importID string, parsed models.ParsedTransaction, summary *models.ImportSummary) error {
	canonicalID := canonical.FromParsed(parsed, accountID)

	_, err := i.store.GetTransactionByCanonicalID(ctx, userID, canonicalID)
	switch {
	case err == nil:
		summary.DuplicateCount++
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("duplicate check failed: %w", err)
	}

	direction := models.DirectionOf(parsed.Amount)
	txn := &models.Transaction{
		ID:              uuid.NewString(),
		UserID:          userID,
		AccountID:       accountID,
		Amount:          parsed.Amount.Abs(),
		Direction:       direction,
		TransactionDate: parsed.Date,
		Description:     parsed.Description,
		Merchant:        parsed.Merchant,
		Kind:            models.KindOf(direction, parsed.Type),
		CanonicalID:     canonicalID,
		ImportID:        importID,
	}
	if err := i.store.InsertTransaction(ctx, txn); err != nil {
		return err
	}

	summary.ImportedCount++
	return nil
}
