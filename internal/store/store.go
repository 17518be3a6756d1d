// Package store persists accounts, transactions, categories and import
// batches. The Store interface is what the import pipeline and the CLI
// program against; SQLiteStore is the production implementation and
// MemoryStore backs tests.
package store

import (
	"context"
	"errors"

	"rkeller/pennyflow/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary of the application.
type Store interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)
	DeactivateAccount(ctx context.Context, id string) error

	CreateImportBatch(ctx context.Context, batch *models.ImportBatch) error
	FinalizeImportBatch(ctx context.Context, batch *models.ImportBatch) error
	GetImportBatch(ctx context.Context, id string) (*models.ImportBatch, error)
	ListImportBatches(ctx context.Context, userID string) ([]models.ImportBatch, error)

	GetTransactionByCanonicalID(ctx context.Context, userID, canonicalID string) (*models.Transaction, error)
	InsertTransaction(ctx context.Context, txn *models.Transaction) error
	ListTransactionsByImport(ctx context.Context, importID string) ([]models.Transaction, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)

	Close() error
}
