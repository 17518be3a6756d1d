package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rkeller/pennyflow/internal/logging"
	"rkeller/pennyflow/internal/models"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	logger logging.Logger
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs pending
// schema migrations. Use ":memory:" for an ephemeral database in tests.
func NewSQLiteStore(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite does not benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath, logger: logger}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func fieldStr(key, value string) logging.Field {
	return logging.Field{Key: key, Value: value}
}

func fieldInt(key string, value int) logging.Field {
	return logging.Field{Key: key, Value: value}
}

// CreateAccount inserts a new account.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, type, currency, bank_name, last_four_digits, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID, account.UserID, account.Name, string(account.Type), account.Currency,
		account.BankName, account.LastFourDigits, boolToInt(account.IsActive), account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// GetAccount fetches an account by id, ErrNotFound when absent.
func (s *SQLiteStore) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, currency, bank_name, last_four_digits, is_active, created_at
		FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

// ListAccounts returns the user's accounts, newest first.
func (s *SQLiteStore) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, currency, bank_name, last_four_digits, is_active, created_at
		FROM accounts WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// DeactivateAccount soft-deletes an account. Existing transactions keep
// referring to it.
func (s *SQLiteStore) DeactivateAccount(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivation: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateImportBatch records the start of an import run.
func (s *SQLiteStore) CreateImportBatch(ctx context.Context, batch *models.ImportBatch) error {
	if batch.StartedAt.IsZero() {
		batch.StartedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_batches (id, user_id, account_id, file_name, bank_type, row_count,
			imported_count, duplicate_count, error_count, status, errors, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		batch.ID, batch.UserID, batch.AccountID, batch.FileName, string(batch.BankType), batch.RowCount,
		batch.ImportedCount, batch.DuplicateCount, batch.ErrorCount, string(batch.Status),
		joinErrors(batch.Errors), batch.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to insert import batch: %w", err)
	}
	return nil
}

// FinalizeImportBatch writes the batch's terminal state and counters.
func (s *SQLiteStore) FinalizeImportBatch(ctx context.Context, batch *models.ImportBatch) error {
	if batch.CompletedAt.IsZero() {
		batch.CompletedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE import_batches
		SET imported_count = ?, duplicate_count = ?, error_count = ?, status = ?, errors = ?, completed_at = ?
		WHERE id = ?`,
		batch.ImportedCount, batch.DuplicateCount, batch.ErrorCount, string(batch.Status),
		joinErrors(batch.Errors), batch.CompletedAt, batch.ID)
	if err != nil {
		return fmt.Errorf("failed to finalize import batch: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check finalization: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetImportBatch fetches one batch by id, ErrNotFound when absent.
func (s *SQLiteStore) GetImportBatch(ctx context.Context, id string) (*models.ImportBatch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, account_id, file_name, bank_type, row_count,
			imported_count, duplicate_count, error_count, status, errors, started_at, completed_at
		FROM import_batches WHERE id = ?`, id)
	return scanImportBatch(row)
}

// ListImportBatches returns the user's batches, newest first.
func (s *SQLiteStore) ListImportBatches(ctx context.Context, userID string) ([]models.ImportBatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, account_id, file_name, bank_type, row_count,
			imported_count, duplicate_count, error_count, status, errors, started_at, completed_at
		FROM import_batches WHERE user_id = ? ORDER BY started_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query import batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var batches []models.ImportBatch
	for rows.Next() {
		batch, err := scanImportBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, *batch)
	}
	return batches, rows.Err()
}

// GetTransactionByCanonicalID looks a transaction up by its dedup key within
// one user's data. ErrNotFound means the key is unseen.
func (s *SQLiteStore) GetTransactionByCanonicalID(ctx context.Context, userID, canonicalID string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, account_id, category_id, amount, direction, transaction_date,
			description, merchant, notes, kind, canonical_id, import_id,
			is_recurring, is_excluded_from_analytics, created_at
		FROM transactions WHERE user_id = ? AND canonical_id = ?`, userID, canonicalID)
	return scanTransaction(row)
}

// InsertTransaction persists one accepted transaction.
func (s *SQLiteStore) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, account_id, category_id, amount, direction,
			transaction_date, description, merchant, notes, kind, canonical_id, import_id,
			is_recurring, is_excluded_from_analytics, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.UserID, txn.AccountID, nullable(txn.CategoryID),
		txn.Amount.String(), string(txn.Direction), txn.TransactionDate,
		txn.Description, txn.Merchant, txn.Notes, string(txn.Kind),
		txn.CanonicalID, nullable(txn.ImportID),
		boolToInt(txn.IsRecurring), boolToInt(txn.IsExcludedFromAnalytics), txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactionsByImport returns the transactions created by one batch, in
// date order.
func (s *SQLiteStore) ListTransactionsByImport(ctx context.Context, importID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, account_id, category_id, amount, direction, transaction_date,
			description, merchant, notes, kind, canonical_id, import_id,
			is_recurring, is_excluded_from_analytics, created_at
		FROM transactions WHERE import_id = ? ORDER BY transaction_date, id`, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

// CreateCategory inserts one category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, type, parent_id, icon, color, is_system, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		category.ID, category.UserID, category.Name, category.Type, nullable(category.ParentID),
		category.Icon, category.Color, boolToInt(category.IsSystem), category.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// ListCategories returns the user's categories in sort order.
func (s *SQLiteStore) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, parent_id, icon, color, is_system, sort_order
		FROM categories WHERE user_id = ? ORDER BY sort_order, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var parentID sql.NullString
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &parentID,
			&c.Icon, &c.Color, &c.IsSystem, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.ParentID = parentID.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	var a models.Account
	var accountType string
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &accountType, &a.Currency,
		&a.BankName, &a.LastFourDigits, &a.IsActive, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	a.Type = models.AccountType(accountType)
	return &a, nil
}

func scanImportBatch(row scanner) (*models.ImportBatch, error) {
	var b models.ImportBatch
	var bankType, status, errs string
	var completedAt sql.NullTime
	err := row.Scan(&b.ID, &b.UserID, &b.AccountID, &b.FileName, &bankType, &b.RowCount,
		&b.ImportedCount, &b.DuplicateCount, &b.ErrorCount, &status, &errs,
		&b.StartedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan import batch: %w", err)
	}
	b.BankType = models.BankType(bankType)
	b.Status = models.ImportStatus(status)
	b.Errors = splitErrors(errs)
	if completedAt.Valid {
		b.CompletedAt = completedAt.Time
	}
	return &b, nil
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var t models.Transaction
	var amount, direction, kind string
	var categoryID, importID sql.NullString
	err := row.Scan(&t.ID, &t.UserID, &t.AccountID, &categoryID, &amount, &direction,
		&t.TransactionDate, &t.Description, &t.Merchant, &t.Notes, &kind,
		&t.CanonicalID, &importID, &t.IsRecurring, &t.IsExcludedFromAnalytics, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	t.Direction = models.Direction(direction)
	t.Kind = models.Kind(kind)
	t.CategoryID = categoryID.String
	t.ImportID = importID.String
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// joinErrors packs the per-row error list into a single text column.
// Newlines inside individual messages are not expected; row errors are
// single-line by construction.
func joinErrors(errs []string) string {
	return strings.Join(errs, "\n")
}

func splitErrors(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
