// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankType identifies the bank export format a CSV file came from.
type BankType string

const (
	BankRevolut  BankType = "revolut"
	BankMonzo    BankType = "monzo"
	BankLloyds   BankType = "lloyds"
	BankBarclays BankType = "barclays"
	// BankGeneric is the fallback for files whose header matches no known
	// signature but still exposes recognizable date/description/amount columns.
	BankGeneric BankType = "generic"
	BankUnknown BankType = "unknown"
)

// ParsedTransaction is the normalized output of the CSV parsers, before any
// persistence. Amount is signed: positive means money in, negative money out.
// Date is always an ISO (YYYY-MM-DD) string.
type ParsedTransaction struct {
	Date        string          `csv:"Date"`
	Description string          `csv:"Description"`
	Merchant    string          `csv:"Merchant"`
	Amount      decimal.Decimal `csv:"Amount"`
	Currency    string          `csv:"Currency"`
	Type        string          `csv:"Type"`
	Reference   string          `csv:"Reference"`
}

// DateRange is the inclusive min/max of the parsed transaction dates.
type DateRange struct {
	Start string `csv:"Start"`
	End   string `csv:"End"`
}

// ParseResult aggregates the outcome of parsing one uploaded file.
// Transactions keeps file order; rows that failed to parse are excluded and
// reported in Errors instead, so len(Transactions) plus the number of row
// errors always equals the number of data rows in the file.
type ParseResult struct {
	Success      bool
	BankType     BankType
	Transactions []ParsedTransaction
	Errors       []string
	DateRange    *DateRange
	Currency     string
}

// Direction classifies a stored transaction as money in or out.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Kind is the ledger-level classification of a transaction, distinct from
// user-facing spending categories.
type Kind string

const (
	KindExpense    Kind = "expense"
	KindIncome     Kind = "income"
	KindTransfer   Kind = "transfer"
	KindAdjustment Kind = "adjustment"
)

// Transaction is the persisted entity: one row per accepted parsed
// transaction after deduplication. Amount is always a non-negative
// magnitude; Direction carries the sign.
type Transaction struct {
	ID                      string
	UserID                  string
	AccountID               string
	CategoryID              string
	Amount                  decimal.Decimal
	Direction               Direction
	TransactionDate         string
	Description             string
	Merchant                string
	Notes                   string
	Kind                    Kind
	CanonicalID             string
	ImportID                string
	IsRecurring             bool
	IsExcludedFromAnalytics bool
	CreatedAt               time.Time
}

// AccountType identifies the kind of bank account.
type AccountType string

const (
	AccountCurrent    AccountType = "current"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountOther      AccountType = "other"
)

// Account is the destination of an import. The import pipeline treats it as
// an opaque key plus its currency for context.
type Account struct {
	ID             string
	UserID         string
	Name           string
	Type           AccountType
	Currency       string
	BankName       string
	LastFourDigits string
	IsActive       bool
	CreatedAt      time.Time
}

// ImportStatus is the lifecycle state of an import batch.
type ImportStatus string

const (
	ImportPending    ImportStatus = "pending"
	ImportProcessing ImportStatus = "processing"
	ImportCompleted  ImportStatus = "completed"
	ImportFailed     ImportStatus = "failed"
)

// ImportBatch tracks one file upload: row count, imported/duplicate/error
// counters and the accumulated per-row errors.
type ImportBatch struct {
	ID             string
	UserID         string
	AccountID      string
	FileName       string
	BankType       BankType
	RowCount       int
	ImportedCount  int
	DuplicateCount int
	ErrorCount     int
	Status         ImportStatus
	Errors         []string
	StartedAt      time.Time
	CompletedAt    time.Time
}

// Category is a user-facing spending category. System categories are seeded
// once per user and cannot be deleted.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Type      string
	ParentID  string
	Icon      string
	Color     string
	IsSystem  bool
	SortOrder int
}

// ImportSummary is what the import pipeline returns to the caller. The full
// error list is kept here; truncation for display is a UI concern.
type ImportSummary struct {
	Success        bool
	ImportedCount  int
	DuplicateCount int
	ErrorCount     int
	Errors         []string
}

// DirectionOf derives the stored direction from a signed parsed amount.
// Zero amounts count as money in, matching the import convention.
func DirectionOf(amount decimal.Decimal) Direction {
	if amount.IsNegative() {
		return DirectionOut
	}
	return DirectionIn
}

// KindOf derives the ledger kind from a direction and the parser's type
// hint. A "transfer" hint overrides the direction-based default.
func KindOf(direction Direction, typeHint string) Kind {
	if typeHint == string(KindTransfer) {
		return KindTransfer
	}
	if direction == DirectionIn {
		return KindIncome
	}
	return KindExpense
}
