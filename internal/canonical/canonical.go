// Package canonical derives the deterministic identity used to deduplicate
// transactions across repeated or overlapping statement imports.
package canonical

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"rkeller/pennyflow/internal/models"
)

// Fields carries the identifying attributes of a transaction. Merchant takes
// precedence over Description when both are present; statement exports often
// repeat the raw narrative while the cleaned merchant name is stable.
type Fields struct {
	Merchant    string
	Description string
	Amount      decimal.Decimal
	Date        string
	AccountID   string
}

// GenerateID returns the canonical identity string for a transaction:
// a sha256 hex digest over the normalized field concatenation. Identical
// logical transactions always produce the identical id; any difference in
// merchant/description, amount, date or account changes it.
//
// Normalization: text is trimmed and case-folded, the amount is fixed to two
// decimal places so 23.4 and 23.40 collide, and the date is the ISO form the
// parsers already emit.
func GenerateID(f Fields) string {
	name := strings.TrimSpace(f.Merchant)
	if name == "" {
		name = strings.TrimSpace(f.Description)
	}
	name = strings.ToLower(name)

	data := fmt.Sprintf("%s:%s:%s:%s",
		strings.TrimSpace(f.Date),
		f.Amount.StringFixed(2),
		name,
		strings.TrimSpace(f.AccountID),
	)

	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// FromParsed builds the canonical id for a parsed transaction destined for
// the given account.
func FromParsed(txn models.ParsedTransaction, accountID string) string {
	return GenerateID(Fields{
		Merchant:    txn.Merchant,
		Description: txn.Description,
		Amount:      txn.Amount,
		Date:        txn.Date,
		AccountID:   accountID,
	})
}
