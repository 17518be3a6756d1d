// Package bankcsv turns raw bank-statement CSV exports into the normalized
// transaction model. It detects which bank produced a file from its header
// signature and dispatches each data row to the matching row parser.
package bankcsv

import (
	"strings"

	"rkeller/pennyflow/internal/models"
)

// rowParser converts one data row into a normalized transaction, or fails
// with an error naming the field that could not be interpreted.
type rowParser func(row []string) (models.ParsedTransaction, error)

// format couples a bank's header signature with the construction of its row
// parser. match is a pure function of the cleaned header; newRowParser gets
// the header so it can resolve column positions once per file.
type format struct {
	bankType     models.BankType
	match        func(header []string) bool
	newRowParser func(header []string) rowParser
}

// formats is the closed set of known bank formats, in detection priority
// order. The generic fallback is handled separately because its match
// depends on whether plausible columns can be resolved at all.
var formats = []format{
	{models.BankRevolut, matchRevolut, newRevolutRowParser},
	{models.BankMonzo, matchMonzo, newMonzoRowParser},
	{models.BankLloyds, matchLloyds, newLloydsRowParser},
	{models.BankBarclays, matchBarclays, newBarclaysRowParser},
}

// headerIndex maps case-folded column names to their position.
type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return idx
}

// has reports whether every named column is present.
func (h headerIndex) has(columns ...string) bool {
	for _, col := range columns {
		if _, ok := h[strings.ToLower(col)]; !ok {
			return false
		}
	}
	return true
}

// value returns the trimmed cell under the named column, or "" when the
// column is absent or the row is short.
func (h headerIndex) value(row []string, column string) string {
	i, ok := h[strings.ToLower(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// normalizeTypeHint maps a bank-specific transaction type string onto the
// hints downstream logic understands. Anything unrecognized passes through
// lowercased so it is still available as context.
func normalizeTypeHint(raw string) string {
	hint := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case hint == "":
		return ""
	case hint == "tfr", strings.Contains(hint, "transfer"):
		return "transfer"
	default:
		return hint
	}
}
