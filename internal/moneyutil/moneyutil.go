// Package moneyutil provides amount parsing and normalization for the bank
// statement parsers.
package moneyutil

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbolRe = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s]`)

// Standardize converts the currency string formats seen in bank exports to
// something decimal.NewFromString accepts. Handles "£1,234.56", "1.234,56",
// "1'234.56", "(23.45)" accounting negatives and embedded currency codes.
func Standardize(amountStr string) string {
	amount := strings.TrimSpace(amountStr)

	// Accounting convention: parentheses mean negative.
	if strings.HasPrefix(amount, "(") && strings.HasSuffix(amount, ")") {
		amount = "-" + strings.Trim(amount, "()")
	}

	// Strip currency codes before symbols so "CHF" doesn't leave stray letters.
	for _, code := range []string{"GBP", "EUR", "USD", "CHF"} {
		amount = strings.ReplaceAll(amount, code, "")
	}
	amount = symbolRe.ReplaceAllString(amount, "")

	// European format (1.234,56) -> 1234.56
	if strings.Contains(amount, ",") && strings.Contains(amount, ".") {
		if strings.LastIndex(amount, ".") < strings.LastIndex(amount, ",") {
			amount = strings.ReplaceAll(amount, ".", "")
			amount = strings.ReplaceAll(amount, ",", ".")
		} else {
			// Comma is a thousand separator (1,234.56)
			amount = strings.ReplaceAll(amount, ",", "")
		}
	} else if strings.Contains(amount, ",") {
		parts := strings.Split(amount, ",")
		if len(parts[len(parts)-1]) <= 2 {
			// Comma used as decimal separator (1234,56)
			amount = strings.ReplaceAll(amount, ",", ".")
		} else {
			// Comma used as thousand separator (1,234)
			amount = strings.ReplaceAll(amount, ",", "")
		}
	}

	// Apostrophes as thousand separators (1'234.56)
	amount = strings.ReplaceAll(amount, "'", "")

	return amount
}

// Parse parses a string representation of an amount into a decimal value.
// Blank strings are an error: a statement row without an amount is not a
// zero transaction. Unused cells of a debit/credit pair go through
// CombineDebitCredit instead, which knows blank means empty.
func Parse(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	standardized := Standardize(amountStr)
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// parseOrZero parses like Parse but treats a blank cell as zero, for the
// unused half of a debit/credit pair.
func parseOrZero(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}
	return Parse(amountStr)
}

// CombineDebitCredit folds a separate debit/credit column pair into one
// signed amount: credit positive, debit negative. Exactly one of the two is
// expected to be non-zero on any given row; the other is usually blank.
func CombineDebitCredit(debitStr, creditStr string) (decimal.Decimal, error) {
	debit, err := parseOrZero(debitStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("debit: %w", err)
	}
	credit, err := parseOrZero(creditStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("credit: %w", err)
	}

	if !debit.IsZero() {
		return debit.Abs().Neg(), nil
	}
	return credit.Abs(), nil
}
