package bankcsv

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"rkeller/pennyflow/internal/dateutil"
	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/moneyutil"
)

// Column name candidates for the generic fallback, tried in order. These
// cover the common spellings across smaller banks and exported spreadsheets.
var (
	genericDateColumns        = []string{"date", "transaction date", "posting date", "posted date", "value date"}
	genericDescriptionColumns = []string{"description", "transaction description", "details", "narrative", "memo"}
	genericAmountColumns      = []string{"amount", "value", "transaction amount"}
	genericDebitColumns       = []string{"debit", "debit amount", "paid out", "money out", "withdrawal"}
	genericCreditColumns      = []string{"credit", "credit amount", "paid in", "money in", "deposit"}
	genericMerchantColumns    = []string{"merchant", "payee", "counterparty", "name"}
	genericReferenceColumns   = []string{"reference", "notes", "note"}
	genericCurrencyColumns    = []string{"currency"}
)

// genericColumns is the result of guessing a meaning for each header column.
type genericColumns struct {
	date        string
	description string
	amount      string // empty when the file uses a debit/credit pair
	debit       string
	credit      string
	merchant    string
	reference   string
	currency    string
}

// resolveGenericColumns tries to locate the essential columns in an
// unrecognized header. It reports ok=false when no best-effort parse is
// possible: a usable file needs at least a date, a description and either a
// signed amount column or a debit/credit pair.
func resolveGenericColumns(header []string) (genericColumns, bool) {
	idx := indexHeader(header)

	pick := func(candidates []string) string {
		for _, name := range candidates {
			if _, ok := idx[name]; ok {
				return name
			}
		}
		return ""
	}

	cols := genericColumns{
		date:        pick(genericDateColumns),
		description: pick(genericDescriptionColumns),
		amount:      pick(genericAmountColumns),
		debit:       pick(genericDebitColumns),
		credit:      pick(genericCreditColumns),
		merchant:    pick(genericMerchantColumns),
		reference:   pick(genericReferenceColumns),
		currency:    pick(genericCurrencyColumns),
	}

	// "Name" style columns double as description when nothing better exists.
	if cols.description == "" {
		cols.description = cols.merchant
	}

	if cols.date == "" || cols.description == "" {
		return genericColumns{}, false
	}
	if cols.amount == "" && cols.debit == "" && cols.credit == "" {
		return genericColumns{}, false
	}

	return cols, true
}

func matchGeneric(header []string) bool {
	_, ok := resolveGenericColumns(header)
	return ok
}

func newGenericRowParser(header []string) rowParser {
	idx := indexHeader(header)
	cols, _ := resolveGenericColumns(header)

	return func(row []string) (models.ParsedTransaction, error) {
		dateStr := idx.value(row, cols.date)
		parsedDate, err := dateutil.Parse(dateStr)
		if err != nil {
			return models.ParsedTransaction{}, fmt.Errorf("unparseable date %q", dateStr)
		}

		var amount decimal.Decimal
		if cols.amount != "" {
			amountStr := idx.value(row, cols.amount)
			amount, err = moneyutil.Parse(amountStr)
			if err != nil {
				return models.ParsedTransaction{}, fmt.Errorf("unparseable amount %q", amountStr)
			}
		} else {
			debitStr := idx.value(row, cols.debit)
			creditStr := idx.value(row, cols.credit)
			amount, err = moneyutil.CombineDebitCredit(debitStr, creditStr)
			if err != nil {
				return models.ParsedTransaction{}, fmt.Errorf("unparseable amount debit=%q credit=%q", debitStr, creditStr)
			}
		}

		merchant := ""
		if cols.merchant != "" && cols.merchant != cols.description {
			merchant = idx.value(row, cols.merchant)
		}

		return models.ParsedTransaction{
			Date:        dateutil.ToISO(parsedDate),
			Description: strings.TrimSpace(idx.value(row, cols.description)),
			Merchant:    merchant,
			Amount:      amount,
			Currency:    idx.value(row, cols.currency),
			Reference:   idx.value(row, cols.reference),
		}, nil
	}
}
