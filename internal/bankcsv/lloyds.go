package bankcsv

import (
	"fmt"

	"rkeller/pennyflow/internal/dateutil"
	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/moneyutil"
)

// Lloyds internet banking exports: separate debit/credit columns that must
// be folded into one signed amount, and a TFR transaction type for
// transfers.
var lloydsColumns = []string{
	"Transaction Date", "Transaction Type", "Transaction Description",
	"Debit Amount", "Credit Amount",
}

func matchLloyds(header []string) bool {
	return indexHeader(header).has(lloydsColumns...)
}

func newLloydsRowParser(header []string) rowParser {
	idx := indexHeader(header)

	return func(row []string) (models.ParsedTransaction, error) {
		dateStr := idx.value(row, "Transaction Date")
		parsedDate, err := dateutil.ParseWith(dateutil.LayoutUK, dateStr)
		if err != nil {
			return models.ParsedTransaction{}, fmt.Errorf("unparseable date %q", dateStr)
		}

		debitStr := idx.value(row, "Debit Amount")
		creditStr := idx.value(row, "Credit Amount")
		amount, err := moneyutil.CombineDebitCredit(debitStr, creditStr)
		if err != nil {
			return models.ParsedTransaction{}, fmt.Errorf("unparseable amount debit=%q credit=%q", debitStr, creditStr)
		}

		return models.ParsedTransaction{
			Date:        dateutil.ToISO(parsedDate),
			Description: idx.value(row, "Transaction Description"),
			Amount:      amount,
			Type:        normalizeTypeHint(idx.value(row, "Transaction Type")),
		}, nil
	}
}
