package bankcsv

import (
	"fmt"

	"rkeller/pennyflow/internal/dateutil"
	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/moneyutil"
)

// Revolut app exports: timestamps rather than plain dates, a signed amount
// and an explicit per-row currency.
var revolutColumns = []string{
	"Type", "Product", "Started Date", "Completed Date",
	"Description", "Amount", "Currency", "State",
}

func matchRevolut(header []string) bool {
	return indexHeader(header).has(revolutColumns...)
}

func newRevolutRowParser(header []string) rowParser {
	idx := indexHeader(header)

	return func(row []string) (models.ParsedTransaction, error) {
		dateStr := idx.value(row, "Completed Date")
		if dateStr == "" {
			// Pending rows have no completion timestamp yet.
			dateStr = idx.value(row, "Started Date")
		}

		parsedDate, err := dateutil.ParseWith(dateutil.LayoutDateTime, dateStr)
		if err != nil {
			return models.ParsedTransaction{}, fmt.Errorf("unparseable date %q", dateStr)
		}

		amountStr := idx.value(row, "Amount")
		amount, err := moneyutil.Parse(amountStr)
		if err != nil {
			return models.ParsedTransaction{}, fmt.Errorf("unparseable amount %q", amountStr)
		}

		return models.ParsedTransaction{
			Date:        dateutil.ToISO(parsedDate),
			Description: idx.value(row, "Description"),
			Amount:      amount,
			Currency:    idx.value(row, "Currency"),
			Type:        normalizeTypeHint(idx.value(row, "Type")),
			Reference:   idx.value(row, "State"),
		}, nil
	}
}
