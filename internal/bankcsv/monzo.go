package bankcsv

import (
	"fmt"

	"rkeller/pennyflow/internal/dateutil"
	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/moneyutil"
)

// Monzo account exports: day-first dates, a signed amount, the counterparty
// under "Name" and free-text notes.
var monzoColumns = []string{
	"Transaction ID", "Date", "Type", "Name", "Amount", "Currency",
}

func matchMonzo(header []string) bool {
	return indexHeader(header).has(monzoColumns...)
}

func newMonzoRowParser(header []string) rowParser {
	idx := indexHeader(header)

	return func(row []string) (models.ParsedTransaction, error) {
		dateStr := idx.value(row, "Date")
		parsedDate, err := dateutil.ParseWith(dateutil.LayoutUK, dateStr)
		if err != nil {
			return models.ParsedTransaction{}, fmt.Errorf("unparseable date %q", dateStr)
		}

		amountStr := idx.value(row, "Amount")
		amount, err := moneyutil.Parse(amountStr)
		if err != nil {
			return models.ParsedTransaction{}, fmt.Errorf("unparseable amount %q", amountStr)
		}

		description := idx.value(row, "Description")
		if description == "" {
			description = idx.value(row, "Name")
		}

		return models.ParsedTransaction{
			Date:        dateutil.ToISO(parsedDate),
			Description: description,
			Merchant:    idx.value(row, "Name"),
			Amount:      amount,
			Currency:    idx.value(row, "Currency"),
			Type:        normalizeTypeHint(idx.value(row, "Type")),
			Reference:   idx.value(row, "Notes and #tags"),
		}, nil
	}
}
