package bankcsv

import (
	"fmt"
	"strings"

	"rkeller/pennyflow/internal/dateutil"
	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/moneyutil"
)

// Barclays exports: a signed amount, the narrative in "Memo" and a
// subcategory code that doubles as a type hint.
var barclaysColumns = []string{
	"Number", "Date", "Account", "Amount", "Subcategory", "Memo",
}

func matchBarclays(header []string) bool {
	return indexHeader(header).has(barclaysColumns...)
}

func newBarclaysRowParser(header []string) rowParser {
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

		memo := idx.value(row, "Memo")

		return models.ParsedTransaction{
			Date:        dateutil.ToISO(parsedDate),
			Description: memo,
			Merchant:    merchantFromMemo(memo),
			Amount:      amount,
			Type:        normalizeTypeHint(idx.value(row, "Subcategory")),
			Reference:   idx.value(row, "Number"),
		}, nil
	}
}

// merchantFromMemo extracts the counterparty from a Barclays memo, which
// pads the merchant name with runs of spaces before the processing codes
// ("TESCO STORES 2323      ON 01 MAR    BCC").
func merchantFromMemo(memo string) string {
	if i := strings.Index(memo, "  "); i > 0 {
		return strings.TrimSpace(memo[:i])
	}
	return ""
}
