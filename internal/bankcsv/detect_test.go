package bankcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rkeller/pennyflow/internal/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    models.BankType
	}{
		{
			"revolut export",
			"Type,Product,Started Date,Completed Date,Description,Amount,Fee,Currency,State,Balance\n",
			models.BankRevolut,
		},
		{
			"monzo export",
			"Transaction ID,Date,Time,Type,Name,Category,Amount,Currency,Notes and #tags\n",
			models.BankMonzo,
		},
		{
			"lloyds export",
			"Transaction Date,Transaction Type,Sort Code,Account Number,Transaction Description,Debit Amount,Credit Amount,Balance\n",
			models.BankLloyds,
		},
		{
			"barclays export",
			"Number,Date,Account,Amount,Subcategory,Memo\n",
			models.BankBarclays,
		},
		{
			"generic three-column export",
			"Date,Description,Amount\n",
			models.BankGeneric,
		},
		{
			"generic with debit/credit pair",
			"Posting Date,Details,Paid Out,Paid In\n",
			models.BankGeneric,
		},
		{
			"unusable header",
			"Foo,Bar,Baz\n",
			models.BankUnknown,
		},
		{
			"empty content",
			"",
			models.BankUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.content))
		})
	}
}

func TestDetect_IsPure(t *testing.T) {
	content := "Date,Description,Amount\n01/03/2024,TESCO STORES,-23.45\n"
	first := Detect(content)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Detect(content))
	}
}

func TestDetect_PriorityOrderIsFixed(t *testing.T) {
	// A header satisfying both the Barclays signature and the generic
	// column guesser must resolve to the specific bank.
	content := "Number,Date,Account,Amount,Subcategory,Memo\n"
	assert.Equal(t, models.BankBarclays, Detect(content))
}

func TestDetect_CaseInsensitiveHeader(t *testing.T) {
	content := "DATE,DESCRIPTION,AMOUNT\n"
	assert.Equal(t, models.BankGeneric, Detect(content))
}
