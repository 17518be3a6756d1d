package bankcsv

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkeller/pennyflow/internal/models"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseCSV_Revolut(t *testing.T) {
	content := `Type,Product,Started Date,Completed Date,Description,Amount,Fee,Currency,State,Balance
CARD_PAYMENT,Current,2025-01-02 08:07:09,2025-01-03 15:38:51,Boreal Coffee Shop,-57.50,0.00,EUR,COMPLETED,53.92
TRANSFER,Current,2025-01-08 19:39:37,2025-01-08 19:39:37,To EUR Savings,-4.30,0.00,EUR,COMPLETED,49.62
TOPUP,Current,2025-01-10 09:00:00,2025-01-10 09:00:01,Payroll,1200.00,0.00,EUR,COMPLETED,1249.62
`

	result := newTestParser().ParseCSV(content)

	require.True(t, result.Success)
	assert.Equal(t, models.BankRevolut, result.BankType)
	require.Len(t, result.Transactions, 3)
	assert.Equal(t, "EUR", result.Currency)

	coffee := result.Transactions[0]
	assert.Equal(t, "2025-01-03", coffee.Date)
	assert.Equal(t, "Boreal Coffee Shop", coffee.Description)
	assert.True(t, coffee.Amount.Equal(amount("-57.50")))
	assert.Equal(t, "card_payment", coffee.Type)

	transfer := result.Transactions[1]
	assert.Equal(t, "transfer", transfer.Type)

	topup := result.Transactions[2]
	assert.True(t, topup.Amount.Equal(amount("1200.00")))
}

func TestParseCSV_Monzo(t *testing.T) {
	content := `Transaction ID,Date,Time,Type,Name,Category,Amount,Currency,Notes and #tags
tx_0001,01/03/2024,09:15:00,Card payment,Pret A Manger,Eating out,-6.75,GBP,lunch
tx_0002,01/03/2024,18:00:00,Pot transfer,Savings Pot,Savings,-100.00,GBP,
tx_0003,02/03/2024,08:00:00,Faster payment,ACME LTD,Income,2500.00,GBP,salary
`

	result := newTestParser().ParseCSV(content)

	require.True(t, result.Success)
	assert.Equal(t, models.BankMonzo, result.BankType)
	require.Len(t, result.Transactions, 3)

	pret := result.Transactions[0]
	assert.Equal(t, "2024-03-01", pret.Date)
	assert.Equal(t, "Pret A Manger", pret.Merchant)
	assert.Equal(t, "Pret A Manger", pret.Description)
	assert.Equal(t, "lunch", pret.Reference)
	assert.True(t, pret.Amount.Equal(amount("-6.75")))

	pot := result.Transactions[1]
	assert.Equal(t, "transfer", pot.Type)

	salary := result.Transactions[2]
	assert.True(t, salary.Amount.Equal(amount("2500.00")))
	assert.NotEqual(t, "transfer", salary.Type)
}

func TestParseCSV_Lloyds_SignNormalization(t *testing.T) {
	content := `Transaction Date,Transaction Type,Sort Code,Account Number,Transaction Description,Debit Amount,Credit Amount,Balance
01/03/2024,DEB,'11-22-33,12345678,TESCO STORES 3297,23.45,,976.55
02/03/2024,FPI,'11-22-33,12345678,ACME PAYROLL,,2500.00,3476.55
03/03/2024,TFR,'11-22-33,12345678,TO SAVINGS,150.00,,3326.55
`

	result := newTestParser().ParseCSV(content)

	require.True(t, result.Success)
	assert.Equal(t, models.BankLloyds, result.BankType)
	require.Len(t, result.Transactions, 3)

	// Debit column value comes out negative, credit positive, same magnitude rules.
	debit := result.Transactions[0]
	assert.True(t, debit.Amount.Equal(amount("-23.45")), "debit must be negative, got %s", debit.Amount)

	credit := result.Transactions[1]
	assert.True(t, credit.Amount.Equal(amount("2500.00")), "credit must be positive, got %s", credit.Amount)

	transfer := result.Transactions[2]
	assert.Equal(t, "transfer", transfer.Type)
	assert.True(t, transfer.Amount.IsNegative())
}

func TestParseCSV_Barclays(t *testing.T) {
	content := `Number,Date,Account,Amount,Subcategory,Memo
1,01/03/2024,20-33-55 12345678,-23.45,PAYMENT,TESCO STORES 2323      ON 01 MAR    BCC
2,02/03/2024,20-33-55 12345678,2500.00,DIRECTDEP,ACME LTD PAYROLL
3,03/03/2024,20-33-55 12345678,-150.00,TRANSFER,SAVINGS ACCOUNT        ON 03 MAR    TFR
`

	result := newTestParser().ParseCSV(content)

	require.True(t, result.Success)
	assert.Equal(t, models.BankBarclays, result.BankType)
	require.Len(t, result.Transactions, 3)

	tesco := result.Transactions[0]
	assert.Equal(t, "2024-03-01", tesco.Date)
	assert.Equal(t, "TESCO STORES 2323", tesco.Merchant)
	assert.True(t, tesco.Amount.Equal(amount("-23.45")))
	assert.Equal(t, "1", tesco.Reference)

	transfer := result.Transactions[2]
	assert.Equal(t, "transfer", transfer.Type)
}

func TestParseCSV_GenericDebitCreditPair(t *testing.T) {
	content := `Posting Date,Details,Paid Out,Paid In
01/03/2024,COFFEE SHOP,4.50,
02/03/2024,REFUND,,10.00
`

	result := newTestParser().ParseCSV(content)

	require.True(t, result.Success)
	assert.Equal(t, models.BankGeneric, result.BankType)
	require.Len(t, result.Transactions, 2)
	assert.True(t, result.Transactions[0].Amount.Equal(amount("-4.50")))
	assert.True(t, result.Transactions[1].Amount.Equal(amount("10.00")))
}

func TestParseCSV_GenericOptionalFieldsAbsent(t *testing.T) {
	content := "Date,Description,Amount,Merchant,Reference\n" +
		"01/03/2024,CASH WITHDRAWAL,-20.00,,\n"

	result := newTestParser().ParseCSV(content)

	require.True(t, result.Success)
	require.Len(t, result.Transactions, 1)
	assert.Empty(t, result.Transactions[0].Merchant)
	assert.Empty(t, result.Transactions[0].Reference)
}

func TestParseCSV_AmountWithCurrencySymbolAndThousands(t *testing.T) {
	content := "Date,Description,Amount\n" +
		"01/03/2024,BONUS,\"£1,234.56\"\n"

	result := newTestParser().ParseCSV(content)

	require.True(t, result.Success)
	require.Len(t, result.Transactions, 1)
	assert.True(t, result.Transactions[0].Amount.Equal(amount("1234.56")))
}

func TestMerchantFromMemo(t *testing.T) {
	assert.Equal(t, "TESCO STORES 2323", merchantFromMemo("TESCO STORES 2323      ON 01 MAR    BCC"))
	assert.Equal(t, "", merchantFromMemo("ACME LTD PAYROLL"))
	assert.Equal(t, "", merchantFromMemo(""))
}
