package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"rkeller/pennyflow/internal/logging"
	"rkeller/pennyflow/internal/models"
)

// Parser drives format detection and per-row parsing over whole files.
type Parser struct {
	logger          logging.Logger
	defaultCurrency string
}

// NewParser creates a Parser. A nil logger falls back to a default adapter;
// an empty currency falls back to GBP, matching the configuration default.
func NewParser(logger logging.Logger, defaultCurrency string) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if defaultCurrency == "" {
		defaultCurrency = "GBP"
	}
	return &Parser{logger: logger, defaultCurrency: defaultCurrency}
}

// Detect classifies raw CSV content by its header signature. It is a pure
// function of the content: no side effects, first matching signature in
// priority order wins, and the generic tag is returned when no bank
// signature matches but usable columns can still be located.
func Detect(content string) models.BankType {
	header, _, err := readRows(content)
	if err != nil {
		return models.BankUnknown
	}
	return detectHeader(header)
}

func detectHeader(header []string) models.BankType {
	for _, f := range formats {
		if f.match(header) {
			return f.bankType
		}
	}
	if matchGeneric(header) {
		return models.BankGeneric
	}
	return models.BankUnknown
}

// ParseCSV parses a whole statement export. Malformed individual rows never
// fail the file: they are excluded from the transaction list and reported in
// Errors with their 1-based data-row number. Only structural problems (empty
// input, unreadable header, no usable columns) yield Success=false.
func (p *Parser) ParseCSV(content string) *models.ParseResult {
	header, rows, err := readRows(content)
	if err != nil {
		return &models.ParseResult{
			Success:  false,
			BankType: models.BankUnknown,
			Currency: p.defaultCurrency,
			Errors:   []string{err.Error()},
		}
	}

	bankType := detectHeader(header)
	if bankType == models.BankUnknown {
		return &models.ParseResult{
			Success:  false,
			BankType: models.BankUnknown,
			Currency: p.defaultCurrency,
			Errors:   []string{fmt.Sprintf("unrecognized CSV header: %s", strings.Join(header, ","))},
		}
	}

	parseRow := newRowParserFor(bankType, header)

	result := &models.ParseResult{
		Success:  true,
		BankType: bankType,
		Currency: p.defaultCurrency,
	}

	for i, row := range rows {
		txn, err := parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if txn.Currency == "" {
			txn.Currency = p.defaultCurrency
		}
		result.Transactions = append(result.Transactions, txn)
	}

	result.DateRange = dateRangeOf(result.Transactions)
	if currency := detectedCurrency(result.Transactions); currency != "" {
		result.Currency = currency
	}

	p.logger.Info("parsed statement CSV",
		logging.Field{Key: "bank", Value: string(bankType)},
		logging.Field{Key: "transactions", Value: len(result.Transactions)},
		logging.Field{Key: "row_errors", Value: len(result.Errors)})

	return result
}

func newRowParserFor(bankType models.BankType, header []string) rowParser {
	for _, f := range formats {
		if f.bankType == bankType {
			return f.newRowParser(header)
		}
	}
	return newGenericRowParser(header)
}

// readRows splits content into a cleaned header and the raw data rows.
// A BOM is stripped and blank lines are skipped by the csv reader itself.
func readRows(content string) (header []string, rows [][]string, err error) {
	content = strings.TrimPrefix(content, "\ufeff")
	if strings.TrimSpace(content) == "" {
		return nil, nil, fmt.Errorf("file is empty")
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err = reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read CSV header: %v", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.Trim(header[i], `"`))
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Structurally broken line; keep it as a row so the per-row
			// accounting still sees it, the row parser will reject it.
			rows = append(rows, nil)
			continue
		}
		if isBlankRow(row) {
			continue
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func dateRangeOf(transactions []models.ParsedTransaction) *models.DateRange {
	if len(transactions) == 0 {
		return nil
	}

	// ISO dates compare correctly as strings.
	r := &models.DateRange{Start: transactions[0].Date, End: transactions[0].Date}
	for _, txn := range transactions[1:] {
		if txn.Date < r.Start {
			r.Start = txn.Date
		}
		if txn.Date > r.End {
			r.End = txn.Date
		}
	}
	return r
}

// detectedCurrency returns the file's currency when the rows agree on one,
// or "" to keep the configured default.
func detectedCurrency(transactions []models.ParsedTransaction) string {
	currency := ""
	for _, txn := range transactions {
		if txn.Currency == "" {
			continue
		}
		if currency == "" {
			currency = txn.Currency
			continue
		}
		if currency != txn.Currency {
			return ""
		}
	}
	return currency
}
