// Package export writes normalized transactions back out as CSV, giving
// every input format the same standardized output shape.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"rkeller/pennyflow/internal/logging"
	"rkeller/pennyflow/internal/models"
)

// Writer writes normalized transactions as CSV.
type Writer struct {
	logger    logging.Logger
	delimiter rune
}

// NewWriter creates a Writer. A zero delimiter falls back to a comma.
func NewWriter(logger logging.Logger, delimiter rune) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{logger: logger, delimiter: delimiter}
}

// Write marshals the transactions to w with a header row, in slice order.
// Amounts are rounded to two decimal places for stable output.
func (e *Writer) Write(w io.Writer, transactions []models.ParsedTransaction) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	// Round into a copy so callers keep their amounts untouched.
	rows := make([]models.ParsedTransaction, len(transactions))
	copy(rows, transactions)
	for i := range rows {
		rows[i].Amount = rows[i].Amount.Round(2)
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes the transactions to a file, creating parent directories
// as needed.
func (e *Writer) WriteFile(path string, transactions []models.ParsedTransaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			e.logger.WithError(err).Warn("failed to close file")
		}
	}()

	if err := e.Write(file, transactions); err != nil {
		return err
	}

	e.logger.Info("wrote normalized CSV",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "count", Value: len(transactions)})
	return nil
}
