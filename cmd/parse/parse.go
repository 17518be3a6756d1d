// Package parse implements the statement preview command: detect the bank
// format, parse the file and show what an import would ingest, without
// touching the database.
package parse

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rkeller/pennyflow/cmd/root"
	"rkeller/pennyflow/internal/bankcsv"
	"rkeller/pennyflow/internal/export"
)

var output string

// Cmd represents the parse command.
var Cmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a statement CSV and preview the normalized transactions",
	Args:  cobra.ExactArgs(1),
	RunE:  parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "write the normalized transactions to a CSV file")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", args[0], err)
	}

	parser := bankcsv.NewParser(root.Log, root.Cfg.Import.DefaultCurrency)
	result := parser.ParseCSV(string(data))

	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", e)
		}
		return fmt.Errorf("file could not be parsed")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Bank:         %s\n", result.BankType)
	fmt.Fprintf(out, "Currency:     %s\n", result.Currency)
	fmt.Fprintf(out, "Transactions: %d\n", len(result.Transactions))
	fmt.Fprintf(out, "Row errors:   %d\n", len(result.Errors))
	if result.DateRange != nil {
		fmt.Fprintf(out, "Date range:   %s to %s\n", result.DateRange.Start, result.DateRange.End)
	}

	preview := root.Cfg.Import.SamplePreview
	if preview > len(result.Transactions) {
		preview = len(result.Transactions)
	}
	if preview > 0 {
		fmt.Fprintln(out, "\nSample:")
		for _, txn := range result.Transactions[:preview] {
			fmt.Fprintf(out, "  %s  %10s %s  %s\n", txn.Date, txn.Amount.StringFixed(2), txn.Currency, txn.Description)
		}
	}

	for _, e := range result.Errors {
		fmt.Fprintf(out, "row error: %s\n", e)
	}

	if output != "" {
		writer := export.NewWriter(root.Log, root.Delimiter())
		if err := writer.WriteFile(output, result.Transactions); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nWrote %d transactions to %s\n", len(result.Transactions), output)
	}

	return nil
}
