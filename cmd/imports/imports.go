// Package imports implements the import command and the listing of past
// import batches.
package imports

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rkeller/pennyflow/cmd/root"
	"rkeller/pennyflow/internal/bankcsv"
	"rkeller/pennyflow/internal/importer"
)

var accountID string

// maxErrorsShown caps the per-batch error lines printed by the commands;
// the full list stays in the batch record.
const maxErrorsShown = 5

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a statement CSV into an account",
	Args:  cobra.ExactArgs(1),
	RunE:  importFunc,
}

// ListCmd represents the imports command.
var ListCmd = &cobra.Command{
	Use:   "imports",
	Short: "List past import batches",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	Cmd.Flags().StringVarP(&accountID, "account", "a", "", "account id to import into")
	_ = Cmd.MarkFlagRequired("account")
}

func importFunc(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", args[0], err)
	}

	s, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	parser := bankcsv.NewParser(root.Log, root.Cfg.Import.DefaultCurrency)
	imp := importer.New(s, parser, root.Log)

	summary, err := imp.ProcessImport(cmd.Context(), root.UserID, accountID, string(data), args[0])
	if err != nil {
		if errors.Is(err, importer.ErrUnauthorized) {
			return fmt.Errorf("account %s not found for user %s", accountID, root.UserID)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if !summary.Success {
		fmt.Fprintln(out, "Import rejected: the file could not be parsed")
		printErrors(out, summary.Errors)
		return fmt.Errorf("import failed")
	}

	fmt.Fprintf(out, "Imported:   %d\n", summary.ImportedCount)
	fmt.Fprintf(out, "Duplicates: %d\n", summary.DuplicateCount)
	fmt.Fprintf(out, "Errors:     %d\n", summary.ErrorCount)
	printErrors(out, summary.Errors)
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	s, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	batches, err := s.ListImportBatches(cmd.Context(), root.UserID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(batches) == 0 {
		fmt.Fprintln(out, "No imports yet")
		return nil
	}

	for _, b := range batches {
		fmt.Fprintf(out, "%s  %-10s %-24s rows=%d imported=%d duplicates=%d errors=%d [%s]\n",
			b.StartedAt.Format("2006-01-02 15:04"), b.BankType, b.FileName,
			b.RowCount, b.ImportedCount, b.DuplicateCount, b.ErrorCount, b.Status)
	}
	return nil
}

func printErrors(out io.Writer, errs []string) {
	shown := errs
	if len(shown) > maxErrorsShown {
		shown = shown[:maxErrorsShown]
	}
	for _, e := range shown {
		fmt.Fprintf(out, "  %s\n", e)
	}
	if rest := len(errs) - len(shown); rest > 0 {
		fmt.Fprintf(out, "  +%d more\n", rest)
	}
}
