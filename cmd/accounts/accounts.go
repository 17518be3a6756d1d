// Package accounts implements account management commands.
package accounts

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rkeller/pennyflow/cmd/root"
	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/store"
)

var (
	accountType string
	currency    string
	bankName    string
	lastFour    string
)

// Cmd represents the accounts command group.
var Cmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage the accounts statements are imported into",
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE:  createFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate <account-id>",
	Short: "Deactivate an account, keeping its transactions",
	Args:  cobra.ExactArgs(1),
	RunE:  deactivateFunc,
}

func init() {
	createCmd.Flags().StringVarP(&accountType, "type", "t", string(models.AccountCurrent),
		"account type (current, savings, credit, investment, other)")
	createCmd.Flags().StringVarP(&currency, "currency", "c", "", "account currency (defaults to the configured one)")
	createCmd.Flags().StringVar(&bankName, "bank", "", "bank name")
	createCmd.Flags().StringVar(&lastFour, "last-four", "", "last four digits of the account number")

	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deactivateCmd)
}

func createFunc(cmd *cobra.Command, args []string) error {
	switch models.AccountType(accountType) {
	case models.AccountCurrent, models.AccountSavings, models.AccountCredit,
		models.AccountInvestment, models.AccountOther:
	default:
		return fmt.Errorf("unknown account type %q", accountType)
	}

	if currency == "" {
		currency = root.Cfg.Import.DefaultCurrency
	}

	s, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	account := &models.Account{
		ID:             uuid.NewString(),
		UserID:         root.UserID,
		Name:           args[0],
		Type:           models.AccountType(accountType),
		Currency:       currency,
		BankName:       bankName,
		LastFourDigits: lastFour,
		IsActive:       true,
	}
	if err := s.CreateAccount(cmd.Context(), account); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created account %s (%s)\n", account.Name, account.ID)
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	s, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	accounts, err := s.ListAccounts(cmd.Context(), root.UserID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(accounts) == 0 {
		fmt.Fprintln(out, "No accounts yet")
		return nil
	}

	for _, a := range accounts {
		status := "active"
		if !a.IsActive {
			status = "inactive"
		}
		fmt.Fprintf(out, "%s  %-20s %-10s %s %s [%s]\n",
			a.ID, a.Name, a.Type, a.Currency, a.BankName, status)
	}
	return nil
}

func deactivateFunc(cmd *cobra.Command, args []string) error {
	s, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.DeactivateAccount(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("account %s not found", args[0])
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deactivated account %s\n", args[0])
	return nil
}
