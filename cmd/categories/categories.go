// Package categories implements category management commands.
package categories

import (
	"fmt"

	"github.com/spf13/cobra"

	"rkeller/pennyflow/cmd/root"
	"rkeller/pennyflow/internal/categories"
)

// Cmd represents the categories command group.
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage spending categories",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default categories for the current user",
	Args:  cobra.NoArgs,
	RunE:  seedFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	Cmd.AddCommand(seedCmd)
	Cmd.AddCommand(listCmd)
}

func seedFunc(cmd *cobra.Command, args []string) error {
	s, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	created, err := categories.SeedDefaults(cmd.Context(), s, root.UserID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if created == 0 {
		fmt.Fprintln(out, "Categories already exist, nothing to do")
		return nil
	}
	fmt.Fprintf(out, "Created %d default categories\n", created)
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	s, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	list, err := s.ListCategories(cmd.Context(), root.UserID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No categories yet, run 'pennyflow categories seed'")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(out, "%-24s %s\n", c.Name, c.Type)
	}
	return nil
}
