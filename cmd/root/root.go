// Package root contains the root command and the shared wiring the
// subcommands build on.
package root

import (
	"github.com/spf13/cobra"

	"rkeller/pennyflow/internal/config"
	"rkeller/pennyflow/internal/logging"
	"rkeller/pennyflow/internal/store"
)

var (
	// Log is the shared logger instance for commands. It is replaced with a
	// configured adapter before any subcommand runs.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// UserID identifies whose data the commands operate on. The CLI is
	// single-user by default; the flag exists so several profiles can share
	// one database.
	UserID string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "pennyflow",
		Short: "Import bank statement CSV exports into a normalized ledger.",
		Long: `pennyflow ingests CSV statement exports from different banks, normalizes
them into a single transaction model and imports them idempotently:
re-importing the same file never creates duplicates.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

// Init registers the persistent flags. Called once from main before Execute.
func Init() {
	Cmd.PersistentFlags().StringVar(&UserID, "user", "local", "user profile to operate on")
}

// OpenStore opens the configured SQLite database. The caller owns the
// returned store and must close it.
func OpenStore() (store.Store, error) {
	return store.NewSQLiteStore(Cfg.DB.Path, Log)
}

// Delimiter returns the configured CSV output delimiter.
func Delimiter() rune {
	return []rune(Cfg.CSV.Delimiter)[0]
}
