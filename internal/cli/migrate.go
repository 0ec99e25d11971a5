package cli

import (
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(rootOpts, "up", database.MigrateUp)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert all migrations, dropping every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(rootOpts, "down", database.MigrateDown)
		},
	})

	return cmd
}

func runMigration(rootOpts *RootOptions, direction string, fn func(*sqlx.DB) error) error {
	cfg := rootOpts.loadConfig()
	log := newLogger(cfg)
	defer log.Sync()

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return err
	}
	log.Info("Migrations applied: " + direction)
	return nil
}
