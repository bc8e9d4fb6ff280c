package main

import (
	"github.com/spf13/cobra"

	"budgetwise/internal/log"
	"budgetwise/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create and seed the SQLite database",
		Long:  "migrate applies the schema and sample-data migrations to SQLITE_DB_PATH. Running it again is a no-op.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if err := storage.RunMigrations(cfg.SQLiteDBPath); err != nil {
				return err
			}
			logger.WithComponent(log.ComponentStorage).Info("Migrations applied",
				log.FieldOperation, log.OpMigrate,
				log.FieldSource, cfg.SQLiteDBPath)
			return nil
		},
	}
}
