package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logs"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log := logs.New(cfg)
			slog.SetDefault(log)

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}

			if err := dbpkg.Migrate(db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			log.Info("migrations executed successfully")
			return nil
		},
	}
}
